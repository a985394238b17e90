package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "floodnet",
		Subsystem: "message",
		Name:      "messages_total",
		Help:      "Total protocol messages sent/received",
	}, []string{"direction", "type"})

	MessagesDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "floodnet",
		Subsystem: "message",
		Name:      "dropped_total",
		Help:      "Messages dropped because the sender or receiver was unreachable",
	}, []string{"side", "type"})

	ProposalsInitiated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "floodnet",
		Subsystem: "proposal",
		Name:      "initiated_total",
		Help:      "Proposals started locally by a node",
	})

	ProposalsAdopted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "floodnet",
		Subsystem: "proposal",
		Name:      "adopted_total",
		Help:      "Incoming proposals adopted because they were strictly greater",
	})

	ProposalsIgnored = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "floodnet",
		Subsystem: "proposal",
		Name:      "ignored_total",
		Help:      "Incoming proposals ignored because they were not greater",
	})

	StatesAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "floodnet",
		Subsystem: "state",
		Name:      "accepted_total",
		Help:      "Accept messages committed into node state",
	})

	UnreachableNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "floodnet",
		Subsystem: "fault",
		Name:      "unreachable_nodes",
		Help:      "Nodes currently marked unreachable through the injector",
	})

	PartitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "floodnet",
		Subsystem: "fault",
		Name:      "partitions_total",
		Help:      "Partition and recovery operations",
	}, []string{"action"})

	JournalWritesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "floodnet",
		Subsystem: "journal",
		Name:      "writes_total",
		Help:      "Total journal records written",
	})

	JournalWriteDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "floodnet",
		Subsystem: "journal",
		Name:      "write_duration_seconds",
		Help:      "Journal batch write duration",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 20),
	})

	ScenarioStepsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "floodnet",
		Subsystem: "scenario",
		Name:      "steps_total",
		Help:      "Scenario steps executed",
	}, []string{"action", "status"})
)
