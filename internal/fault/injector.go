package fault

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"floodnet/internal/domain"
	"floodnet/internal/metrics"
	"floodnet/internal/node"
	"floodnet/internal/topology"
)

// Injector is the harness-side view of the network. It can take any
// registered node down regardless of who asks, and remembers named
// partitions so they can be healed as a unit.
type Injector struct {
	registry *topology.Registry

	mu         sync.Mutex
	partitions map[string][]*node.Node
}

func NewInjector(registry *topology.Registry) *Injector {
	return &Injector{
		registry:   registry,
		partitions: make(map[string][]*node.Node),
	}
}

// Partition marks the given nodes unreachable and records them under name.
func (i *Injector) Partition(name string, ids ...domain.NodeID) error {
	nodes, err := i.registry.Resolve(ids...)
	if err != nil {
		return fmt.Errorf("partition %q: %w", name, err)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if _, ok := i.partitions[name]; ok {
		return fmt.Errorf("partition %q: %w", name, ErrPartitionExists)
	}
	i.partitions[name] = nodes

	changed := node.MarkUnreachable(nodes...)
	metrics.PartitionsTotal.WithLabelValues("partition").Inc()
	metrics.UnreachableNodes.Add(float64(changed))
	slog.Info("partition applied", "name", name, "nodes", ids, "newly_unreachable", changed)
	return nil
}

// Recover heals a named partition. Nodes that are also members of another
// active partition stay unreachable.
func (i *Injector) Recover(name string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	nodes, ok := i.partitions[name]
	if !ok {
		return fmt.Errorf("recover %q: %w", name, ErrUnknownPartition)
	}
	delete(i.partitions, name)

	stillDown := make(map[*node.Node]bool)
	for _, members := range i.partitions {
		for _, n := range members {
			stillDown[n] = true
		}
	}

	var heal []*node.Node
	for _, n := range nodes {
		if !stillDown[n] {
			heal = append(heal, n)
		}
	}

	changed := node.MarkReachable(heal...)
	metrics.PartitionsTotal.WithLabelValues("recover").Inc()
	metrics.UnreachableNodes.Sub(float64(changed))
	slog.Info("partition recovered", "name", name, "recovered", changed)
	return nil
}

// RecoverAll heals every active partition.
func (i *Injector) RecoverAll() {
	i.mu.Lock()
	defer i.mu.Unlock()

	changed := 0
	for name, nodes := range i.partitions {
		changed += node.MarkReachable(nodes...)
		delete(i.partitions, name)
	}
	metrics.PartitionsTotal.WithLabelValues("recover_all").Inc()
	metrics.UnreachableNodes.Sub(float64(changed))
	slog.Info("all partitions recovered", "recovered", changed)
}

// Active returns the names of active partitions, sorted.
func (i *Injector) Active() []string {
	i.mu.Lock()
	defer i.mu.Unlock()

	names := make([]string, 0, len(i.partitions))
	for name := range i.partitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
