package main

import (
	"fmt"

	"floodnet/internal/configuration/properties"
	"floodnet/internal/fault"
	"floodnet/internal/journal"
	"floodnet/internal/metrics"
	"floodnet/internal/scenario"
	"floodnet/internal/topology"
)

type Services struct {
	Registry *topology.Registry
	Injector *fault.Injector
	Runner   *scenario.Runner
	Journal  *journal.Journal
	Metrics  *metrics.Server
	Steps    []scenario.Step
}

func NewServices(provider properties.ConfigProvider, useDefault bool) (*Services, error) {
	topoCfg := provider.GetTopology()
	steps := scenario.FromConfig(provider.GetScenario())
	if useDefault {
		topoCfg = scenario.DefaultTopology()
		steps = scenario.Default()
	}

	registry, err := topology.FromConfig(topoCfg)
	if err != nil {
		return nil, fmt.Errorf("build topology: %w", err)
	}

	injector := fault.NewInjector(registry)

	svc := &Services{
		Registry: registry,
		Injector: injector,
		Runner:   scenario.NewRunner(registry, injector),
		Steps:    steps,
	}

	if jc := provider.GetJournal(); jc.Enabled {
		j, err := journal.Open(jc.Dir, jc.NoSync)
		if err != nil {
			return nil, fmt.Errorf("open journal: %w", err)
		}
		svc.Journal = j
	}

	if mc := provider.GetMetrics(); mc.Enabled {
		svc.Metrics = metrics.NewServer(mc.Address)
	}

	return svc, nil
}

func (s *Services) Close() {
	if s.Metrics != nil {
		s.Metrics.Stop()
	}
	if s.Journal != nil {
		s.Journal.Close()
	}
}
