package configuration

import (
	"errors"
	"fmt"
	"strings"

	"floodnet/internal/configuration/properties"
)

var ErrInvalidConfig = errors.New("invalid config")

var knownActions = map[string]bool{
	"propose":     true,
	"partition":   true,
	"recover":     true,
	"recover-all": true,
}

// LoadConfig loads and validates the configuration rooted at baseDir.
func LoadConfig(baseDir, profile string) (*properties.Config, properties.ConfigProvider, error) {
	cfg, err := Load(baseDir, profile)
	if err != nil {
		return nil, nil, err
	}

	applyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, nil, err
	}

	return cfg, properties.NewProvider(cfg), nil
}

func applyDefaults(cfg *properties.Config) {
	if cfg.Application.LogLevel == "" {
		cfg.Application.LogLevel = "info"
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Address == "" {
		cfg.Metrics.Address = ":9090"
	}
}

func Validate(cfg *properties.Config) error {
	var problems []string

	seen := make(map[uint64]bool, len(cfg.Topology.Nodes))
	for _, id := range cfg.Topology.Nodes {
		if seen[id] {
			problems = append(problems, fmt.Sprintf("topology.nodes: duplicate id %d", id))
		}
		seen[id] = true
	}
	if len(cfg.Topology.Nodes) == 0 {
		problems = append(problems, "topology.nodes: at least one node is required")
	}

	for i, l := range cfg.Topology.Links {
		if !seen[l.From] || !seen[l.To] {
			problems = append(problems, fmt.Sprintf("topology.links[%d]: unknown node in %d -> %d", i, l.From, l.To))
		}
		if l.From == l.To {
			problems = append(problems, fmt.Sprintf("topology.links[%d]: self link on %d", i, l.From))
		}
	}

	for i, s := range cfg.Scenario.Steps {
		if !knownActions[s.Action] {
			problems = append(problems, fmt.Sprintf("scenario.steps[%d]: unknown action %q", i, s.Action))
			continue
		}
		switch s.Action {
		case "propose":
			if !seen[s.Node] {
				problems = append(problems, fmt.Sprintf("scenario.steps[%d]: unknown node %d", i, s.Node))
			}
		case "partition":
			if s.Name == "" {
				problems = append(problems, fmt.Sprintf("scenario.steps[%d]: partition needs a name", i))
			}
			for _, id := range s.Nodes {
				if !seen[id] {
					problems = append(problems, fmt.Sprintf("scenario.steps[%d]: unknown node %d", i, id))
				}
			}
		case "recover":
			if s.Name == "" {
				problems = append(problems, fmt.Sprintf("scenario.steps[%d]: recover needs a name", i))
			}
		}
	}

	if cfg.Journal.Enabled && cfg.Journal.Dir == "" {
		problems = append(problems, "journal.dir: required when journal is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
