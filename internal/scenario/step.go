package scenario

import (
	"fmt"

	"floodnet/internal/configuration/properties"
	"floodnet/internal/domain"
)

type Action string

const (
	ActionPropose    Action = "propose"
	ActionPartition  Action = "partition"
	ActionRecover    Action = "recover"
	ActionRecoverAll Action = "recover-all"
)

type Step struct {
	Action Action
	Node   domain.NodeID
	Value  domain.Value
	Name   string
	Nodes  []domain.NodeID
}

func (s Step) String() string {
	switch s.Action {
	case ActionPropose:
		return fmt.Sprintf("node %d proposes %d", s.Node, s.Value)
	case ActionPartition:
		return fmt.Sprintf("partition %q %v", s.Name, s.Nodes)
	case ActionRecover:
		return fmt.Sprintf("recover %q", s.Name)
	default:
		return string(s.Action)
	}
}

func FromConfig(cfg *properties.ScenarioConfigProperties) []Step {
	steps := make([]Step, 0, len(cfg.Steps))
	for _, s := range cfg.Steps {
		ids := make([]domain.NodeID, len(s.Nodes))
		for i, id := range s.Nodes {
			ids[i] = domain.NodeID(id)
		}
		steps = append(steps, Step{
			Action: Action(s.Action),
			Node:   domain.NodeID(s.Node),
			Value:  domain.Value(s.Value),
			Name:   s.Name,
			Nodes:  ids,
		})
	}
	return steps
}

// DefaultTopology is the fully connected three-node network used by Default.
func DefaultTopology() *properties.TopologyConfigProperties {
	return &properties.TopologyConfigProperties{
		Nodes:    []uint64{1, 2, 3},
		FullMesh: true,
	}
}

// Default is the canonical walkthrough: two rounds that converge, then
// node 1 is cut off and node 2 proposes again.
func Default() []Step {
	return []Step{
		{Action: ActionPropose, Node: 1, Value: 1},
		{Action: ActionPropose, Node: 2, Value: 2},
		{Action: ActionPartition, Name: "isolate-1", Nodes: []domain.NodeID{1}},
		{Action: ActionPropose, Node: 2, Value: 3},
	}
}
