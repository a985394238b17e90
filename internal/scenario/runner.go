package scenario

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"floodnet/internal/fault"
	"floodnet/internal/metrics"
	"floodnet/internal/topology"
)

type Runner struct {
	registry *topology.Registry
	injector *fault.Injector
}

func NewRunner(registry *topology.Registry, injector *fault.Injector) *Runner {
	if injector == nil {
		injector = fault.NewInjector(registry)
	}
	return &Runner{registry: registry, injector: injector}
}

// Run executes steps in order. Each step runs to quiescence before the next
// starts; ctx is only consulted between steps.
func (r *Runner) Run(ctx context.Context, steps []Step) error {
	if !r.registry.Sealed() {
		r.registry.Seal()
	}

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}

		err := r.apply(step)
		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.ScenarioStepsTotal.WithLabelValues(string(step.Action), status).Inc()
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", i, step, err)
		}
		slog.Debug("scenario step done", "index", i, "step", step.String())
	}
	return nil
}

func (r *Runner) apply(step Step) error {
	switch step.Action {
	case ActionPropose:
		nodes, err := r.registry.Resolve(step.Node)
		if err != nil {
			return err
		}
		nodes[0].Propose(step.Value)
		return nil
	case ActionPartition:
		return r.injector.Partition(step.Name, step.Nodes...)
	case ActionRecover:
		return r.injector.Recover(step.Name)
	case ActionRecoverAll:
		r.injector.RecoverAll()
		return nil
	default:
		return fmt.Errorf("%q: %w", step.Action, ErrUnknownAction)
	}
}

// Print writes each node's log in registration order.
func Print(w io.Writer, registry *topology.Registry) error {
	for i, n := range registry.Nodes() {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "Node %d log:\n", n.ID()); err != nil {
			return err
		}
		for _, line := range n.RetrieveLog() {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// PrintSummary writes one line per node with its protocol state.
func PrintSummary(w io.Writer, registry *topology.Registry) error {
	for _, n := range registry.Nodes() {
		s := n.Snapshot()
		if _, err := fmt.Fprintf(w, "node=%d state=%s proposed=%s leader=%s unreachable=%t\n",
			s.ID, optional(s.HasState, s.State), optional(s.HasProposed, s.Proposed),
			optional(s.HasLeader, s.Leader), s.Unreachable); err != nil {
			return err
		}
	}
	return nil
}

func optional[T any](ok bool, v T) string {
	if !ok {
		return "-"
	}
	return fmt.Sprint(v)
}
