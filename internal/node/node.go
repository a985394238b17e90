package node

import (
	"fmt"
	"sync/atomic"

	"github.com/algorand/go-deadlock"

	"floodnet/internal/domain"
	"floodnet/internal/eventlog"
)

// Node is one peer in the flood network. Neighbors are plain pointers:
// no node owns another and cycles are expected.
type Node struct {
	id        domain.NodeID
	neighbors []*Node
	log       domain.Recorder

	unreachable atomic.Bool

	// hint mirrors proposed for the lock-free pre-check in OnPropose.
	// Nil until the first proposal.
	hint atomic.Pointer[domain.Value]

	// mu guards state, proposed and leader and nothing else.
	mu          deadlock.Mutex
	state       domain.Value
	hasState    bool
	proposed    domain.Value
	hasProposed bool
	leader      domain.NodeID
	hasLeader   bool
}

type Option func(*Node)

// WithRecorder replaces the node's default event log.
func WithRecorder(r domain.Recorder) Option {
	return func(n *Node) {
		n.log = r
	}
}

func New(id domain.NodeID, opts ...Option) *Node {
	n := &Node{id: id}
	for _, opt := range opts {
		opt(n)
	}
	if n.log == nil {
		n.log = eventlog.New(id, nil)
	}
	return n
}

func (n *Node) ID() domain.NodeID {
	return n.id
}

// AddNeighbor appends a directed link. Duplicates are kept. Call it only
// while the topology is being built.
func (n *Node) AddNeighbor(neighbor *Node) {
	n.neighbors = append(n.neighbors, neighbor)
}

func (n *Node) Neighbors() []*Node {
	out := make([]*Node, len(n.neighbors))
	copy(out, n.neighbors)
	return out
}

func (n *Node) Unreachable() bool {
	return n.unreachable.Load()
}

func (n *Node) setUnreachable(v bool) bool {
	return n.unreachable.Swap(v) != v
}

func (n *Node) State() (domain.Value, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state, n.hasState
}

func (n *Node) ProposedState() (domain.Value, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.proposed, n.hasProposed
}

func (n *Node) LeaderID() (domain.NodeID, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.leader, n.hasLeader
}

type Snapshot struct {
	ID          domain.NodeID
	State       domain.Value
	HasState    bool
	Proposed    domain.Value
	HasProposed bool
	Leader      domain.NodeID
	HasLeader   bool
	Unreachable bool
}

// Snapshot reads the protected triple in one critical section.
func (n *Node) Snapshot() Snapshot {
	n.mu.Lock()
	defer n.mu.Unlock()
	return Snapshot{
		ID:          n.id,
		State:       n.state,
		HasState:    n.hasState,
		Proposed:    n.proposed,
		HasProposed: n.hasProposed,
		Leader:      n.leader,
		HasLeader:   n.hasLeader,
		Unreachable: n.unreachable.Load(),
	}
}

func (n *Node) Log() domain.Recorder {
	return n.log
}

func (n *Node) RetrieveLog() []string {
	return n.log.Lines()
}

func (n *Node) logf(format string, args ...any) {
	n.log.Record(fmt.Sprintf(format, args...))
}
