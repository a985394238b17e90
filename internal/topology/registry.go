package topology

import (
	"fmt"
	"log/slog"
	"sync"

	"floodnet/internal/domain"
	"floodnet/internal/eventlog"
	"floodnet/internal/node"
)

// Registry owns the set of nodes in a simulation and resolves them by ID.
// Links may only be added before Seal; after that the neighbor lists are
// read concurrently without synchronization.
type Registry struct {
	mu     sync.RWMutex
	clock  *eventlog.Clock
	nodes  map[domain.NodeID]*node.Node
	logs   map[domain.NodeID]*eventlog.Log
	order  []domain.NodeID
	sealed bool
}

func NewRegistry() *Registry {
	return &Registry{
		clock: eventlog.NewClock(),
		nodes: make(map[domain.NodeID]*node.Node),
		logs:  make(map[domain.NodeID]*eventlog.Log),
	}
}

func (r *Registry) Add(id domain.NodeID) (*node.Node, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return nil, ErrSealed
	}
	if _, ok := r.nodes[id]; ok {
		return nil, fmt.Errorf("add node %d: %w", id, ErrDuplicateNode)
	}

	l := eventlog.New(id, r.clock)
	n := node.New(id, node.WithRecorder(l))
	r.nodes[id] = n
	r.logs[id] = l
	r.order = append(r.order, id)
	return n, nil
}

func (r *Registry) Get(id domain.NodeID) (*node.Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.nodes[id]
	return n, ok
}

func (r *Registry) MustGet(id domain.NodeID) *node.Node {
	n, ok := r.Get(id)
	if !ok {
		panic(fmt.Sprintf("topology: node %d not registered", id))
	}
	return n
}

// Resolve maps ids to nodes, failing on the first unknown id.
func (r *Registry) Resolve(ids ...domain.NodeID) ([]*node.Node, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*node.Node, 0, len(ids))
	for _, id := range ids {
		n, ok := r.nodes[id]
		if !ok {
			return nil, fmt.Errorf("resolve node %d: %w", id, ErrUnknownNode)
		}
		out = append(out, n)
	}
	return out, nil
}

// IDs returns node ids in registration order.
func (r *Registry) IDs() []domain.NodeID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.NodeID, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) Nodes() []*node.Node {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*node.Node, len(r.order))
	for i, id := range r.order {
		out[i] = r.nodes[id]
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

func (r *Registry) Log(id domain.NodeID) (*eventlog.Log, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.logs[id]
	return l, ok
}

// Entries merges every node's log into one causally ordered sequence.
func (r *Registry) Entries() []eventlog.Entry {
	r.mu.RLock()
	logs := make([]*eventlog.Log, 0, len(r.order))
	for _, id := range r.order {
		logs = append(logs, r.logs[id])
	}
	r.mu.RUnlock()
	return eventlog.Merge(logs...)
}

// Link adds a directed edge from -> to.
func (r *Registry) Link(from, to domain.NodeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.linkLocked(from, to)
}

// Connect links both directions.
func (r *Registry) Connect(a, b domain.NodeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.linkLocked(a, b); err != nil {
		return err
	}
	return r.linkLocked(b, a)
}

// FullMesh connects every registered node to every other, in registration order.
func (r *Registry) FullMesh() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.order {
		for _, b := range r.order {
			if a == b {
				continue
			}
			if err := r.linkLocked(a, b); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Registry) linkLocked(from, to domain.NodeID) error {
	if r.sealed {
		return ErrSealed
	}
	if from == to {
		return fmt.Errorf("link %d -> %d: %w", from, to, ErrSelfLink)
	}
	src, ok := r.nodes[from]
	if !ok {
		return fmt.Errorf("link from %d: %w", from, ErrUnknownNode)
	}
	dst, ok := r.nodes[to]
	if !ok {
		return fmt.Errorf("link to %d: %w", to, ErrUnknownNode)
	}
	src.AddNeighbor(dst)
	return nil
}

// Seal ends the setup phase.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.sealed {
		slog.Debug("topology sealed", "nodes", len(r.order))
	}
	r.sealed = true
}

func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}
