package node

import (
	"floodnet/internal/domain"
	"floodnet/internal/metrics"
)

// Propose sets this node's proposal unconditionally and floods it.
func (n *Node) Propose(v domain.Value) {
	n.mu.Lock()
	n.setProposed(v)
	n.logf("Node %d proposed state %d", n.id, v)
	n.mu.Unlock()

	metrics.ProposalsInitiated.Inc()
	n.Broadcast(domain.Propose(v))
}

// OnPropose adopts v only if it is strictly greater than the current
// proposal, then floods an accept for the adopted value.
func (n *Node) OnPropose(sender *Node, v domain.Value) {
	if !n.wouldAdopt(v) {
		metrics.ProposalsIgnored.Inc()
		return
	}

	n.mu.Lock()
	if n.hasProposed && v <= n.proposed {
		n.mu.Unlock()
		metrics.ProposalsIgnored.Inc()
		return
	}
	n.setProposed(v)
	n.leader = sender.id
	n.hasLeader = true
	n.logf("Node %d accepted proposed state %d from Node %d", n.id, v, sender.id)
	adopted := n.proposed
	n.mu.Unlock()

	metrics.ProposalsAdopted.Inc()
	n.Broadcast(domain.Accept(adopted))
}

// wouldAdopt reads the proposal without taking mu. The answer is advisory:
// OnPropose re-checks it under the lock before mutating anything.
func (n *Node) wouldAdopt(v domain.Value) bool {
	p := n.hint.Load()
	return p == nil || v > *p
}

// setProposed must be called with mu held.
func (n *Node) setProposed(v domain.Value) {
	n.proposed = v
	n.hasProposed = true
	n.hint.Store(&v)
}

// OnAccept commits v as the node's state. Last accept processed wins.
func (n *Node) OnAccept(sender *Node, v domain.Value) {
	n.mu.Lock()
	n.state = v
	n.hasState = true
	n.logf("Node %d accepted new state %d from Node %d", n.id, v, sender.id)
	n.mu.Unlock()

	metrics.StatesAccepted.Inc()
}
