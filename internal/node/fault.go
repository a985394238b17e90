package node

import "log/slog"

// MarkUnreachable partitions every node in nodes. Any caller may mark any
// node; this is a harness-wide view of the network, not a node's own.
// It returns how many nodes actually changed.
func MarkUnreachable(nodes ...*Node) int {
	return setReachability(nodes, true)
}

// MarkReachable reverses MarkUnreachable.
func MarkReachable(nodes ...*Node) int {
	return setReachability(nodes, false)
}

func setReachability(nodes []*Node, unreachable bool) int {
	changed := 0
	for _, n := range nodes {
		if n.setUnreachable(unreachable) {
			changed++
		}
		slog.Debug("reachability set", "node", n.id, "unreachable", unreachable)
	}
	return changed
}

// SimulatePartition marks nodes unreachable on behalf of n. The receiver
// plays no part in the decision; any node may partition any other.
func (n *Node) SimulatePartition(nodes []*Node) {
	MarkUnreachable(nodes...)
}

func (n *Node) SimulateRecovery(nodes []*Node) {
	MarkReachable(nodes...)
}
