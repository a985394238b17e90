package node

import (
	"log/slog"

	"floodnet/internal/domain"
	"floodnet/internal/metrics"
)

// Send delivers msg to receiver synchronously. Only the sender's own flag is
// checked here, so a message to an unreachable receiver is still logged as
// sent even though the receiver never sees it.
func (n *Node) Send(receiver *Node, msg domain.Message) {
	if n.Unreachable() {
		metrics.MessagesDropped.WithLabelValues("sender", msg.Type.String()).Inc()
		slog.Debug("send suppressed, sender unreachable", "node", n.id, "to", receiver.id, "msg", msg)
		return
	}

	receiver.Receive(n, msg)
	metrics.MessagesTotal.WithLabelValues("sent", msg.Type.String()).Inc()
	n.logf("Sent %s to Node %d", msg, receiver.id)
}

// Receive is the receive handler invoked by Send.
func (n *Node) Receive(sender *Node, msg domain.Message) {
	if n.Unreachable() {
		metrics.MessagesDropped.WithLabelValues("receiver", msg.Type.String()).Inc()
		slog.Debug("delivery dropped, receiver unreachable", "node", n.id, "from", sender.id, "msg", msg)
		return
	}

	var handle func(*Node, domain.Value)
	switch msg.Type {
	case domain.ProposeState:
		handle = n.OnPropose
	case domain.AcceptState:
		handle = n.OnAccept
	default:
		// Unknown types leave no trace on the receiver.
		return
	}

	metrics.MessagesTotal.WithLabelValues("received", msg.Type.String()).Inc()
	n.logf("Received %s from Node %d", msg, sender.id)
	handle(sender, msg.Value)
}

// Broadcast sends msg to every neighbor, one after another, in the order
// they were added.
func (n *Node) Broadcast(msg domain.Message) {
	for _, neighbor := range n.neighbors {
		n.Send(neighbor, msg)
	}
}
