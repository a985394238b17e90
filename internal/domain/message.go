package domain

import (
	"fmt"
	"strconv"
)

type NodeID uint64

func (id NodeID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Value is the scalar propagated between nodes. Proposals are compared with >.
type Value int64

type MessageType uint8

const (
	ProposeState MessageType = iota + 1
	AcceptState
)

func (t MessageType) String() string {
	switch t {
	case ProposeState:
		return "propose_state"
	case AcceptState:
		return "accept_state"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Message carries no sender; the sender travels alongside it at the call site.
type Message struct {
	Type  MessageType
	Value Value
}

func Propose(v Value) Message {
	return Message{Type: ProposeState, Value: v}
}

func Accept(v Value) Message {
	return Message{Type: AcceptState, Value: v}
}

func (m Message) String() string {
	return fmt.Sprintf("%s(%d)", m.Type, m.Value)
}
