package domain

// Recorder is the append-only event log attached to a node.
type Recorder interface {
	Record(text string)
	Lines() []string
}
