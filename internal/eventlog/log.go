package eventlog

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"floodnet/internal/domain"
)

// Clock hands out a process-wide sequence so that entries recorded by
// different nodes can be merged into the order they actually happened.
type Clock struct {
	seq atomic.Uint64
}

func NewClock() *Clock {
	return &Clock{}
}

func (c *Clock) Tick() uint64 {
	return c.seq.Add(1)
}

type Entry struct {
	Seq  uint64
	Node domain.NodeID
	Text string
	At   time.Time
}

// Log is an append-only, ordered record of one node's events.
// It is purely observational.
type Log struct {
	node    domain.NodeID
	clock   *Clock
	mu      sync.RWMutex
	entries []Entry
}

func New(node domain.NodeID, clock *Clock) *Log {
	if clock == nil {
		clock = NewClock()
	}
	return &Log{
		node:  node,
		clock: clock,
	}
}

func (l *Log) Record(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{
		Seq:  l.clock.Tick(),
		Node: l.node,
		Text: text,
		At:   time.Now(),
	})
}

func (l *Log) Lines() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	lines := make([]string, len(l.entries))
	for i, e := range l.entries {
		lines[i] = e.Text
	}
	return lines
}

func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Merge interleaves the entries of several logs by sequence number.
// Logs must share a Clock for the result to be meaningful.
func Merge(logs ...*Log) []Entry {
	var all []Entry
	for _, l := range logs {
		all = append(all, l.Entries()...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Seq < all[j].Seq })
	return all
}
