package journal

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/tidwall/wal"

	"floodnet/internal/domain"
	"floodnet/internal/eventlog"
	"floodnet/internal/metrics"
)

var (
	ErrClosed = errors.New("journal closed")

	ErrCorrupt = errors.New("corrupt journal record")
)

// Record is one persisted event-log entry tagged with the run it came from.
type Record struct {
	Run  string
	Seq  uint64
	Node domain.NodeID
	Text string
	At   time.Time
}

// Journal persists event-log entries to a write-ahead log so a run can be
// inspected after the process exits. It never feeds back into the protocol.
type Journal struct {
	mu     sync.Mutex
	log    *wal.Log
	next   uint64
	closed bool
}

func Open(dir string, noSync bool) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}

	opts := *wal.DefaultOptions
	opts.NoSync = noSync
	log, err := wal.Open(dir, &opts)
	if err != nil {
		return nil, fmt.Errorf("wal.Open: %w", err)
	}

	last, err := log.LastIndex()
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("wal last index: %w", err)
	}

	slog.Debug("journal opened", "dir", dir, "records", last)
	return &Journal{log: log, next: last + 1}, nil
}

// Append writes entries as one batch, in the order given.
func (j *Journal) Append(run string, entries []eventlog.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return ErrClosed
	}

	start := time.Now()
	var batch wal.Batch
	idx := j.next
	for _, e := range entries {
		data, err := encodeRecord(Record{Run: run, Seq: e.Seq, Node: e.Node, Text: e.Text, At: e.At})
		if err != nil {
			return fmt.Errorf("encode seq %d: %w", e.Seq, err)
		}
		batch.Write(idx, data)
		idx++
	}

	if err := j.log.WriteBatch(&batch); err != nil {
		return fmt.Errorf("wal write: %w", err)
	}
	j.next = idx

	metrics.JournalWritesTotal.Add(float64(len(entries)))
	metrics.JournalWriteDuration.Observe(time.Since(start).Seconds())
	return nil
}

// ReadAll replays every record in write order.
func (j *Journal) ReadAll() ([]Record, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil, ErrClosed
	}

	first, err := j.log.FirstIndex()
	if err != nil {
		return nil, fmt.Errorf("wal first index: %w", err)
	}
	last, err := j.log.LastIndex()
	if err != nil {
		return nil, fmt.Errorf("wal last index: %w", err)
	}
	if first == 0 {
		return nil, nil
	}

	out := make([]Record, 0, last-first+1)
	for idx := first; idx <= last; idx++ {
		data, err := j.log.Read(idx)
		if err != nil {
			return nil, fmt.Errorf("wal read %d: %w", idx, err)
		}
		r, err := decodeRecord(data)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", idx, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// ReadRun returns the records of a single run.
func (j *Journal) ReadRun(run string) ([]Record, error) {
	all, err := j.ReadAll()
	if err != nil {
		return nil, err
	}
	var out []Record
	for _, r := range all {
		if r.Run == run {
			out = append(out, r)
		}
	}
	return out, nil
}

// Runs lists run identifiers in the order they first appear.
func (j *Journal) Runs() ([]string, error) {
	all, err := j.ReadAll()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var runs []string
	for _, r := range all {
		if !seen[r.Run] {
			seen[r.Run] = true
			runs = append(runs, r.Run)
		}
	}
	return runs, nil
}

func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil
	}
	j.closed = true
	return j.log.Close()
}
