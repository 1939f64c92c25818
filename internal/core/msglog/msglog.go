// Package msglog keeps a bounded, newest-first record of received messages.
package msglog

import (
	"sync"
	"time"
)

// DefaultCapacity is the number of records retained before eviction.
const DefaultCapacity = 50

// Record is a single received message. Records are never mutated after
// they are appended.
type Record struct {
	Topic      string
	Payload    string
	ReceivedAt time.Time
	Phone      string // cleaned number, empty when none was detected
}

// HasPhone returns true if a phone number was detected in the payload.
func (r Record) HasPhone() bool {
	return r.Phone != ""
}

// Log is a bounded newest-first message log. Safe for concurrent use.
type Log struct {
	mu       sync.RWMutex
	capacity int
	records  []Record
}

// New creates a log with the given capacity. Zero or negative capacity
// falls back to DefaultCapacity.
func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		capacity: capacity,
		records:  make([]Record, 0, capacity),
	}
}

// Append inserts the record at the front, evicting the oldest entry when
// the log is full.
func (l *Log) Append(r Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.records) == l.capacity {
		l.records = l.records[:l.capacity-1]
	}
	l.records = append([]Record{r}, l.records...)
}

// All returns a copy of the records, newest first.
func (l *Log) All() []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records currently retained.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Capacity returns the retention limit.
func (l *Log) Capacity() int {
	return l.capacity
}
