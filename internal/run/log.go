package run

import "time"

// LogCapacity is how many completed cycles the log retains.
const LogCapacity = 10

// LogEntry is an immutable snapshot of one completed cycle.
type LogEntry struct {
	Date    time.Time
	Items   []Item
	PSI     int
	Minutes int
}

// Log is a fixed-capacity FIFO of completed cycles; the oldest entry is
// evicted when full. Not safe for concurrent use — caller must synchronize.
type Log struct {
	buf      []LogEntry
	capacity int
	head     int // next write position
	count    int
}

// NewLog creates a log holding at most capacity entries.
func NewLog(capacity int) *Log {
	return &Log{
		buf:      make([]LogEntry, capacity),
		capacity: capacity,
	}
}

// Append records an entry, evicting the oldest when full. The entry's item
// slice is copied so later mutations of the run cannot change history.
func (l *Log) Append(e LogEntry) {
	e.Items = append([]Item(nil), e.Items...)
	l.buf[l.head] = e
	l.head = (l.head + 1) % l.capacity
	if l.count < l.capacity {
		l.count++
	}
}

// Entries returns the retained entries, newest first.
func (l *Log) Entries() []LogEntry {
	if l.count == 0 {
		return nil
	}
	result := make([]LogEntry, l.count)
	for i := 0; i < l.count; i++ {
		// Newest entry is just behind head.
		idx := (l.head - 1 - i + l.capacity) % l.capacity
		result[i] = l.buf[idx]
	}
	return result
}

// Len returns the number of retained entries.
func (l *Log) Len() int {
	return l.count
}
