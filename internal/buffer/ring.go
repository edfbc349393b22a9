// Package buffer provides the fixed-capacity retention window for parsed
// log records.
package buffer

import "github.com/five82/herotail/internal/parser"

// Ring keeps at most Cap records in insertion order. When full, Push evicts
// the oldest record before appending. Index 0 is always the oldest record
// currently held.
type Ring struct {
	items []parser.Record
	head  int // position of the oldest record
	count int
}

// New returns an empty ring. A non-positive capacity is treated as 1.
func New(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring{items: make([]parser.Record, capacity)}
}

// Push appends rec, evicting the oldest record when the ring is full.
func (r *Ring) Push(rec parser.Record) {
	capacity := len(r.items)
	if r.count < capacity {
		r.items[(r.head+r.count)%capacity] = rec
		r.count++
		return
	}
	r.items[r.head] = rec
	r.head = (r.head + 1) % capacity
}

// Get returns the record at position index.
func (r *Ring) Get(index int) (parser.Record, bool) {
	if index < 0 || index >= r.count {
		return parser.Record{}, false
	}
	return r.items[(r.head+index)%len(r.items)], true
}

// Len reports the number of records held.
func (r *Ring) Len() int { return r.count }

// Cap reports the fixed capacity.
func (r *Ring) Cap() int { return len(r.items) }

// All returns every record, oldest first.
func (r *Ring) All() []parser.Record {
	return r.Range(0, r.count)
}

// LastN returns the newest n records in order, or every record when n >= Len.
func (r *Ring) LastN(n int) []parser.Record {
	if n >= r.count {
		return r.All()
	}
	return r.Range(r.count-n, r.count)
}

// Range returns records in [start, end), clamped to the held window.
func (r *Ring) Range(start, end int) []parser.Record {
	start = max(start, 0)
	end = min(end, r.count)
	if start >= end {
		return nil
	}
	out := make([]parser.Record, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, r.items[(r.head+i)%len(r.items)])
	}
	return out
}

// Clear drops every record. Capacity is unchanged.
func (r *Ring) Clear() {
	clear(r.items)
	r.head = 0
	r.count = 0
}
