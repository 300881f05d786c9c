package graph

import (
	"container/list"

	"github.com/brewersproject/lineage/internal/records"
)

// Frontier is the FIFO queue of records waiting to be expanded.
type Frontier struct {
	queue *list.List
}

// NewFrontier creates a new empty frontier.
func NewFrontier() *Frontier {
	return &Frontier{
		queue: list.New(),
	}
}

// Enqueue adds a record to the back of the queue.
func (f *Frontier) Enqueue(rec *records.Record) {
	f.queue.PushBack(rec)
}

// Dequeue removes and returns the record at the front of the queue.
// Returns nil and false if queue is empty.
func (f *Frontier) Dequeue() (*records.Record, bool) {
	if f.queue.Len() == 0 {
		return nil, false
	}
	elem := f.queue.Front()
	f.queue.Remove(elem)
	return elem.Value.(*records.Record), true
}

// Len returns the number of records in the queue.
func (f *Frontier) Len() int {
	return f.queue.Len()
}

// IsEmpty returns true if the queue has no records.
func (f *Frontier) IsEmpty() bool {
	return f.queue.Len() == 0
}
