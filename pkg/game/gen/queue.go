package gen

import (
	"errors"

	"github.com/zyedidia/generic/heap"
)

// ErrEmptyQueue is the panic value raised when an empty queue is dequeued
var ErrEmptyQueue = errors.New("dequeue from empty step queue")

type queueEntry[T any] struct {
	priority Priority
	seq      uint64
	item     T
}

// StableQueue is a priority queue that keeps insertion order among equal
// priorities. Lower priorities come out first.
type StableQueue[T any] struct {
	heap *heap.Heap[queueEntry[T]]
	seq  uint64
}

// StepQueue is the queue a floor's generation steps are drained from
type StepQueue = StableQueue[Step]

// NewStepQueue creates an empty step queue
func NewStepQueue() *StepQueue {
	return NewStableQueue[Step]()
}

// NewStableQueue creates an empty queue
func NewStableQueue[T any]() *StableQueue[T] {
	return &StableQueue[T]{
		heap: heap.New(func(a, b queueEntry[T]) bool {
			if c := a.priority.Compare(b.priority); c != 0 {
				return c < 0
			}
			return a.seq < b.seq
		}),
	}
}

// Enqueue adds an item behind every item of equal or lower priority
func (q *StableQueue[T]) Enqueue(p Priority, item T) {
	q.seq++
	q.heap.Push(queueEntry[T]{priority: p, seq: q.seq, item: item})
}

// Count returns the number of queued items
func (q *StableQueue[T]) Count() int {
	return q.heap.Size()
}

// FrontPriority returns the priority of the next item without removing it.
// It panics on an empty queue.
func (q *StableQueue[T]) FrontPriority() Priority {
	e, ok := q.heap.Peek()
	if !ok {
		panic(ErrEmptyQueue)
	}
	return e.priority
}

// Dequeue removes and returns the next item. It panics on an empty queue.
func (q *StableQueue[T]) Dequeue() T {
	_, item := q.DequeueWithPriority()
	return item
}

// DequeueWithPriority removes the next item and returns it with its priority.
// It panics on an empty queue.
func (q *StableQueue[T]) DequeueWithPriority() (Priority, T) {
	e, ok := q.heap.Pop()
	if !ok {
		panic(ErrEmptyQueue)
	}
	return e.priority, e.item
}

// Entries returns the queued items in drain order without changing the queue
func (q *StableQueue[T]) Entries() []PriorityItem[T] {
	entries := q.drain()
	out := make([]PriorityItem[T], len(entries))
	for i, e := range entries {
		out[i] = PriorityItem[T]{Priority: e.priority, Item: e.item}
		q.heap.Push(e)
	}
	return out
}

// RemoveIf drops every item matching pred and returns how many were removed.
// Remaining items keep their relative order.
func (q *StableQueue[T]) RemoveIf(pred func(p Priority, item T) bool) int {
	removed := 0
	for _, e := range q.drain() {
		if pred(e.priority, e.item) {
			removed++
			continue
		}
		q.heap.Push(e)
	}
	return removed
}

func (q *StableQueue[T]) drain() []queueEntry[T] {
	entries := make([]queueEntry[T], 0, q.heap.Size())
	for {
		e, ok := q.heap.Pop()
		if !ok {
			return entries
		}
		entries = append(entries, e)
	}
}

// PriorityItem pairs an item with its priority
type PriorityItem[T any] struct {
	Priority Priority
	Item     T
}
