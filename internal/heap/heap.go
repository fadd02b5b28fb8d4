// Package heap implements a generic binary min-heap over a user-supplied
// ordering. It is the priority queue behind the scheduler's ready frontier
// (see internal/graph), ordered by ascending input index to fix tie-breaks,
// and is exported standalone because the teacher codebase's own pattern of
// small, independently testable concurrency/data primitives (see
// internal/cwlrunner's Semaphore in the reference tree) applies just as well
// to a pure data structure.
package heap

// Heap is a binary min-heap over a slice of T, ordered by less.
type Heap[T any] struct {
	items []T
	less  func(a, b T) bool
}

// New builds a heap from initial in O(n) using Floyd's build-heap algorithm.
// initial is copied; the caller's slice is not aliased or mutated.
func New[T any](initial []T, less func(a, b T) bool) *Heap[T] {
	items := make([]T, len(initial))
	copy(items, initial)
	h := &Heap[T]{items: items, less: less}
	for i := len(items)/2 - 1; i >= 0; i-- {
		h.siftDown(i)
	}
	return h
}

// Len returns the number of items in the heap.
func (h *Heap[T]) Len() int {
	return len(h.items)
}

// IsEmpty reports whether the heap holds no items.
func (h *Heap[T]) IsEmpty() bool {
	return len(h.items) == 0
}

// Push adds x to the heap.
func (h *Heap[T]) Push(x T) {
	h.items = append(h.items, x)
	h.siftUp(len(h.items) - 1)
}

// Pop removes and returns the minimum item. ok is false if the heap was
// empty, in which case the returned T is the zero value.
func (h *Heap[T]) Pop() (min T, ok bool) {
	if len(h.items) == 0 {
		return min, false
	}
	min = h.items[0]
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	h.items = h.items[:last]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return min, true
}

// Peek returns the minimum item without removing it. ok is false if the
// heap was empty.
func (h *Heap[T]) Peek() (min T, ok bool) {
	if len(h.items) == 0 {
		return min, false
	}
	return h.items[0], true
}

func (h *Heap[T]) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(h.items[i], h.items[parent]) {
			return
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *Heap[T]) siftDown(i int) {
	n := len(h.items)
	for {
		left := 2*i + 1
		right := 2*i + 2
		smallest := i
		if left < n && h.less(h.items[left], h.items[smallest]) {
			smallest = left
		}
		if right < n && h.less(h.items[right], h.items[smallest]) {
			smallest = right
		}
		if smallest == i {
			return
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}
