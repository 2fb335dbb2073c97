package util

import (
	"golang.org/x/exp/constraints"
)

//*******************************************
// priority queue
//*******************************************

type _PQEntry[T any, P constraints.Ordered] struct {
	item     T
	priority P
}

// Binary min-heap keyed by priority.
type PriorityQueue[T any, P constraints.Ordered] struct {
	entries List[_PQEntry[T, P]]
}

func NewPriorityQueue[T any, P constraints.Ordered](capacity int) PriorityQueue[T, P] {
	return PriorityQueue[T, P]{
		entries: NewList[_PQEntry[T, P]](capacity),
	}
}

func (self *PriorityQueue[T, P]) Enqueue(item T, priority P) {
	self.entries.Add(_PQEntry[T, P]{item: item, priority: priority})
	index := self.entries.Length() - 1
	for index > 0 {
		parent := (index - 1) / 2
		if self.entries[parent].priority <= self.entries[index].priority {
			break
		}
		self.entries[parent], self.entries[index] = self.entries[index], self.entries[parent]
		index = parent
	}
}

func (self *PriorityQueue[T, P]) Dequeue() (T, bool) {
	if self.entries.Length() == 0 {
		var item T
		return item, false
	}
	entry := self.entries[0]
	last := self.entries.Length() - 1
	self.entries[0] = self.entries[last]
	self.entries = self.entries[:last]
	index := 0
	for {
		left := 2*index + 1
		right := 2*index + 2
		smallest := index
		if left < self.entries.Length() && self.entries[left].priority < self.entries[smallest].priority {
			smallest = left
		}
		if right < self.entries.Length() && self.entries[right].priority < self.entries[smallest].priority {
			smallest = right
		}
		if smallest == index {
			break
		}
		self.entries[smallest], self.entries[index] = self.entries[index], self.entries[smallest]
		index = smallest
	}
	return entry.item, true
}

func (self *PriorityQueue[T, P]) Length() int {
	return self.entries.Length()
}
