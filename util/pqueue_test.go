package util

import (
	"math/rand"
	"testing"
)

func TestPriorityQueueOrder(t *testing.T) {
	queue := NewPriorityQueue[int32, float32](10)
	queue.Enqueue(3, 3.0)
	queue.Enqueue(1, 1.0)
	queue.Enqueue(4, 4.0)
	queue.Enqueue(2, 2.0)

	want := []int32{1, 2, 3, 4}
	for _, w := range want {
		item, ok := queue.Dequeue()
		if !ok {
			t.Fatalf("Dequeue() = _, false; want %v", w)
		}
		if item != w {
			t.Errorf("item = %v; want %v", item, w)
		}
	}
	_, ok := queue.Dequeue()
	if ok {
		t.Errorf("Dequeue() on empty queue = _, true; want false")
	}
}

func TestPriorityQueueRandom(t *testing.T) {
	queue := NewPriorityQueue[int, int32](100)
	for i := 0; i < 1000; i++ {
		p := rand.Int31n(10000)
		queue.Enqueue(int(p), p)
	}
	last := int32(-1)
	for {
		item, ok := queue.Dequeue()
		if !ok {
			break
		}
		if int32(item) < last {
			t.Fatalf("dequeued %v after %v; want non-decreasing order", item, last)
		}
		last = int32(item)
	}
}

func TestPriorityQueueDuplicates(t *testing.T) {
	queue := NewPriorityQueue[int32, int32](10)
	queue.Enqueue(1, 5)
	queue.Enqueue(2, 5)
	queue.Enqueue(3, 5)
	count := 0
	for {
		_, ok := queue.Dequeue()
		if !ok {
			break
		}
		count += 1
	}
	if count != 3 {
		t.Errorf("count = %v; want 3", count)
	}
}
