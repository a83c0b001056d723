// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package conc

import "testing"

func TestCoarseQueueEmptyDequeue(t *testing.T) {
	q := NewCoarseQueue[int]()
	if _, ok := q.Dequeue(); ok {
		t.Fatal("expected Dequeue on empty queue to return ok=false")
	}
}

func TestCoarseQueueFIFO(t *testing.T) {
	q := NewCoarseQueue[int]()
	q.Enqueue(10)
	q.Enqueue(20)
	q.Enqueue(30)

	for _, want := range []int{10, 20, 30} {
		got, ok := q.Dequeue()
		if !ok || got != want {
			t.Fatalf("Dequeue() = (%d, %v), want (%d, true)", got, ok, want)
		}
	}
	if _, ok := q.Dequeue(); ok {
		t.Fatal("expected queue to be drained")
	}
}

func TestCoarseQueueEmpty(t *testing.T) {
	q := NewCoarseQueue[int]()
	if !q.Empty() {
		t.Fatal("fresh queue should be empty")
	}
	q.Enqueue(1)
	if q.Empty() {
		t.Fatal("queue with one element should not be empty")
	}
}

func TestCoarseQueueSize(t *testing.T) {
	q := NewCoarseQueue[int]()
	if q.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", q.Size())
	}
	q.Enqueue(1)
	q.Enqueue(2)
	q.Enqueue(3)
	if q.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", q.Size())
	}
	q.Dequeue()
	if q.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", q.Size())
	}
}

func TestCoarseQueueRefillAfterDrain(t *testing.T) {
	q := NewCoarseQueue[int]()
	q.Enqueue(1)
	q.Dequeue()
	if !q.Empty() {
		t.Fatal("expected queue to be empty after draining")
	}
	q.Enqueue(2)
	got, ok := q.Dequeue()
	if !ok || got != 2 {
		t.Fatalf("Dequeue() = (%d, %v), want (2, true)", got, ok)
	}
}
