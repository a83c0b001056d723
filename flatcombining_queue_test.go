// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package conc

import (
	"sort"
	"sync"
	"testing"
)

func TestFCQueueEmptyDequeue(t *testing.T) {
	q := NewFCQueue[int]()
	if _, ok := q.Dequeue(); ok {
		t.Fatal("expected Dequeue on empty queue to return ok=false")
	}
}

func TestFCQueueFIFO(t *testing.T) {
	q := NewFCQueue[int]()
	q.Enqueue(10)
	q.Enqueue(20)
	q.Enqueue(30)

	for _, want := range []int{10, 20, 30} {
		got, ok := q.Dequeue()
		if !ok || got != want {
			t.Fatalf("Dequeue() = (%d, %v), want (%d, true)", got, ok, want)
		}
	}
	if !q.Empty() {
		t.Fatal("expected queue to be empty")
	}
}

func TestFCQueueSize(t *testing.T) {
	q := NewFCQueue[int]()
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

func TestFCQueueConcurrentProducersSingleConsumer(t *testing.T) {
	if testing.Short() {
		t.Skip("short mode")
	}
	q := NewFCQueue[int]()

	const producers = 4
	const perProducer = 5000
	total := producers * perProducer

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Enqueue(id*perProducer + i)
			}
		}(p)
	}

	got := make([]int, 0, total)
	done := make(chan struct{})
	go func() {
		for len(got) < total {
			if v, ok := q.Dequeue(); ok {
				got = append(got, v)
			}
		}
		close(done)
	}()

	wg.Wait()
	<-done

	if len(got) != total {
		t.Fatalf("consumed %d values, want %d", len(got), total)
	}
	sort.Ints(got)
	for i, v := range got {
		if v != i {
			t.Fatalf("consumed set missing or duplicated value at rank %d: got %d", i, v)
		}
	}
}
