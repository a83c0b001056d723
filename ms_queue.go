// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package conc

import (
	"sync/atomic"
	"unsafe"

	"code.hybscloud.com/spin"

	"code.hybscloud.com/conc/internal/hazard"
)

// msNode is a Michael–Scott queue link node. The dummy node that
// head always points to holds no live element: the initial dummy
// carries a zero value, and a node that becomes the dummy in Dequeue
// keeps the value already returned from it, which is never returned
// again. Real nodes are everything reachable past it.
type msNode[T any] struct {
	value T
	next  atomic.Pointer[msNode[T]]
}

// MSQueue is the lock-free Michael–Scott FIFO queue: a dummy sentinel
// plus CAS on head and tail, with hazard pointers protecting
// Dequeue's dereference of the node it is about to unlink.
//
// Linearization points: the successful tail-next CAS in Enqueue; the
// successful head CAS in Dequeue; the empty-observing load in
// Dequeue when the queue is empty.
type MSQueue[T any] struct {
	_    pad
	head atomic.Pointer[msNode[T]]
	_    pad
	tail atomic.Pointer[msNode[T]]
	_    pad
	hp   *hazard.Registry
}

// NewMSQueue creates an empty Michael–Scott queue, already holding
// its permanent dummy sentinel.
func NewMSQueue[T any]() *MSQueue[T] {
	dummy := &msNode[T]{}
	q := &MSQueue[T]{hp: hazard.NewRegistry()}
	q.head.Store(dummy)
	q.tail.Store(dummy)
	return q
}

// Enqueue appends v to the back of the queue.
func (q *MSQueue[T]) Enqueue(v T) {
	n := &msNode[T]{value: v}
	sw := spin.Wait{}
	for {
		tail := q.tail.Load()
		next := tail.next.Load()
		if tail != q.tail.Load() {
			continue // tail moved underneath us; retry
		}
		if next == nil {
			if tail.next.CompareAndSwap(nil, n) {
				// Best-effort tail swing: if this fails, some other
				// operation has already helped it along (the
				// tail-helping branches in Enqueue and Dequeue), so
				// failure here is not an error.
				q.tail.CompareAndSwap(tail, n)
				return
			}
		} else {
			// tail is lagging one link behind; help it catch up.
			q.tail.CompareAndSwap(tail, next)
		}
		sw.Once()
	}
}

// Dequeue removes and returns the front of the queue. ok is false if
// the queue was empty.
func (q *MSQueue[T]) Dequeue() (v T, ok bool) {
	rec := q.hp.Acquire()
	defer q.hp.Release(rec)

	sw := spin.Wait{}
	for {
		head := q.head.Load()
		rec.Protect(unsafe.Pointer(head))
		if head != q.head.Load() {
			continue // head moved while we were protecting it; re-protect
		}

		tail := q.tail.Load()
		next := head.next.Load()

		if next == nil {
			rec.Clear()
			return v, false // dummy has no successor: queue is empty
		}

		if head == tail {
			// tail is lagging behind a real element; help it along
			// and retry rather than returning a stale empty result.
			q.tail.CompareAndSwap(tail, next)
			sw.Once()
			continue
		}

		// next becomes the new dummy; its value is read here, before
		// the transfer of ownership the head CAS performs, because
		// only head (not next) is hazard-protected by this goroutine.
		v = next.value
		if q.head.CompareAndSwap(head, next) {
			rec.Clear()
			q.hp.Retire(unsafe.Pointer(head), func(unsafe.Pointer) {})
			return v, true
		}
		sw.Once()
	}
}

// Empty reports whether the queue currently holds no elements.
func (q *MSQueue[T]) Empty() bool {
	head := q.head.Load()
	return head.next.Load() == nil
}

var _ Queue[int] = (*MSQueue[int])(nil)
