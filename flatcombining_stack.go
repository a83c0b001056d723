// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package conc

import "sync"

// FCStack is a flat-combining stack: every caller publishes its
// request and then contends for a single combiner lock, so at most
// one goroutine at a time touches the backing slice, but the winner
// drains the whole publication list in one pass instead of doing only
// its own operation. Under contention this amortizes far more work
// per lock acquisition than a plain mutex-guarded stack manages.
//
// There is no separate waiting path: a caller that loses the race for
// the lock simply becomes the next combiner and, in doing so, either
// finds its own request already serviced by an earlier combiner or
// services it itself in its own pass.
type FCStack[T any] struct {
	mu   sync.Mutex
	data []T
	pub  *fcPublication[T]
}

// NewFCStack creates an empty flat-combining stack.
func NewFCStack[T any]() *FCStack[T] {
	return &FCStack[T]{pub: newFCPublication[T]()}
}

// Push makes v the new top of the stack.
func (s *FCStack[T]) Push(v T) {
	r := s.pub.checkout()
	defer s.pub.checkin(r)

	r.value = v
	r.success = true
	r.op.StoreRelease(uint64(fcOpAdd))
	s.combine()
}

// Pop removes and returns the top of the stack.
func (s *FCStack[T]) Pop() (v T, ok bool) {
	r := s.pub.checkout()
	defer s.pub.checkin(r)

	var zero T
	r.value = zero
	r.success = false
	r.op.StoreRelease(uint64(fcOpTake))
	s.combine()
	return r.value, r.success
}

// combine acquires the combiner lock and, while holding it, services
// every request in the publication list whose op-tag is not NONE —
// including requests belonging to other goroutines that are currently
// blocked trying to acquire this same lock.
func (s *FCStack[T]) combine() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.pub.snapshot() {
		switch fcOp(r.op.LoadAcquire()) {
		case fcOpAdd:
			s.data = append(s.data, r.value)
			r.op.StoreRelease(uint64(fcOpNone))
		case fcOpTake:
			if n := len(s.data); n == 0 {
				r.success = false
			} else {
				r.value = s.data[n-1]
				s.data = s.data[:n-1]
				r.success = true
			}
			r.op.StoreRelease(uint64(fcOpNone))
		}
	}
}

// Empty reports whether the stack currently holds no elements.
func (s *FCStack[T]) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data) == 0
}

// Size reports the number of elements currently on the stack.
func (s *FCStack[T]) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

var (
	_ Stack[int] = (*FCStack[int])(nil)
	_ Sized      = (*FCStack[int])(nil)
)
