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

// treiberNode is a Treiber-stack link node. Its value is immutable
// once published; next is only ever read after the node has been
// hazard-protected or is known to be unreachable from any other
// goroutine (e.g. before it is first linked in).
type treiberNode[T any] struct {
	value T
	next  atomic.Pointer[treiberNode[T]]
}

// TreiberStack is a lock-free LIFO stack: CAS on a single head
// pointer, with hazard pointers protecting Pop's dereference of the
// node it is about to unlink.
//
// Linearization point: the successful head CAS, for both Push and
// Pop.
type TreiberStack[T any] struct {
	_    pad
	head atomic.Pointer[treiberNode[T]]
	_    pad
	hp   *hazard.Registry
}

// NewTreiberStack creates an empty Treiber stack.
func NewTreiberStack[T any]() *TreiberStack[T] {
	return &TreiberStack[T]{hp: hazard.NewRegistry()}
}

// Push makes v the new top of the stack.
func (s *TreiberStack[T]) Push(v T) {
	n := &treiberNode[T]{value: v}
	sw := spin.Wait{}
	for {
		old := s.head.Load()
		n.next.Store(old) // relaxed: n isn't published yet
		if s.head.CompareAndSwap(old, n) {
			return
		}
		sw.Once()
	}
}

// Pop removes and returns the top of the stack. ok is false if the
// stack was empty.
//
// Before dereferencing the observed head, Pop installs a hazard
// pointer on it: without that protection, another goroutine could pop
// and retire the same node between the load and the CAS below, and
// this goroutine's read of old.next would then race that retirement.
func (s *TreiberStack[T]) Pop() (v T, ok bool) {
	rec := s.hp.Acquire()
	defer s.hp.Release(rec)

	sw := spin.Wait{}
	for {
		old := s.head.Load()
		if old == nil {
			return v, false
		}
		rec.Protect(unsafe.Pointer(old))
		if old != s.head.Load() {
			continue // head moved while we were protecting it; re-protect
		}

		next := old.next.Load()
		if s.head.CompareAndSwap(old, next) {
			v = old.value
			rec.Clear()
			s.hp.Retire(unsafe.Pointer(old), func(unsafe.Pointer) {})
			return v, true
		}
		sw.Once()
	}
}

// Empty reports whether the stack currently holds no elements. The
// result may already be stale by the time the caller observes it —
// that is true of every lock-free Empty in this package.
func (s *TreiberStack[T]) Empty() bool {
	return s.head.Load() == nil
}

var _ Stack[int] = (*TreiberStack[int])(nil)
