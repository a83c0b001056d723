// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package conc

import (
	"math/rand/v2"
	"sync/atomic"
	"unsafe"

	"code.hybscloud.com/spin"

	"code.hybscloud.com/conc/internal/hazard"
)

// Elimination tunables, matching the reference implementation's
// named constants.
const (
	elimCASThreshold = 4  // CAS failures before trying the arena
	elimArenaSize    = 16 // N: number of arena slots
	elimSpinIters    = 10 // S: spins waiting for a popper to take the slot
	elimAttempts     = 4  // A: distinct slots tried per fallback
)

// EliminationStack is a Treiber stack augmented with an elimination
// arena: under contention, an opposing push and pop pair off directly
// through the arena instead of fighting over the central head CAS.
//
// A node that is eliminated never becomes reachable from the central
// stack, so it never needs hazard protection — it passes straight
// from the pusher's hand to the popper's. The central-stack fallback
// path reuses TreiberStack's hazard-protected CAS loop.
type EliminationStack[T any] struct {
	_     pad
	head  atomic.Pointer[treiberNode[T]]
	_     pad
	arena [elimArenaSize]atomic.Pointer[treiberNode[T]]
	hp    *hazard.Registry
}

// NewEliminationStack creates an empty elimination-backoff stack.
func NewEliminationStack[T any]() *EliminationStack[T] {
	return &EliminationStack[T]{hp: hazard.NewRegistry()}
}

// Push makes v the new top of the stack, possibly by handing it
// directly to a waiting Pop through the elimination arena.
func (s *EliminationStack[T]) Push(v T) {
	n := &treiberNode[T]{value: v}
	failures := 0
	sw := spin.Wait{}
	for {
		old := s.head.Load()
		n.next.Store(old)
		if s.head.CompareAndSwap(old, n) {
			return
		}

		failures++
		if failures >= elimCASThreshold {
			if s.tryEliminatePush(n) {
				return
			}
			failures = 0
		}
		sw.Once()
	}
}

// tryEliminatePush offers n into the arena and waits briefly for a
// Pop to claim it. It reports whether n was consumed by a Pop — if
// so, ownership of n has already transferred and the caller must not
// touch it again.
func (s *EliminationStack[T]) tryEliminatePush(n *treiberNode[T]) bool {
	for attempt := 0; attempt < elimAttempts; attempt++ {
		idx := rand.IntN(elimArenaSize)
		slot := &s.arena[idx]
		if !slot.CompareAndSwap(nil, n) {
			continue
		}

		sw := spin.Wait{}
		for i := 0; i < elimSpinIters; i++ {
			if slot.Load() != n {
				return true // a popper exchanged the slot: consumed
			}
			sw.Once()
		}

		if slot.CompareAndSwap(n, nil) {
			return false // no popper arrived; reclaim and fall back
		}
		return true // a popper took it between our spin exit and CAS
	}
	return false
}

// Pop removes and returns the top of the stack, possibly by claiming
// a node directly out of the elimination arena.
func (s *EliminationStack[T]) Pop() (v T, ok bool) {
	rec := s.hp.Acquire()
	defer s.hp.Release(rec)

	failures := 0
	sw := spin.Wait{}
	for {
		old := s.head.Load()
		if old == nil {
			if v, ok = s.tryEliminatePop(); ok {
				return v, true
			}
			rec.Clear()
			return v, false
		}

		rec.Protect(unsafe.Pointer(old))
		if old != s.head.Load() {
			continue
		}

		next := old.next.Load()
		if s.head.CompareAndSwap(old, next) {
			v = old.value
			rec.Clear()
			s.hp.Retire(unsafe.Pointer(old), func(unsafe.Pointer) {})
			return v, true
		}

		failures++
		if failures >= elimCASThreshold {
			if v, ok = s.tryEliminatePop(); ok {
				rec.Clear()
				return v, true
			}
			failures = 0
		}
		sw.Once()
	}
}

// tryEliminatePop attempts to claim a node directly out of the
// elimination arena. A node claimed this way was never reachable
// from the central stack, so it is safe to read and drop without
// going through the retired-list protocol.
func (s *EliminationStack[T]) tryEliminatePop() (v T, ok bool) {
	for attempt := 0; attempt < elimAttempts; attempt++ {
		idx := rand.IntN(elimArenaSize)
		if n := s.arena[idx].Swap(nil); n != nil {
			return n.value, true
		}
	}
	return v, false
}

// Empty reports whether the stack currently holds no elements in
// either the central stack or the elimination arena.
func (s *EliminationStack[T]) Empty() bool {
	if s.head.Load() != nil {
		return false
	}
	for i := range s.arena {
		if s.arena[i].Load() != nil {
			return false
		}
	}
	return true
}

var _ Stack[int] = (*EliminationStack[int])(nil)
