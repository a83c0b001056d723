// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package conc

import (
	"sync"

	"code.hybscloud.com/atomix"
)

// CVNoSpurious wraps a sync.Cond with a generation counter so that
// Wait cannot return spuriously: a waiter records the generation in
// effect when it goes to sleep and only returns once Notify/Broadcast
// has advanced it. sync.Cond.Wait already never wakes spuriously on
// its own, but this type exists to give callers who want the
// predicate-free "wait(lock)" form the same generation-fenced
// semantics the reference implementation provides, instead of having
// to hand-roll a predicate at every call site.
//
// L must be held by the caller around every Wait call, as with
// sync.Cond, and also around every Notify/Broadcast call (which
// sync.Cond does not require): Wait checks the generation under L
// before sleeping, so a Notify made without L between that check and
// the sleep is lost.
type CVNoSpurious struct {
	L   sync.Locker
	cv  *sync.Cond
	gen atomix.Uint64
}

// NewCVNoSpurious creates a CVNoSpurious guarded by l.
func NewCVNoSpurious(l sync.Locker) *CVNoSpurious {
	c := &CVNoSpurious{L: l}
	c.cv = sync.NewCond(l)
	return c
}

// Wait blocks until some other goroutine calls Notify or Broadcast,
// then re-acquires L before returning. The caller must hold L.
func (c *CVNoSpurious) Wait() {
	mySeq := c.gen.LoadAcquire()
	for c.gen.LoadAcquire() == mySeq {
		c.cv.Wait()
	}
}

// WaitFor blocks until pred returns true, re-checking pred after every
// wakeup exactly as sync.Cond.Wait's documented usage pattern
// requires. The caller must hold L.
func (c *CVNoSpurious) WaitFor(pred func() bool) {
	for !pred() {
		c.cv.Wait()
	}
}

// Notify wakes one waiter, if any, and advances the generation so a
// waiter already inside Wait when Notify runs is guaranteed to see
// the change.
func (c *CVNoSpurious) Notify() {
	c.gen.AddAcqRel(1)
	c.cv.Signal()
}

// Broadcast wakes every current waiter and advances the generation.
func (c *CVNoSpurious) Broadcast() {
	c.gen.AddAcqRel(1)
	c.cv.Broadcast()
}
