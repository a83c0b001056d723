// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package conc

import (
	"sync"

	"code.hybscloud.com/atomix"
)

// fcOp is a flat-combining request's op-tag.
type fcOp uint64

const (
	fcOpNone fcOp = iota // no pending operation; value and success are caller-owned
	fcOpAdd              // push (stack) / enqueue (queue)
	fcOpTake             // pop (stack) / dequeue (queue)
)

// fcRequest is one publication-list slot: the op-tag is written by
// the caller with release ordering and read by the combiner with
// acquire ordering; value and success are combiner-owned while op is
// non-NONE and caller-owned once it observes NONE again.
type fcRequest[T any] struct {
	op      atomix.Uint64
	value   T
	success bool
}

// fcPublication is the mutex-protected publication list shared by a
// flat-combining container's callers and its combiner.
//
// The reference design gives every calling thread one Request record
// for the life of the process and never frees it (spec's Open
// Question (a)). Go exposes goroutines, not threads, and push/pop
// take no context handle to bind a record to a particular caller
// across calls, so a request here is checked out of a sync.Pool for
// the duration of one call and returned afterward — the same
// call-scoped adaptation this module already makes for hazard
// records. Every request the pool ever constructs is additionally
// appended, once, to an append-only slice so the combiner can walk
// every slot that might be in flight. Requests are never removed from
// that slice. sync.Pool may drop idle requests (at garbage collection,
// and at random on Put under the race detector); the pool then
// constructs fresh ones, which are appended as well, so the slice's
// length is not bounded by peak concurrent callers and every combine
// pass walks all of it.
type fcPublication[T any] struct {
	pool sync.Pool

	mu  sync.Mutex
	all []*fcRequest[T]
}

func newFCPublication[T any]() *fcPublication[T] {
	p := &fcPublication[T]{}
	p.pool.New = func() any {
		r := &fcRequest[T]{}
		p.mu.Lock()
		p.all = append(p.all, r)
		p.mu.Unlock()
		return r
	}
	return p
}

func (p *fcPublication[T]) checkout() *fcRequest[T] {
	return p.pool.Get().(*fcRequest[T])
}

func (p *fcPublication[T]) checkin(r *fcRequest[T]) {
	p.pool.Put(r)
}

// snapshot returns the current publication list. Requests currently
// checked out by other in-flight callers are included — that is the
// point: the combiner must see everyone's pending operation, not just
// the ones that happen to be idle.
func (p *fcPublication[T]) snapshot() []*fcRequest[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.all
}
