// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package hazard implements a hazard-pointer registry: the safe
// -memory-reclamation substrate the lock-free containers in the
// parent package use to dereference a shared node without racing a
// concurrent retirement of that node.
//
// The protocol, one full cycle:
//
//  1. Acquire a Record from the Registry.
//  2. Protect(p) the address about to be dereferenced.
//  3. Re-read the atomic source of p; if it changed, Protect the new
//     value and retry the re-read until it is stable.
//  4. Dereference p. It is now safe: Retire will not let the node's
//     last reference go until a Scan observes that no Record anywhere
//     protects its address.
//  5. Clear the record (or Release it, which clears first).
//
// Go has no OS-thread-local storage and the containers that use this
// package pass no per-caller context handle — their exported
// operations take only a value, per the contract they implement — so
// a Record is checked out for the duration of one container operation
// rather than bound to an OS thread for the process lifetime. This
// still satisfies every invariant the protocol needs: the reference
// implementation's own hazard-pointer wrapper is no longer lived than
// a single push/pop call either. It also bounds the registry by
// concurrently in-flight operations rather than by total goroutines
// ever created, which is the only sane bound when goroutines, unlike
// OS threads, are cheap and numerous.
package hazard

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"code.hybscloud.com/atomix"
)

// MaxRecords bounds the number of hazard records the registry can
// hand out at once. It is a design parameter, not a recoverable
// runtime condition: exhausting it aborts the process, matching the
// documented hard limit for this kind of registry.
const MaxRecords = 256

// ScanThreshold is the retired-list size at which Retire triggers a
// scan. It amortizes the cost of walking every hazard record across
// many retirements.
const ScanThreshold = 64

type pad [64]byte

// Record is one hazard-pointer slot: an owner flag and the address it
// currently protects. ptr is a plain unsafe.Pointer field, not a
// uintptr, so the garbage collector keeps scanning it as a live
// pointer for as long as any Record protects it — the same guarantee
// the reference implementation gets from std::atomic<void*> plus
// manual lifetime management, for free.
type Record struct {
	_     pad
	inUse atomix.Uint64
	ptr   unsafe.Pointer
	_     pad
}

// Protect publishes p as the address this record currently guards.
// Callers must re-read the atomic source of p afterward and call
// Protect again if it changed, per the package protocol.
func (r *Record) Protect(p unsafe.Pointer) {
	atomic.StorePointer(&r.ptr, p) // release
}

// Clear un-publishes this record's protected address.
func (r *Record) Clear() {
	atomic.StorePointer(&r.ptr, nil) // release
}

// load reads the address this record currently protects, with
// acquire ordering, for use by Scan.
func (r *Record) load() unsafe.Pointer {
	return atomic.LoadPointer(&r.ptr) // acquire
}

// retiredEntry is one node awaiting proof that no hazard record
// anywhere protects it.
type retiredEntry struct {
	addr    unsafe.Pointer
	deleter func(unsafe.Pointer)
}

// retiredList is a per-checkout batch of retired nodes. Multiple
// goroutines may cycle through the same *retiredList over time (see
// Registry.retiredPool); that is fine, since correctness here depends
// only on every retired node eventually being scanned, not on which
// goroutine does the scanning.
type retiredList struct {
	entries []retiredEntry
}

// Registry is the process-wide (or, in this package, registry-wide —
// tests construct independent registries to avoid cross-test
// interference) set of hazard records plus the bookkeeping needed to
// reclaim retired nodes.
type Registry struct {
	records [MaxRecords]Record

	pool sync.Pool

	mu    sync.Mutex
	lists []*retiredList // every retiredList ever created, for ForceReclaimAll
}

// NewRegistry creates an empty hazard-pointer registry.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.pool.New = func() any {
		rl := &retiredList{}
		reg.mu.Lock()
		reg.lists = append(reg.lists, rl)
		reg.mu.Unlock()
		return rl
	}
	return reg
}

// Acquire claims a free record. It panics if every record is already
// checked out — slot exhaustion is the one unrecoverable failure mode
// in this subsystem, and the configured bound (MaxRecords) is a
// design parameter, not something to retry past.
func (reg *Registry) Acquire() *Record {
	for i := range reg.records {
		rec := &reg.records[i]
		if rec.inUse.CompareAndSwapAcqRel(0, 1) {
			return rec
		}
	}
	panic("hazard: no free hazard pointer records available")
}

// Release clears the record and returns it to the free pool.
func (reg *Registry) Release(rec *Record) {
	rec.Clear()
	rec.inUse.StoreRelease(0)
}

// Retire schedules p for deletion via deleter once no hazard record
// protects it, and opportunistically scans once the calling
// goroutine's current retired batch reaches ScanThreshold.
func (reg *Registry) Retire(p unsafe.Pointer, deleter func(unsafe.Pointer)) {
	rl := reg.pool.Get().(*retiredList)
	rl.entries = append(rl.entries, retiredEntry{addr: p, deleter: deleter})
	if len(rl.entries) >= ScanThreshold {
		reg.scanList(rl, false)
	}
	reg.pool.Put(rl)
}

// scanList deletes every entry in rl that force selects, or whose
// address is absent from the current hazard snapshot, and keeps the
// rest.
func (reg *Registry) scanList(rl *retiredList, force bool) {
	protected := make(map[unsafe.Pointer]struct{}, MaxRecords)
	for i := range reg.records {
		if p := reg.records[i].load(); p != nil {
			protected[p] = struct{}{}
		}
	}

	kept := rl.entries[:0]
	for _, e := range rl.entries {
		if !force {
			if _, hazard := protected[e.addr]; hazard {
				kept = append(kept, e)
				continue
			}
		}
		e.deleter(e.addr)
	}
	rl.entries = kept
}

// ForceReclaimAll walks every retired-list batch ever created by this
// registry and reclaims every entry unconditionally, ignoring hazard
// protection. It is meant for container teardown, when the caller has
// already established there is no concurrent access left — exactly
// the scenario spec'd for the force path.
func (reg *Registry) ForceReclaimAll() {
	reg.mu.Lock()
	lists := reg.lists
	reg.mu.Unlock()

	for _, rl := range lists {
		reg.scanList(rl, true)
	}
}
