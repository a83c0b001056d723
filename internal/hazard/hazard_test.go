// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hazard

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"testing"
)

func TestAcquireReleaseRoundTrips(t *testing.T) {
	reg := NewRegistry()
	rec := reg.Acquire()
	if rec == nil {
		t.Fatal("Acquire returned nil")
	}
	reg.Release(rec)

	rec2 := reg.Acquire()
	if rec2 != rec {
		t.Fatalf("expected released record to be reused, got a different one")
	}
	reg.Release(rec2)
}

func TestAcquireExhaustionPanics(t *testing.T) {
	reg := NewRegistry()
	recs := make([]*Record, 0, MaxRecords)
	for i := 0; i < MaxRecords; i++ {
		recs = append(recs, reg.Acquire())
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected Acquire to panic once every record is checked out")
		}
		for _, r := range recs {
			reg.Release(r)
		}
	}()
	reg.Acquire()
}

func TestForceReclaimIgnoresProtection(t *testing.T) {
	reg := NewRegistry()

	var deleted int32
	deleter := func(unsafe.Pointer) { atomic.AddInt32(&deleted, 1) }

	n := new(int)
	p := unsafe.Pointer(n)

	rec := reg.Acquire()
	rec.Protect(p)

	for i := 0; i < ScanThreshold; i++ {
		reg.Retire(unsafe.Pointer(new(int)), deleter)
	}
	reg.Retire(p, deleter)
	reg.ForceReclaimAll()

	// ForceReclaimAll ignores hazard protection by design (teardown
	// only), so the protected node is reclaimed too once forced: every
	// one of the ScanThreshold+1 retired nodes is deleted exactly once.
	if got := atomic.LoadInt32(&deleted); got != ScanThreshold+1 {
		t.Fatalf("deleted %d nodes, want %d: expected ForceReclaimAll to reclaim everything", got, ScanThreshold+1)
	}
	reg.Release(rec)
}

func TestScanSparesProtectedAddress(t *testing.T) {
	reg := NewRegistry()

	var deleted []unsafe.Pointer
	var mu sync.Mutex
	deleter := func(p unsafe.Pointer) {
		mu.Lock()
		deleted = append(deleted, p)
		mu.Unlock()
	}

	protectedNode := new(int)
	protectedAddr := unsafe.Pointer(protectedNode)

	rec := reg.Acquire()
	rec.Protect(protectedAddr)

	reg.Retire(protectedAddr, deleter)
	for i := 0; i < ScanThreshold; i++ {
		reg.Retire(unsafe.Pointer(new(int)), deleter)
	}

	mu.Lock()
	for _, p := range deleted {
		if p == protectedAddr {
			mu.Unlock()
			t.Fatal("scan reclaimed a protected address")
		}
	}
	mu.Unlock()

	rec.Clear()
	reg.Release(rec)
}

func TestConcurrentAcquireReleaseRetire(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup
	const goroutines = 32
	const iterations = 2000

	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				rec := reg.Acquire()
				n := new(int)
				rec.Protect(unsafe.Pointer(n))
				reg.Retire(unsafe.Pointer(n), func(unsafe.Pointer) {})
				rec.Clear()
				reg.Release(rec)
			}
		}()
	}
	wg.Wait()
	reg.ForceReclaimAll()
}
