// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package conc provides concurrent LIFO and FIFO containers for
// trivially copyable elements, plus the hazard-pointer safe-memory
// -reclamation substrate the lock-free variants build on.
//
// Four stack implementations share the same push/pop/empty contract
// and differ only in concurrency strategy:
//
//   - CoarseStack: a single mutex around a slice. The correctness
//     oracle for the other three.
//   - TreiberStack: lock-free, CAS on a head pointer.
//   - EliminationStack: TreiberStack plus a backoff-elimination arena
//     that pairs opposing push/pop under contention without ever
//     touching the central stack.
//   - FCStack: flat combining — every caller publishes a request and
//     then runs the combiner loop itself under one lock.
//
// Three queue implementations share enqueue/dequeue/empty:
//
//   - CoarseQueue: a single mutex around a slice.
//   - MSQueue: the Michael–Scott lock-free FIFO, dummy sentinel plus
//     CAS on head and tail.
//   - FCQueue: flat combining, same protocol as FCStack.
//
// # Quick start
//
//	s := conc.NewTreiberStack[int]()
//	s.Push(1)
//	s.Push(2)
//	v, ok := s.Pop() // v == 2, ok == true
//
//	q := conc.NewMSQueue[int]()
//	q.Enqueue(1)
//	q.Enqueue(2)
//	v, ok = q.Dequeue() // v == 1, ok == true
//
// # Memory reclamation
//
// TreiberStack, EliminationStack's central path, and MSQueue protect
// the node a Pop or Dequeue is about to unlink with a hazard pointer
// from the internal hazard registry (package
// code.hybscloud.com/conc/internal/hazard) before committing to the
// CAS that unlinks it. MSQueue's Enqueue, and Dequeue's read of the
// successor node's value, do not use a hazard pointer. Unlinked nodes are
// retired rather than dropped outright, and a periodic scan drops the
// last live reference to a retired node only once no hazard record
// anywhere still protects its address — see that package's doc
// comment for the full protocol.
//
// # Concurrency patterns
//
// Multi-producer single-consumer aggregation:
//
//	q := conc.NewMSQueue[Event]()
//	for _, s := range sensors {
//	    go func(s Sensor) {
//	        for ev := range s.Events() {
//	            q.Enqueue(ev)
//	        }
//	    }(s)
//	}
//	for {
//	    ev, ok := q.Dequeue()
//	    if ok {
//	        aggregate(ev)
//	    }
//	}
//
// Work-stealing style pool under heavy contention, where elimination
// sheds CAS traffic off the central stack:
//
//	pool := conc.NewEliminationStack[*Job]()
//	for i := 0; i < numWorkers; i++ {
//	    go func() {
//	        for {
//	            job, ok := pool.Pop()
//	            if ok {
//	                job.Run()
//	            }
//	        }
//	    }()
//	}
//
// # Condition variable
//
// CVNoSpurious wraps a sync.Cond with a monotone generation counter
// so that Wait without a predicate never returns on a spurious
// wakeup:
//
//	var mu sync.Mutex
//	cv := conc.NewCVNoSpurious(&mu)
//	mu.Lock()
//	cv.Wait() // returns only after a notify bumped the generation
//	mu.Unlock()
package conc
