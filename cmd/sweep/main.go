// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command sweep runs every stack and queue algorithm across a swept
// set of thread counts, holding total operation count constant per
// run, and emits one CSV row per run to stdout.
//
// Usage:
//
//	sweep --threads=1,2,4,8,16 --ops=200000
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"code.hybscloud.com/iox"

	"code.hybscloud.com/conc"
)

func main() {
	threadsFlag := flag.String("threads", "1,2,4,8,16", "comma-separated thread counts to sweep")
	ops := flag.Uint64("ops", 200000, "total operations per run, split evenly across threads")
	flag.Parse()

	threadCounts, err := parseThreadCounts(*threadsFlag)
	if err != nil {
		log.Fatalf("sweep: %v", err)
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"kind", "algo", "threads", "ops", "time_ms", "ops_per_sec"}); err != nil {
		log.Fatalf("sweep: %v", err)
	}

	stackAlgos := []conc.StackAlgo{conc.StackAlgoCoarse, conc.StackAlgoTreiber, conc.StackAlgoElimination, conc.StackAlgoFC}
	queueAlgos := []conc.QueueAlgo{conc.QueueAlgoCoarse, conc.QueueAlgoMS, conc.QueueAlgoFC}

	for _, threads := range threadCounts {
		for _, algo := range stackAlgos {
			row, err := sweepStack(algo, threads, int(*ops))
			if err != nil {
				log.Fatalf("sweep: %v", err)
			}
			if err := w.Write(row); err != nil {
				log.Fatalf("sweep: %v", err)
			}
			w.Flush()
		}
	}

	for _, threads := range threadCounts {
		for _, algo := range queueAlgos {
			row, err := sweepQueue(algo, threads, int(*ops))
			if err != nil {
				log.Fatalf("sweep: %v", err)
			}
			if err := w.Write(row); err != nil {
				log.Fatalf("sweep: %v", err)
			}
			w.Flush()
		}
	}
}

func parseThreadCounts(s string) ([]int, error) {
	var out []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid thread count %q: %w", field, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("thread count must be > 0, got %d", n)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no thread counts given")
	}
	return out, nil
}

// sweepStack pushes actualOps values across threads goroutines on a
// fresh stack and drains it afterward, mirroring
// bench_stack_const_total's constant-total-work shape: the per-thread
// share is actualOps/threads, not actualOps itself, so doubling
// threads halves each goroutine's work instead of doubling the total.
func sweepStack(algo conc.StackAlgo, threads, totalOps int) ([]string, error) {
	s, err := conc.NewStack[int](algo)
	if err != nil {
		return nil, err
	}

	perThread := totalOps / threads
	actualOps := perThread * threads

	var wg sync.WaitGroup
	wg.Add(threads)

	start := time.Now()
	for id := 0; id < threads; id++ {
		go func(id int) {
			defer wg.Done()
			base := id * perThread
			for i := 0; i < perThread; i++ {
				s.Push(base + i)
			}
		}(id)
	}
	wg.Wait()
	elapsed := time.Since(start)

	popped := 0
	for {
		if _, ok := s.Pop(); !ok {
			break
		}
		popped++
	}
	if popped != actualOps {
		return nil, fmt.Errorf("%s stack: popped %d, want %d", algo, popped, actualOps)
	}

	return resultRow("stack", string(algo), threads, actualOps, elapsed), nil
}

// sweepQueue enqueues actualOps values from `threads` producers into
// a fresh queue with a single consumer draining concurrently,
// mirroring bench_queue_const_total.
func sweepQueue(algo conc.QueueAlgo, producers, totalOps int) ([]string, error) {
	q, err := conc.NewQueue[int](algo)
	if err != nil {
		return nil, err
	}

	perProducer := totalOps / producers
	actualOps := perProducer * producers

	var produced, consumed int
	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(producers)

	start := time.Now()
	for id := 0; id < producers; id++ {
		go func(id int) {
			defer wg.Done()
			base := id * perProducer
			for i := 0; i < perProducer; i++ {
				q.Enqueue(base + i)
				mu.Lock()
				produced++
				mu.Unlock()
			}
		}(id)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		backoff := iox.Backoff{}
		for {
			if _, ok := q.Dequeue(); ok {
				consumed++
				backoff.Reset()
				continue
			}
			mu.Lock()
			p := produced
			mu.Unlock()
			if p >= actualOps && consumed >= actualOps {
				return
			}
			backoff.Wait()
		}
	}()

	wg.Wait()
	<-done
	elapsed := time.Since(start)

	if consumed != actualOps {
		return nil, fmt.Errorf("%s queue: consumed %d, want %d", algo, consumed, actualOps)
	}

	return resultRow("queue", string(algo), producers, actualOps, elapsed), nil
}

func resultRow(kind, algo string, threads, actualOps int, elapsed time.Duration) []string {
	timeMS := elapsed.Seconds() * 1000
	opsPerSec := 0.0
	if elapsed.Seconds() > 0 {
		opsPerSec = float64(actualOps) / elapsed.Seconds()
	}
	return []string{
		kind,
		algo,
		strconv.Itoa(threads),
		strconv.Itoa(actualOps),
		strconv.FormatFloat(timeMS, 'f', 3, 64),
		strconv.FormatFloat(opsPerSec, 'f', 3, 64),
	}
}
