// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command runner drives a single concurrent-container configuration
// and reports its element counts and elapsed time plus a sanity check
// that the drained count matches the inserted count.
//
// Usage:
//
//	runner --kind=stack --algo=treiber --threads=8 --ops=200000
//	runner --kind=queue --algo=ms --threads=4 --ops=200000
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"code.hybscloud.com/iox"

	"code.hybscloud.com/conc"
)

func main() {
	kind := flag.String("kind", "stack", "container kind: stack or queue")
	algo := flag.String("algo", "treiber", "algorithm: stacks={sgl,treiber,elim,fc}, queues={sgl,ms,fc}")
	threads := flag.Int("threads", 4, "number of worker goroutines (producers, for queues)")
	ops := flag.Uint64("ops", 200000, "total operations across all workers")
	flag.Parse()

	if *threads <= 0 {
		log.Fatalf("runner: --threads must be > 0, got %d", *threads)
	}

	switch *kind {
	case "stack":
		runStack(*algo, *threads, int(*ops))
	case "queue":
		runQueue(*algo, *threads, int(*ops))
	default:
		log.Fatalf("runner: unknown --kind %q, want stack or queue", *kind)
	}
}

func runStack(algo string, threads, totalOps int) {
	s, err := conc.NewStack[int](conc.StackAlgo(algo))
	if err != nil {
		log.Fatalf("runner: %v", err)
	}

	perWorker := totalOps / threads
	actualOps := perWorker * threads

	var pushed atomic.Uint64
	var wg sync.WaitGroup
	wg.Add(threads)

	start := time.Now()
	for id := 0; id < threads; id++ {
		go func(id int) {
			defer wg.Done()
			base := id * perWorker
			for i := 0; i < perWorker; i++ {
				s.Push(base + i)
				pushed.Add(1)
			}
		}(id)
	}
	wg.Wait()
	elapsed := time.Since(start)

	var popped int
	for {
		if _, ok := s.Pop(); !ok {
			break
		}
		popped++
	}

	fmt.Println("=== STACK RUN ===")
	fmt.Printf("algo=%s\n", algo)
	fmt.Printf("threads=%d\n", threads)
	fmt.Printf("pushed=%d\n", pushed.Load())
	fmt.Printf("popped=%d\n", popped)
	fmt.Printf("time_ms=%.3f\n", elapsed.Seconds()*1000)
	fmt.Println("==========")

	if popped != actualOps {
		fmt.Fprintf(os.Stderr, "runner: sanity check failed: popped %d, want %d\n", popped, actualOps)
		os.Exit(1)
	}
}

func runQueue(algo string, producers, totalOps int) {
	q, err := conc.NewQueue[int](conc.QueueAlgo(algo))
	if err != nil {
		log.Fatalf("runner: %v", err)
	}

	perProducer := totalOps / producers
	actualOps := perProducer * producers

	var produced, consumed atomic.Uint64
	var wg sync.WaitGroup
	wg.Add(producers)

	start := time.Now()
	for id := 0; id < producers; id++ {
		go func(id int) {
			defer wg.Done()
			base := id * perProducer
			for i := 0; i < perProducer; i++ {
				q.Enqueue(base + i)
				produced.Add(1)
			}
		}(id)
	}

	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		backoff := iox.Backoff{}
		for {
			if _, ok := q.Dequeue(); ok {
				consumed.Add(1)
				backoff.Reset()
				continue
			}
			if produced.Load() >= uint64(actualOps) {
				for {
					if _, ok := q.Dequeue(); ok {
						consumed.Add(1)
						continue
					}
					return
				}
			}
			backoff.Wait()
		}
	}()

	wg.Wait()
	<-consumerDone
	elapsed := time.Since(start)

	fmt.Println("=== QUEUE RUN ===")
	fmt.Printf("algo=%s\n", algo)
	fmt.Printf("producers=%d\n", producers)
	fmt.Printf("produced=%d\n", produced.Load())
	fmt.Printf("consumed=%d\n", consumed.Load())
	fmt.Printf("time_ms=%.3f\n", elapsed.Seconds()*1000)
	fmt.Println("==========")

	if consumed.Load() != uint64(actualOps) {
		fmt.Fprintf(os.Stderr, "runner: sanity check failed: consumed %d, want %d\n", consumed.Load(), actualOps)
		os.Exit(1)
	}
}
