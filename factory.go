// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package conc

import "fmt"

// StackAlgo names one of the four stack concurrency strategies.
type StackAlgo string

const (
	StackAlgoCoarse      StackAlgo = "sgl"
	StackAlgoTreiber     StackAlgo = "treiber"
	StackAlgoElimination StackAlgo = "elim"
	StackAlgoFC          StackAlgo = "fc"
)

// QueueAlgo names one of the three queue concurrency strategies.
type QueueAlgo string

const (
	QueueAlgoCoarse QueueAlgo = "sgl"
	QueueAlgoMS     QueueAlgo = "ms"
	QueueAlgoFC     QueueAlgo = "fc"
)

// NewStack builds a Stack[T] for the named algorithm. It is the
// single place cmd/runner and cmd/sweep go through to turn a
// --algo flag into a concrete container, mirroring the role
// Builder.Build once played for picking a bounded-queue variant by
// producer/consumer constraint.
func NewStack[T any](algo StackAlgo) (Stack[T], error) {
	switch algo {
	case StackAlgoCoarse:
		return NewCoarseStack[T](), nil
	case StackAlgoTreiber:
		return NewTreiberStack[T](), nil
	case StackAlgoElimination:
		return NewEliminationStack[T](), nil
	case StackAlgoFC:
		return NewFCStack[T](), nil
	default:
		return nil, fmt.Errorf("conc: unknown stack algorithm %q", algo)
	}
}

// NewQueue builds a Queue[T] for the named algorithm.
func NewQueue[T any](algo QueueAlgo) (Queue[T], error) {
	switch algo {
	case QueueAlgoCoarse:
		return NewCoarseQueue[T](), nil
	case QueueAlgoMS:
		return NewMSQueue[T](), nil
	case QueueAlgoFC:
		return NewFCQueue[T](), nil
	default:
		return nil, fmt.Errorf("conc: unknown queue algorithm %q", algo)
	}
}
