// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package conc

// Stack is the contract shared by all four LIFO variants: CoarseStack,
// TreiberStack, EliminationStack and FCStack. It lets test and
// benchmark harnesses parametrize over the variant under test without
// language-level inheritance.
type Stack[T any] interface {
	Push(v T)
	Pop() (T, bool)
	Empty() bool
}

// Queue is the contract shared by all three FIFO variants: CoarseQueue,
// MSQueue and FCQueue.
type Queue[T any] interface {
	Enqueue(v T)
	Dequeue() (T, bool)
	Empty() bool
}

// Sized is implemented by the variants that already hold an exclusive
// lock over their backing storage (CoarseStack, CoarseQueue, FCStack,
// FCQueue), for which an exact count is nearly free. The lock-free
// variants deliberately do not implement it: an accurate count would
// require a second synchronization point beyond the ones the
// algorithm already needs.
type Sized interface {
	Size() int
}
