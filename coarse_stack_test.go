// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package conc

import "testing"

func TestCoarseStackEmptyPop(t *testing.T) {
	s := NewCoarseStack[int]()
	if _, ok := s.Pop(); ok {
		t.Fatal("expected Pop on empty stack to return ok=false")
	}
}

func TestCoarseStackLIFO(t *testing.T) {
	s := NewCoarseStack[int]()
	s.Push(1)
	s.Push(2)
	s.Push(3)

	for _, want := range []int{3, 2, 1} {
		got, ok := s.Pop()
		if !ok || got != want {
			t.Fatalf("Pop() = (%d, %v), want (%d, true)", got, ok, want)
		}
	}
	if _, ok := s.Pop(); ok {
		t.Fatal("expected stack to be drained")
	}
}

func TestCoarseStackEmpty(t *testing.T) {
	s := NewCoarseStack[int]()
	if !s.Empty() {
		t.Fatal("fresh stack should be empty")
	}
	s.Push(1)
	if s.Empty() {
		t.Fatal("stack with one element should not be empty")
	}
}

func TestCoarseStackSize(t *testing.T) {
	s := NewCoarseStack[int]()
	if s.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", s.Size())
	}
	s.Push(1)
	s.Push(2)
	if s.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", s.Size())
	}
	s.Pop()
	if s.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", s.Size())
	}
}
