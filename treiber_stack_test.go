// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package conc

import "testing"

func TestTreiberStackEmptyPop(t *testing.T) {
	s := NewTreiberStack[int]()
	if _, ok := s.Pop(); ok {
		t.Fatal("expected Pop on empty stack to return ok=false")
	}
}

func TestTreiberStackLIFO(t *testing.T) {
	s := NewTreiberStack[int]()
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

func TestTreiberStackEmpty(t *testing.T) {
	s := NewTreiberStack[int]()
	if !s.Empty() {
		t.Fatal("fresh stack should be empty")
	}
	s.Push(1)
	if s.Empty() {
		t.Fatal("stack with one element should not be empty")
	}
}
