package stack

import (
	"testing"
)

func TestStack_New(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{name: "unbounded_zero", limit: 0, wantLimit: 0},
		{name: "unbounded_negative", limit: -3, wantLimit: 0},
		{name: "bounded", limit: 4, wantLimit: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New[int](tt.limit)

			if !s.IsEmpty() {
				t.Error("New() stack should be empty")
			}
			if s.Size() != 0 {
				t.Errorf("New() stack size = %d, want 0", s.Size())
			}
			if s.Limit() != tt.wantLimit {
				t.Errorf("Limit() = %d, want %d", s.Limit(), tt.wantLimit)
			}
		})
	}
}

func TestStack_PushAndPop(t *testing.T) {
	s := New[int](0)

	for i := 1; i <= 3; i++ {
		if !s.Push(i) {
			t.Fatalf("Push(%d) on unbounded stack = false, want true", i)
		}
	}

	if s.Size() != 3 {
		t.Errorf("Push() stack size = %d, want 3", s.Size())
	}

	for want := 3; want >= 1; want-- {
		val, ok := s.Pop()
		if !ok || val != want {
			t.Errorf("Pop() = %d, %t, want %d, true", val, ok, want)
		}
	}

	val, ok := s.Pop()
	if ok || val != 0 {
		t.Errorf("Pop() from empty stack = %d, %t, want 0, false", val, ok)
	}
}

func TestStack_Limit(t *testing.T) {
	s := New[string](2)

	if !s.Push("a") || !s.Push("b") {
		t.Fatal("Push() below limit should succeed")
	}
	if !s.Full() {
		t.Error("Full() = false at limit, want true")
	}
	if s.Push("c") {
		t.Error("Push() past limit = true, want false")
	}
	if s.Size() != 2 {
		t.Errorf("rejected Push() changed size to %d, want 2", s.Size())
	}

	top, _ := s.Peek()
	if top != "b" {
		t.Errorf("Peek() after rejected Push() = %q, want \"b\"", top)
	}

	s.Pop()
	if s.Full() {
		t.Error("Full() after Pop() = true, want false")
	}
	if !s.Push("c") {
		t.Error("Push() after Pop() = false, want true")
	}
}

func TestStack_Peek(t *testing.T) {
	s := New[string](0)

	val, ok := s.Peek()
	if ok || val != "" {
		t.Errorf("Peek() on empty stack = %q, %t, want \"\", false", val, ok)
	}

	s.Push("first")
	s.Push("second")

	val, ok = s.Peek()
	if !ok || val != "second" {
		t.Errorf("Peek() = %q, %t, want \"second\", true", val, ok)
	}

	if s.Size() != 2 {
		t.Errorf("Peek() changed stack size to %d, want 2", s.Size())
	}
}

func TestStack_PeekRef(t *testing.T) {
	type frame struct {
		index int
		count int
	}

	s := New[frame](0)

	if ref := s.PeekRef(); ref != nil {
		t.Error("PeekRef() on empty stack should return nil")
	}

	s.Push(frame{index: 0})
	s.Push(frame{index: 3})

	ref := s.PeekRef()
	if ref == nil {
		t.Fatal("PeekRef() should not return nil for non-empty stack")
	}
	ref.count += 2

	val, _ := s.Peek()
	if val.index != 3 || val.count != 2 {
		t.Errorf("after PeekRef() update, Peek() = %+v, want {index:3 count:2}", val)
	}
}

func TestStack_Reset(t *testing.T) {
	s := New[int](1)
	s.Push(7)

	s.Reset(3)

	if !s.IsEmpty() {
		t.Errorf("Reset() left %d items", s.Size())
	}
	if s.Limit() != 3 {
		t.Errorf("Reset(3) limit = %d, want 3", s.Limit())
	}
	for i := range 3 {
		if !s.Push(i) {
			t.Fatalf("Push(%d) after Reset(3) = false, want true", i)
		}
	}
	if s.Push(3) {
		t.Error("Push() past new limit = true, want false")
	}
}
