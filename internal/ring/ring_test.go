package ring

import "testing"

func TestPushPopOrder(t *testing.T) {
	r := New(4)
	for _, c := range []byte("abcd") {
		if r.Full() {
			t.Fatalf("ring reported full before reaching capacity")
		}
		r.Push(c)
	}
	if !r.Full() {
		t.Fatalf("ring should be full at capacity")
	}
	for _, want := range []byte("abcd") {
		got, ok := r.Pop()
		if !ok || got != want {
			t.Fatalf("Pop() = %q, %v; want %q, true", got, ok, want)
		}
	}
	if !r.Empty() {
		t.Fatalf("ring should be empty after draining")
	}
}

func TestWrapAround(t *testing.T) {
	r := New(3)
	r.Push('a')
	r.Push('b')
	r.Pop()
	r.Push('c')
	r.Push('d')
	if !r.Full() {
		t.Fatalf("expected ring full after wrap-around fill")
	}
	var got []byte
	for !r.Empty() {
		c, _ := r.Pop()
		got = append(got, c)
	}
	if string(got) != "bcd" {
		t.Fatalf("got %q, want %q", got, "bcd")
	}
}

func TestDropLast(t *testing.T) {
	r := New(4)
	r.Push('a')
	r.Push('b')
	r.Push('c')
	got, ok := r.DropLast()
	if !ok || got != 'c' {
		t.Fatalf("DropLast() = %q, %v; want 'c', true", got, ok)
	}
	if r.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", r.Count())
	}
	c, _ := r.Pop()
	if c != 'a' {
		t.Fatalf("Pop() after DropLast = %q, want 'a'", c)
	}
}

func TestDropLastEmpty(t *testing.T) {
	r := New(2)
	if _, ok := r.DropLast(); ok {
		t.Fatalf("DropLast() on empty ring should report ok=false")
	}
}

func TestContainsAndCountAfterLast(t *testing.T) {
	r := New(8)
	for _, c := range []byte("ab\ncd") {
		r.Push(c)
	}
	if !r.Contains('\n') {
		t.Fatalf("expected ring to contain newline")
	}
	if got := r.CountAfterLast('\n'); got != 2 {
		t.Fatalf("CountAfterLast('\\n') = %d, want 2", got)
	}
	if r.Contains('z') {
		t.Fatalf("ring should not contain 'z'")
	}
	if got := r.CountAfterLast('z'); got != r.Count() {
		t.Fatalf("CountAfterLast of absent byte = %d, want full count %d", got, r.Count())
	}
}

func TestReset(t *testing.T) {
	r := New(2)
	r.Push('x')
	r.Reset()
	if !r.Empty() {
		t.Fatalf("expected empty ring after Reset")
	}
	if r.Capacity() != 2 {
		t.Fatalf("Reset must not change capacity")
	}
}
