package wordfreq

import "testing"

func TestWindow(t *testing.T) {
	w := newWindow(3)
	for _, off := range []int{0, 3, 6} {
		w.push(off)
	}
	if !w.full() || w.len() != 3 {
		t.Fatalf("len = %d, full = %v", w.len(), w.full())
	}
	if got := w.popFront(); got != 0 {
		t.Errorf("popFront() = %d, want 0", got)
	}
	// Wrap around the ring.
	w.push(9)
	want := []int{3, 6, 9}
	for i, off := range want {
		if got := w.at(i); got != off {
			t.Errorf("at(%d) = %d, want %d", i, got, off)
		}
	}
	w.drop(2)
	if w.len() != 1 || w.at(0) != 9 {
		t.Errorf("after drop(2): len = %d, at(0) = %d", w.len(), w.at(0))
	}
	w.drop(5)
	if w.len() != 0 {
		t.Errorf("drop past size left %d offsets", w.len())
	}
	w.push(12)
	w.clear()
	if w.len() != 0 || w.full() {
		t.Errorf("clear() left len = %d", w.len())
	}
}
