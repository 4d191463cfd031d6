package wordfreq

// window is a bounded FIFO of byte offsets of valid characters in the current
// run, oldest first. It is backed by a fixed ring so sliding never allocates.
type window struct {
	buf   []int
	start int
	size  int
}

func newWindow(capacity int) *window {
	return &window{buf: make([]int, capacity)}
}

func (w *window) len() int {
	return w.size
}

func (w *window) full() bool {
	return w.size == len(w.buf)
}

// at returns the i-th oldest offset.
func (w *window) at(i int) int {
	return w.buf[(w.start+i)%len(w.buf)]
}

// push appends an offset. The caller keeps the window from overflowing.
func (w *window) push(offset int) {
	w.buf[(w.start+w.size)%len(w.buf)] = offset
	w.size++
}

func (w *window) popFront() int {
	offset := w.buf[w.start]
	w.drop(1)
	return offset
}

// drop removes the n oldest offsets.
func (w *window) drop(n int) {
	if n >= w.size {
		w.clear()
		return
	}
	w.start = (w.start + n) % len(w.buf)
	w.size -= n
}

func (w *window) clear() {
	w.start = 0
	w.size = 0
}
