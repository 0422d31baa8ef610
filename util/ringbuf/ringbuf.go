package ringbuf

// RingBuf holds the last cap(buf) elements pushed into it. Pushing into
// a full buffer overwrites the oldest element.
type RingBuf[T any] struct {
	buf  []T
	head int // index of the oldest element
	n    int
}

func NewRingBuf[T any](sz int) *RingBuf[T] {
	if sz < 1 {
		sz = 1
	}
	return &RingBuf[T]{buf: make([]T, sz)}
}

func (rb *RingBuf[T]) Len() int {
	return rb.n
}

func (rb *RingBuf[T]) Cap() int {
	return len(rb.buf)
}

func (rb *RingBuf[T]) Push(e T) {
	if rb.n < len(rb.buf) {
		rb.buf[(rb.head+rb.n)%len(rb.buf)] = e
		rb.n++
		return
	}
	rb.buf[rb.head] = e
	rb.head = (rb.head + 1) % len(rb.buf)
}

// Do calls f on each element, oldest first.
func (rb *RingBuf[T]) Do(f func(T)) {
	for i := 0; i < rb.n; i++ {
		f(rb.buf[(rb.head+i)%len(rb.buf)])
	}
}

// Elems returns a copy of the elements, oldest first.
func (rb *RingBuf[T]) Elems() []T {
	es := make([]T, 0, rb.n)
	rb.Do(func(e T) {
		es = append(es, e)
	})
	return es
}
