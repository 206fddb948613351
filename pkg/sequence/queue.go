package sequence

// Queue is an unbounded FIFO backed by a growable ring buffer.
// The zero value is ready to use. It is not safe for concurrent use.
type Queue[T any] struct {
	items []T
	head  int
	size  int
}

func (q *Queue[T]) Enqueue(value T) {
	if q.size == len(q.items) {
		q.grow()
	}
	q.items[(q.head+q.size)%len(q.items)] = value
	q.size++
}

func (q *Queue[T]) Dequeue() (T, bool) {
	var zero T
	if q.size == 0 {
		return zero, false
	}
	value := q.items[q.head]
	q.items[q.head] = zero // avoid memory leak
	q.head = (q.head + 1) % len(q.items)
	q.size--
	return value, true
}

func (q *Queue[T]) Len() int {
	return q.size
}

// Clear drops every queued item.
func (q *Queue[T]) Clear() {
	var zero T
	for i := range q.items {
		q.items[i] = zero
	}
	q.head, q.size = 0, 0
}

func (q *Queue[T]) grow() {
	n := len(q.items) * 2
	if n == 0 {
		n = 4
	}
	items := make([]T, n)
	for i := 0; i < q.size; i++ {
		items[i] = q.items[(q.head+i)%len(q.items)]
	}
	q.items = items
	q.head = 0
}
