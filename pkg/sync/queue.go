package sync

// compactAfter is the number of consumed slots after which the queue reuses its backing array.
const compactAfter = 64

// waitQueue is a FIFO of grants. Not safe for concurrent use.
type waitQueue struct {
	items []*Grant
	head  int
}

func (q *waitQueue) push(g *Grant) {
	q.items = append(q.items, g)
}

// pop removes and returns the oldest grant, or nil when the queue is empty.
func (q *waitQueue) pop() *Grant {
	if q.head == len(q.items) {
		return nil
	}
	g := q.items[q.head]
	q.items[q.head] = nil
	q.head++
	switch {
	case q.head == len(q.items):
		q.items = q.items[:0]
		q.head = 0
	case q.head >= compactAfter && 2*q.head >= len(q.items):
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return g
}

func (q *waitQueue) len() int {
	return len(q.items) - q.head
}
