package watershed

// fifo is a pixel-index queue local to one plane.
type fifo struct {
	items []int
	head  int
}

func (q *fifo) push(i int) { q.items = append(q.items, i) }

func (q *fifo) empty() bool { return q.head == len(q.items) }

func (q *fifo) pop() int {
	i := q.items[q.head]
	q.head++
	if q.head == len(q.items) {
		q.items, q.head = q.items[:0], 0
	}
	return i
}
