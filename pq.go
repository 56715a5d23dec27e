package gridastar

// node is the per-search record for one discovered cell.
type node struct {
	coord  Coord
	g      float64
	h      float64
	f      float64
	parent *node
	seq    int
	index  int
}

// priorityQueue orders nodes by f, then h, then discovery order.
type priorityQueue []*node

func (queue priorityQueue) Len() int { return len(queue) }

func (queue priorityQueue) Less(i, j int) bool {
	a, b := queue[i], queue[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

func (queue priorityQueue) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].index = i
	queue[j].index = j
}

func (queue *priorityQueue) Push(x any) {
	item := x.(*node)
	item.index = len(*queue)
	*queue = append(*queue, item)
}

func (queue *priorityQueue) Pop() any {
	old := *queue
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*queue = old[:n-1]
	return item
}
