package routing

// queueItem is one open set entry. A coord may be pushed more than once;
// entries whose g no longer matches the recorded score are stale.
type queueItem struct {
	node     Coord
	g        int
	priority int
}

type priorityQueue []queueItem

func (q priorityQueue) Len() int { return len(q) }

// ties are broken by coordinate order so equal f-scores pop (row, col) ascending
func (q priorityQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].node.Less(q[j].node)
}

func (q priorityQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *priorityQueue) Push(x interface{}) {
	*q = append(*q, x.(queueItem))
}

func (q *priorityQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
