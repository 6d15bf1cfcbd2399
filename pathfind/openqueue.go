package pathfind

// entry is a snapshot of one cell's priority at the moment it was pushed.
// Snapshotting f/g here (rather than reading the arena live during heap
// comparisons) keeps the binary heap's shape invariant valid: a later
// relaxation of the same cell pushes a brand new, independently-ordered
// entry instead of mutating one already placed in the tree, which would
// otherwise silently violate heap order for any entry sitting below it.
// Stale entries (superseded by a better one, or for a cell already
// closed) are detected on pop and skipped by the caller.
type entry struct {
	idx int32
	f   float64
	g   float64
	seq int64
}

// openQueue is a binary min-heap of entries, ordered by f ascending, then
// g descending (prefer deeper paths), then insertion sequence. Dense
// integer keys and no per-node heap allocation beyond the entry struct
// itself keep this scaling to a multi-million-cell grid.
type openQueue struct {
	heap []entry
	ctr  int64
}

func newOpenQueue() *openQueue {
	return &openQueue{}
}

func less(a, b entry) bool {
	if a.f != b.f {
		return a.f < b.f
	}
	if a.g != b.g {
		return a.g > b.g
	}
	return a.seq < b.seq
}

func (q *openQueue) push(idx int32, f, g float64) {
	e := entry{idx: idx, f: f, g: g, seq: q.ctr}
	q.ctr++
	q.heap = append(q.heap, e)
	q.bubbleUp(len(q.heap) - 1)
}

func (q *openQueue) bubbleUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !less(q.heap[i], q.heap[parent]) {
			break
		}
		q.heap[i], q.heap[parent] = q.heap[parent], q.heap[i]
		i = parent
	}
}

func (q *openQueue) trickleDown(i int) {
	n := len(q.heap)
	for {
		l, r := 2*i+1, 2*i+2
		smallest := i
		if l < n && less(q.heap[l], q.heap[smallest]) {
			smallest = l
		}
		if r < n && less(q.heap[r], q.heap[smallest]) {
			smallest = r
		}
		if smallest == i {
			break
		}
		q.heap[i], q.heap[smallest] = q.heap[smallest], q.heap[i]
		i = smallest
	}
}

// pop removes and returns the entry with the smallest (f, -g, seq) key.
func (q *openQueue) pop() entry {
	top := q.heap[0]
	last := len(q.heap) - 1
	q.heap[0] = q.heap[last]
	q.heap = q.heap[:last]
	if len(q.heap) > 0 {
		q.trickleDown(0)
	}
	return top
}

func (q *openQueue) empty() bool { return len(q.heap) == 0 }
