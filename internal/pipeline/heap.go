package pipeline

import (
	"container/heap"
	"sync"
)

// heapItem is one queued coordinate with the priority it had when pushed.
// The worker re-reads the live request snapshot before acting on it, so a
// stale priority here only affects pop order, never correctness.
type heapItem struct {
	coord    ChunkCoord
	priority int64
}

// priorityHeap is a max-heap on priority (container/heap is a min-heap by
// default; Less is inverted below). Kept as its own small type rather than
// reaching for a third-party heap — this is a data-structure concern the
// teacher itself would hand-roll with container/heap, not a library-shaped
// one (see DESIGN.md).
type priorityHeap []heapItem

func (h priorityHeap) Len() int            { return len(h) }
func (h priorityHeap) Less(i, j int) bool  { return h[i].priority > h[j].priority }
func (h priorityHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *priorityHeap) Push(x any)         { *h = append(*h, x.(heapItem)) }
func (h *priorityHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// workQueue is the worker-pool-facing priority queue, guarded by its own
// lock so enqueue/dequeue contention never blocks the request manager's
// update path (spec §5: "the priority heap under a separate lock").
type workQueue struct {
	mu   sync.Mutex
	cond *sync.Cond
	h    priorityHeap
	done bool
}

func newWorkQueue() *workQueue {
	q := &workQueue{}
	q.cond = sync.NewCond(&q.mu)
	heap.Init(&q.h)
	return q
}

// push enqueues a coordinate, waking one blocked worker.
func (q *workQueue) push(coord ChunkCoord, priority int64) {
	q.mu.Lock()
	heap.Push(&q.h, heapItem{coord: coord, priority: priority})
	q.mu.Unlock()
	q.cond.Signal()
}

// pop blocks until an item is available or the queue is closed, in which
// case ok is false.
func (q *workQueue) pop() (coord ChunkCoord, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.h.Len() == 0 && !q.done {
		q.cond.Wait()
	}
	if q.h.Len() == 0 {
		return ChunkCoord{}, false
	}
	item := heap.Pop(&q.h).(heapItem)
	return item.coord, true
}

// close wakes every blocked worker so they can observe shutdown.
func (q *workQueue) close() {
	q.mu.Lock()
	q.done = true
	q.mu.Unlock()
	q.cond.Broadcast()
}
