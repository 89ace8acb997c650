package pool

import "sync"

// task is a zero-argument unit of work.
type task func()

// queue is an unbounded FIFO shared by all workers of a pool.
//
// Dequeue order is FIFO: take hands out tasks strictly in push order.
// Idle takers park on wake, a channel that the next push closes, so every
// parked worker re-checks the queue; losers of that race park again.
//
// closed is only changed under mu, so push, take and close are totally
// ordered: once close returns, no push is accepted and no task is handed out.
type queue struct {
	mu     sync.Mutex
	tasks  []task
	wake   chan struct{} // nil while nobody is parked
	closed bool
	done   chan struct{} // closed by close
}

func newQueue() *queue {
	return &queue{done: make(chan struct{})}
}

// push appends t. It reports false if the queue is closed.
func (q *queue) push(t task) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.tasks = append(q.tasks, t)
	if q.wake != nil {
		close(q.wake)
		q.wake = nil
	}
	return true
}

// take returns the oldest task, blocking while the queue is empty.
// It returns false once the queue is closed, even if tasks are left.
func (q *queue) take() (task, bool) {
	for {
		q.mu.Lock()
		if q.closed {
			q.mu.Unlock()
			return nil, false
		}
		if len(q.tasks) > 0 {
			t := q.tasks[0]
			q.tasks[0] = nil // release for GC
			q.tasks = q.tasks[1:]
			if len(q.tasks) == 0 {
				q.tasks = nil
			}
			q.mu.Unlock()
			return t, true
		}
		if q.wake == nil {
			q.wake = make(chan struct{})
		}
		wake := q.wake
		q.mu.Unlock()

		select {
		case <-wake:
		case <-q.done:
			return nil, false
		}
	}
}

// close rejects further pushes, wakes every parked taker and discards the
// queued tasks. It returns how many were discarded; ok is false if the queue
// was already closed.
func (q *queue) close() (abandoned int, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return 0, false
	}
	q.closed = true
	abandoned = len(q.tasks)
	q.tasks = nil
	close(q.done)
	return abandoned, true
}

// len reports the number of queued, not yet dequeued tasks.
func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}
