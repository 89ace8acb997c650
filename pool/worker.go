package pool

import (
	"runtime"
	"time"
)

// work is the loop of a single worker: dequeue, run, repeat until the
// queue is closed.
func (p *WorkerPool) work(id int) {
	p.logger.Debug("worker running", "worker", id)
	for {
		t, ok := p.q.take()
		if !ok {
			p.logger.Debug("worker stopped", "worker", id)
			return
		}
		p.run(id, t)
	}
}

// run executes t with panic recovery so that a failing task never takes
// the worker (or the process) down with it. The worker keeps serving the
// queue after a recovered panic.
func (p *WorkerPool) run(id int, t task) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			p.metrics.Panicked()
			p.logger.Error("task panicked",
				"worker", id,
				"panic", r,
				"stack", string(buf[:n]))
		}
		p.metrics.Done(time.Since(start))
	}()
	t()
}
