// Package pool provides a fixed-size worker pool fed by one shared,
// unbounded FIFO task queue.
//
// Design
//
//   - Workers: New creates the pool without starting goroutines. Start
//     launches exactly Workers() goroutines; Terminate closes the queue.
//     Closing and dequeuing happen under the queue lock, so a running task
//     finishes but no task is dequeued once Terminate has closed the queue.
//
//   - Queue: tasks are dequeued strictly in the order the queue accepted
//     them. Execution may interleave across workers, so with more than one
//     worker a later task can finish first.
//
//   - Results: ScheduleWithResult wraps a computation in a task and returns
//     a Future that any number of goroutines can wait on.
//
//   - Failures: a panicking task is recovered, logged with its stack and
//     counted via Metrics.Panicked; the worker continues with the next task.
//     Tasks scheduled after Terminate are dropped without error; tasks still
//     queued at Terminate are discarded and counted via Metrics.Abandoned.
//
// Basic usage
//
//	p := pool.New(4, pool.WithLogger(logger))
//	p.Start()
//	defer p.Terminate()
//
//	p.Schedule(func() { fmt.Println("hello from a worker") })
//
//	f := pool.ScheduleWithResult(p, func() int { return 6 * 7 })
//	v, err := f.Wait(ctx) // 42, nil
package pool
