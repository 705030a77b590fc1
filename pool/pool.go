// ABOUTME: Fixed-size worker pool for fanning out independent tasks
// ABOUTME: Used to read audio tags for a whole playlist concurrently

// Package pool runs batches of independent tasks on a fixed set of goroutines.
package pool

import (
	"runtime"
	"sync"
)

// ioFactor scales workers past the CPU count, since tag reads mostly wait on disk
const ioFactor = 4

// WorkerPool runs submitted tasks on a fixed number of goroutines
type WorkerPool struct {
	tasks   chan func()
	workers sync.WaitGroup // live worker goroutines
	pending sync.WaitGroup // submitted tasks not yet finished
}

// NewWorkerPool creates a pool sized for I/O-bound work with a task queue of
// queueSize entries
func NewWorkerPool(queueSize int) *WorkerPool {
	return NewWorkerPoolSize(runtime.NumCPU()*ioFactor, queueSize)
}

// NewWorkerPoolSize creates a pool with n workers, at least one
func NewWorkerPoolSize(n, queueSize int) *WorkerPool {
	p := &WorkerPool{tasks: make(chan func(), max(queueSize, 0))}

	for range max(n, 1) {
		p.workers.Add(1)

		go p.work()
	}

	return p
}

func (p *WorkerPool) work() {
	defer p.workers.Done()

	for task := range p.tasks {
		task()
		p.pending.Done()
	}
}

// Submit queues a task, blocking while the queue is full
func (p *WorkerPool) Submit(task func()) {
	p.pending.Add(1)
	p.tasks <- task
}

// Wait blocks until every submitted task has finished. The pool stays usable.
func (p *WorkerPool) Wait() {
	p.pending.Wait()
}

// Close stops the workers once the queue drains. Submit must not be called afterwards.
func (p *WorkerPool) Close() {
	close(p.tasks)
	p.workers.Wait()
}

// Each calls fn(i) for every i in [0, n) on a pool of at most workers
// goroutines and returns when all calls are done. workers <= 0 picks the
// I/O-bound default.
func Each(n, workers int, fn func(i int)) {
	if n <= 0 {
		return
	}

	if workers <= 0 {
		workers = runtime.NumCPU() * ioFactor
	}

	p := NewWorkerPoolSize(min(workers, n), n)
	defer p.Close()

	for i := range n {
		p.Submit(func() { fn(i) })
	}

	p.Wait()
}
