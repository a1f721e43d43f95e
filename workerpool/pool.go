/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package workerpool

import (
	"fmt"
	"sync"

	"github.com/nabbar/fts-toolkit/logger"
)

// Job is a one-shot unit of work submitted to a Pool.
type Job func()

// Pool is a fixed-size set of goroutines draining a single shared,
// unbounded job queue. Execute never blocks on queue capacity: jobs pile
// up on a growing slice if every worker is busy, and backpressure comes
// only indirectly from whatever is upstream of Execute (for a TCP
// server, the OS accept queue) slowing down once workers fall behind.
type Pool struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Job
	closed bool
	wg     sync.WaitGroup
	log    logger.Logger
}

// New starts size worker goroutines pulling from an unbounded job queue.
// size must be greater than 0.
func New(size int, log logger.Logger) *Pool {
	if size <= 0 {
		panic("workerpool: size must be greater than 0")
	}
	if log == nil {
		log = logger.New(logger.InfoLevel)
	}

	p := &Pool{
		log: log,
	}
	p.cond = sync.NewCond(&p.mu)

	log.Info("worker pool created", logger.Fields{"worker_count": size})

	for id := 0; id < size; id++ {
		p.wg.Add(1)
		go p.worker(id)
	}

	return p
}

// NewDefault sizes the pool to the process's allowed CPU count.
func NewDefault(log logger.Logger) *Pool {
	return New(numCPU(), log)
}

// Execute appends job to the queue and returns immediately; it never
// waits for a worker to become free. Calling Execute after Close is a
// programming error.
func (p *Pool) Execute(job Job) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		panic("workerpool: Execute called after Close")
	}
	p.queue = append(p.queue, job)
	p.mu.Unlock()
	p.cond.Signal()
}

// Close stops accepting new work and joins every worker once the queue
// has drained, letting every job already enqueued run to completion
// first.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cond.Broadcast()
	p.wg.Wait()
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	p.log.Info("worker started", logger.Fields{"worker_id": id})
	defer p.log.Info("worker shutting down", logger.Fields{"worker_id": id})

	for {
		job, ok := p.next()
		if !ok {
			return
		}
		p.runJob(id, job)
	}
}

// next blocks until a job is available or the pool is closed with an
// empty queue, in which case it reports ok=false.
func (p *Pool) next() (Job, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.queue) == 0 && !p.closed {
		p.cond.Wait()
	}
	if len(p.queue) == 0 {
		return nil, false
	}

	job := p.queue[0]
	p.queue[0] = nil
	p.queue = p.queue[1:]
	return job, true
}

func (p *Pool) runJob(id int, job Job) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("job panicked", logger.Fields{"worker_id": id, "panic": fmt.Sprintf("%v", r)})
		}
	}()
	job()
}
