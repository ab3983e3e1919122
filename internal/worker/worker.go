// Package worker runs background jobs off the request path, such as the
// list-count cache refreshes submitted after create and delete.
package worker

import "sync"

// Job is a unit of work executed by the pool.
type Job func()

// Pool runs submitted jobs on a fixed set of workers.
type Pool interface {
	Submit(Job)
	Stop()
}

// NewPool creates a pool with n workers. n<=0 defaults to 1.
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Job, n)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				if job != nil {
					job()
				}
			}
		}()
	}
	return p
}

type pool struct {
	jobs chan Job
	wg   sync.WaitGroup
}

func (p *pool) Submit(j Job) {
	p.jobs <- j
}

// Stop drains queued jobs and waits for the workers to finish.
func (p *pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
