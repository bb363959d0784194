package workerpool

import (
	"context"
	"runtime"
	"sync"
)

type Task func(ctx context.Context) error

type Result struct {
	Err error
}

type Pool struct {
	workers int
	tasks   chan Task
	wg      sync.WaitGroup
}

func New(workers, buffer int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if buffer < 0 {
		buffer = 0
	}
	return &Pool{
		workers: workers,
		tasks:   make(chan Task, buffer),
	}
}

func (p *Pool) Workers() int {
	if p == nil {
		return 0
	}
	return p.workers
}

// Submit blocks until a worker or the buffer accepts t, or ctx is done.
func (p *Pool) Submit(ctx context.Context, t Task) bool {
	if p == nil || t == nil {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	case p.tasks <- t:
		return true
	}
}

func (p *Pool) Close() {
	if p == nil {
		return
	}
	close(p.tasks)
}

func (p *Pool) Run(ctx context.Context) <-chan Result {
	if p == nil {
		out := make(chan Result)
		close(out)
		return out
	}
	out := make(chan Result, p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					if t == nil {
						continue
					}
					err := t(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result{Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}

// Each runs fn for every index in [0,n) on a pool of the given size and
// returns the first error. Cancellation of ctx stops the batch and is
// reported as ctx.Err().
func Each(ctx context.Context, workers, n int, fn func(ctx context.Context, i int) error) error {
	if n <= 0 {
		return nil
	}
	if workers > n {
		workers = n
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := New(workers, workers)
	results := p.Run(ctx)

	go func() {
		defer p.Close()
		for i := 0; i < n; i++ {
			idx := i
			if !p.Submit(ctx, func(ctx context.Context) error { return fn(ctx, idx) }) {
				return
			}
		}
	}()

	var firstErr error
	for res := range results {
		if res.Err != nil && firstErr == nil {
			firstErr = res.Err
			cancel()
		}
	}
	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
