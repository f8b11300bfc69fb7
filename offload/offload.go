// Copyright 2025 The nodecrypto-go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package offload runs CPU-heavy closures on a bounded set of background
// workers and delivers each result through a single-resolution [Future].
//
// Tasks are never cancelled once submitted. A task must capture its inputs
// by value; it shares no mutable state with the submitting goroutine.
package offload

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/nodecrypto/nodecrypto-go/internal/logging"
	"golang.org/x/sync/semaphore"
)

// ErrClosed is the error of futures submitted to a closed pool.
var ErrClosed = errors.New("offload: pool is closed")

// Pool bounds the number of tasks running at once.
type Pool struct {
	sem     *semaphore.Weighted
	workers int
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
	logger  logging.Logger
}

// NewPool returns a pool running at most workers tasks concurrently.
// workers <= 0 selects runtime.GOMAXPROCS(0).
func NewPool(workers int, logger logging.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = logging.New(nil)
	}
	return &Pool{
		sem:     semaphore.NewWeighted(int64(workers)),
		workers: workers,
		logger:  logger.With("component", "offload"),
	}
}

// Workers returns the concurrency bound of p.
func (p *Pool) Workers() int { return p.workers }

// Close stops accepting tasks and waits for the outstanding ones to finish.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.wg.Wait()
}

// Submit schedules fn and returns a future for its result. It never blocks
// the caller: if all workers are busy the task waits for a free one.
func Submit[T any](p *Pool, name string, fn func() (T, error)) *Future[T] {
	f := newFuture[T]()
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		var zero T
		f.resolve(zero, ErrClosed)
		return f
	}
	p.wg.Add(1)
	p.mu.Unlock()
	go func() {
		defer p.wg.Done()
		// Acquire with a background context cannot fail.
		_ = p.sem.Acquire(context.Background(), 1)
		defer p.sem.Release(1)
		v, err := run(fn)
		if err != nil {
			p.logger.Debug(context.Background(), "task failed", "task", name, "error", err)
		}
		f.resolve(v, err)
	}()
	return f
}

func run[T any](fn func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("offload: task panicked: %v", r)
		}
	}()
	return fn()
}

// Future is the pending result of a submitted task.
type Future[T any] struct {
	once sync.Once
	done chan struct{}
	val  T
	err  error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved returns a future that is already complete.
func Resolved[T any](v T, err error) *Future[T] {
	f := newFuture[T]()
	f.resolve(v, err)
	return f
}

func (f *Future[T]) resolve(v T, err error) {
	f.once.Do(func() {
		f.val, f.err = v, err
		close(f.done)
	})
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Wait blocks until the task completes or ctx is done. Giving up on ctx
// does not stop the task.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
