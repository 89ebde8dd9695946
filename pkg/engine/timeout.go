package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chazu/trochomill/pkg/pocket"
)

// DefaultTimeout bounds a single evaluation unless SetTimeout changes it.
const DefaultTimeout = 5 * time.Second

var (
	// ErrTimeout is returned when user code runs past the engine's timeout.
	ErrTimeout = errors.New("evaluation timed out")

	// ErrSuperseded is returned when a newer Evaluate call started while
	// this one was running.
	ErrSuperseded = errors.New("evaluation superseded by newer request")
)

type evalResult struct {
	jobs   []pocket.Job
	errors []EvalError
	err    error
}

// SetTimeout changes the evaluation time limit. Non-positive values restore
// DefaultTimeout.
func (e *Engine) SetTimeout(d time.Duration) {
	if d <= 0 {
		d = DefaultTimeout
	}
	e.mu.Lock()
	e.timeout = d
	e.mu.Unlock()
}

func (e *Engine) current(gen uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return gen == e.generation
}

// wait blocks until ch delivers, ctx ends or the timeout elapses. A timed
// out goroutine keeps running; its late result is dropped because the
// channel is buffered and nobody reads it.
func (e *Engine) wait(ctx context.Context, ch <-chan evalResult, gen uint64) ([]pocket.Job, []EvalError, error) {
	e.mu.Lock()
	limit := e.timeout
	e.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, limit)
	defer cancel()

	select {
	case res := <-ch:
		if !e.current(gen) {
			return nil, nil, ErrSuperseded
		}
		return res.jobs, res.errors, res.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, nil, fmt.Errorf("%w after %s", ErrTimeout, limit)
		}
		return nil, nil, ctx.Err()
	}
}
