// Package loop drives a game at a fixed tick period. A Loop owns exactly one
// goroutine while running and guarantees that no tick is delivered after
// Stop returns.
package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// ErrInvalidPeriod is returned by Start when the period cannot be scheduled.
var ErrInvalidPeriod = errors.New("loop: tick period must be positive")

// Handler receives the periodic callbacks. Handlers must not call back into
// the Loop that drives them.
type Handler interface {
	// Tick advances the game by one step.
	Tick() (snake.Outcome, error)

	// Finish is called exactly once when a tick reports a collision.
	Finish(snake.Outcome) error
}

// Loop is a cancelable periodic driver.
type Loop struct {
	handler Handler
	logger  *log.Logger
	onError func(error)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(lp *Loop) {
		lp.logger = l
	}
}

// WithErrorHandler sets the function receiving handler failures. The loop
// stops on the first failure and never retries.
func WithErrorHandler(fn func(error)) Option {
	return func(lp *Loop) {
		lp.onError = fn
	}
}

// New creates a stopped loop for h.
func New(h Handler, opts ...Option) *Loop {
	closed := make(chan struct{})
	close(closed)

	l := &Loop{
		handler: h,
		logger:  log.New(io.Discard),
		done:    closed,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start begins invoking Tick every period. A running schedule is stopped
// first, so Start doubles as restart.
func (l *Loop) Start(period time.Duration) error {
	if period <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidPeriod, period)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	l.cancel = cancel
	l.done = done

	l.logger.Debug("loop started", "period", period)
	go l.run(ctx, period, done)
	return nil
}

// Stop cancels the schedule and waits for the loop goroutine to exit.
// It is a no-op when the loop is not running.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopLocked()
}

func (l *Loop) stopLocked() {
	if l.cancel == nil {
		return
	}
	l.cancel()
	<-l.done
	l.cancel = nil
	l.logger.Debug("loop stopped")
}

// Running reports whether the loop is currently ticking.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	select {
	case <-l.done:
		return false
	default:
		return true
	}
}

// Done returns a channel closed when the current run ends, either by Stop
// or because the game finished.
func (l *Loop) Done() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}

func (l *Loop) run(ctx context.Context, period time.Duration, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		// Stop may have raced with the ticker.
		if ctx.Err() != nil {
			return
		}

		out, err := l.handler.Tick()
		if err != nil {
			l.fail(err)
			return
		}

		switch {
		case out.Collided():
			l.logger.Debug("game over", "outcome", out)
			if err := l.handler.Finish(out); err != nil {
				l.fail(err)
			}
			return
		case out == snake.OutcomeHalted:
			// Already finished before this run started.
			return
		}
	}
}

func (l *Loop) fail(err error) {
	l.logger.Error("loop halted", "error", err)
	if l.onError != nil {
		l.onError(err)
	}
}
