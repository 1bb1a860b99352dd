// Package loop drives the repeating frame task.
//
// A Loop holds at most one registered task. Every display signal (a
// terminal tick, a window vsync or a ticker) calls Fire, which re-arms the
// registration before running the task body, so a task that panics or
// unregisters itself never loses or duplicates its slot. Calls never
// overlap: a signal that arrives while the task is still running is dropped.
package loop

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrBusy    = errors.New("loop: a task is already registered")
	ErrNilTask = errors.New("loop: nil task")
)

// Task is the frame body. now is the time of the display signal.
type Task func(now time.Time)

// Handle identifies one registration.
type Handle uint64

type Loop struct {
	mu      sync.Mutex
	task    Task
	handle  Handle
	next    Handle
	armed   bool
	running bool
	frames  uint64
	dropped uint64
}

func New() *Loop {
	return &Loop{}
}

// Register installs task as the repeating frame task.
func (l *Loop) Register(task Task) (Handle, error) {
	if task == nil {
		return 0, ErrNilTask
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.task != nil {
		return 0, ErrBusy
	}
	l.next++
	l.task = task
	l.handle = l.next
	l.armed = true
	return l.handle, nil
}

// Unregister cancels the registration named by h. It reports false when h
// is stale.
func (l *Loop) Unregister(h Handle) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.task == nil || h != l.handle {
		return false
	}
	l.task = nil
	l.handle = 0
	l.armed = false
	return true
}

func (l *Loop) Registered() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.task != nil
}

// Pending reports whether the next display signal will run the task.
func (l *Loop) Pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.armed && !l.running
}

func (l *Loop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}

// Dropped counts signals ignored because the task was still running.
func (l *Loop) Dropped() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropped
}

// Fire handles one display signal. It reports whether the task ran.
func (l *Loop) Fire(now time.Time) bool {
	l.mu.Lock()
	if l.task == nil || !l.armed {
		l.mu.Unlock()
		return false
	}
	if l.running {
		l.dropped++
		l.mu.Unlock()
		return false
	}
	task := l.task
	// Re-arm before the body so the next signal finds the task in place
	// even if the body unregisters or panics.
	l.armed = true
	l.running = true
	l.frames++
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
	}()
	task(now)
	return true
}

// Run fires the loop from a ticker until ctx is done.
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second / 30
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if err := ctx.Err(); err != nil {
				return err
			}
			l.Fire(now)
		}
	}
}
