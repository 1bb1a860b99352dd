package loop

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRegisterOnce(t *testing.T) {
	l := New()
	h, err := l.Register(func(time.Time) {})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.Register(func(time.Time) {}); !errors.Is(err, ErrBusy) {
		t.Errorf("second Register error = %v, want ErrBusy", err)
	}
	if !l.Unregister(h) {
		t.Fatal("Unregister returned false")
	}
	if l.Unregister(h) {
		t.Error("stale handle unregistered twice")
	}
	if _, err := l.Register(nil); !errors.Is(err, ErrNilTask) {
		t.Errorf("Register(nil) error = %v", err)
	}
}

func TestFireRunsRegisteredTask(t *testing.T) {
	l := New()
	if l.Fire(time.Now()) {
		t.Error("Fire ran with nothing registered")
	}

	var calls int
	l.Register(func(time.Time) { calls++ })
	for i := 0; i < 3; i++ {
		if !l.Fire(time.Now()) {
			t.Fatalf("Fire %d did not run", i)
		}
	}
	if calls != 3 || l.Frames() != 3 {
		t.Errorf("calls = %d frames = %d, want 3", calls, l.Frames())
	}
}

func TestRearmedBeforeBody(t *testing.T) {
	l := New()
	var pendingInside, registeredInside bool
	l.Register(func(time.Time) {
		registeredInside = l.Registered()
		pendingInside = l.Pending()
	})
	l.Fire(time.Now())

	if !registeredInside {
		t.Error("task not registered while its body runs")
	}
	if pendingInside {
		t.Error("task reported pending while still running")
	}
	if !l.Pending() {
		t.Error("task not pending after the body returned")
	}
}

func TestPanicKeepsRegistration(t *testing.T) {
	l := New()
	l.Register(func(time.Time) { panic("boom") })

	func() {
		defer func() { recover() }()
		l.Fire(time.Now())
	}()

	if !l.Registered() || !l.Pending() {
		t.Error("registration lost after a panicking frame")
	}
}

func TestNoOverlap(t *testing.T) {
	l := New()
	var nested bool
	l.Register(func(now time.Time) {
		nested = l.Fire(now)
	})
	l.Fire(time.Now())

	if nested {
		t.Error("task re-entered while running")
	}
	if l.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", l.Dropped())
	}
}

func TestUnregisterStopsFrames(t *testing.T) {
	l := New()
	var calls int
	var h Handle
	h, _ = l.Register(func(time.Time) {
		calls++
		l.Unregister(h)
	})

	l.Fire(time.Now())
	l.Fire(time.Now())

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if l.Registered() {
		t.Error("still registered")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	l.Register(func(time.Time) {
		if l.Frames() >= 3 {
			select {
			case <-done:
			default:
				close(done)
			}
		}
	})

	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx, time.Millisecond) }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not fire")
	}
	cancel()

	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestRunCancelFromTaskStopsImmediately(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l.Register(func(time.Time) {
		// Slower than the tick, so a tick is always pending on return.
		time.Sleep(3 * time.Millisecond)
		if l.Frames() == 2 {
			cancel()
		}
	})

	if err := l.Run(ctx, time.Millisecond); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if l.Frames() != 2 {
		t.Errorf("frames = %d, want 2", l.Frames())
	}
}
