package app

import (
	"fmt"
	"sync"
	"time"

	"timed-quiz-service/internal/domain"
)

// Ticker is the subset of time.Ticker the countdown depends on.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker wraps time.NewTicker.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// CountdownState is the lifecycle position of a Countdown.
type CountdownState int

const (
	CountdownIdle CountdownState = iota
	CountdownRunning
	CountdownExpired
	CountdownCancelled
)

func (s CountdownState) String() string {
	switch s {
	case CountdownIdle:
		return "idle"
	case CountdownRunning:
		return "running"
	case CountdownExpired:
		return "expired"
	case CountdownCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// FormatClock renders whole seconds as MM:SS. Negative values clamp to zero.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Countdown counts whole seconds down to zero.
//
// The tick callback fires once on Start with the full duration and then once
// per interval after decrementing. The tick that reaches zero reports 0 and
// is followed by the expiry callback; remaining time never goes negative.
// Cancel stops the countdown before expiry; nothing fires after it returns.
type Countdown struct {
	interval  time.Duration
	newTicker TickerFunc

	mu        sync.Mutex
	state     CountdownState
	remaining int
	stop      chan struct{}
	done      chan struct{}
}

// NewCountdown returns an idle countdown. A nil newTicker uses time.NewTicker.
func NewCountdown(interval time.Duration, newTicker TickerFunc) *Countdown {
	if interval <= 0 {
		interval = time.Second
	}
	if newTicker == nil {
		newTicker = NewTimeTicker
	}
	return &Countdown{
		interval:  interval,
		newTicker: newTicker,
		done:      make(chan struct{}),
	}
}

// Start moves an idle countdown to running. onTick runs with the countdown
// locked, so it must not call back into the countdown. onExpire runs on the
// countdown goroutine after the lock is released.
func (c *Countdown) Start(seconds int, onTick func(remaining int), onExpire func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != CountdownIdle {
		return domain.ErrTimerRunning
	}
	if seconds < 0 {
		seconds = 0
	}
	c.state = CountdownRunning
	c.remaining = seconds
	c.stop = make(chan struct{})
	onTick(seconds)

	ticker := c.newTicker(c.interval)
	go c.run(c.stop, ticker, onTick, onExpire)
	return nil
}

func (c *Countdown) run(stop <-chan struct{}, ticker Ticker, onTick func(int), onExpire func()) {
	defer close(c.done)
	defer ticker.Stop()

	if c.expireAtZero() {
		onExpire()
		return
	}
	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
			running, expired := c.tick(onTick)
			if expired {
				onExpire()
				return
			}
			if !running {
				return
			}
		}
	}
}

// expireAtZero handles a countdown started with nothing left on the clock.
func (c *Countdown) expireAtZero() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == CountdownRunning && c.remaining == 0 {
		c.state = CountdownExpired
		return true
	}
	return false
}

func (c *Countdown) tick(onTick func(int)) (running, expired bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != CountdownRunning {
		return false, false
	}
	c.remaining--
	onTick(c.remaining)
	if c.remaining == 0 {
		c.state = CountdownExpired
		return false, true
	}
	return true, false
}

// Cancel stops a running countdown. It reports whether this call did the
// cancelling; it is false when the countdown is idle, expired or already cancelled.
func (c *Countdown) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != CountdownRunning {
		return false
	}
	c.state = CountdownCancelled
	close(c.stop)
	return true
}

// State returns the current lifecycle state.
func (c *Countdown) State() CountdownState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Remaining returns the whole seconds left on the clock.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Done is closed once the countdown goroutine has exited. It never closes for
// a countdown that was not started.
func (c *Countdown) Done() <-chan struct{} {
	return c.done
}
