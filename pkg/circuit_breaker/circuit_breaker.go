package circuit_breaker

import (
	"errors"
	"sync"
	"time"
)

type Status uint8

const (
	Closed   Status = 1
	Open     Status = 2
	HalfOpen Status = 3
)

func (s Status) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

type Settings struct {
	// RecordLength is the size of the sliding window of call outcomes.
	RecordLength int
	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration
	// Percentile is the failure ratio of the window that opens the breaker.
	Percentile float64
	// RecoveryRequests is the number of consecutive successes in half-open
	// state required to close again.
	RecoveryRequests int
}

type circuitBreaker struct {
	mu sync.Mutex

	state    Status
	settings Settings

	openedAt time.Time
	window   []bool
	pos      int

	successCount int
	now          func() time.Time
}

type CircuitBreaker interface {
	Call(service func() error) error
	State() Status
	Reset()
}

var ErrOpenCB = errors.New("circuit breaker is open")

func New(s Settings) CircuitBreaker {
	if s.RecordLength <= 0 {
		s.RecordLength = 1
	}
	return &circuitBreaker{
		state:    Closed,
		settings: s,
		window:   make([]bool, s.RecordLength),
		now:      time.Now,
	}
}

func (cb *circuitBreaker) State() Status {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *circuitBreaker) Call(service func() error) error {
	cb.mu.Lock()
	if cb.state == Open {
		if cb.now().Sub(cb.openedAt) <= cb.settings.Timeout {
			cb.mu.Unlock()
			return ErrOpenCB
		}
		cb.state = HalfOpen
		cb.successCount = 0
	}
	cb.mu.Unlock()

	err := service()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.window[cb.pos] = err != nil
	cb.pos = (cb.pos + 1) % len(cb.window)

	if cb.state == HalfOpen {
		if err != nil {
			cb.trip()
			return err
		}
		cb.successCount++
		if cb.successCount >= cb.settings.RecoveryRequests {
			cb.reset()
		}
		return nil
	}

	fails := 0
	for _, failed := range cb.window {
		if failed {
			fails++
		}
	}
	if float64(fails)/float64(len(cb.window)) >= cb.settings.Percentile {
		cb.trip()
	}
	return err
}

func (cb *circuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.reset()
}

func (cb *circuitBreaker) trip() {
	cb.state = Open
	cb.successCount = 0
	cb.openedAt = cb.now()
}

func (cb *circuitBreaker) reset() {
	for i := range cb.window {
		cb.window[i] = false
	}
	cb.successCount = 0
	cb.pos = 0
	cb.state = Closed
}
