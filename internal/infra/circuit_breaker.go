package infra

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// CBState is the position of a storage breaker.
//
//	closed     bundle reads and writes reach the backend
//	open       they fail with ErrCircuitOpen without touching it
//	half-open  after OpenTimeout, calls probe the backend again
type CBState int

const (
	CBClosed CBState = iota
	CBOpen
	CBHalfOpen
)

// String returns the state name used by /health and logs.
func (s CBState) String() string {
	switch s {
	case CBClosed:
		return "closed"
	case CBOpen:
		return "open"
	case CBHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen means storage was skipped because the breaker is open.
var ErrCircuitOpen = errors.New("storage circuit breaker is open")

type CircuitBreakerConfig struct {
	Name             string        // logged with every state change
	FailureThreshold int           // backend errors in a row before opening
	SuccessThreshold int           // half-open successes before closing again
	OpenTimeout      time.Duration // time spent open before probing

	// Trips reports whether err says the backend is unhealthy. Errors it
	// rejects (a corrupt payload, a value that will not encode) pass through
	// and count as a successful round trip. Nil means every error trips.
	Trips func(error) bool
}

// DefaultCBConfig returns the defaults for the storage breaker.
func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             "storage",
		FailureThreshold: 3,
		SuccessThreshold: 1,
		OpenTimeout:      30 * time.Second,
	}
}

// CircuitBreaker guards the bundle backend. Safe for concurrent use.
type CircuitBreaker struct {
	cfg CircuitBreakerConfig
	now func() time.Time

	mu       sync.Mutex
	state    CBState
	failures int // consecutive backend errors while closed
	probes   int // consecutive half-open successes
	openedAt time.Time
}

// NewCircuitBreaker returns a closed breaker; zero config fields take the
// DefaultCBConfig values.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	def := DefaultCBConfig()
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = def.SuccessThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}
	if cfg.Trips == nil {
		cfg.Trips = func(error) bool { return true }
	}
	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

// State reports the breaker position. An open breaker whose timeout has
// passed reports half-open.
func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.expire()
	return cb.state
}

// Execute calls fn unless the breaker is open and records the outcome.
// fn's error is always returned unchanged.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if cb.State() == CBOpen {
		return ErrCircuitOpen
	}

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.record(err != nil && cb.cfg.Trips(err))
	return err
}

// expire moves open to half-open once OpenTimeout has elapsed. Caller holds mu.
func (cb *CircuitBreaker) expire() {
	if cb.state == CBOpen && cb.now().Sub(cb.openedAt) >= cb.cfg.OpenTimeout {
		cb.moveTo(CBHalfOpen)
	}
}

// record books one round trip. Caller holds mu.
func (cb *CircuitBreaker) record(failed bool) {
	switch {
	case failed && cb.state == CBHalfOpen:
		cb.open()
	case failed:
		cb.failures++
		if cb.failures >= cb.cfg.FailureThreshold {
			cb.open()
		}
	case cb.state == CBHalfOpen:
		cb.probes++
		if cb.probes >= cb.cfg.SuccessThreshold {
			cb.moveTo(CBClosed)
		}
	default:
		cb.failures = 0
	}
}

func (cb *CircuitBreaker) open() {
	cb.openedAt = cb.now()
	cb.moveTo(CBOpen)
}

func (cb *CircuitBreaker) moveTo(to CBState) {
	if cb.state == to {
		return
	}
	log.Warn().
		Str("breaker", cb.cfg.Name).
		Str("from", cb.state.String()).
		Str("to", to.String()).
		Msg("storage breaker state change")
	cb.state = to
	cb.failures = 0
	cb.probes = 0
}
