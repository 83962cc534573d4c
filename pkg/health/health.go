// Package health provides Kubernetes-style liveness and readiness probes.
// Registered checks run periodically in a single background goroutine;
// probe endpoints serve the last recorded results.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/go-faster/errors"
)

// CheckFunc probes a single component. It returns nil when the component
// is healthy.
type CheckFunc func(ctx context.Context) error

type check struct {
	name    string
	timeout time.Duration
	fn      CheckFunc
}

// Service runs health checks and serves probe endpoints.
type Service struct {
	mu        sync.RWMutex
	liveness  []check
	readiness []check
	results   map[string]error
	ready     bool

	stop chan struct{}
	done chan struct{}
}

// New creates an empty health Service. Readiness starts false until
// SetReady(true) is called.
func New() *Service {
	return &Service{
		results: make(map[string]error),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// AddLivenessCheck registers a check evaluated for the /livez probe.
// Must be called before Start.
func (s *Service) AddLivenessCheck(name string, timeout time.Duration, fn CheckFunc) {
	s.liveness = append(s.liveness, check{name: name, timeout: timeout, fn: fn})
}

// AddReadinessCheck registers a check evaluated for the /readyz probe.
// Must be called before Start.
func (s *Service) AddReadinessCheck(name string, timeout time.Duration, fn CheckFunc) {
	s.readiness = append(s.readiness, check{name: name, timeout: timeout, fn: fn})
}

// SetReady flips the manual readiness gate. The /readyz probe fails while
// the gate is false regardless of check results, which is how shutdown
// drains traffic.
func (s *Service) SetReady(ready bool) {
	s.mu.Lock()
	s.ready = ready
	s.mu.Unlock()
}

// Start runs every check once immediately, then on each interval tick
// until ctx is cancelled or Stop is called.
func (s *Service) Start(ctx context.Context, interval time.Duration) {
	go func() {
		defer close(s.done)

		s.runChecks(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			case <-ticker.C:
				s.runChecks(ctx)
			}
		}
	}()
}

// Stop terminates the background check loop and waits for it to exit.
func (s *Service) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Service) runChecks(ctx context.Context) {
	all := make([]check, 0, len(s.liveness)+len(s.readiness))
	all = append(all, s.liveness...)
	all = append(all, s.readiness...)

	for _, c := range all {
		checkCtx, cancel := context.WithTimeout(ctx, c.timeout)
		err := c.fn(checkCtx)
		cancel()

		s.mu.Lock()
		s.results[c.name] = err
		s.mu.Unlock()
	}
}

// LiveEndpoint serves the liveness probe.
func (s *Service) LiveEndpoint(w http.ResponseWriter, _ *http.Request) {
	s.serveProbe(w, s.liveness, true)
}

// ReadyEndpoint serves the readiness probe. It fails while the manual
// readiness gate is down.
func (s *Service) ReadyEndpoint(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	ready := s.ready
	s.mu.RUnlock()

	s.serveProbe(w, s.readiness, ready)
}

func (s *Service) serveProbe(w http.ResponseWriter, checks []check, gate bool) {
	status := "ok"
	code := http.StatusOK
	details := make(map[string]string, len(checks))

	s.mu.RLock()
	for _, c := range checks {
		if err := s.results[c.name]; err != nil {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
			details[c.name] = err.Error()
		} else {
			details[c.name] = "ok"
		}
	}
	s.mu.RUnlock()

	if !gate {
		status = "unavailable"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": status,
		"checks": details,
	})
}

// GoroutineCountCheck returns a check that fails when the process exceeds
// max goroutines, a cheap proxy for runaway leaks.
func GoroutineCountCheck(max int) CheckFunc {
	return func(context.Context) error {
		if n := runtime.NumGoroutine(); n > max {
			return errors.Errorf("too many goroutines: %d > %d", n, max)
		}
		return nil
	}
}
