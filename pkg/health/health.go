// Package health provides liveness and readiness probe endpoints. Checks
// are evaluated on demand when a probe endpoint is hit, each under its own
// timeout.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// CheckFunc probes one component. It returns nil when healthy.
type CheckFunc func(ctx context.Context) error

type check struct {
	name    string
	timeout time.Duration
	fn      CheckFunc
}

// Health serves liveness and readiness probes for a service. The service
// starts not ready; call SetReady(true) once initialization completes and
// SetReady(false) when draining.
type Health struct {
	ready atomic.Bool

	mu        sync.RWMutex
	liveness  []check
	readiness []check
}

// New creates an empty Health in the not-ready state.
func New() *Health {
	return &Health{}
}

// AddLivenessCheck registers a check for the liveness probe, e.g. a
// goroutine leak detector.
func (h *Health) AddLivenessCheck(name string, timeout time.Duration, fn CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.liveness = append(h.liveness, check{name: name, timeout: timeout, fn: fn})
}

// AddReadinessCheck registers a check for the readiness probe, e.g. store
// connectivity.
func (h *Health) AddReadinessCheck(name string, timeout time.Duration, fn CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.readiness = append(h.readiness, check{name: name, timeout: timeout, fn: fn})
}

// SetReady flips the manual readiness gate.
func (h *Health) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady reports whether the gate is open and every readiness check
// passes.
func (h *Health) IsReady(ctx context.Context) bool {
	if !h.ready.Load() {
		return false
	}
	_, ok := h.evaluate(ctx, h.snapshot(&h.readiness))
	return ok
}

// LiveEndpoint is the HTTP handler for the liveness probe.
func (h *Health) LiveEndpoint(w http.ResponseWriter, r *http.Request) {
	results, ok := h.evaluate(r.Context(), h.snapshot(&h.liveness))
	writeProbe(w, results, ok)
}

// ReadyEndpoint is the HTTP handler for the readiness probe.
func (h *Health) ReadyEndpoint(w http.ResponseWriter, r *http.Request) {
	if !h.ready.Load() {
		writeProbe(w, map[string]string{"service": "not ready"}, false)
		return
	}
	results, ok := h.evaluate(r.Context(), h.snapshot(&h.readiness))
	writeProbe(w, results, ok)
}

func (h *Health) snapshot(list *[]check) []check {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]check, len(*list))
	copy(out, *list)
	return out
}

func (h *Health) evaluate(ctx context.Context, checks []check) (map[string]string, bool) {
	results := make(map[string]string, len(checks))
	ok := true
	for _, c := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, c.timeout)
		err := c.fn(checkCtx)
		cancel()
		if err != nil {
			results[c.name] = err.Error()
			ok = false
			continue
		}
		results[c.name] = "ok"
	}
	return results, ok
}

type probeBody struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func writeProbe(w http.ResponseWriter, results map[string]string, ok bool) {
	status := http.StatusOK
	body := probeBody{Status: "ok", Checks: results}
	if !ok {
		status = http.StatusServiceUnavailable
		body.Status = "unavailable"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
