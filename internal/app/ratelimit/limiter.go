package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Rule allows Limit requests per client within Window.
type Rule struct {
	Limit  int
	Window time.Duration
}

// Decision is the outcome of one admission check.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
	ResetAt    time.Time
}

// Store counts requests per key within fixed windows. Increment must be
// atomic: concurrent callers on one key never observe the same count.
type Store interface {
	Increment(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)
}

// Limiter admits or rejects requests per (client, route) using a fixed
// window counter. Routes without a rule are never limited.
type Limiter struct {
	store Store
	rules map[string]Rule
	now   func() time.Time
}

// NewLimiter creates a limiter over store. Rules with a non-positive limit
// or window are ignored.
func NewLimiter(store Store, rules map[string]Rule) *Limiter {
	valid := make(map[string]Rule, len(rules))
	for route, r := range rules {
		if r.Limit > 0 && r.Window > 0 {
			valid[route] = r
		}
	}
	return &Limiter{store: store, rules: valid, now: time.Now}
}

// Rule returns the rule for route, if any.
func (l *Limiter) Rule(route string) (Rule, bool) {
	r, ok := l.rules[route]
	return r, ok
}

// Admit counts one request from clientID on route. Rejected requests still
// count toward the window.
func (l *Limiter) Admit(ctx context.Context, clientID, route string) (Decision, error) {
	rule, ok := l.rules[route]
	if !ok {
		return Decision{Allowed: true}, nil
	}

	count, resetAt, err := l.store.Increment(ctx, key(clientID, route), rule.Window)
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit store: %w", err)
	}

	d := Decision{
		Allowed: count <= int64(rule.Limit),
		Limit:   rule.Limit,
		ResetAt: resetAt,
	}
	if remaining := int64(rule.Limit) - count; remaining > 0 {
		d.Remaining = int(remaining)
	}
	if !d.Allowed {
		d.RetryAfter = resetAt.Sub(l.now())
		if d.RetryAfter < 0 {
			d.RetryAfter = 0
		}
	}
	return d, nil
}

func key(clientID, route string) string {
	return "ratelimit:" + route + ":" + clientID
}
