package controller

import (
	"github.com/Borislavv/go-ash-adaptive/internal/policy"
	"github.com/Borislavv/go-ash-adaptive/model"
	"github.com/benbjohnson/clock"
)

type Option func(c *Coordinator)

// WithValidator sets the host check that eviction candidates must pass.
func WithValidator(v policy.Validator) Option {
	return func(c *Coordinator) { c.valid = v }
}

// WithObserver subscribes o to switch events and periodic snapshots.
func WithObserver(o Observer) Option {
	return func(c *Coordinator) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

// WithClock replaces the wall clock used to stamp switch events.
func WithClock(clk clock.Clock) Option {
	return func(c *Coordinator) { c.clock = clk }
}

// WithPolicyStats seeds the all-time per-policy stats, e.g. from a previous run.
func WithPolicyStats(stats [model.NumPolicies]model.PolicyStats) Option {
	return func(c *Coordinator) { c.stats.Restore(stats) }
}
