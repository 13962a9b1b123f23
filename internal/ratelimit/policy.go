package ratelimit

import "time"

// LimitConfig is one rate limit rule: at most Max requests per Window.
type LimitConfig struct {
	Window time.Duration
	Max    int64
}

// Policy maps scopes to the limits enforced for them. A scope may carry
// several limits with different windows; all must pass.
type Policy struct {
	Limits map[Scope][]LimitConfig
}

// NewDefaultPolicy returns the gateway's default limits. Redirect traffic is
// read-heavy and mostly bots-plus-browsers, so reads are generous; writes
// (link creation, deletion) are much stricter.
func NewDefaultPolicy() *Policy {
	return &Policy{
		Limits: map[Scope][]LimitConfig{
			ScopeGlobal: {
				{Window: time.Minute, Max: 600},
			},
			ScopeRead: {
				{Window: time.Minute, Max: 300},
			},
			ScopeWrite: {
				{Window: time.Minute, Max: 30},
				{Window: time.Hour, Max: 300},
			},
		},
	}
}
