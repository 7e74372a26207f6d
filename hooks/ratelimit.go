// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package hooks

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/luxfi/crosschain"
)

// RateLimitHook admits at most MaxMessages within any sliding Window.
// Rejected messages do not consume capacity.
type RateLimitHook struct {
	maxMessages int
	window      time.Duration
	now         func() time.Time

	mu     sync.Mutex
	events []time.Time
}

func NewRateLimitHook(maxMessages int, window time.Duration) *RateLimitHook {
	return &RateLimitHook{
		maxMessages: maxMessages,
		window:      window,
		now:         time.Now,
	}
}

func (*RateLimitHook) Name() string { return "rate-limit" }

func (h *RateLimitHook) Execute(*crosschain.Message, crosschain.ChainID, crosschain.ChainID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	expired := 0
	for expired < len(h.events) && now.Sub(h.events[expired]) >= h.window {
		expired++
	}
	h.events = h.events[expired:]

	if len(h.events) >= h.maxMessages {
		return fmt.Errorf("%w: %d messages in %s", crosschain.ErrRateLimitExceeded, len(h.events), h.window)
	}
	h.events = append(h.events, now)
	return nil
}

// ChainRateLimitHook runs an independent token bucket per destination chain.
type ChainRateLimitHook struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu       sync.Mutex
	limiters map[crosschain.ChainID]*rate.Limiter
}

// NewChainRateLimitHook admits one message per interval per destination,
// with bursts of up to burst messages.
func NewChainRateLimitHook(interval time.Duration, burst int) *ChainRateLimitHook {
	return &ChainRateLimitHook{
		limit:    rate.Every(interval),
		burst:    burst,
		now:      time.Now,
		limiters: make(map[crosschain.ChainID]*rate.Limiter),
	}
}

func (*ChainRateLimitHook) Name() string { return "chain-rate-limit" }

func (h *ChainRateLimitHook) limiter(chain crosschain.ChainID) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()

	limiter, ok := h.limiters[chain]
	if !ok {
		limiter = rate.NewLimiter(h.limit, h.burst)
		h.limiters[chain] = limiter
	}
	return limiter
}

func (h *ChainRateLimitHook) Execute(_ *crosschain.Message, _, destination crosschain.ChainID) error {
	if !h.limiter(destination).AllowN(h.now(), 1) {
		return fmt.Errorf("%w: destination %s", crosschain.ErrRateLimitExceeded, destination)
	}
	return nil
}
