// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package hooks

import (
	"sync/atomic"

	"github.com/luxfi/crosschain"
)

// NonceHook fills in a nonce for messages that were sent without one.
// Caller-assigned nonces are left alone.
type NonceHook struct {
	next atomic.Uint64
}

// NewNonceHook hands out nonces starting at start (or 1 when start is 0).
func NewNonceHook(start uint64) *NonceHook {
	if start == 0 {
		start = 1
	}
	h := &NonceHook{}
	h.next.Store(start)
	return h
}

func (*NonceHook) Name() string { return "nonce" }

func (h *NonceHook) Execute(msg *crosschain.Message, _, _ crosschain.ChainID) error {
	if msg.Nonce == 0 {
		msg.Nonce = h.next.Add(1) - 1
	}
	return nil
}
