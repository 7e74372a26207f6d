// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package protocol

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/luxfi/crosschain"
	"github.com/luxfi/crosschain/config"
)

// FakeAdapter is a test Adapter that records what it is asked to do.
// Any Fn left nil falls back to a benign default.
type FakeAdapter struct {
	SendFn      func(ctx context.Context, msg *crosschain.Message, source, destination *config.ChainConfig) error
	ReceiveFn   func(ctx context.Context, source *config.ChainConfig) (*crosschain.Message, error)
	VerifyFn    func(ctx context.Context, msg *crosschain.Message, source, destination *config.ChainConfig) (bool, error)
	Chains      []crosschain.ChainID
	SendCalls   atomic.Int32
	RecvCalls   atomic.Int32
	VerifyCalls atomic.Int32

	mu   sync.Mutex
	sent []*crosschain.Message
}

// Sent returns copies of every message handed to Send, in order.
func (f *FakeAdapter) Sent() []*crosschain.Message {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*crosschain.Message, len(f.sent))
	copy(out, f.sent)
	return out
}

// Calls returns the total number of adapter calls.
func (f *FakeAdapter) Calls() int {
	return int(f.SendCalls.Load() + f.RecvCalls.Load() + f.VerifyCalls.Load())
}

func (f *FakeAdapter) Send(ctx context.Context, msg *crosschain.Message, source, destination *config.ChainConfig) error {
	f.SendCalls.Add(1)
	f.mu.Lock()
	f.sent = append(f.sent, msg.Clone())
	f.mu.Unlock()
	if f.SendFn != nil {
		return f.SendFn(ctx, msg, source, destination)
	}
	return nil
}

func (f *FakeAdapter) Receive(ctx context.Context, source *config.ChainConfig) (*crosschain.Message, error) {
	f.RecvCalls.Add(1)
	if f.ReceiveFn != nil {
		return f.ReceiveFn(ctx, source)
	}
	return nil, ErrNoMessage
}

func (f *FakeAdapter) Verify(ctx context.Context, msg *crosschain.Message, source, destination *config.ChainConfig) (bool, error) {
	f.VerifyCalls.Add(1)
	if f.VerifyFn != nil {
		return f.VerifyFn(ctx, msg, source, destination)
	}
	return true, nil
}

func (f *FakeAdapter) SupportedChains() []crosschain.ChainID {
	return f.Chains
}
