// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package protocol defines the contract between the orchestrator and the
// bridging protocols that physically move messages.
package protocol

import (
	"context"
	"errors"

	"github.com/luxfi/crosschain"
	"github.com/luxfi/crosschain/config"
)

// ErrNoMessage is returned by Receive when nothing is waiting.
var ErrNoMessage = errors.New("no message available")

// Adapter moves messages over one bridging protocol. Implementations own
// proof construction, transport and any protocol-level retry.
type Adapter interface {
	// Send transmits msg from the source chain to the destination chain.
	Send(ctx context.Context, msg *crosschain.Message, source, destination *config.ChainConfig) error
	// Receive fetches the next inbound message originating on source.
	Receive(ctx context.Context, source *config.ChainConfig) (*crosschain.Message, error)
	// Verify checks the authenticity of msg without sending or receiving.
	Verify(ctx context.Context, msg *crosschain.Message, source, destination *config.ChainConfig) (bool, error)
	// SupportedChains lists the chains the protocol can reach. An empty
	// list places no restriction beyond the orchestrator's own.
	SupportedChains() []crosschain.ChainID
}
