// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package crosschain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// MaxPayloadSize is the default payload bound enforced by ValidationHook.
	MaxPayloadSize = 1 * KiB

	// MaxMessageAge is how old a message may be when it reaches PreExecution.
	MaxMessageAge = time.Hour

	// DefaultTimeout bounds a single adapter round trip when the caller sets none.
	DefaultTimeout = 300 * time.Second
)

// ChainID identifies a chain inside the orchestrator. It is a small integer,
// not the chain's native identifier.
type ChainID uint16

const (
	ChainSolana   ChainID = 1
	ChainEthereum ChainID = 2
)

func (c ChainID) String() string {
	switch c {
	case ChainSolana:
		return "solana"
	case ChainEthereum:
		return "ethereum"
	default:
		return fmt.Sprintf("chain(%d)", uint16(c))
	}
}

// ProtocolType names a bridging protocol an adapter speaks.
type ProtocolType uint8

const (
	ProtocolWormhole ProtocolType = iota + 1
	ProtocolLayerZero
	// ProtocolLocal is the in-process loopback transport.
	ProtocolLocal
)

func (p ProtocolType) String() string {
	switch p {
	case ProtocolWormhole:
		return "wormhole"
	case ProtocolLayerZero:
		return "layerzero"
	case ProtocolLocal:
		return "local"
	default:
		return fmt.Sprintf("protocol(%d)", uint8(p))
	}
}

// ParseProtocolType maps a case-insensitive protocol name to its ProtocolType.
func ParseProtocolType(s string) (ProtocolType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wormhole":
		return ProtocolWormhole, nil
	case "layerzero":
		return ProtocolLayerZero, nil
	case "local":
		return ProtocolLocal, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownProtocol, s)
	}
}

// HookType is a lifecycle stage of the hook pipeline.
type HookType uint8

const (
	PreDispatch HookType = iota
	PostDispatch
	PreExecution
	PostExecution
)

// HookTypes lists every stage in pipeline order.
var HookTypes = []HookType{PreDispatch, PostDispatch, PreExecution, PostExecution}

func (h HookType) String() string {
	switch h {
	case PreDispatch:
		return "pre-dispatch"
	case PostDispatch:
		return "post-dispatch"
	case PreExecution:
		return "pre-execution"
	case PostExecution:
		return "post-execution"
	default:
		return fmt.Sprintf("stage(%d)", uint8(h))
	}
}

// MessageStatus tracks where a message is in its lifecycle.
type MessageStatus uint8

const (
	StatusPending MessageStatus = iota
	StatusSent
	StatusDelivered
	StatusExecuted
	StatusFailed
)

func (s MessageStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSent:
		return "sent"
	case StatusDelivered:
		return "delivered"
	case StatusExecuted:
		return "executed"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}
