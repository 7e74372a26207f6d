// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package crosschain

import (
	"errors"
	"fmt"
)

// Error codes reported to callers that need a stable number.
const (
	CodeUnknown         int32 = 0
	CodeInvalidChain    int32 = 1001
	CodeInvalidProtocol int32 = 1002
	CodeMessageTooLarge int32 = 1003
	CodeMessageExpired  int32 = 1004
)

var (
	// chain registry
	ErrUnsupportedChain   = errors.New("unsupported chain")
	ErrInvalidConversion  = errors.New("no conversion registered for chain pair")
	ErrConversionFailed   = errors.New("address conversion failed")
	ErrInvalidAddressSize = errors.New("invalid address size")

	// hook pipeline
	ErrHookIndexOutOfBounds = errors.New("hook index out of bounds")
	ErrHookStageNotFound    = errors.New("no hooks registered for stage")
	ErrEmptyPayload         = errors.New("empty payload")
	ErrPayloadTooLarge      = errors.New("payload too large")
	ErrInvalidChainPair     = errors.New("source and destination chain are the same")
	ErrMessageExpired       = errors.New("message expired")
	ErrChainMismatch        = errors.New("message source chain does not match channel")
	ErrZeroNonce            = errors.New("message nonce is zero")
	ErrNotExecuted          = errors.New("message not executed")
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrMissingAmount        = errors.New("message carries no amount")
	ErrInsufficientFunds    = errors.New("insufficient funds for fee")
	ErrEncryption           = errors.New("payload encryption failed")
	ErrReplayedMessage      = errors.New("message already executed")

	// protocols
	ErrUnknownProtocol             = errors.New("unknown protocol")
	ErrProtocolNotConfigured       = errors.New("protocol not configured")
	ErrChainNotSupportedByProtocol = errors.New("chain not supported by protocol")

	// configuration
	ErrNoConfiguredChains     = errors.New("no chains configured")
	ErrNoConfiguredProtocols  = errors.New("no protocols configured")
	ErrInvalidDefaultProtocol = errors.New("default protocol is not configured")
	ErrChainNotConfigured     = errors.New("chain not configured")

	// messages
	ErrInvalidMessage = errors.New("invalid message")
)

// UnsupportedChainError reports a chain outside the supported set.
type UnsupportedChainError struct {
	Chain ChainID
}

func (e *UnsupportedChainError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnsupportedChain, e.Chain)
}

func (e *UnsupportedChainError) Unwrap() error { return ErrUnsupportedChain }

// ConversionError reports a failed address conversion between two chains.
type ConversionError struct {
	From ChainID
	To   ChainID
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert %s -> %s: %v", e.From, e.To, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// HookError reports the stage and hook that rejected a message.
type HookError struct {
	Stage HookType
	Hook  string
	Err   error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("%s hook %q: %v", e.Stage, e.Hook, e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }

// ProtocolError reports a failure resolving or calling a protocol adapter.
type ProtocolError struct {
	Protocol ProtocolType
	Op       string
	Err      error
}

func (e *ProtocolError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Protocol, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Protocol, e.Op, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// ConfigError reports an invalid or incomplete configuration.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid config: %v", e.Err)
	}
	return fmt.Sprintf("invalid config %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// AsHookError returns the HookError in err's chain, if any.
func AsHookError(err error) (*HookError, bool) {
	var hookErr *HookError
	if errors.As(err, &hookErr) {
		return hookErr, true
	}
	return nil, false
}

// AsProtocolError returns the ProtocolError in err's chain, if any.
func AsProtocolError(err error) (*ProtocolError, bool) {
	var protoErr *ProtocolError
	if errors.As(err, &protoErr) {
		return protoErr, true
	}
	return nil, false
}

// Code maps an error to its numeric code.
func Code(err error) int32 {
	switch {
	case err == nil:
		return CodeUnknown
	case errors.Is(err, ErrUnsupportedChain), errors.Is(err, ErrInvalidChainPair), errors.Is(err, ErrChainMismatch):
		return CodeInvalidChain
	case errors.Is(err, ErrUnknownProtocol), errors.Is(err, ErrProtocolNotConfigured), errors.Is(err, ErrChainNotSupportedByProtocol):
		return CodeInvalidProtocol
	case errors.Is(err, ErrPayloadTooLarge):
		return CodeMessageTooLarge
	case errors.Is(err, ErrMessageExpired):
		return CodeMessageExpired
	default:
		return CodeUnknown
	}
}
