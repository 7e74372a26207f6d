// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package hooks

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/luxfi/crosschain"
)

func (m *Manager) preDispatch(msg *crosschain.Message, _, _ crosschain.ChainID) error {
	if len(msg.Payload) == 0 {
		return crosschain.ErrEmptyPayload
	}
	if !m.supported.Contains(msg.DestinationChain) {
		return &crosschain.UnsupportedChainError{Chain: msg.DestinationChain}
	}
	msg.Timestamp = crosschain.UnixNow(m.now())
	return nil
}

func (m *Manager) postDispatch(msg *crosschain.Message, source, destination crosschain.ChainID) error {
	if msg.Nonce == 0 {
		return crosschain.ErrZeroNonce
	}
	m.log.Info("message dispatched",
		zap.Stringer("source", source),
		zap.Stringer("destination", destination),
		zap.Uint64("nonce", msg.Nonce),
	)
	return nil
}

func (m *Manager) preExecution(msg *crosschain.Message, source, _ crosschain.ChainID) error {
	now := crosschain.UnixNow(m.now())
	// timestamps ahead of the local clock are not treated as expired
	if now > msg.Timestamp {
		if age := time.Duration(now-msg.Timestamp) * time.Second; age > m.maxAge {
			return fmt.Errorf("%w: age %s exceeds %s", crosschain.ErrMessageExpired, age, m.maxAge)
		}
	}
	if msg.SourceChain != source {
		return fmt.Errorf("%w: message from %s received on %s", crosschain.ErrChainMismatch, msg.SourceChain, source)
	}
	return nil
}

func (m *Manager) postExecution(msg *crosschain.Message, source, destination crosschain.ChainID) error {
	if msg.Status != crosschain.StatusExecuted {
		return fmt.Errorf("%w: status %s", crosschain.ErrNotExecuted, msg.Status)
	}
	m.log.Info("message executed",
		zap.Stringer("source", source),
		zap.Stringer("destination", destination),
		zap.Uint64("nonce", msg.Nonce),
	)
	return nil
}
