// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package hooks

import (
	"fmt"

	"github.com/luxfi/crosschain"
)

// ValidationHook bounds payload size and rejects same-chain messages.
type ValidationHook struct {
	MaxPayloadSize int
}

// NewValidationHook returns a ValidationHook. A non-positive bound selects
// crosschain.MaxPayloadSize.
func NewValidationHook(maxPayloadSize int) *ValidationHook {
	if maxPayloadSize <= 0 {
		maxPayloadSize = crosschain.MaxPayloadSize
	}
	return &ValidationHook{MaxPayloadSize: maxPayloadSize}
}

func (*ValidationHook) Name() string { return "validation" }

func (h *ValidationHook) Execute(msg *crosschain.Message, source, destination crosschain.ChainID) error {
	if len(msg.Payload) > h.MaxPayloadSize {
		return fmt.Errorf("%w: %d bytes exceeds %d", crosschain.ErrPayloadTooLarge, len(msg.Payload), h.MaxPayloadSize)
	}
	if source == destination {
		return fmt.Errorf("%w: %s", crosschain.ErrInvalidChainPair, source)
	}
	return nil
}
