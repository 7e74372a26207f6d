// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package hooks

import (
	"encoding/hex"

	"go.uber.org/zap"

	"github.com/luxfi/crosschain"
)

// LoggingHook records every message that reaches it.
type LoggingHook struct {
	log   *zap.Logger
	stage crosschain.HookType
}

func NewLoggingHook(log *zap.Logger, stage crosschain.HookType) *LoggingHook {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingHook{log: log, stage: stage}
}

func (*LoggingHook) Name() string { return "logging" }

func (h *LoggingHook) Execute(msg *crosschain.Message, source, destination crosschain.ChainID) error {
	h.log.Info("processing message",
		zap.Stringer("stage", h.stage),
		zap.Stringer("source", source),
		zap.Stringer("destination", destination),
		zap.Uint64("nonce", msg.Nonce),
		zap.String("recipient", hex.EncodeToString(msg.Recipient)),
		zap.Int("payloadSize", len(msg.Payload)),
	)
	return nil
}
