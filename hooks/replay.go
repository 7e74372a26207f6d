// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package hooks

import (
	"fmt"

	"github.com/luxfi/ids"

	"github.com/luxfi/crosschain"
	"github.com/luxfi/crosschain/cache"
)

// DefaultReplayWindow is how many executed message IDs ReplayHook remembers.
const DefaultReplayWindow = 4096

// ReplayHook rejects inbound messages whose ID it has already seen. A message
// is remembered as soon as it passes this hook, even if a later hook fails.
type ReplayHook struct {
	seen *cache.LRUCache[ids.ID, struct{}]
}

func NewReplayHook(window int) (*ReplayHook, error) {
	if window <= 0 {
		window = DefaultReplayWindow
	}
	seen, err := cache.NewLRUCache[ids.ID, struct{}](window)
	if err != nil {
		return nil, err
	}
	return &ReplayHook{seen: seen}, nil
}

func (*ReplayHook) Name() string { return "replay" }

func (h *ReplayHook) Execute(msg *crosschain.Message, _, _ crosschain.ChainID) error {
	id := msg.ID()
	if h.seen.ContainsOrAdd(id, struct{}{}) {
		return fmt.Errorf("%w: %s", crosschain.ErrReplayedMessage, id)
	}
	return nil
}
