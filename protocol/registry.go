// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package protocol

import (
	"maps"
	"slices"
	"sync"

	"github.com/luxfi/crosschain"
)

// Registry maps protocol types to their adapters.
type Registry struct {
	mu       sync.RWMutex
	adapters map[crosschain.ProtocolType]Adapter
}

func NewRegistry() *Registry {
	return &Registry{adapters: make(map[crosschain.ProtocolType]Adapter)}
}

// Register installs adapter for protocol, replacing any previous one.
func (r *Registry) Register(protocol crosschain.ProtocolType, adapter Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.adapters[protocol] = adapter
}

// Get returns the adapter for protocol.
func (r *Registry) Get(protocol crosschain.ProtocolType) (Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	adapter, ok := r.adapters[protocol]
	if !ok {
		return nil, &crosschain.ProtocolError{Protocol: protocol, Err: crosschain.ErrProtocolNotConfigured}
	}
	return adapter, nil
}

// Protocols returns the registered protocol types in ascending order.
func (r *Registry) Protocols() []crosschain.ProtocolType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.adapters))
}

// Supports reports whether adapter can reach chain.
func Supports(adapter Adapter, chain crosschain.ChainID) bool {
	supported := adapter.SupportedChains()
	return len(supported) == 0 || slices.Contains(supported, chain)
}
