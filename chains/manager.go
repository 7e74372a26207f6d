// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package chains tracks which chains the orchestrator serves and how
// addresses are rewritten when a message crosses between them.
package chains

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/luxfi/math/set"
	"go.uber.org/zap"

	"github.com/luxfi/crosschain"
)

// ConversionFunc rewrites an address from one chain's format to another's.
type ConversionFunc func(address []byte) ([]byte, error)

// Pair is an ordered (from, to) chain pair.
type Pair struct {
	From crosschain.ChainID
	To   crosschain.ChainID
}

// Manager is the chain registry. The supported set is fixed at construction;
// conversions may be registered at any time.
type Manager struct {
	supported []crosschain.ChainID
	lookup    set.Set[crosschain.ChainID]

	mu          sync.RWMutex
	conversions map[Pair]ConversionFunc

	log *zap.Logger
}

// NewManager creates a registry for the given chains. Duplicates are dropped,
// first occurrence wins the ordering.
func NewManager(log *zap.Logger, supported ...crosschain.ChainID) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{
		lookup:      set.NewSet[crosschain.ChainID](len(supported)),
		conversions: make(map[Pair]ConversionFunc),
		log:         log,
	}
	for _, chain := range supported {
		if m.lookup.Contains(chain) {
			continue
		}
		m.lookup.Add(chain)
		m.supported = append(m.supported, chain)
	}
	return m
}

// IsSupported reports whether chain is in the supported set.
func (m *Manager) IsSupported(chain crosschain.ChainID) bool {
	return m.lookup.Contains(chain)
}

// SupportedChains returns the supported chains in registration order.
func (m *Manager) SupportedChains() []crosschain.ChainID {
	out := make([]crosschain.ChainID, len(m.supported))
	copy(out, m.supported)
	return out
}

// Validate returns an UnsupportedChainError for the first of chains that is
// not supported.
func (m *Manager) Validate(chains ...crosschain.ChainID) error {
	for _, chain := range chains {
		if !m.IsSupported(chain) {
			return &crosschain.UnsupportedChainError{Chain: chain}
		}
	}
	return nil
}

// RegisterConversion installs fn for (from, to), replacing any previous one.
// Registering is directional: (from, to) says nothing about (to, from).
func (m *Manager) RegisterConversion(from, to crosschain.ChainID, fn ConversionFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.conversions[Pair{From: from, To: to}]; ok {
		m.log.Debug("replacing address conversion",
			zap.Stringer("from", from),
			zap.Stringer("to", to),
		)
	}
	m.conversions[Pair{From: from, To: to}] = fn
}

// Convert rewrites address from one chain's format to another's. Converting
// to the same chain returns the address as given.
func (m *Manager) Convert(from, to crosschain.ChainID, address []byte) ([]byte, error) {
	if err := m.Validate(from, to); err != nil {
		return nil, err
	}
	if from == to {
		return address, nil
	}

	m.mu.RLock()
	fn, ok := m.conversions[Pair{From: from, To: to}]
	m.mu.RUnlock()
	if !ok {
		return nil, &crosschain.ConversionError{From: from, To: to, Err: crosschain.ErrInvalidConversion}
	}

	out, err := fn(bytes.Clone(address))
	if err != nil {
		return nil, &crosschain.ConversionError{
			From: from,
			To:   to,
			Err:  fmt.Errorf("%w: %w", crosschain.ErrConversionFailed, err),
		}
	}
	return out, nil
}
