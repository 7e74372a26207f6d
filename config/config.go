// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package config holds the orchestrator's per-chain and per-protocol settings.
package config

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/luxfi/crosschain"
)

const (
	defaultLogLevel        = "info"
	defaultProtocol        = "wormhole"
	defaultMaxRetries      = 3
	defaultRetryDelay      = time.Second
	defaultMaxPayloadSize  = crosschain.MaxPayloadSize
	defaultMaxMessageAge   = crosschain.MaxMessageAge
	defaultCallTimeout     = crosschain.DefaultTimeout
	defaultReplayCacheSize = 4096
)

// ChainConfig is what an adapter needs to reach one chain.
type ChainConfig struct {
	ChainID           crosschain.ChainID
	RPCURL            string
	ContractAddresses map[string]string
}

// ProtocolConfig describes one bridging protocol.
type ProtocolConfig struct {
	Protocol        crosschain.ProtocolType
	SupportedChains []crosschain.ChainID
	Params          map[string]string
}

// Supports reports whether the protocol is configured for chain. A protocol
// with no chain list supports every configured chain.
func (p *ProtocolConfig) Supports(chain crosschain.ChainID) bool {
	if len(p.SupportedChains) == 0 {
		return true
	}
	return slices.Contains(p.SupportedChains, chain)
}

// Config is the top-level orchestrator configuration.
type Config struct {
	LogLevel        string
	Chains          map[crosschain.ChainID]*ChainConfig
	Protocols       map[crosschain.ProtocolType]*ProtocolConfig
	DefaultProtocol crosschain.ProtocolType

	// MaxRetries is how many times a failed adapter call is retried.
	MaxRetries uint64
	RetryDelay time.Duration
	// CallTimeout bounds each adapter call. Zero disables the bound.
	CallTimeout time.Duration

	MaxPayloadSize  int
	MaxMessageAge   time.Duration
	ReplayCacheSize int
}

// New returns an empty config carrying the default tunables. Chains and
// protocols still have to be added before it validates.
func New() *Config {
	protocol, _ := crosschain.ParseProtocolType(defaultProtocol)
	return &Config{
		LogLevel:        defaultLogLevel,
		Chains:          make(map[crosschain.ChainID]*ChainConfig),
		Protocols:       make(map[crosschain.ProtocolType]*ProtocolConfig),
		DefaultProtocol: protocol,
		MaxRetries:      defaultMaxRetries,
		RetryDelay:      defaultRetryDelay,
		CallTimeout:     defaultCallTimeout,
		MaxPayloadSize:  defaultMaxPayloadSize,
		MaxMessageAge:   defaultMaxMessageAge,
		ReplayCacheSize: defaultReplayCacheSize,
	}
}

// AddChain registers or replaces a chain.
func (c *Config) AddChain(chain ChainConfig) *Config {
	c.Chains[chain.ChainID] = &chain
	return c
}

// AddProtocol registers or replaces a protocol.
func (c *Config) AddProtocol(protocol ProtocolConfig) *Config {
	c.Protocols[protocol.Protocol] = &protocol
	return c
}

func (c *Config) SetDefaultProtocol(protocol crosschain.ProtocolType) *Config {
	c.DefaultProtocol = protocol
	return c
}

// Chain returns the configuration of chain.
func (c *Config) Chain(chain crosschain.ChainID) (*ChainConfig, error) {
	cfg, ok := c.Chains[chain]
	if !ok {
		return nil, &crosschain.ConfigError{Field: "chains", Err: fmt.Errorf("%w: %s", crosschain.ErrChainNotConfigured, chain)}
	}
	return cfg, nil
}

// Protocol returns the configuration of protocol.
func (c *Config) Protocol(protocol crosschain.ProtocolType) (*ProtocolConfig, error) {
	cfg, ok := c.Protocols[protocol]
	if !ok {
		return nil, &crosschain.ProtocolError{Protocol: protocol, Err: crosschain.ErrProtocolNotConfigured}
	}
	return cfg, nil
}

// ChainIDs returns the configured chains in ascending order.
func (c *Config) ChainIDs() []crosschain.ChainID {
	return slices.Sorted(maps.Keys(c.Chains))
}

// Validate checks the config is usable for dispatch.
func (c *Config) Validate() error {
	if len(c.Chains) == 0 {
		return &crosschain.ConfigError{Field: "chains", Err: crosschain.ErrNoConfiguredChains}
	}
	if len(c.Protocols) == 0 {
		return &crosschain.ConfigError{Field: "protocols", Err: crosschain.ErrNoConfiguredProtocols}
	}
	if _, ok := c.Protocols[c.DefaultProtocol]; !ok {
		return &crosschain.ConfigError{
			Field: "default-protocol",
			Err:   fmt.Errorf("%w: %s", crosschain.ErrInvalidDefaultProtocol, c.DefaultProtocol),
		}
	}
	for id, chain := range c.Chains {
		if chain.ChainID != id {
			return &crosschain.ConfigError{Field: "chains", Err: fmt.Errorf("chain %s registered under %s", chain.ChainID, id)}
		}
	}
	for _, protocol := range c.Protocols {
		for _, chain := range protocol.SupportedChains {
			if _, ok := c.Chains[chain]; !ok {
				return &crosschain.ConfigError{
					Field: "protocols",
					Err:   fmt.Errorf("%w: %s lists %s", crosschain.ErrChainNotConfigured, protocol.Protocol, chain),
				}
			}
		}
	}
	if c.MaxPayloadSize <= 0 {
		return &crosschain.ConfigError{Field: MaxPayloadSizeKey, Err: fmt.Errorf("must be positive, got %d", c.MaxPayloadSize)}
	}
	if c.MaxMessageAge <= 0 {
		return &crosschain.ConfigError{Field: MaxMessageAgeKey, Err: fmt.Errorf("must be positive, got %s", c.MaxMessageAge)}
	}
	return nil
}

// Clone returns a deep copy, so a config can be edited and swapped in
// without racing readers of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Chains = make(map[crosschain.ChainID]*ChainConfig, len(c.Chains))
	for id, chain := range c.Chains {
		cp := *chain
		cp.ContractAddresses = maps.Clone(chain.ContractAddresses)
		out.Chains[id] = &cp
	}
	out.Protocols = make(map[crosschain.ProtocolType]*ProtocolConfig, len(c.Protocols))
	for p, protocol := range c.Protocols {
		cp := *protocol
		cp.SupportedChains = slices.Clone(protocol.SupportedChains)
		cp.Params = maps.Clone(protocol.Params)
		out.Protocols[p] = &cp
	}
	return &out
}
