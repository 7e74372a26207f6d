// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package core orchestrates cross-chain messages. It validates chains, runs
// the hook pipeline, rewrites addresses and hands messages to the protocol
// adapter selected by configuration.
package core

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/luxfi/crosschain"
	"github.com/luxfi/crosschain/chains"
	"github.com/luxfi/crosschain/config"
	"github.com/luxfi/crosschain/hooks"
	"github.com/luxfi/crosschain/protocol"
	"github.com/luxfi/crosschain/utils"
)

// Params wires a Core. Only Config is required; missing components are
// built from it.
type Params struct {
	Config   *config.Config
	Chains   *chains.Manager
	Hooks    *hooks.Manager
	Adapters *protocol.Registry
	Logger   *zap.Logger
}

// Core is the orchestrator. It holds no per-message state; everything a
// message accumulates travels on the message itself.
type Core struct {
	cfg      atomic.Pointer[config.Config]
	chains   *chains.Manager
	hooks    *hooks.Manager
	adapters *protocol.Registry
	log      *zap.Logger
}

// New validates p.Config and assembles a Core.
func New(p Params) (*Core, error) {
	if p.Config == nil {
		return nil, &crosschain.ConfigError{Err: errors.New("config is required")}
	}
	if err := p.Config.Validate(); err != nil {
		return nil, err
	}
	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}
	chainManager := p.Chains
	if chainManager == nil {
		chainManager = chains.NewManager(log, p.Config.ChainIDs()...)
	}
	hookManager := p.Hooks
	if hookManager == nil {
		hookCfg := hooks.DefaultConfig()
		hookCfg.SupportedChains = p.Config.ChainIDs()
		hookCfg.MaxMessageAge = p.Config.MaxMessageAge
		hookManager = hooks.NewManager(log, hookCfg)
	}
	adapters := p.Adapters
	if adapters == nil {
		adapters = protocol.NewRegistry()
	}

	c := &Core{
		chains:   chainManager,
		hooks:    hookManager,
		adapters: adapters,
		log:      log,
	}
	c.cfg.Store(p.Config.Clone())
	return c, nil
}

// Send dispatches msg over the default protocol. On success msg holds the
// form that was transmitted: stamped, converted and marked Sent.
func (c *Core) Send(ctx context.Context, msg *crosschain.Message) error {
	return c.SendVia(ctx, c.cfg.Load().DefaultProtocol, msg)
}

// SendVia dispatches msg over the given protocol.
func (c *Core) SendVia(ctx context.Context, proto crosschain.ProtocolType, msg *crosschain.Message) error {
	cfg := c.cfg.Load()
	source, destination := msg.SourceChain, msg.DestinationChain

	if err := c.chains.Validate(source, destination); err != nil {
		return err
	}
	if err := c.hooks.Execute(crosschain.PreDispatch, msg, source, destination); err != nil {
		return err
	}

	recipient, err := c.chains.Convert(source, destination, msg.Recipient)
	if err != nil {
		return err
	}
	msg.Recipient = recipient

	adapter, err := c.adapter(cfg, proto, source, destination)
	if err != nil {
		return err
	}
	sourceCfg, err := cfg.Chain(source)
	if err != nil {
		return err
	}
	destinationCfg, err := cfg.Chain(destination)
	if err != nil {
		return err
	}

	err = c.call(ctx, cfg, func(ctx context.Context) error {
		return adapter.Send(ctx, msg, sourceCfg, destinationCfg)
	})
	if err != nil {
		msg.Status = crosschain.StatusFailed
		return &crosschain.ProtocolError{Protocol: proto, Op: "send", Err: err}
	}
	msg.Status = crosschain.StatusSent

	if err := c.hooks.Execute(crosschain.PostDispatch, msg, source, destination); err != nil {
		return err
	}
	c.log.Debug("sent message",
		zap.Stringer("protocol", proto),
		zap.Stringer("messageID", msg.ID()),
	)
	return nil
}

// Receive fetches, checks and finalizes the next message from source over
// the default protocol.
func (c *Core) Receive(ctx context.Context, source crosschain.ChainID) (*crosschain.Message, error) {
	return c.ReceiveVia(ctx, c.cfg.Load().DefaultProtocol, source)
}

// ReceiveVia fetches the next message from source over the given protocol.
func (c *Core) ReceiveVia(ctx context.Context, proto crosschain.ProtocolType, source crosschain.ChainID) (*crosschain.Message, error) {
	cfg := c.cfg.Load()

	if err := c.chains.Validate(source); err != nil {
		return nil, err
	}
	adapter, err := c.adapter(cfg, proto, source)
	if err != nil {
		return nil, err
	}
	sourceCfg, err := cfg.Chain(source)
	if err != nil {
		return nil, err
	}

	var msg *crosschain.Message
	err = c.call(ctx, cfg, func(ctx context.Context) error {
		var err error
		msg, err = adapter.Receive(ctx, sourceCfg)
		return err
	})
	if err != nil {
		return nil, &crosschain.ProtocolError{Protocol: proto, Op: "receive", Err: err}
	}
	if msg == nil {
		return nil, &crosschain.ProtocolError{Protocol: proto, Op: "receive", Err: fmt.Errorf("%w: adapter returned no message", crosschain.ErrInvalidMessage)}
	}
	destination := msg.DestinationChain
	if err := c.chains.Validate(destination); err != nil {
		return nil, err
	}

	if err := c.hooks.Execute(crosschain.PreExecution, msg, source, destination); err != nil {
		return nil, err
	}

	sender, err := c.chains.Convert(source, destination, msg.Sender)
	if err != nil {
		return nil, err
	}
	msg.Sender = sender
	msg.Status = crosschain.StatusExecuted

	if err := c.hooks.Execute(crosschain.PostExecution, msg, source, destination); err != nil {
		return nil, err
	}
	c.log.Debug("received message",
		zap.Stringer("protocol", proto),
		zap.Stringer("source", source),
		zap.Uint64("nonce", msg.Nonce),
	)
	return msg, nil
}

// Verify asks the default protocol whether msg is authentic. No hooks run.
func (c *Core) Verify(ctx context.Context, msg *crosschain.Message) (bool, error) {
	return c.VerifyVia(ctx, c.cfg.Load().DefaultProtocol, msg)
}

// VerifyVia asks the given protocol whether msg is authentic.
func (c *Core) VerifyVia(ctx context.Context, proto crosschain.ProtocolType, msg *crosschain.Message) (bool, error) {
	cfg := c.cfg.Load()
	source, destination := msg.SourceChain, msg.DestinationChain

	if err := c.chains.Validate(source, destination); err != nil {
		return false, err
	}
	adapter, err := c.adapter(cfg, proto, source, destination)
	if err != nil {
		return false, err
	}
	sourceCfg, err := cfg.Chain(source)
	if err != nil {
		return false, err
	}
	destinationCfg, err := cfg.Chain(destination)
	if err != nil {
		return false, err
	}

	ok, err := adapter.Verify(ctx, msg, sourceCfg, destinationCfg)
	if err != nil {
		return false, &crosschain.ProtocolError{Protocol: proto, Op: "verify", Err: err}
	}
	return ok, nil
}

// ConvertAddress rewrites address from one chain's format to another's.
func (c *Core) ConvertAddress(from, to crosschain.ChainID, address []byte) ([]byte, error) {
	return c.chains.Convert(from, to, address)
}

// UpdateConfig swaps in cfg if it validates. In-flight calls finish with
// the config they started with.
func (c *Core) UpdateConfig(cfg *config.Config) error {
	if cfg == nil {
		return &crosschain.ConfigError{Err: errors.New("config is required")}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg.Store(cfg.Clone())
	c.log.Info("configuration updated",
		zap.Stringer("defaultProtocol", cfg.DefaultProtocol),
		zap.Int("chains", len(cfg.Chains)),
		zap.Int("protocols", len(cfg.Protocols)),
	)
	return nil
}

// Config returns a copy of the active configuration.
func (c *Core) Config() *config.Config {
	return c.cfg.Load().Clone()
}

// SupportedChains returns the chain registry's supported chains.
func (c *Core) SupportedChains() []crosschain.ChainID {
	return c.chains.SupportedChains()
}

// RegisterAdapter installs the adapter serving proto.
func (c *Core) RegisterAdapter(proto crosschain.ProtocolType, adapter protocol.Adapter) {
	c.adapters.Register(proto, adapter)
}

func (c *Core) Hooks() *hooks.Manager { return c.hooks }

func (c *Core) Chains() *chains.Manager { return c.chains }

// adapter resolves the adapter for proto and checks that both the protocol
// config and the adapter reach every chain in route.
func (c *Core) adapter(cfg *config.Config, proto crosschain.ProtocolType, route ...crosschain.ChainID) (protocol.Adapter, error) {
	protoCfg, err := cfg.Protocol(proto)
	if err != nil {
		return nil, err
	}
	adapter, err := c.adapters.Get(proto)
	if err != nil {
		return nil, err
	}
	for _, chain := range route {
		if !protoCfg.Supports(chain) || !protocol.Supports(adapter, chain) {
			return nil, &crosschain.ProtocolError{
				Protocol: proto,
				Err:      fmt.Errorf("%w: %s", crosschain.ErrChainNotSupportedByProtocol, chain),
			}
		}
	}
	return adapter, nil
}

// call runs an adapter operation under the configured timeout and retry
// policy. An empty inbox and context errors are not retried.
func (c *Core) call(ctx context.Context, cfg *config.Config, op func(context.Context) error) error {
	return utils.WithMaxRetries(ctx, c.log, func() error {
		callCtx := ctx
		if cfg.CallTimeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, cfg.CallTimeout)
			defer cancel()
		}
		err := op(callCtx)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, protocol.ErrNoMessage), errors.Is(err, context.Canceled):
			return backoff.Permanent(err)
		default:
			return err
		}
	}, cfg.MaxRetries, cfg.RetryDelay)
}
