// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/luxfi/crosschain"
	"github.com/luxfi/crosschain/chains"
	"github.com/luxfi/crosschain/config"
	"github.com/luxfi/crosschain/core"
	"github.com/luxfi/crosschain/hooks"
	"github.com/luxfi/crosschain/protocol/local"
)

// devConfig is used when no config file is given: both default chains over
// the loopback protocol.
func devConfig() *config.Config {
	return config.New().
		AddChain(config.ChainConfig{ChainID: crosschain.ChainSolana}).
		AddChain(config.ChainConfig{ChainID: crosschain.ChainEthereum}).
		AddProtocol(config.ProtocolConfig{
			Protocol:        crosschain.ProtocolLocal,
			SupportedChains: []crosschain.ChainID{crosschain.ChainSolana, crosschain.ChainEthereum},
		}).
		SetDefaultProtocol(crosschain.ProtocolLocal)
}

func configFileSet(cmd *cobra.Command) bool {
	path, _ := cmd.Flags().GetString(config.ConfigFileKey)
	return path != "" || os.Getenv(config.EnvPrefix+"_CONFIG_FILE") != ""
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if !configFileSet(cmd) {
		return devConfig(), nil
	}
	v, err := config.BuildViper(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return config.NewConfig(v)
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (*zap.Logger, error) {
	levelName := cfg.LogLevel
	if override, _ := cmd.Flags().GetString(config.LogLevelKey); override != "" {
		levelName = override
	}
	level, err := zapcore.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}

// newOrchestrator builds a Core serving the configured chains with the
// loopback adapter registered under every configured protocol.
func newOrchestrator(cfg *config.Config, log *zap.Logger) (*core.Core, *local.Adapter, error) {
	chainManager := chains.NewManager(log, cfg.ChainIDs()...)
	if chainManager.IsSupported(crosschain.ChainEthereum) && chainManager.IsSupported(crosschain.ChainSolana) {
		chains.RegisterEVMConversions(chainManager, crosschain.ChainEthereum, crosschain.ChainSolana)
	}

	hookCfg := hooks.DefaultConfig()
	hookCfg.SupportedChains = cfg.ChainIDs()
	hookCfg.MaxMessageAge = cfg.MaxMessageAge
	hookManager := hooks.NewManager(log, hookCfg)

	c, err := core.New(core.Params{
		Config: cfg,
		Chains: chainManager,
		Hooks:  hookManager,
		Logger: log,
	})
	if err != nil {
		return nil, nil, err
	}

	adapter := local.New(log)
	for _, id := range cfg.ChainIDs() {
		emitter, ok, err := local.EmitterFromConfig(cfg.Chains[id])
		if err != nil {
			return nil, nil, fmt.Errorf("chain %s: %w", id, err)
		}
		if !ok {
			continue
		}
		if err := adapter.RegisterEmitter(id, emitter); err != nil {
			return nil, nil, err
		}
	}
	for proto := range cfg.Protocols {
		c.RegisterAdapter(proto, adapter)
	}

	replay, err := hooks.NewReplayHook(cfg.ReplayCacheSize)
	if err != nil {
		return nil, nil, err
	}
	hookManager.Add(crosschain.PreDispatch, hooks.NewValidationHook(cfg.MaxPayloadSize))
	hookManager.Add(crosschain.PreDispatch, hooks.NewNonceHook(1))
	hookManager.Add(crosschain.PreExecution, replay)
	for _, stage := range crosschain.HookTypes {
		hookManager.Add(stage, hooks.NewLoggingHook(log, stage))
	}
	return c, adapter, nil
}

func parseChain(s string) (crosschain.ChainID, error) {
	switch s {
	case crosschain.ChainSolana.String():
		return crosschain.ChainSolana, nil
	case crosschain.ChainEthereum.String():
		return crosschain.ChainEthereum, nil
	}
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid chain %q", s)
	}
	return crosschain.ChainID(n), nil
}
