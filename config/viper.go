// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/luxfi/crosschain"
)

var errConfigFileNotSet = errors.New("config file not set")

// fileConfig mirrors the on-disk layout before protocol names are parsed
// and lists are turned into maps.
type fileConfig struct {
	LogLevel        string        `mapstructure:"log-level"`
	DefaultProtocol string        `mapstructure:"default-protocol"`
	MaxRetries      uint64        `mapstructure:"max-retries"`
	RetryDelay      time.Duration `mapstructure:"retry-delay"`
	CallTimeout     time.Duration `mapstructure:"call-timeout"`
	MaxPayloadSize  int           `mapstructure:"max-payload-size"`
	MaxMessageAge   time.Duration `mapstructure:"max-message-age"`
	ReplayCacheSize int           `mapstructure:"replay-cache-size"`
	Chains          []struct {
		ChainID           uint16            `mapstructure:"chain-id"`
		RPCURL            string            `mapstructure:"rpc-url"`
		ContractAddresses map[string]string `mapstructure:"contract-addresses"`
	} `mapstructure:"chains"`
	Protocols []struct {
		Protocol        string            `mapstructure:"protocol"`
		SupportedChains []uint16          `mapstructure:"supported-chains"`
		Params          map[string]string `mapstructure:"params"`
	} `mapstructure:"protocols"`
}

// NewConfig builds and validates the config held by v.
func NewConfig(v *viper.Viper) (*Config, error) {
	cfg, err := BuildConfig(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate configuration: %w", err)
	}
	return cfg, nil
}

// BuildViper binds flags and environment and reads the config file. All
// config keys may come from the file or from XCHAIN_* environment variables.
func BuildViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, err
		}
	}

	if !v.IsSet(ConfigFileKey) || v.GetString(ConfigFileKey) == "" {
		return nil, errConfigFileNotSet
	}

	v.SetConfigFile(v.GetString(ConfigFileKey))
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return v, nil
}

func SetDefaultConfigValues(v *viper.Viper) {
	v.SetDefault(LogLevelKey, defaultLogLevel)
	v.SetDefault(DefaultProtocolKey, defaultProtocol)
	v.SetDefault(MaxRetriesKey, defaultMaxRetries)
	v.SetDefault(RetryDelayKey, defaultRetryDelay)
	v.SetDefault(CallTimeoutKey, defaultCallTimeout)
	v.SetDefault(MaxPayloadSizeKey, defaultMaxPayloadSize)
	v.SetDefault(MaxMessageAgeKey, defaultMaxMessageAge)
	v.SetDefault(ReplayCacheSizeKey, defaultReplayCacheSize)
}

// BuildConfig constructs the config from v. Flags take precedence over the
// environment, which takes precedence over the config file.
func BuildConfig(v *viper.Viper) (*Config, error) {
	SetDefaultConfigValues(v)

	var raw fileConfig
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal viper config: %w", err)
	}

	defaultProto, err := crosschain.ParseProtocolType(raw.DefaultProtocol)
	if err != nil {
		return nil, &crosschain.ConfigError{Field: DefaultProtocolKey, Err: err}
	}

	cfg := New()
	cfg.LogLevel = raw.LogLevel
	cfg.DefaultProtocol = defaultProto
	cfg.MaxRetries = raw.MaxRetries
	cfg.RetryDelay = raw.RetryDelay
	cfg.CallTimeout = raw.CallTimeout
	cfg.MaxPayloadSize = raw.MaxPayloadSize
	cfg.MaxMessageAge = raw.MaxMessageAge
	cfg.ReplayCacheSize = raw.ReplayCacheSize

	for _, chain := range raw.Chains {
		cfg.AddChain(ChainConfig{
			ChainID:           crosschain.ChainID(chain.ChainID),
			RPCURL:            chain.RPCURL,
			ContractAddresses: chain.ContractAddresses,
		})
	}
	for _, protocol := range raw.Protocols {
		p, err := crosschain.ParseProtocolType(protocol.Protocol)
		if err != nil {
			return nil, &crosschain.ConfigError{Field: ProtocolsKey, Err: err}
		}
		supported := make([]crosschain.ChainID, 0, len(protocol.SupportedChains))
		for _, chain := range protocol.SupportedChains {
			supported = append(supported, crosschain.ChainID(chain))
		}
		cfg.AddProtocol(ProtocolConfig{
			Protocol:        p,
			SupportedChains: supported,
			Params:          protocol.Params,
		})
	}
	return cfg, nil
}
