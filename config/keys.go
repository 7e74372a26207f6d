// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package config

const (
	// Command line option keys
	ConfigFileKey = "config-file"
	VersionKey    = "version"

	// Environment variables are the upper-cased keys behind this prefix,
	// with hyphens replaced by underscores.
	EnvPrefix = "XCHAIN"

	// Top-level configuration keys
	LogLevelKey        = "log-level"
	DefaultProtocolKey = "default-protocol"
	MaxRetriesKey      = "max-retries"
	RetryDelayKey      = "retry-delay"
	CallTimeoutKey     = "call-timeout"
	MaxPayloadSizeKey  = "max-payload-size"
	MaxMessageAgeKey   = "max-message-age"
	ReplayCacheSizeKey = "replay-cache-size"
	ChainsKey          = "chains"
	ProtocolsKey       = "protocols"
)
