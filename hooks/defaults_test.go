// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package hooks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/luxfi/crosschain"
)

const otherChain crosschain.ChainID = 7

func TestStageDefaults(t *testing.T) {
	tests := []struct {
		name    string
		stage   crosschain.HookType
		mutate  func(msg *crosschain.Message)
		source  crosschain.ChainID
		wantErr error
	}{
		{
			name:  "pre-dispatch accepts supported destination",
			stage: crosschain.PreDispatch,
		},
		{
			name:    "pre-dispatch rejects empty payload",
			stage:   crosschain.PreDispatch,
			mutate:  func(msg *crosschain.Message) { msg.Payload = nil },
			wantErr: crosschain.ErrEmptyPayload,
		},
		{
			name:    "pre-dispatch rejects destination outside the default set",
			stage:   crosschain.PreDispatch,
			mutate:  func(msg *crosschain.Message) { msg.DestinationChain = otherChain },
			wantErr: crosschain.ErrUnsupportedChain,
		},
		{
			name:  "post-dispatch accepts assigned nonce",
			stage: crosschain.PostDispatch,
		},
		{
			name:    "post-dispatch rejects zero nonce",
			stage:   crosschain.PostDispatch,
			mutate:  func(msg *crosschain.Message) { msg.Nonce = 0 },
			wantErr: crosschain.ErrZeroNonce,
		},
		{
			name:  "pre-execution accepts fresh message",
			stage: crosschain.PreExecution,
		},
		{
			name:  "pre-execution accepts message at the age limit",
			stage: crosschain.PreExecution,
			mutate: func(msg *crosschain.Message) {
				msg.Timestamp = crosschain.UnixNow(testNow.Add(-crosschain.MaxMessageAge))
			},
		},
		{
			name:  "pre-execution rejects stale message",
			stage: crosschain.PreExecution,
			mutate: func(msg *crosschain.Message) {
				msg.Timestamp = crosschain.UnixNow(testNow.Add(-crosschain.MaxMessageAge - time.Second))
			},
			wantErr: crosschain.ErrMessageExpired,
		},
		{
			name:  "pre-execution tolerates clock skew ahead",
			stage: crosschain.PreExecution,
			mutate: func(msg *crosschain.Message) {
				msg.Timestamp = crosschain.UnixNow(testNow.Add(time.Minute))
			},
		},
		{
			name:    "pre-execution rejects source mismatch",
			stage:   crosschain.PreExecution,
			source:  crosschain.ChainEthereum,
			wantErr: crosschain.ErrChainMismatch,
		},
		{
			name:   "post-execution accepts executed message",
			stage:  crosschain.PostExecution,
			mutate: func(msg *crosschain.Message) { msg.Status = crosschain.StatusExecuted },
		},
		{
			name:    "post-execution rejects delivered message",
			stage:   crosschain.PostExecution,
			mutate:  func(msg *crosschain.Message) { msg.Status = crosschain.StatusDelivered },
			wantErr: crosschain.ErrNotExecuted,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager()
			msg := validMessage()
			if tt.mutate != nil {
				tt.mutate(msg)
			}
			source := tt.source
			if source == 0 {
				source = msg.SourceChain
			}
			err := m.Execute(tt.stage, msg, source, msg.DestinationChain)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPreDispatchStampsTimestamp(t *testing.T) {
	require := require.New(t)

	m := newTestManager()
	msg := validMessage()
	msg.Timestamp = 0

	require.NoError(m.Execute(crosschain.PreDispatch, msg, msg.SourceChain, msg.DestinationChain))
	require.Equal(crosschain.UnixNow(testNow), msg.Timestamp)
}

func TestPreDispatchCustomSupportedSet(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SupportedChains = []crosschain.ChainID{otherChain}
	m := NewManager(nil, cfg)

	msg := validMessage()
	msg.DestinationChain = otherChain
	require.NoError(t, m.Execute(crosschain.PreDispatch, msg, msg.SourceChain, msg.DestinationChain))
}

func TestCompletionLogs(t *testing.T) {
	require := require.New(t)

	core, logs := observer.New(zapcore.InfoLevel)
	cfg := DefaultConfig()
	cfg.Now = func() time.Time { return testNow }
	m := NewManager(zap.New(core), cfg)

	msg := validMessage()
	require.NoError(m.Execute(crosschain.PostDispatch, msg, msg.SourceChain, msg.DestinationChain))
	msg.Status = crosschain.StatusExecuted
	require.NoError(m.Execute(crosschain.PostExecution, msg, msg.SourceChain, msg.DestinationChain))

	require.Equal(1, logs.FilterMessage("message dispatched").Len())
	executed := logs.FilterMessage("message executed").All()
	require.Len(executed, 1)
	require.Equal(uint64(1), executed[0].ContextMap()["nonce"])
}
