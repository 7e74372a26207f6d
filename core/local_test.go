// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package core

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/luxfi/crosschain"
	"github.com/luxfi/crosschain/chains"
	"github.com/luxfi/crosschain/config"
	"github.com/luxfi/crosschain/hooks"
	"github.com/luxfi/crosschain/protocol"
	"github.com/luxfi/crosschain/protocol/local"
)

func newLocalCore(t *testing.T, log *zap.Logger) (*Core, *local.Adapter) {
	t.Helper()

	cfg := testConfig().
		AddProtocol(config.ProtocolConfig{
			Protocol:        crosschain.ProtocolLocal,
			SupportedChains: []crosschain.ChainID{crosschain.ChainSolana, crosschain.ChainEthereum},
		}).
		SetDefaultProtocol(crosschain.ProtocolLocal)

	c, err := New(Params{Config: cfg, Logger: log})
	require.NoError(t, err)
	chains.RegisterEVMConversions(c.Chains(), crosschain.ChainEthereum, crosschain.ChainSolana)

	adapter := local.New(log)
	c.RegisterAdapter(crosschain.ProtocolLocal, adapter)
	return c, adapter
}

func solanaToEthereum(payload []byte) *crosschain.Message {
	recipient := common.LeftPadBytes(common.HexToAddress("0x00000000000000000000000000000000000000aa").Bytes(), 32)
	sender := bytes.Repeat([]byte{0x11}, 32)
	return crosschain.NewMessage(crosschain.ChainSolana, crosschain.ChainEthereum, sender, recipient, payload, 0)
}

func TestLocalRoundTrip(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	observed, logs := observer.New(zapcore.InfoLevel)
	c, adapter := newLocalCore(t, zap.New(observed))

	cipher, err := hooks.NewPayloadCipher(bytes.Repeat([]byte{0x42}, hooks.KeySize))
	require.NoError(err)
	replay, err := hooks.NewReplayHook(0)
	require.NoError(err)
	metrics := hooks.NewMetrics(prometheus.NewRegistry())

	c.Hooks().Add(crosschain.PreDispatch, hooks.NewValidationHook(crosschain.MaxPayloadSize))
	c.Hooks().Add(crosschain.PreDispatch, hooks.NewNonceHook(1))
	c.Hooks().Add(crosschain.PreDispatch, cipher.EncryptionHook())
	c.Hooks().Add(crosschain.PostDispatch, metrics.Hook(crosschain.PostDispatch))
	c.Hooks().Add(crosschain.PreExecution, replay)
	c.Hooks().Add(crosschain.PreExecution, cipher.DecryptionHook())
	c.Hooks().Add(crosschain.PostExecution, metrics.Hook(crosschain.PostExecution))

	out := solanaToEthereum([]byte("hello ethereum"))
	require.NoError(c.Send(ctx, out))
	require.Equal(uint64(1), out.Nonce)
	require.Len(out.Recipient, common.AddressLength)
	require.NotEqual([]byte("hello ethereum"), out.Payload)
	require.Equal(1, adapter.Pending(crosschain.ChainSolana))

	ok, err := c.Verify(ctx, out)
	require.NoError(err)
	require.True(ok)

	in, err := c.Receive(ctx, crosschain.ChainSolana)
	require.NoError(err)
	require.Equal([]byte("hello ethereum"), in.Payload)
	require.Equal(crosschain.StatusExecuted, in.Status)
	require.Len(in.Sender, common.AddressLength)
	require.Equal(out.Recipient, in.Recipient)

	ok, err = c.Verify(ctx, in)
	require.NoError(err)
	require.True(ok)

	require.Equal(uint64(2), metrics.TotalMessages())
	require.Equal(1, logs.FilterMessage("message dispatched").Len())
	require.Equal(1, logs.FilterMessage("message executed").Len())

	_, err = c.Receive(ctx, crosschain.ChainSolana)
	require.ErrorIs(err, protocol.ErrNoMessage)

	// the same bytes delivered twice are refused
	cfg := c.Config()
	require.NoError(adapter.Send(ctx, out, cfg.Chains[crosschain.ChainSolana], cfg.Chains[crosschain.ChainEthereum]))
	_, err = c.Receive(ctx, crosschain.ChainSolana)
	require.ErrorIs(err, crosschain.ErrReplayedMessage)
}

func TestLocalVerifyReceived(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	c, _ := newLocalCore(t, nil)
	cipher, err := hooks.NewPayloadCipher(bytes.Repeat([]byte{0x24}, hooks.KeySize))
	require.NoError(err)
	c.Hooks().Add(crosschain.PreDispatch, hooks.NewNonceHook(1))
	c.Hooks().Add(crosschain.PreDispatch, cipher.EncryptionHook())
	c.Hooks().Add(crosschain.PreExecution, cipher.DecryptionHook())

	require.NoError(c.Send(ctx, solanaToEthereum([]byte("verify me"))))
	in, err := c.Receive(ctx, crosschain.ChainSolana)
	require.NoError(err)
	require.Equal([]byte("verify me"), in.Payload)

	ok, err := c.Verify(ctx, in)
	require.NoError(err)
	require.True(ok)

	forged := in.Clone()
	forged.Nonce++
	ok, err = c.Verify(ctx, forged)
	require.NoError(err)
	require.False(ok)
}

func TestLocalConcurrentSends(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	c, adapter := newLocalCore(t, nil)
	c.Hooks().Add(crosschain.PreDispatch, hooks.NewNonceHook(1))

	const senders = 16
	var wg sync.WaitGroup
	errs := make(chan error, senders)
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- c.Send(ctx, solanaToEthereum([]byte{byte(i + 1)}))
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(err)
	}
	require.Equal(uint64(senders), adapter.Sent())

	nonces := make(map[uint64]struct{})
	for i := 0; i < senders; i++ {
		msg, err := c.Receive(ctx, crosschain.ChainSolana)
		require.NoError(err)
		nonces[msg.Nonce] = struct{}{}
	}
	require.Len(nonces, senders)
}
