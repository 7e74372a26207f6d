// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package local

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/crosschain"
	"github.com/luxfi/crosschain/config"
	"github.com/luxfi/crosschain/protocol"
)

var (
	solana   = &config.ChainConfig{ChainID: crosschain.ChainSolana}
	ethereum = &config.ChainConfig{ChainID: crosschain.ChainEthereum}
)

func testMessage(nonce uint64) *crosschain.Message {
	msg := crosschain.NewMessage(crosschain.ChainSolana, crosschain.ChainEthereum, []byte{1}, []byte{2}, []byte("payload"), nonce)
	msg.Timestamp = 1_700_000_000
	return msg
}

func TestSendReceiveFIFO(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	a := New(nil)
	for nonce := uint64(1); nonce <= 3; nonce++ {
		require.NoError(a.Send(ctx, testMessage(nonce), solana, ethereum))
	}
	require.Equal(3, a.Pending(crosschain.ChainSolana))
	require.Zero(a.Pending(crosschain.ChainEthereum))

	for nonce := uint64(1); nonce <= 3; nonce++ {
		msg, err := a.Receive(ctx, solana)
		require.NoError(err)
		require.Equal(nonce, msg.Nonce)
		require.Equal(crosschain.StatusDelivered, msg.Status)
	}

	_, err := a.Receive(ctx, solana)
	require.ErrorIs(err, protocol.ErrNoMessage)
	require.Equal(uint64(3), a.Sent())
	require.Equal(uint64(3), a.Received())
}

func TestReceiveHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := New(nil)
	_, err := a.Receive(ctx, solana)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, a.Send(ctx, testMessage(1), solana, ethereum), context.Canceled)
}

func TestVerify(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	a := New(nil)
	msg := testMessage(1)

	ok, err := a.Verify(ctx, msg, solana, ethereum)
	require.NoError(err)
	require.False(ok)

	require.NoError(a.Send(ctx, msg, solana, ethereum))
	ok, err = a.Verify(ctx, msg, solana, ethereum)
	require.NoError(err)
	require.True(ok)

	tampered := msg.Clone()
	tampered.Recipient = []byte{3}
	ok, err = a.Verify(ctx, tampered, solana, ethereum)
	require.NoError(err)
	require.False(ok)

	replayed := msg.Clone()
	replayed.Nonce = 2
	ok, err = a.Verify(ctx, replayed, solana, ethereum)
	require.NoError(err)
	require.False(ok)
}

func TestVerifyExecutedForm(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	a := New(nil)
	require.NoError(a.Send(ctx, testMessage(1), solana, ethereum))

	msg, err := a.Receive(ctx, solana)
	require.NoError(err)

	// what execution hooks typically do to a delivered message
	msg.Payload = []byte("decrypted")
	msg.Sender = []byte{0xaa, 0xbb}
	msg.Status = crosschain.StatusExecuted

	ok, err := a.Verify(ctx, msg, solana, ethereum)
	require.NoError(err)
	require.True(ok)
}

func TestEmissionsAreForgotten(t *testing.T) {
	tests := []struct {
		name         string
		verifyFirst  bool
		wantAfterRcv int
	}{
		{
			name:         "verified then delivered",
			verifyFirst:  true,
			wantAfterRcv: 0,
		},
		{
			name:         "delivered then verified",
			wantAfterRcv: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()

			a := New(nil)
			msg := testMessage(1)
			require.NoError(a.Send(ctx, msg, solana, ethereum))
			require.Len(a.emitted, 1)

			if tt.verifyFirst {
				ok, err := a.Verify(ctx, msg, solana, ethereum)
				require.NoError(err)
				require.True(ok)
			}
			_, err := a.Receive(ctx, solana)
			require.NoError(err)
			require.Len(a.emitted, tt.wantAfterRcv)

			ok, err := a.Verify(ctx, msg, solana, ethereum)
			require.NoError(err)
			require.True(ok)
			require.Empty(a.emitted)
		})
	}
}

func TestRejectedDeliveryIsForgotten(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	a := New(nil)
	require.NoError(a.Send(ctx, testMessage(1), solana, ethereum))
	require.NoError(a.RegisterEmitter(crosschain.ChainSolana, Emitter{31: 0x01}))

	_, err := a.Receive(ctx, solana)
	require.ErrorIs(err, ErrUnknownEmitter)
	require.Empty(a.emitted)
}

func TestEmitters(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	a := New(nil)
	require.ErrorIs(a.RegisterEmitter(crosschain.ChainSolana, Emitter{}), ErrInvalidEmitter)

	// sent before an emitter was trusted, so stamped with the zero emitter
	require.NoError(a.Send(ctx, testMessage(1), solana, ethereum))

	trusted := Emitter{31: 0x01}
	require.NoError(a.RegisterEmitter(crosschain.ChainSolana, trusted))
	got, ok := a.Emitter(crosschain.ChainSolana)
	require.True(ok)
	require.Equal(trusted, got)

	_, err := a.Receive(ctx, solana)
	require.ErrorIs(err, ErrUnknownEmitter)

	require.NoError(a.Send(ctx, testMessage(2), solana, ethereum))
	msg, err := a.Receive(ctx, solana)
	require.NoError(err)
	require.Equal(uint64(2), msg.Nonce)

	ok, err = a.Verify(ctx, testMessage(1), solana, ethereum)
	require.NoError(err)
	require.False(ok)
}

func TestEmitterFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.ChainConfig
		want    Emitter
		wantOK  bool
		wantErr error
	}{
		{
			name: "absent",
			cfg:  &config.ChainConfig{},
		},
		{
			name:   "evm address is padded",
			cfg:    &config.ChainConfig{ContractAddresses: map[string]string{EmitterKey: "0x00000000000000000000000000000000000000ff"}},
			want:   Emitter{31: 0xff},
			wantOK: true,
		},
		{
			name:    "not hex",
			cfg:     &config.ChainConfig{ContractAddresses: map[string]string{EmitterKey: "emitter"}},
			wantErr: ErrInvalidEmitter,
		},
		{
			name:    "too long",
			cfg:     &config.ChainConfig{ContractAddresses: map[string]string{EmitterKey: "0x0101010101010101010101010101010101010101010101010101010101010101ff"}},
			wantErr: ErrInvalidEmitter,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			got, ok, err := EmitterFromConfig(tt.cfg)
			require.ErrorIs(err, tt.wantErr)
			require.Equal(tt.wantOK, ok)
			require.Equal(tt.want, got)
		})
	}
}
