// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/crosschain"
)

func TestRegistry(t *testing.T) {
	require := require.New(t)

	r := NewRegistry()
	_, err := r.Get(crosschain.ProtocolWormhole)
	require.ErrorIs(err, crosschain.ErrProtocolNotConfigured)
	protoErr, ok := crosschain.AsProtocolError(err)
	require.True(ok)
	require.Equal(crosschain.ProtocolWormhole, protoErr.Protocol)

	first := &FakeAdapter{}
	second := &FakeAdapter{}
	r.Register(crosschain.ProtocolLayerZero, first)
	r.Register(crosschain.ProtocolWormhole, first)
	r.Register(crosschain.ProtocolWormhole, second)

	got, err := r.Get(crosschain.ProtocolWormhole)
	require.NoError(err)
	require.Same(second, got)
	require.Equal([]crosschain.ProtocolType{crosschain.ProtocolWormhole, crosschain.ProtocolLayerZero}, r.Protocols())
}

func TestSupports(t *testing.T) {
	require := require.New(t)

	open := &FakeAdapter{}
	require.True(Supports(open, 42))

	limited := &FakeAdapter{Chains: []crosschain.ChainID{crosschain.ChainSolana}}
	require.True(Supports(limited, crosschain.ChainSolana))
	require.False(Supports(limited, crosschain.ChainEthereum))
}
