// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package chains

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/luxfi/crosschain"
)

const unknownChain crosschain.ChainID = 99

func reverse(b []byte) ([]byte, error) {
	out := slices.Clone(b)
	slices.Reverse(out)
	return out, nil
}

func TestSupportedChains(t *testing.T) {
	require := require.New(t)

	m := NewManager(nil, crosschain.ChainEthereum, crosschain.ChainSolana, crosschain.ChainEthereum)
	require.Equal([]crosschain.ChainID{crosschain.ChainEthereum, crosschain.ChainSolana}, m.SupportedChains())
	require.True(m.IsSupported(crosschain.ChainSolana))
	require.False(m.IsSupported(unknownChain))

	// callers get a copy
	got := m.SupportedChains()
	got[0] = unknownChain
	require.Equal(crosschain.ChainEthereum, m.SupportedChains()[0])
}

func TestConvert(t *testing.T) {
	failing := errors.New("boom")

	tests := []struct {
		name     string
		register func(m *Manager)
		from     crosschain.ChainID
		to       crosschain.ChainID
		address  []byte
		want     []byte
		wantErr  error
	}{
		{
			name:    "identity needs no conversion",
			from:    crosschain.ChainSolana,
			to:      crosschain.ChainSolana,
			address: []byte{1, 2, 3},
			want:    []byte{1, 2, 3},
		},
		{
			name:    "unsupported source",
			from:    unknownChain,
			to:      crosschain.ChainSolana,
			address: []byte{1},
			wantErr: crosschain.ErrUnsupportedChain,
		},
		{
			name:    "unsupported destination",
			from:    crosschain.ChainSolana,
			to:      unknownChain,
			address: []byte{1},
			wantErr: crosschain.ErrUnsupportedChain,
		},
		{
			name:    "missing conversion",
			from:    crosschain.ChainSolana,
			to:      crosschain.ChainEthereum,
			address: []byte{1},
			wantErr: crosschain.ErrInvalidConversion,
		},
		{
			name: "registered conversion",
			register: func(m *Manager) {
				m.RegisterConversion(crosschain.ChainSolana, crosschain.ChainEthereum, reverse)
			},
			from:    crosschain.ChainSolana,
			to:      crosschain.ChainEthereum,
			address: []byte{1, 2, 3, 4},
			want:    []byte{4, 3, 2, 1},
		},
		{
			name: "registration is directional",
			register: func(m *Manager) {
				m.RegisterConversion(crosschain.ChainSolana, crosschain.ChainEthereum, reverse)
			},
			from:    crosschain.ChainEthereum,
			to:      crosschain.ChainSolana,
			address: []byte{1, 2, 3, 4},
			wantErr: crosschain.ErrInvalidConversion,
		},
		{
			name: "conversion failure propagates",
			register: func(m *Manager) {
				m.RegisterConversion(crosschain.ChainSolana, crosschain.ChainEthereum, func([]byte) ([]byte, error) {
					return nil, failing
				})
			},
			from:    crosschain.ChainSolana,
			to:      crosschain.ChainEthereum,
			address: []byte{1},
			wantErr: failing,
		},
		{
			name: "later registration wins",
			register: func(m *Manager) {
				m.RegisterConversion(crosschain.ChainSolana, crosschain.ChainEthereum, reverse)
				m.RegisterConversion(crosschain.ChainSolana, crosschain.ChainEthereum, func([]byte) ([]byte, error) {
					return []byte{0xaa}, nil
				})
			},
			from:    crosschain.ChainSolana,
			to:      crosschain.ChainEthereum,
			address: []byte{1, 2},
			want:    []byte{0xaa},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			m := NewManager(nil, crosschain.ChainSolana, crosschain.ChainEthereum)
			if tt.register != nil {
				tt.register(m)
			}
			got, err := m.Convert(tt.from, tt.to, tt.address)
			require.ErrorIs(err, tt.wantErr)
			require.Equal(tt.want, got)
		})
	}
}

func TestConvertUnsupportedReportsChain(t *testing.T) {
	m := NewManager(nil, crosschain.ChainSolana)

	_, err := m.Convert(unknownChain, unknownChain+1, nil)
	var chainErr *crosschain.UnsupportedChainError
	require.ErrorAs(t, err, &chainErr)
	require.Equal(t, unknownChain, chainErr.Chain)
}

func TestConversionErrorCarriesPair(t *testing.T) {
	m := NewManager(nil, crosschain.ChainSolana, crosschain.ChainEthereum)

	_, err := m.Convert(crosschain.ChainEthereum, crosschain.ChainSolana, []byte{1})
	var convErr *crosschain.ConversionError
	require.ErrorAs(t, err, &convErr)
	require.Equal(t, crosschain.ChainEthereum, convErr.From)
	require.Equal(t, crosschain.ChainSolana, convErr.To)
}

func TestIdentityConversionProperty(t *testing.T) {
	m := NewManager(nil, crosschain.ChainSolana, crosschain.ChainEthereum)

	rapid.Check(t, func(t *rapid.T) {
		chain := rapid.SampledFrom(m.SupportedChains()).Draw(t, "chain")
		address := rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(t, "address")

		got, err := m.Convert(chain, chain, address)
		if err != nil {
			t.Fatalf("identity conversion failed: %v", err)
		}
		if !slices.Equal(got, address) {
			t.Fatalf("identity conversion changed %x to %x", address, got)
		}
	})
}
