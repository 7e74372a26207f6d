// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package chains

import (
	"fmt"

	"github.com/luxfi/geth/common"

	"github.com/luxfi/crosschain"
)

// UniversalAddressLength is the width of a chain-agnostic address: 32 bytes,
// with shorter native addresses left-padded with zeroes.
const UniversalAddressLength = 32

// EVMToUniversal left-pads a 20-byte EVM address to 32 bytes.
func EVMToUniversal(address []byte) ([]byte, error) {
	if len(address) != common.AddressLength {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", crosschain.ErrInvalidAddressSize, len(address), common.AddressLength)
	}
	return common.LeftPadBytes(address, UniversalAddressLength), nil
}

// UniversalToEVM keeps the low 20 bytes of a 32-byte address.
func UniversalToEVM(address []byte) ([]byte, error) {
	if len(address) != UniversalAddressLength {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", crosschain.ErrInvalidAddressSize, len(address), UniversalAddressLength)
	}
	return common.BytesToAddress(address).Bytes(), nil
}

// RegisterEVMConversions wires both directions between an EVM chain and a
// chain using 32-byte addresses.
func RegisterEVMConversions(m *Manager, evmChain, universalChain crosschain.ChainID) {
	m.RegisterConversion(evmChain, universalChain, EVMToUniversal)
	m.RegisterConversion(universalChain, evmChain, UniversalToEVM)
}
