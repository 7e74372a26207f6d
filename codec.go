// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package crosschain

import (
	"fmt"

	"github.com/luxfi/geth/rlp"
)

// CodecVersion is the only wire version understood so far.
const CodecVersion uint16 = 0

// CodecImpl serializes messages for transports that carry raw bytes.
type CodecImpl struct{}

// Codec is the default codec instance
var Codec = &CodecImpl{}

// Marshal prefixes the RLP encoding of v with the codec version.
func (c *CodecImpl) Marshal(version uint16, v interface{}) ([]byte, error) {
	body, err := rlp.EncodeToBytes(v)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 2+len(body))
	out[0] = byte(version >> 8)
	out[1] = byte(version)
	copy(out[2:], body)
	return out, nil
}

// Unmarshal decodes b into v and returns the version it was written with.
func (c *CodecImpl) Unmarshal(b []byte, v interface{}) (uint16, error) {
	if len(b) < 2 {
		return 0, fmt.Errorf("%w: %d bytes is too short for a codec header", ErrInvalidMessage, len(b))
	}
	version := uint16(b[0])<<8 | uint16(b[1])
	if version != CodecVersion {
		return version, fmt.Errorf("%w: unknown codec version %d", ErrInvalidMessage, version)
	}
	return version, rlp.DecodeBytes(b[2:], v)
}

// wireMessage is the RLP shape of Message. RLP has no nil, so optional
// quantities carry explicit presence flags.
type wireMessage struct {
	SourceChain      uint16
	DestinationChain uint16
	Sender           []byte
	Recipient        []byte
	Payload          []byte
	Nonce            uint64
	Timestamp        uint64
	HasAmount        bool
	Amount           []byte
	HasFee           bool
	Fee              []byte
	Status           uint8
}
