// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package crosschain

import (
	"bytes"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/ids"
)

// Message is a cross-chain message. Hooks mutate it in place as it moves
// through the pipeline.
type Message struct {
	SourceChain      ChainID
	DestinationChain ChainID
	Sender           []byte
	Recipient        []byte
	Payload          []byte
	// Nonce is assigned by the caller or by NonceHook. Zero means unset.
	Nonce     uint64
	Timestamp uint64

	Amount *uint256.Int
	Fee    *uint256.Int
	Status MessageStatus
}

// NewMessage creates a pending message between two chains.
func NewMessage(source, destination ChainID, sender, recipient, payload []byte, nonce uint64) *Message {
	return &Message{
		SourceChain:      source,
		DestinationChain: destination,
		Sender:           sender,
		Recipient:        recipient,
		Payload:          payload,
		Nonce:            nonce,
	}
}

// Clone returns a deep copy of the message.
func (m *Message) Clone() *Message {
	c := *m
	c.Sender = bytes.Clone(m.Sender)
	c.Recipient = bytes.Clone(m.Recipient)
	c.Payload = bytes.Clone(m.Payload)
	if m.Amount != nil {
		c.Amount = m.Amount.Clone()
	}
	if m.Fee != nil {
		c.Fee = m.Fee.Clone()
	}
	return &c
}

// Bytes returns the wire encoding of the message.
func (m *Message) Bytes() []byte {
	b, _ := Codec.Marshal(CodecVersion, m.wire())
	return b
}

// ID returns the hash of the message contents. Status is excluded so a
// message keeps its ID as it moves through its lifecycle.
func (m *Message) ID() ids.ID {
	w := m.wire()
	w.Status = 0
	b, _ := Codec.Marshal(CodecVersion, w)
	return ids.ID(ComputeHash256Array(b))
}

func (m *Message) String() string {
	return fmt.Sprintf("%s->%s nonce=%d payload=%dB status=%s",
		m.SourceChain, m.DestinationChain, m.Nonce, len(m.Payload), m.Status)
}

func (m *Message) wire() *wireMessage {
	w := &wireMessage{
		SourceChain:      uint16(m.SourceChain),
		DestinationChain: uint16(m.DestinationChain),
		Sender:           m.Sender,
		Recipient:        m.Recipient,
		Payload:          m.Payload,
		Nonce:            m.Nonce,
		Timestamp:        m.Timestamp,
		Status:           uint8(m.Status),
	}
	if m.Amount != nil {
		w.HasAmount = true
		w.Amount = m.Amount.Bytes()
	}
	if m.Fee != nil {
		w.HasFee = true
		w.Fee = m.Fee.Bytes()
	}
	return w
}

// ParseMessage decodes a message produced by Message.Bytes.
func ParseMessage(b []byte) (*Message, error) {
	var w wireMessage
	if _, err := Codec.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	m := &Message{
		SourceChain:      ChainID(w.SourceChain),
		DestinationChain: ChainID(w.DestinationChain),
		Sender:           nonNil(w.Sender),
		Recipient:        nonNil(w.Recipient),
		Payload:          nonNil(w.Payload),
		Nonce:            w.Nonce,
		Timestamp:        w.Timestamp,
		Status:           MessageStatus(w.Status),
	}
	if w.HasAmount {
		m.Amount = new(uint256.Int).SetBytes(w.Amount)
	}
	if w.HasFee {
		m.Fee = new(uint256.Int).SetBytes(w.Fee)
	}
	return m, nil
}

func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
