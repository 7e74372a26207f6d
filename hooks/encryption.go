// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package hooks

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"fmt"

	"github.com/luxfi/crosschain"
)

// KeySize is the AES-256 key length.
const KeySize = 32

// PayloadCipher seals payloads with AES-256-GCM. The GCM nonce is the route
// (source, destination) followed by the message nonce, so a key must never
// see the same message nonce twice on one route. The route is also bound as
// additional data.
type PayloadCipher struct {
	aead cipher.AEAD
}

func NewPayloadCipher(key []byte) (*PayloadCipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: key is %d bytes, want %d", crosschain.ErrEncryption, len(key), KeySize)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", crosschain.ErrEncryption, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", crosschain.ErrEncryption, err)
	}
	return &PayloadCipher{aead: aead}, nil
}

func (c *PayloadCipher) nonce(msg *crosschain.Message) []byte {
	nonce := make([]byte, c.aead.NonceSize())
	copy(nonce, routeData(msg))
	binary.BigEndian.PutUint64(nonce[len(nonce)-8:], msg.Nonce)
	return nonce
}

func routeData(msg *crosschain.Message) []byte {
	ad := make([]byte, 4)
	binary.BigEndian.PutUint16(ad[:2], uint16(msg.SourceChain))
	binary.BigEndian.PutUint16(ad[2:], uint16(msg.DestinationChain))
	return ad
}

// Encrypt replaces the payload with its ciphertext.
func (c *PayloadCipher) Encrypt(msg *crosschain.Message) error {
	if msg.Nonce == 0 {
		return fmt.Errorf("%w: %w", crosschain.ErrEncryption, crosschain.ErrZeroNonce)
	}
	msg.Payload = c.aead.Seal(nil, c.nonce(msg), msg.Payload, routeData(msg))
	return nil
}

// Decrypt replaces the payload with its plaintext.
func (c *PayloadCipher) Decrypt(msg *crosschain.Message) error {
	plain, err := c.aead.Open(nil, c.nonce(msg), msg.Payload, routeData(msg))
	if err != nil {
		return fmt.Errorf("%w: %w", crosschain.ErrEncryption, err)
	}
	msg.Payload = plain
	return nil
}

// EncryptionHook returns a hook that encrypts payloads, for PreDispatch.
func (c *PayloadCipher) EncryptionHook() Hook {
	return WithName("encrypt", HookFunc(func(msg *crosschain.Message, _, _ crosschain.ChainID) error {
		return c.Encrypt(msg)
	}))
}

// DecryptionHook returns a hook that decrypts payloads, for PreExecution.
func (c *PayloadCipher) DecryptionHook() Hook {
	return WithName("decrypt", HookFunc(func(msg *crosschain.Message, _, _ crosschain.ChainID) error {
		return c.Decrypt(msg)
	}))
}
