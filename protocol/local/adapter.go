// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package local is an in-process loopback protocol. Messages sent from a
// chain are queued in memory until received for that chain. It stands in for
// a real bridge in tests, demos and single-process deployments.
package local

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/common/hexutil"
	"github.com/luxfi/ids"
	"go.uber.org/zap"

	"github.com/luxfi/crosschain"
	"github.com/luxfi/crosschain/cache"
	"github.com/luxfi/crosschain/config"
	"github.com/luxfi/crosschain/protocol"
)

// EmitterKey is the ChainConfig contract address naming a chain's emitter.
const EmitterKey = "emitter"

const defaultVerifyTTL = time.Minute

var (
	ErrInvalidEmitter = errors.New("invalid emitter address")
	ErrUnknownEmitter = errors.New("message from unregistered emitter")
	errNotEmitted     = errors.New("message not emitted by this adapter")
)

// Emitter is the 32-byte address that emits messages on a chain.
type Emitter [32]byte

type envelope struct {
	sequence uint64
	emitter  Emitter
	receipt  ids.ID
	body     []byte
}

// emission is what the adapter remembers about a message it sent until the
// message has been both delivered and verified.
type emission struct {
	emitter   Emitter
	delivered bool
	verified  bool
}

// receiptID identifies a message by the fields execution leaves untouched:
// the route, the nonce, the timestamp and the recipient. Hooks may rewrite
// the payload and the sender after delivery, so those are not part of it.
func receiptID(msg *crosschain.Message) ids.ID {
	b := make([]byte, 20, 20+len(msg.Recipient))
	binary.BigEndian.PutUint16(b[0:], uint16(msg.SourceChain))
	binary.BigEndian.PutUint16(b[2:], uint16(msg.DestinationChain))
	binary.BigEndian.PutUint64(b[4:], msg.Nonce)
	binary.BigEndian.PutUint64(b[12:], msg.Timestamp)
	b = append(b, msg.Recipient...)
	return ids.ID(crosschain.ComputeHash256Array(b))
}

var _ protocol.Adapter = (*Adapter)(nil)

// Adapter is the loopback protocol adapter.
type Adapter struct {
	supported []crosschain.ChainID
	log       *zap.Logger

	mu       sync.Mutex
	queues   map[crosschain.ChainID][]envelope
	emitted  map[ids.ID]*emission
	emitters map[crosschain.ChainID]Emitter
	sequence uint64

	verified *cache.TTLCache[ids.ID, bool]
	sent     atomic.Uint64
	received atomic.Uint64
}

// New creates a loopback adapter reaching the given chains. With no chains it
// reaches whatever the orchestrator allows.
func New(log *zap.Logger, supported ...crosschain.ChainID) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{
		supported: supported,
		log:       log,
		queues:    make(map[crosschain.ChainID][]envelope),
		emitted:   make(map[ids.ID]*emission),
		emitters:  make(map[crosschain.ChainID]Emitter),
		verified:  cache.NewTTLCache[ids.ID, bool](defaultVerifyTTL),
	}
}

// RegisterEmitter records the emitter trusted for chain. Messages from chain
// stamped with any other emitter are refused.
func (a *Adapter) RegisterEmitter(chain crosschain.ChainID, emitter Emitter) error {
	if emitter == (Emitter{}) {
		return fmt.Errorf("%w: zero address for %s", ErrInvalidEmitter, chain)
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	a.emitters[chain] = emitter
	a.log.Debug("registered emitter",
		zap.Stringer("chain", chain),
		zap.String("emitter", hexutil.Encode(emitter[:])),
	)
	return nil
}

// Emitter returns the emitter registered for chain.
func (a *Adapter) Emitter(chain crosschain.ChainID) (Emitter, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	emitter, ok := a.emitters[chain]
	return emitter, ok
}

// EmitterFromConfig reads the hex emitter address out of cfg, left-padding
// shorter addresses to 32 bytes. ok is false when none is configured.
func EmitterFromConfig(cfg *config.ChainConfig) (emitter Emitter, ok bool, err error) {
	raw, ok := cfg.ContractAddresses[EmitterKey]
	if !ok {
		return Emitter{}, false, nil
	}
	b, err := hexutil.Decode(raw)
	if err != nil {
		return Emitter{}, false, fmt.Errorf("%w: %w", ErrInvalidEmitter, err)
	}
	if len(b) > len(emitter) {
		return Emitter{}, false, fmt.Errorf("%w: %d bytes", ErrInvalidEmitter, len(b))
	}
	copy(emitter[:], common.LeftPadBytes(b, len(emitter)))
	return emitter, true, nil
}

func (a *Adapter) Send(ctx context.Context, msg *crosschain.Message, source, destination *config.ChainConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.verified.Prune()

	a.mu.Lock()
	a.sequence++
	env := envelope{
		sequence: a.sequence,
		emitter:  a.emitters[source.ChainID],
		receipt:  receiptID(msg),
		body:     msg.Bytes(),
	}
	a.queues[source.ChainID] = append(a.queues[source.ChainID], env)
	a.emitted[env.receipt] = &emission{emitter: env.emitter}
	a.mu.Unlock()

	a.sent.Add(1)
	a.log.Debug("queued message",
		zap.Stringer("source", source.ChainID),
		zap.Stringer("destination", destination.ChainID),
		zap.Uint64("sequence", env.sequence),
		zap.Stringer("receipt", env.receipt),
	)
	return nil
}

func (a *Adapter) Receive(ctx context.Context, source *config.ChainConfig) (*crosschain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.verified.Prune()

	a.mu.Lock()
	queue := a.queues[source.ChainID]
	if len(queue) == 0 {
		a.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", protocol.ErrNoMessage, source.ChainID)
	}
	env := queue[0]
	a.queues[source.ChainID] = queue[1:]
	trusted, registered := a.emitters[source.ChainID]
	if registered && env.emitter != trusted {
		// never deliverable, so never verifiable either
		delete(a.emitted, env.receipt)
		a.mu.Unlock()
		return nil, fmt.Errorf("%w: sequence %d on %s", ErrUnknownEmitter, env.sequence, source.ChainID)
	}
	if e, ok := a.emitted[env.receipt]; ok {
		e.delivered = true
		if e.verified {
			delete(a.emitted, env.receipt)
		}
	}
	a.mu.Unlock()

	msg, err := crosschain.ParseMessage(env.body)
	if err != nil {
		return nil, err
	}
	msg.Status = crosschain.StatusDelivered
	a.received.Add(1)
	return msg, nil
}

// Verify reports whether this adapter sent msg from a trusted emitter. A
// message verifies both in the form it was sent and in the form a receiver
// holds after execution. Positive answers are memoized, and a message that
// has been delivered and verified is then only remembered by the memo.
func (a *Adapter) Verify(ctx context.Context, msg *crosschain.Message, source, _ *config.ChainConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	ok, err := a.verified.Get(receiptID(msg), func(id ids.ID) (bool, error) {
		a.mu.Lock()
		defer a.mu.Unlock()

		e, ok := a.emitted[id]
		if !ok {
			return false, errNotEmitted
		}
		if trusted, registered := a.emitters[source.ChainID]; registered && trusted != e.emitter {
			return false, ErrUnknownEmitter
		}
		e.verified = true
		if e.delivered {
			delete(a.emitted, id)
		}
		return true, nil
	}, false)
	if errors.Is(err, errNotEmitted) || errors.Is(err, ErrUnknownEmitter) {
		return false, nil
	}
	return ok, err
}

func (a *Adapter) SupportedChains() []crosschain.ChainID {
	return a.supported
}

// Sent returns how many messages have been sent.
func (a *Adapter) Sent() uint64 { return a.sent.Load() }

// Received returns how many messages have been received.
func (a *Adapter) Received() uint64 { return a.received.Load() }

// Pending returns how many messages from chain are waiting to be received.
func (a *Adapter) Pending(chain crosschain.ChainID) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.queues[chain])
}
