// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"go.uber.org/zap"

	"github.com/luxfi/crosschain"
	"github.com/luxfi/crosschain/chains"
	"github.com/luxfi/crosschain/config"
	"github.com/luxfi/crosschain/core"
	"github.com/luxfi/crosschain/hooks"
	"github.com/luxfi/crosschain/protocol/local"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.New().
		AddChain(config.ChainConfig{ChainID: crosschain.ChainSolana}).
		AddChain(config.ChainConfig{ChainID: crosschain.ChainEthereum}).
		AddProtocol(config.ProtocolConfig{Protocol: crosschain.ProtocolLocal}).
		SetDefaultProtocol(crosschain.ProtocolLocal)

	orchestrator, err := core.New(core.Params{Config: cfg, Logger: logger})
	if err != nil {
		log.Fatal(err)
	}
	chains.RegisterEVMConversions(orchestrator.Chains(), crosschain.ChainEthereum, crosschain.ChainSolana)
	orchestrator.RegisterAdapter(crosschain.ProtocolLocal, local.New(logger))

	// 0.3% bridge fee, at least 10 units, and no more than 5 messages per
	// second towards any one chain.
	pipeline := orchestrator.Hooks()
	pipeline.Add(crosschain.PreDispatch, hooks.NewNonceHook(1))
	pipeline.Add(crosschain.PreDispatch, hooks.NewFeeHook(30, uint256.NewInt(10)))
	pipeline.Add(crosschain.PreDispatch, hooks.NewChainRateLimitHook(200*time.Millisecond, 5))

	recipient := common.HexToAddress("0x00000000000000000000000000000000000000bb").Bytes()
	sender := common.LeftPadBytes([]byte{0xaa}, chains.UniversalAddressLength)

	msg := crosschain.NewMessage(
		crosschain.ChainSolana,
		crosschain.ChainEthereum,
		sender,
		common.LeftPadBytes(recipient, chains.UniversalAddressLength),
		[]byte("Hello from chain A to chain B!"),
		0,
	)
	msg.Amount = uint256.NewInt(1_000_000)

	ctx := context.Background()
	if err := orchestrator.Send(ctx, msg); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Sent %s: amount %s, fee %s\n", msg.ID(), msg.Amount.Dec(), msg.Fee.Dec())

	received, err := orchestrator.Receive(ctx, crosschain.ChainSolana)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Received nonce %d for %x: %s\n", received.Nonce, received.Recipient, received.Payload)
}
