// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"

	"github.com/luxfi/geth/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/luxfi/crosschain"
	"github.com/luxfi/crosschain/config"
)

var chainsCmd = &cobra.Command{
	Use:   "chains",
	Short: "List configured chains",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, id := range cfg.ChainIDs() {
			chain := cfg.Chains[id]
			fmt.Fprintf(out, "%d\t%s\t%s\n", uint16(id), id, chain.RPCURL)
		}
		return nil
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert an address between chain formats",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fromFlag, _ := cmd.Flags().GetString("from")
		toFlag, _ := cmd.Flags().GetString("to")
		addressFlag, _ := cmd.Flags().GetString("address")

		from, err := parseChain(fromFlag)
		if err != nil {
			return err
		}
		to, err := parseChain(toFlag)
		if err != nil {
			return err
		}
		address, err := hexutil.Decode(addressFlag)
		if err != nil {
			return fmt.Errorf("invalid address: %w", err)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, err := newLogger(cmd, cfg)
		if err != nil {
			return err
		}
		c, _, err := newOrchestrator(cfg, log)
		if err != nil {
			return err
		}
		converted, err := c.ConvertAddress(from, to, address)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(converted))
		return nil
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode a hex-encoded wire message",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dataFlag, _ := cmd.Flags().GetString("data")
		data, err := hexutil.Decode(dataFlag)
		if err != nil {
			return fmt.Errorf("invalid hex data: %w", err)
		}
		msg, err := crosschain.ParseMessage(data)
		if err != nil {
			return err
		}
		printMessage(cmd, msg)
		return nil
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Send a message and receive it over the loopback protocol",
	RunE: func(cmd *cobra.Command, _ []string) error {
		sourceFlag, _ := cmd.Flags().GetString("source")
		destFlag, _ := cmd.Flags().GetString("dest")
		senderFlag, _ := cmd.Flags().GetString("sender")
		recipientFlag, _ := cmd.Flags().GetString("recipient")
		payload, _ := cmd.Flags().GetString("payload")

		source, err := parseChain(sourceFlag)
		if err != nil {
			return err
		}
		dest, err := parseChain(destFlag)
		if err != nil {
			return err
		}
		sender, err := hexutil.Decode(senderFlag)
		if err != nil {
			return fmt.Errorf("invalid sender: %w", err)
		}
		recipient, err := hexutil.Decode(recipientFlag)
		if err != nil {
			return fmt.Errorf("invalid recipient: %w", err)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, err := newLogger(cmd, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		c, _, err := newOrchestrator(cfg, log)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		msg := crosschain.NewMessage(source, dest, sender, recipient, []byte(payload), 0)
		if err := c.Send(ctx, msg); err != nil {
			return fmt.Errorf("send: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "sent %s\n  wire: %s\n", msg.ID(), hexutil.Encode(msg.Bytes()))

		received, err := c.Receive(ctx, source)
		if err != nil {
			return fmt.Errorf("receive: %w", err)
		}
		printMessage(cmd, received)
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate-config",
	Short: "Validate a config file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !configFileSet(cmd) {
			return fmt.Errorf("--%s is required", config.ConfigFileKey)
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d chains, %d protocols, default %s\n",
			len(cfg.Chains), len(cfg.Protocols), cfg.DefaultProtocol)
		return nil
	},
}

func printMessage(cmd *cobra.Command, msg *crosschain.Message) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Message %s\n", msg.ID())
	fmt.Fprintf(out, "  Route: %s -> %s\n", msg.SourceChain, msg.DestinationChain)
	fmt.Fprintf(out, "  Sender: %s\n", hexutil.Encode(msg.Sender))
	fmt.Fprintf(out, "  Recipient: %s\n", hexutil.Encode(msg.Recipient))
	fmt.Fprintf(out, "  Nonce: %d\n", msg.Nonce)
	fmt.Fprintf(out, "  Timestamp: %d\n", msg.Timestamp)
	fmt.Fprintf(out, "  Status: %s\n", msg.Status)
	fmt.Fprintf(out, "  Payload: %q\n", msg.Payload)
	if msg.Amount != nil {
		fmt.Fprintf(out, "  Amount: %s\n", msg.Amount.Dec())
	}
	if msg.Fee != nil {
		fmt.Fprintf(out, "  Fee: %s\n", msg.Fee.Dec())
	}
}

func init() {
	convertCmd.Flags().String("from", "ethereum", "source chain name or id")
	convertCmd.Flags().String("to", "solana", "destination chain name or id")
	convertCmd.Flags().String("address", "", "hex address to convert")

	decodeCmd.Flags().String("data", "", "hex-encoded wire message")

	simulateCmd.Flags().String("source", "solana", "source chain name or id")
	simulateCmd.Flags().String("dest", "ethereum", "destination chain name or id")
	simulateCmd.Flags().String("sender", "0x1111111111111111111111111111111111111111111111111111111111111111", "hex sender address in source chain format")
	simulateCmd.Flags().String("recipient", "0x000000000000000000000000deadbeefdeadbeefdeadbeefdeadbeefdeadbeef", "hex recipient address in source chain format")
	simulateCmd.Flags().String("payload", "hello", "message payload")
}
