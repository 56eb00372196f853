// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/heirvm/chain"
	"github.com/ava-labs/heirvm/client"
	"github.com/ava-labs/heirvm/parser"
)

var batchTransferCmd = &cobra.Command{
	Use:   "batch-transfer [options] <asset> <to:amount,...>",
	Short: "Transfers an asset to several recipients at once",
	Long: `
Transfers to every recipient or to none of them.

$ heir-cli batch-transfer native 0x2a3d...:100,0x9f1c...:250

`,
	RunE: batchTransferFunc,
}

func batchTransferFunc(cmd *cobra.Command, args []string) error {
	if err := expectArgs(args, 2); err != nil {
		return err
	}
	asset, err := parser.ParseAsset(args[0])
	if err != nil {
		return err
	}
	recipients, amounts, err := parser.ParseTransfers(args[1])
	if err != nil {
		return err
	}
	cli, addr, err := issue(&chain.BatchTransferTx{
		BaseTx:     &chain.BaseTx{},
		Asset:      asset,
		Recipients: recipients,
		Amounts:    amounts,
	})
	if err != nil {
		return err
	}
	return printBalance(cli, addr, asset)
}

var balanceCmd = &cobra.Command{
	Use:   "balance [options] [address] [asset]",
	Short: "Reads the balance of an address",
	RunE:  balanceFunc,
}

func balanceFunc(cmd *cobra.Command, args []string) error {
	asset := chain.NativeAsset
	if len(args) == 2 {
		a, err := parser.ParseAsset(args[1])
		if err != nil {
			return err
		}
		asset = a
		args = args[:1]
	}
	addr, err := addressArg(args)
	if err != nil {
		return err
	}
	return printBalance(client.New(uri, requestTimeout), addr, asset)
}
