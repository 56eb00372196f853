// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ava-labs/heirvm/chain"
	"github.com/ava-labs/heirvm/client"
	"github.com/ava-labs/heirvm/parser"
)

var initPlatformCmd = &cobra.Command{
	Use:   "init-platform [options]",
	Short: "Initializes the platform with the local key as admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := expectArgs(args, 0); err != nil {
			return err
		}
		return issuePlatformTx(&chain.InitializePlatformTx{BaseTx: &chain.BaseTx{}})
	},
}

var updateFeeCmd = &cobra.Command{
	Use:   "update-fee [options] <bps>",
	Short: "Sets the platform fee in basis points",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := expectArgs(args, 1); err != nil {
			return err
		}
		bps, err := strconv.ParseUint(args[0], 10, 16)
		if err != nil {
			return err
		}
		return issuePlatformTx(&chain.UpdateFeeTx{BaseTx: &chain.BaseTx{}, FeeBPS: uint16(bps)})
	},
}

var withdrawTreasuryCmd = &cobra.Command{
	Use:   "withdraw-treasury [options] <amount>",
	Short: "Moves collected fees to the admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := expectArgs(args, 1); err != nil {
			return err
		}
		amount, err := parser.ParseAmount(args[0])
		if err != nil {
			return err
		}
		return issuePlatformTx(&chain.WithdrawTreasuryTx{BaseTx: &chain.BaseTx{}, Amount: amount})
	},
}

var pauseCmd = &cobra.Command{
	Use:   "pause [options]",
	Short: "Pauses new inheritances and executions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return issuePlatformTx(&chain.PauseTx{BaseTx: &chain.BaseTx{}, Paused: true})
	},
}

var unpauseCmd = &cobra.Command{
	Use:   "unpause [options]",
	Short: "Lifts a pause",
	RunE: func(cmd *cobra.Command, args []string) error {
		return issuePlatformTx(&chain.PauseTx{BaseTx: &chain.BaseTx{}, Paused: false})
	},
}

var transferAdminCmd = &cobra.Command{
	Use:   "transfer-admin [options] <to>",
	Short: "Hands the admin role to another address",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := expectArgs(args, 1); err != nil {
			return err
		}
		to, err := parser.ParseAddress(args[0])
		if err != nil {
			return err
		}
		return issuePlatformTx(&chain.TransferAdminTx{BaseTx: &chain.BaseTx{}, To: to})
	},
}

var platformCmd = &cobra.Command{
	Use:   "platform [options]",
	Short: "Reads the platform configuration and treasury",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := expectArgs(args, 0); err != nil {
			return err
		}
		return ppPlatform(client.New(uri, requestTimeout))
	},
}

func issuePlatformTx(utx chain.UnsignedTransaction) error {
	cli, _, err := issue(utx)
	if err != nil {
		return err
	}
	return ppPlatform(cli)
}

func ppPlatform(cli client.Client) error {
	p, err := cli.Platform(context.Background())
	if err != nil {
		return err
	}
	if !p.Initialized {
		color.Cyan("platform not initialized")
		return nil
	}
	color.Blue("admin=%s fee=%dbps paused=%t", p.Config.Admin, p.Config.FeeBPS, p.Paused)
	return printJSON(p)
}
