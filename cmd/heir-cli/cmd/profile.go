// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/ava-labs/heirvm/chain"
	"github.com/ava-labs/heirvm/client"
)

var premium bool

func init() {
	createProfileCmd.PersistentFlags().BoolVar(
		&premium,
		"premium",
		false,
		"start on the premium tier",
	)
}

var createProfileCmd = &cobra.Command{
	Use:   "create-profile [options]",
	Short: "Registers a user profile for the local key",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := expectArgs(args, 0); err != nil {
			return err
		}
		cli, addr, err := issue(&chain.CreateProfileTx{BaseTx: &chain.BaseTx{}, Premium: premium})
		if err != nil {
			return err
		}
		return ppProfile(cli, addr)
	},
}

var upgradeCmd = &cobra.Command{
	Use:   "upgrade [options]",
	Short: "Upgrades the local profile to premium",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := expectArgs(args, 0); err != nil {
			return err
		}
		cli, addr, err := issue(&chain.UpgradeTx{BaseTx: &chain.BaseTx{}})
		if err != nil {
			return err
		}
		return ppProfile(cli, addr)
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile [options] [address]",
	Short: "Reads a user profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := addressArg(args)
		if err != nil {
			return err
		}
		return ppProfile(client.New(uri, requestTimeout), addr)
	},
}

func ppProfile(cli client.Client, addr common.Address) error {
	p, err := cli.Profile(context.Background(), addr)
	if err != nil {
		return err
	}
	return printJSON(p)
}
