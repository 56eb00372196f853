// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ava-labs/heirvm/chain"
	"github.com/ava-labs/heirvm/client"
	"github.com/ava-labs/heirvm/parser"
)

var (
	walletPeriod time.Duration
	withdrawTo   string
)

func init() {
	createWalletCmd.PersistentFlags().DurationVar(
		&walletPeriod,
		"inactivity-period",
		48*time.Hour,
		"how long the owner may stay silent before the wallet can be executed",
	)
	withdrawCmd.PersistentFlags().StringVar(
		&withdrawTo,
		"to",
		"",
		"recipient of the withdrawal, defaults to the owner",
	)
}

var createWalletCmd = &cobra.Command{
	Use:   "create-wallet [options] <heir:pct,...>",
	Short: "Creates a smart wallet split across heirs",
	Long: `
Creates a smart wallet for the local key. Percentages must add up to 100.

$ heir-cli create-wallet 0x2a3d...:60,0x9f1c...:40 --inactivity-period 2160h

`,
	RunE: createWalletFunc,
}

func createWalletFunc(cmd *cobra.Command, args []string) error {
	if err := expectArgs(args, 1); err != nil {
		return err
	}
	heirs, err := parser.ParseHeirs(args[0], parser.WithCheckTotal())
	if err != nil {
		return err
	}
	return issueWalletTx(&chain.CreateWalletTx{
		BaseTx:           &chain.BaseTx{},
		Heirs:            heirs,
		InactivityPeriod: seconds(walletPeriod),
	})
}

var walletActivityCmd = &cobra.Command{
	Use:   "wallet-activity [options]",
	Short: "Refreshes the owner activity of the local wallet",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := expectArgs(args, 0); err != nil {
			return err
		}
		return issueWalletTx(&chain.WalletActivityTx{BaseTx: &chain.BaseTx{}})
	},
}

var depositCmd = &cobra.Command{
	Use:   "deposit [options] <asset> <amount>",
	Short: "Moves funds into the local wallet",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := expectArgs(args, 2); err != nil {
			return err
		}
		asset, err := parser.ParseAsset(args[0])
		if err != nil {
			return err
		}
		amount, err := parser.ParseAmount(args[1])
		if err != nil {
			return err
		}
		return issueWalletTx(&chain.DepositTx{BaseTx: &chain.BaseTx{}, Asset: asset, Amount: amount})
	},
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw [options] <asset> <amount>",
	Short: "Moves funds out of the local wallet",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := expectArgs(args, 2); err != nil {
			return err
		}
		asset, err := parser.ParseAsset(args[0])
		if err != nil {
			return err
		}
		amount, err := parser.ParseAmount(args[1])
		if err != nil {
			return err
		}
		var to common.Address
		if withdrawTo != "" {
			if to, err = parser.ParseAddress(withdrawTo); err != nil {
				return err
			}
		}
		return issueWalletTx(&chain.WithdrawTx{BaseTx: &chain.BaseTx{}, Asset: asset, Amount: amount, To: to})
	},
}

var setPeriodCmd = &cobra.Command{
	Use:   "set-period [options] <duration>",
	Short: "Changes the wallet inactivity period (premium)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := expectArgs(args, 1); err != nil {
			return err
		}
		d, err := time.ParseDuration(args[0])
		if err != nil {
			return err
		}
		return issueWalletTx(&chain.SetPeriodTx{BaseTx: &chain.BaseTx{}, InactivityPeriod: seconds(d)})
	},
}

var addHeirCmd = &cobra.Command{
	Use:   "add-heir [options] <heir> <pct>",
	Short: "Adds a heir to the local wallet (premium)",
	RunE: func(cmd *cobra.Command, args []string) error {
		heirs, err := heirArgs(args)
		if err != nil {
			return err
		}
		return issueWalletTx(&chain.AddHeirTx{BaseTx: &chain.BaseTx{}, Heir: heirs.Heir, Percentage: heirs.Percentage})
	},
}

var setAllocationCmd = &cobra.Command{
	Use:   "set-allocation [options] <heir> <pct>",
	Short: "Changes the share of an existing heir",
	RunE: func(cmd *cobra.Command, args []string) error {
		heirs, err := heirArgs(args)
		if err != nil {
			return err
		}
		return issueWalletTx(&chain.SetAllocationTx{BaseTx: &chain.BaseTx{}, Heir: heirs.Heir, Percentage: heirs.Percentage})
	},
}

var setTokensCmd = &cobra.Command{
	Use:   "set-tokens [options] <asset:pct,...>",
	Short: "Replaces the token allocations of the local wallet (premium)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := expectArgs(args, 1); err != nil {
			return err
		}
		tokens, err := parser.ParseTokens(args[0])
		if err != nil {
			return err
		}
		return issueWalletTx(&chain.SetTokensTx{BaseTx: &chain.BaseTx{}, Allocations: tokens})
	},
}

var executeCmd = &cobra.Command{
	Use:   "execute [options] <owner>",
	Short: "Executes the wallet of an inactive owner",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := expectArgs(args, 1); err != nil {
			return err
		}
		owner, err := parser.ParseAddress(args[0])
		if err != nil {
			return err
		}
		cli, _, err := issue(&chain.ExecuteTx{BaseTx: &chain.BaseTx{}, Owner: owner})
		if err != nil {
			return err
		}
		return ppWallet(cli, owner)
	},
}

var walletCmd = &cobra.Command{
	Use:   "wallet [options] [owner]",
	Short: "Reads a smart wallet and its pending payout",
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := addressArg(args)
		if err != nil {
			return err
		}
		return ppWallet(client.New(uri, requestTimeout), owner)
	},
}

func heirArgs(args []string) (chain.HeirAllocation, error) {
	if err := expectArgs(args, 2); err != nil {
		return chain.HeirAllocation{}, err
	}
	heir, err := parser.ParseAddress(args[0])
	if err != nil {
		return chain.HeirAllocation{}, err
	}
	pct, err := parser.ParsePercentage(args[1])
	if err != nil {
		return chain.HeirAllocation{}, err
	}
	return chain.HeirAllocation{Heir: heir, Percentage: pct}, nil
}

func issueWalletTx(utx chain.UnsignedTransaction) error {
	cli, owner, err := issue(utx)
	if err != nil {
		return err
	}
	return ppWallet(cli, owner)
}

func ppWallet(cli client.Client, owner common.Address) error {
	w, err := cli.Wallet(context.Background(), owner)
	if err != nil {
		return err
	}
	color.Blue("wallet owner=%s custody=%s executed=%t", owner, w.Custody, w.Wallet.Executed)
	color.Blue("deadline=%s", time.Unix(w.Deadline, 0).UTC().Format(time.RFC3339))
	return printJSON(w)
}
