// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ava-labs/heirvm/chain"
	"github.com/ava-labs/heirvm/client"
	"github.com/ava-labs/heirvm/parser"
	"github.com/ava-labs/heirvm/vm"
)

var (
	inactivityPeriod time.Duration
	escrow           bool
)

func init() {
	createHeirCmd.PersistentFlags().DurationVar(
		&inactivityPeriod,
		"inactivity-period",
		48*time.Hour,
		"how long the owner may stay silent before the heir can claim",
	)
	createHeirCmd.PersistentFlags().BoolVar(
		&escrow,
		"escrow",
		false,
		"move the amount into escrow now instead of at claim time",
	)
}

var createHeirCmd = &cobra.Command{
	Use:   "create-heir [options] <heir> <asset> <amount>",
	Short: "Designates a heir for an amount of one asset",
	Long: `
Creates a heir record. Once the owner stays inactive for longer
than the inactivity period, the heir may claim the amount.
Use "native" as the asset for the native coin.

$ heir-cli create-heir 0x2a3d... native 1000 --inactivity-period 720h --escrow

`,
	RunE: createHeirFunc,
}

func createHeirFunc(cmd *cobra.Command, args []string) error {
	if err := expectArgs(args, 3); err != nil {
		return err
	}
	heir, err := parser.ParseAddress(args[0])
	if err != nil {
		return err
	}
	asset, err := parser.ParseAsset(args[1])
	if err != nil {
		return err
	}
	amount, err := parser.ParseAmount(args[2])
	if err != nil {
		return err
	}

	utx := &chain.CreateHeirTx{
		BaseTx:           &chain.BaseTx{},
		Heir:             heir,
		Asset:            asset,
		Amount:           amount,
		InactivityPeriod: seconds(inactivityPeriod),
		Escrow:           escrow,
	}
	cli, owner, err := issue(utx)
	if err != nil {
		return err
	}
	color.Cyan("created record %s", chain.HeirRecordID(owner, heir, asset))
	return printBalance(cli, owner, asset)
}

var checkInCmd = &cobra.Command{
	Use:   "check-in [options] <record>",
	Short: "Refreshes the owner activity of a heir record",
	RunE:  checkInFunc,
}

func checkInFunc(cmd *cobra.Command, args []string) error {
	id, err := recordArg(args)
	if err != nil {
		return err
	}
	cli, _, err := issue(&chain.ActivityTx{BaseTx: &chain.BaseTx{}, Record: id})
	if err != nil {
		return err
	}
	info, err := cli.HeirRecord(context.Background(), id)
	if err != nil {
		return err
	}
	ppRecord(info)
	return nil
}

var claimCmd = &cobra.Command{
	Use:   "claim [options] <record>",
	Short: "Claims a heir record after the owner went inactive",
	RunE:  claimFunc,
}

func claimFunc(cmd *cobra.Command, args []string) error {
	id, err := recordArg(args)
	if err != nil {
		return err
	}
	cli := client.New(uri, requestTimeout)
	info, err := cli.HeirRecord(context.Background(), id)
	if err != nil {
		return err
	}
	cli, heir, err := issue(&chain.ClaimTx{BaseTx: &chain.BaseTx{}, Record: id})
	if err != nil {
		return err
	}
	return printBalance(cli, heir, info.Record.Asset)
}

var recordCmd = &cobra.Command{
	Use:   "record [options] <record>",
	Short: "Reads a heir record",
	RunE:  recordFunc,
}

func recordFunc(cmd *cobra.Command, args []string) error {
	id, err := recordArg(args)
	if err != nil {
		return err
	}
	cli := client.New(uri, requestTimeout)
	info, err := cli.HeirRecord(context.Background(), id)
	if err != nil {
		return err
	}
	ppRecord(info)
	return nil
}

var ownedCmd = &cobra.Command{
	Use:   "owned [options] [address]",
	Short: "Lists the heir records created by an address",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listRecords(args, func(cli client.Client, addr common.Address) ([]*vm.RecordInfo, error) {
			return cli.OwnedRecords(context.Background(), addr)
		})
	},
}

var inheritancesCmd = &cobra.Command{
	Use:   "inheritances [options] [address]",
	Short: "Lists the heir records naming an address",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listRecords(args, func(cli client.Client, addr common.Address) ([]*vm.RecordInfo, error) {
			return cli.Inheritances(context.Background(), addr)
		})
	},
}

var dueCmd = &cobra.Command{
	Use:   "due [options]",
	Short: "Lists claimable records and executable wallets",
	RunE:  dueFunc,
}

func dueFunc(cmd *cobra.Command, args []string) error {
	if err := expectArgs(args, 0); err != nil {
		return err
	}
	cli := client.New(uri, requestTimeout)
	now, records, err := cli.DueRecords(context.Background(), common.Address{})
	if err != nil {
		return err
	}
	color.Cyan("now=%s", time.Unix(now, 0).UTC().Format(time.RFC3339))
	for _, info := range records {
		ppRecord(info)
	}
	_, wallets, err := cli.DueWallets(context.Background())
	if err != nil {
		return err
	}
	for _, due := range wallets {
		color.Yellow("wallet owner=%s executable=%t", due.Wallet.Owner, due.Payout != nil)
	}
	return nil
}

func recordArg(args []string) (ids.ID, error) {
	if err := expectArgs(args, 1); err != nil {
		return ids.Empty, err
	}
	return ids.FromString(args[0])
}

// addressArg returns the address in [args], or the local key address.
func addressArg(args []string) (common.Address, error) {
	if len(args) == 1 {
		return parser.ParseAddress(args[0])
	}
	if err := expectArgs(args, 0); err != nil {
		return common.Address{}, err
	}
	_, addr, err := loadKey()
	return addr, err
}

func listRecords(args []string, f func(client.Client, common.Address) ([]*vm.RecordInfo, error)) error {
	addr, err := addressArg(args)
	if err != nil {
		return err
	}
	records, err := f(client.New(uri, requestTimeout), addr)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		color.Cyan("no records for %s", addr)
	}
	for _, info := range records {
		ppRecord(info)
	}
	return nil
}

func ppRecord(info *vm.RecordInfo) {
	r := info.Record
	color.Blue("record=%s", info.ID)
	color.Yellow("owner=%s heir=%s asset=%s amount=%d escrowed=%t",
		r.Owner, r.Heir, r.Asset, r.Amount, r.Escrowed)
	color.Yellow("deadline=%s claimable=%t claimed=%t",
		time.Unix(info.Deadline, 0).UTC().Format(time.RFC3339), info.Claimable, r.Claimed)
}

func printJSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	color.Yellow("%s", string(b))
	return nil
}
