// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "heir-cli" implements heirvm client operation interface.
package cmd

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"os"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ava-labs/heirvm/chain"
	"github.com/ava-labs/heirvm/client"
)

const (
	requestTimeout = 30 * time.Second
	fsModeWrite    = 0o600
)

var (
	privateKeyFile string
	uri            string
	verbose        bool
	workDir        string

	rootCmd = &cobra.Command{
		Use:        "heir-cli",
		Short:      "HeirVM CLI",
		SuggestFor: []string{"heir-cli", "heircli", "heirctl"},
	}
)

func init() {
	p, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	workDir = p

	cobra.EnablePrefixMatching = true
	rootCmd.AddCommand(
		createCmd,
		genesisCmd,

		createHeirCmd,
		checkInCmd,
		claimCmd,
		recordCmd,
		ownedCmd,
		inheritancesCmd,
		dueCmd,

		batchTransferCmd,
		balanceCmd,

		initPlatformCmd,
		updateFeeCmd,
		withdrawTreasuryCmd,
		pauseCmd,
		unpauseCmd,
		transferAdminCmd,
		platformCmd,

		createProfileCmd,
		upgradeCmd,
		profileCmd,

		createWalletCmd,
		walletActivityCmd,
		depositCmd,
		withdrawCmd,
		setPeriodCmd,
		addHeirCmd,
		setAllocationCmd,
		setTokensCmd,
		executeCmd,
		walletCmd,

		activityCmd,
		keeperCmd,
	)

	rootCmd.PersistentFlags().StringVar(
		&privateKeyFile,
		"private-key-file",
		".heir-cli-pk",
		"private key file path",
	)
	rootCmd.PersistentFlags().StringVar(
		&uri,
		"endpoint",
		"http://127.0.0.1:9650",
		"RPC endpoint for VM",
	)
	rootCmd.PersistentFlags().BoolVar(
		&verbose,
		"verbose",
		false,
		"Print verbose information about operations",
	)
}

func Execute() error {
	return rootCmd.Execute()
}

func expectArgs(args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("expected exactly %d arguments, got %d", n, len(args))
	}
	return nil
}

func loadKey() (*ecdsa.PrivateKey, common.Address, error) {
	priv, err := crypto.LoadECDSA(privateKeyFile)
	if err != nil {
		return nil, common.Address{}, err
	}
	return priv, crypto.PubkeyToAddress(priv.PublicKey), nil
}

// issue signs [utx] with the local key and waits for its confirmation.
func issue(utx chain.UnsignedTransaction) (client.Client, common.Address, error) {
	priv, addr, err := loadKey()
	if err != nil {
		return nil, common.Address{}, err
	}
	cli := client.New(uri, requestTimeout)

	opts := []client.OpOption{client.WithPollTx()}
	if !verbose {
		opts = append(opts, client.WithQuiet())
	}
	txID, err := client.SignIssueTx(context.Background(), cli, utx, priv, opts...)
	if err != nil {
		return nil, common.Address{}, err
	}
	color.Green("confirmed %s", txID)
	return cli, addr, nil
}

func printBalance(cli client.Client, addr common.Address, asset ids.ID) error {
	b, err := cli.Balance(context.Background(), addr, asset)
	if err != nil {
		return err
	}
	color.Cyan("Address=%s Asset=%s Balance=%d", addr, asset, b)
	return nil
}

func seconds(d time.Duration) int64 {
	return int64(d / time.Second)
}
