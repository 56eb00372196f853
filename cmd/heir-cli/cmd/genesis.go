// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ava-labs/heirvm/chain"
)

var (
	genesisFile string

	defaultInactivityPeriod time.Duration
	freeTier                bool
	defaultFeeBPS           int
	maxFeeBPS               int

	magic uint64
)

func init() {
	genesisCmd.PersistentFlags().StringVar(
		&genesisFile,
		"genesis-file",
		filepath.Join(workDir, "genesis.json"),
		"genesis file path",
	)
	genesisCmd.PersistentFlags().DurationVar(
		&defaultInactivityPeriod,
		"default-inactivity-period",
		0,
		"inactivity period every owner may use (0 keeps the default)",
	)
	genesisCmd.PersistentFlags().BoolVar(
		&freeTier,
		"disable-tiers",
		false,
		"let every owner use premium features",
	)
	genesisCmd.PersistentFlags().IntVar(
		&defaultFeeBPS,
		"default-fee-bps",
		-1,
		"platform fee set at initialization, in basis points",
	)
	genesisCmd.PersistentFlags().IntVar(
		&maxFeeBPS,
		"max-fee-bps",
		-1,
		"highest fee the admin may set, in basis points",
	)
}

var genesisCmd = &cobra.Command{
	Use:   "genesis [magic] [allocations file] [options]",
	Short: "Creates a new genesis in the default location",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return errors.New("invalid args")
		}

		m, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return err
		}
		magic = m
		if magic == 0 {
			return chain.ErrInvalidMagic
		}

		return nil
	},
	RunE: genesisFunc,
}

func genesisFunc(cmd *cobra.Command, args []string) error {
	genesis := chain.DefaultGenesis()
	genesis.Magic = magic
	if defaultInactivityPeriod > 0 {
		genesis.DefaultInactivityPeriod = seconds(defaultInactivityPeriod)
	}
	if freeTier {
		genesis.SubscriptionTiers = false
	}
	if defaultFeeBPS >= 0 {
		genesis.DefaultFeeBPS = uint16(defaultFeeBPS)
	}
	if maxFeeBPS >= 0 {
		genesis.MaxFeeBPS = uint16(maxFeeBPS)
	}

	a, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}
	allocs := []*chain.Allocation{}
	if err := json.Unmarshal(a, &allocs); err != nil {
		return err
	}
	genesis.Allocations = allocs
	if err := genesis.Verify(); err != nil {
		return err
	}

	b, err := json.MarshalIndent(genesis, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(genesisFile, b, fsModeWrite); err != nil {
		return err
	}
	color.Green("created genesis and saved to %s", genesisFile)
	return nil
}
