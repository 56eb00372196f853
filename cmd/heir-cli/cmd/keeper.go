// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	log "github.com/inconshreveable/log15"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ava-labs/heirvm/client"
	"github.com/ava-labs/heirvm/keeper"
	"github.com/ava-labs/heirvm/parser"
)

const keeperEnvPrefix = "HEIRVM_KEEPER"

var keeperConfigFile string

func init() {
	config := keeper.Config{}
	config.SetDefaults()

	flags := keeperCmd.Flags()
	flags.StringVar(&keeperConfigFile, "config-file", "", "keeper config file (json, yaml or toml)")
	flags.Duration("check-interval", config.CheckInterval, "pause between two scans")
	flags.Int("batch-size", config.BatchSize, "submissions per scan step")
	flags.Int("concurrency", config.Concurrency, "submissions in flight at once")
	flags.Int("retries", config.Retries, "retries for a failed submission")
	flags.Duration("retry-delay", config.RetryDelay, "pause between two retries")
	flags.StringSlice("targets", nil, "only execute wallets of these owners")
	flags.Bool("claim-records", false, "also claim due records naming the local key")
	flags.Bool("once", false, "run a single scan and exit")
}

var keeperCmd = &cobra.Command{
	Use:   "keeper [options]",
	Short: "Executes overdue wallets with the local key",
	Long: `
Scans the ledger for smart wallets whose owner went inactive and
executes them, oldest deadline first. Settings can also come from
a config file or HEIRVM_KEEPER_* environment variables.

$ heir-cli keeper --check-interval 1m --claim-records

`,
	RunE: keeperFunc,
}

func loadKeeperConfig(cmd *cobra.Command) (keeper.Config, bool, error) {
	v := viper.New()
	v.SetEnvPrefix(keeperEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return keeper.Config{}, false, err
	}
	if keeperConfigFile != "" {
		v.SetConfigFile(keeperConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return keeper.Config{}, false, err
		}
	}

	config := keeper.Config{
		CheckInterval: v.GetDuration("check-interval"),
		BatchSize:     v.GetInt("batch-size"),
		Concurrency:   v.GetInt("concurrency"),
		Retries:       v.GetInt("retries"),
		RetryDelay:    v.GetDuration("retry-delay"),
		ClaimRecords:  v.GetBool("claim-records"),
	}
	for _, s := range v.GetStringSlice("targets") {
		owner, err := parser.ParseAddress(s)
		if err != nil {
			return keeper.Config{}, false, err
		}
		config.TargetOwners = append(config.TargetOwners, owner)
	}
	return config, v.GetBool("once"), config.Verify()
}

func keeperFunc(cmd *cobra.Command, args []string) error {
	if err := expectArgs(args, 0); err != nil {
		return err
	}
	config, once, err := loadKeeperConfig(cmd)
	if err != nil {
		return err
	}
	lvl := log.LvlInfo
	if verbose {
		lvl = log.LvlDebug
	}
	log.Root().SetHandler(log.LvlFilterHandler(lvl, log.StreamHandler(os.Stderr, log.TerminalFormat())))

	priv, _, err := loadKey()
	if err != nil {
		return err
	}
	k, err := keeper.New(config, client.New(uri, requestTimeout), priv)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if !once {
		return k.Run(ctx)
	}
	r, err := k.RunOnce(ctx)
	if err != nil {
		return err
	}
	color.Green("executed=%d claimed=%d skipped=%d failed=%d", r.Executed, r.Claimed, r.Skipped, r.Failed)
	if len(config.TargetOwners) == 0 {
		return nil
	}
	color.Cyan("targets=%s", strings.Join(hexes(config.TargetOwners), ","))
	return nil
}

func hexes(addrs []common.Address) []string {
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = a.Hex()
	}
	return out
}
