// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "heirvm" serves the inheritance ledger over JSON-RPC.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ava-labs/avalanchego/database/memdb"
	log "github.com/inconshreveable/log15"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ava-labs/heirvm/chain"
	"github.com/ava-labs/heirvm/cmd/heirvm/version"
	"github.com/ava-labs/heirvm/vm"
	ver "github.com/ava-labs/heirvm/version"
)

const envPrefix = "HEIRVM"

var (
	configFile string

	rootCmd = &cobra.Command{
		Use:        "heirvm",
		Short:      "HeirVM node",
		SuggestFor: []string{"heirvm"},
		RunE:       runFunc,
	}
)

func init() {
	cobra.EnablePrefixMatching = true

	config := vm.Config{}
	config.SetDefaults()

	flags := rootCmd.Flags()
	flags.StringVar(&configFile, "config-file", "", "node config file (json, yaml or toml)")
	flags.String("genesis-file", "", "genesis file, defaults to the built in genesis")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("listen-address", config.ListenAddress, "RPC listen address")
	flags.Duration("read-header-timeout", config.ReadHeaderTimeout, "HTTP read header timeout")
	flags.Duration("shutdown-timeout", config.ShutdownTimeout, "graceful shutdown timeout")
	flags.Int("activity-cache-size", config.ActivityCacheSize, "number of recent activity entries kept")
	flags.Int("tx-status-cache-size", config.TxStatusCacheSize, "number of transaction results kept")

	rootCmd.AddCommand(
		version.NewCommand(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "heirvm failed %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

// loadViper layers flags over environment over the config file.
func loadViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func loadGenesis(path string) (*chain.Genesis, error) {
	if path == "" {
		return chain.DefaultGenesis(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g := new(chain.Genesis)
	if err := json.Unmarshal(b, g); err != nil {
		return nil, fmt.Errorf("%w: %v", chain.ErrInvalidGenesis, err)
	}
	return g, nil
}

func runFunc(cmd *cobra.Command, args []string) error {
	v, err := loadViper(cmd.Flags())
	if err != nil {
		return err
	}

	lvl, err := log.LvlFromString(v.GetString("log-level"))
	if err != nil {
		return err
	}
	log.Root().SetHandler(log.LvlFilterHandler(lvl, log.StreamHandler(os.Stderr, log.LogfmtFormat())))

	config := vm.Config{
		ListenAddress:     v.GetString("listen-address"),
		ReadHeaderTimeout: v.GetDuration("read-header-timeout"),
		ShutdownTimeout:   v.GetDuration("shutdown-timeout"),
		ActivityCacheSize: v.GetInt("activity-cache-size"),
		TxStatusCacheSize: v.GetInt("tx-status-cache-size"),
	}
	g, err := loadGenesis(v.GetString("genesis-file"))
	if err != nil {
		return err
	}

	node, err := vm.New(config, g, memdb.New())
	if err != nil {
		return err
	}
	handler, err := node.Handler()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              config.ListenAddress,
		Handler:           handler,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("serving",
			"version", ver.Version,
			"address", config.ListenAddress,
			"endpoint", vm.PublicEndpoint,
		)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err = <-errc:
	case <-ctx.Done():
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		err = srv.Shutdown(sctx)
		cancel()
	}
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	if serr := node.Shutdown(); err == nil {
		err = serr
	}
	return err
}
