// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package version implements "version" commands.
package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava-labs/heirvm/version"
	"github.com/ava-labs/heirvm/vm"
)

func init() {
	cobra.EnablePrefixMatching = true
}

// NewCommand implements "heirvm version" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Prints out the version",
		RunE:  versionFunc,
	}
	return cmd
}

func versionFunc(cmd *cobra.Command, args []string) error {
	fmt.Printf("%s@%s\n", vm.Name, version.Version)
	return nil
}
