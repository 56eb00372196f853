// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "heir-cli" implements heirvm client operation interface.
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/ava-labs/heirvm/cmd/heir-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		color.Red("heir-cli failed: %v", err)
		os.Exit(1)
	}
	os.Exit(0)
}
