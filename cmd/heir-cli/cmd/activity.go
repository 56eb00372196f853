// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ava-labs/heirvm/client"
)

var activityCmd = &cobra.Command{
	Use:   "activity [options]",
	Short: "View recent activity on the network",
	RunE:  activityFunc,
}

func activityFunc(cmd *cobra.Command, args []string) error {
	if err := expectArgs(args, 0); err != nil {
		return err
	}
	cli := client.New(uri, requestTimeout)
	activity, err := cli.RecentActivity(context.Background())
	if err != nil {
		return err
	}
	return client.PPActivity(activity)
}
