// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

// Inactive reports whether strictly more than [period] seconds have elapsed
// since [lastActive]. Exactly [period] seconds is still active.
func Inactive(now int64, lastActive int64, period int64) bool {
	return now-lastActive > period
}

// Deadline is the last second at which the owner still counts as active.
func Deadline(lastActive int64, period int64) int64 {
	return lastActive + period
}
