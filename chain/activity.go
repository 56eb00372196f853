// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/ids"
)

const (
	ActivityCreate   = "create"
	ActivityRefresh  = "refresh"
	ActivityClaim    = "claim"
	ActivityBatch    = "batch"
	ActivityPlatform = "platform"
	ActivityProfile  = "profile"
	ActivityWallet   = "wallet"
	ActivityDeposit  = "deposit"
	ActivityWithdraw = "withdraw"
	ActivityExecute  = "execute"
)

type Activity struct {
	Tmstmp int64  `json:"timestamp"`
	TxID   ids.ID `json:"txId"`
	Sender string `json:"sender"`
	Typ    string `json:"type"`
	Record string `json:"record,omitempty"`
	Owner  string `json:"owner,omitempty"`
	To     string `json:"to,omitempty"` // common.Address will be 0x000 when not populated
	Asset  string `json:"asset,omitempty"`
	Amount uint64 `json:"amount,omitempty"`
}
