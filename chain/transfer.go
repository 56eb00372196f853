// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ethereum/go-ethereum/common"
)

// Transfer moves [amount] of [asset] between two holdings. A zero amount is
// a no-op.
func Transfer(db database.Database, from common.Address, to common.Address, asset ids.ID, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if _, err := ModifyBalance(db, from, asset, false, amount); err != nil {
		return err
	}
	_, err := ModifyBalance(db, to, asset, true, amount)
	return err
}
