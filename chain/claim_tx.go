// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/ids"
)

var _ UnsignedTransaction = &ClaimTx{}

type ClaimTx struct {
	*BaseTx `serialize:"true" json:"baseTx"`
	Record  ids.ID `serialize:"true" json:"record"`
}

// Execute checks state, then the deadline, then the caller, in that order.
func (c *ClaimTx) Execute(t *TransactionContext) error {
	r, exists, err := GetHeirRecord(t.Database, c.Record)
	if err != nil {
		return err
	}
	if !exists {
		return ErrRecordMissing
	}
	if r.Claimed {
		return ErrAlreadyClaimed
	}
	if !Inactive(t.BlockTime, r.LastActive, r.InactivityPeriod) {
		return ErrOwnerStillActive
	}
	if !t.authorized(r.Heir) {
		return ErrUnauthorized
	}
	if err := Transfer(t.Database, r.Custody(), r.Heir, r.Asset, r.Amount); err != nil {
		return err
	}
	r.Claimed = true
	return PutHeirRecord(t.Database, r)
}

func (c *ClaimTx) Activity() *Activity {
	return &Activity{
		Typ:    ActivityClaim,
		Record: c.Record.String(),
	}
}

func (c *ClaimTx) Copy() UnsignedTransaction {
	return &ClaimTx{
		BaseTx: c.BaseTx.Copy(),
		Record: c.Record,
	}
}
