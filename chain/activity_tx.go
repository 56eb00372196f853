// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/ids"
)

var _ UnsignedTransaction = &ActivityTx{}

// ActivityTx is the owner's proof of life for one heir record.
type ActivityTx struct {
	*BaseTx `serialize:"true" json:"baseTx"`
	Record  ids.ID `serialize:"true" json:"record"`
}

func (a *ActivityTx) Execute(t *TransactionContext) error {
	r, exists, err := GetHeirRecord(t.Database, a.Record)
	if err != nil {
		return err
	}
	if !exists {
		return ErrRecordMissing
	}
	if !t.authorized(r.Owner) {
		return ErrUnauthorized
	}
	if r.Claimed {
		return ErrAlreadyClaimed
	}
	r.LastActive = t.BlockTime
	return PutHeirRecord(t.Database, r)
}

func (a *ActivityTx) Activity() *Activity {
	return &Activity{
		Typ:    ActivityRefresh,
		Record: a.Record.String(),
	}
}

func (a *ActivityTx) Copy() UnsignedTransaction {
	return &ActivityTx{
		BaseTx: a.BaseTx.Copy(),
		Record: a.Record,
	}
}
