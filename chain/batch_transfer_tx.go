// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ethereum/go-ethereum/common"
)

var _ UnsignedTransaction = &BatchTransferTx{}

// BatchTransferTx pays several recipients in order. A failure on any leg
// fails the whole batch.
type BatchTransferTx struct {
	*BaseTx    `serialize:"true" json:"baseTx"`
	Asset      ids.ID           `serialize:"true" json:"asset"`
	Recipients []common.Address `serialize:"true" json:"recipients"`
	Amounts    []uint64         `serialize:"true" json:"amounts"`
}

func (b *BatchTransferTx) Execute(t *TransactionContext) error {
	if len(b.Recipients) > int(t.Genesis.MaxBatchTransfers) {
		return ErrTooManyTransfers
	}
	if len(b.Recipients) != len(b.Amounts) {
		return ErrMismatchedArrays
	}
	if len(b.Recipients) == 0 {
		return ErrNonActionable
	}
	for i, to := range b.Recipients {
		amount := b.Amounts[i]
		if amount == 0 {
			continue
		}
		if to == zeroAddress {
			return ErrInsufficientAccounts
		}
		if err := verifyRecipient(t.Database, to); err != nil {
			return err
		}
		if err := Transfer(t.Database, t.Sender, to, b.Asset, amount); err != nil {
			return err
		}
	}
	return nil
}

func (b *BatchTransferTx) Activity() *Activity {
	total := uint64(0)
	for _, a := range b.Amounts {
		total += a
	}
	return &Activity{
		Typ:    ActivityBatch,
		Asset:  b.Asset.String(),
		Amount: total,
	}
}

func (b *BatchTransferTx) Copy() UnsignedTransaction {
	recipients := make([]common.Address, len(b.Recipients))
	copy(recipients, b.Recipients)
	amounts := make([]uint64, len(b.Amounts))
	copy(amounts, b.Amounts)
	return &BatchTransferTx{
		BaseTx:     b.BaseTx.Copy(),
		Asset:      b.Asset,
		Recipients: recipients,
		Amounts:    amounts,
	}
}
