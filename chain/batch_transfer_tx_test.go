// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"errors"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/database/versiondb"
	"github.com/ethereum/go-ethereum/common"
)

func TestBatchTransferTx(t *testing.T) {
	t.Parallel()

	sender := newAddress(t)
	recipients := make([]common.Address, 11)
	for i := range recipients {
		recipients[i] = newAddress(t)
	}
	ones := func(n int) []uint64 {
		a := make([]uint64, n)
		for i := range a {
			a[i] = 1
		}
		return a
	}

	db := memdb.New()
	defer db.Close()

	g := DefaultGenesis()
	g.Allocations = []*Allocation{
		{Address: sender, Asset: NativeAsset, Balance: 100},
	}
	if err := g.Load(db); err != nil {
		t.Fatal(err)
	}
	escrow := &HeirRecord{Owner: recipients[10], Heir: recipients[9], Asset: NativeAsset, Amount: 1, Escrowed: true, InactivityPeriod: 1}
	if err := CreateHeirRecord(db, escrow); err != nil {
		t.Fatal(err)
	}

	tt := []struct {
		utx *BatchTransferTx
		err error
	}{
		{ // 11 recipients, checked before anything else
			utx: &BatchTransferTx{BaseTx: &BaseTx{}, Recipients: recipients, Amounts: ones(3)},
			err: ErrTooManyTransfers,
		},
		{
			utx: &BatchTransferTx{BaseTx: &BaseTx{}, Recipients: recipients[:3], Amounts: ones(2)},
			err: ErrMismatchedArrays,
		},
		{
			utx: &BatchTransferTx{BaseTx: &BaseTx{}},
			err: ErrNonActionable,
		},
		{ // positive amount to nobody
			utx: &BatchTransferTx{BaseTx: &BaseTx{}, Recipients: []common.Address{recipients[0], {}}, Amounts: []uint64{1, 1}},
			err: ErrInsufficientAccounts,
		},
		{
			utx: &BatchTransferTx{BaseTx: &BaseTx{}, Recipients: []common.Address{recipients[0], TreasuryAddress()}, Amounts: []uint64{1, 1}},
			err: ErrCustodialRecipient,
		},
		{
			utx: &BatchTransferTx{BaseTx: &BaseTx{}, Recipients: []common.Address{escrow.Custody()}, Amounts: []uint64{1}},
			err: ErrCustodialRecipient,
		},
		{ // second leg overdraws
			utx: &BatchTransferTx{BaseTx: &BaseTx{}, Recipients: recipients[:2], Amounts: []uint64{60, 60}},
			err: ErrInsufficientBalance,
		},
		{ // zero amounts are skipped, even to the zero address
			utx: &BatchTransferTx{BaseTx: &BaseTx{}, Recipients: []common.Address{{}, recipients[1]}, Amounts: []uint64{0, 5}},
			err: nil,
		},
		{
			utx: &BatchTransferTx{BaseTx: &BaseTx{}, Recipients: recipients[:10], Amounts: ones(10)},
			err: nil,
		},
	}
	for i, tv := range tt {
		vdb := versiondb.New(db)
		err := tv.utx.Execute(txContext(g, vdb, 1, sender))
		if !errors.Is(err, tv.err) {
			t.Fatalf("#%d: tx.Execute err expected %v, got %v", i, tv.err, err)
		}
		if err != nil {
			vdb.Abort()
			continue
		}
		if err := vdb.Commit(); err != nil {
			t.Fatal(err)
		}
	}

	// Failed batches left nothing behind.
	mustBalance(t, db, sender, NativeAsset, 85)
	mustBalance(t, db, recipients[0], NativeAsset, 1)
	mustBalance(t, db, recipients[1], NativeAsset, 6)
	mustBalance(t, db, recipients[9], NativeAsset, 1)
	mustBalance(t, db, recipients[10], NativeAsset, 0)
}
