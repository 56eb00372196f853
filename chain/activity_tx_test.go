// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"errors"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ethereum/go-ethereum/common"
)

func TestActivityTx(t *testing.T) {
	t.Parallel()

	owner := newAddress(t)
	heir := newAddress(t)

	db := memdb.New()
	defer db.Close()

	g := DefaultGenesis()
	g.SubscriptionTiers = false
	g.Allocations = []*Allocation{
		{Address: owner, Asset: NativeAsset, Balance: 1},
	}
	if err := g.Load(db); err != nil {
		t.Fatal(err)
	}
	create := &CreateHeirTx{BaseTx: &BaseTx{}, Heir: heir, Amount: 1, InactivityPeriod: 100}
	if err := create.Execute(txContext(g, db, 1, owner)); err != nil {
		t.Fatal(err)
	}
	id := HeirRecordID(owner, heir, NativeAsset)

	tt := []struct {
		record     ids.ID
		blockTime  int64
		sender     common.Address
		err        error
		lastActive int64
	}{
		{ // missing record
			record:     ids.GenerateTestID(),
			blockTime:  50,
			sender:     owner,
			err:        ErrRecordMissing,
			lastActive: 1,
		},
		{ // heir cannot refresh
			record:     id,
			blockTime:  50,
			sender:     heir,
			err:        ErrUnauthorized,
			lastActive: 1,
		},
		{
			record:     id,
			blockTime:  90,
			sender:     owner,
			err:        nil,
			lastActive: 90,
		},
		{ // time never moves backwards in practice, but refresh just overwrites
			record:     id,
			blockTime:  150,
			sender:     owner,
			err:        nil,
			lastActive: 150,
		},
	}
	for i, tv := range tt {
		tx := &ActivityTx{BaseTx: &BaseTx{}, Record: tv.record}
		err := tx.Execute(txContext(g, db, tv.blockTime, tv.sender))
		if !errors.Is(err, tv.err) {
			t.Fatalf("#%d: tx.Execute err expected %v, got %v", i, tv.err, err)
		}
		r, _, err := GetHeirRecord(db, id)
		if err != nil {
			t.Fatal(err)
		}
		if r.LastActive != tv.lastActive {
			t.Fatalf("#%d: last active expected %d, got %d", i, tv.lastActive, r.LastActive)
		}
	}

	// The refresh pushed the deadline out.
	claim := &ClaimTx{BaseTx: &BaseTx{}, Record: id}
	if err := claim.Execute(txContext(g, db, 250, heir)); !errors.Is(err, ErrOwnerStillActive) {
		t.Fatalf("claim err expected %v, got %v", ErrOwnerStillActive, err)
	}
	if err := claim.Execute(txContext(g, db, 251, heir)); err != nil {
		t.Fatal(err)
	}
	refresh := &ActivityTx{BaseTx: &BaseTx{}, Record: id}
	if err := refresh.Execute(txContext(g, db, 300, owner)); !errors.Is(err, ErrAlreadyClaimed) {
		t.Fatalf("refresh err expected %v, got %v", ErrAlreadyClaimed, err)
	}
}
