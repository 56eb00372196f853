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

func TestClaimTx(t *testing.T) {
	t.Parallel()

	owner := newAddress(t)
	heir := newAddress(t)
	stranger := newAddress(t)
	token := ids.GenerateTestID()

	db := memdb.New()
	defer db.Close()

	g := DefaultGenesis()
	g.Allocations = []*Allocation{
		{Address: owner, Asset: token, Balance: 1000},
	}
	if err := g.Load(db); err != nil {
		t.Fatal(err)
	}

	created := int64(1_000)
	create := &CreateHeirTx{
		BaseTx:           &BaseTx{},
		Heir:             heir,
		Asset:            token,
		Amount:           1000,
		InactivityPeriod: 2 * day,
		Escrow:           true,
	}
	if err := create.Execute(txContext(g, db, created, owner)); err != nil {
		t.Fatal(err)
	}
	id := HeirRecordID(owner, heir, token)
	mustBalance(t, db, owner, token, 0)
	mustBalance(t, db, EscrowAddress(id), token, 1000)

	tt := []struct {
		blockTime int64
		sender    common.Address
		err       error
	}{
		{ // one day in
			blockTime: created + day,
			sender:    heir,
			err:       ErrOwnerStillActive,
		},
		{ // exactly at the deadline
			blockTime: created + 2*day,
			sender:    heir,
			err:       ErrOwnerStillActive,
		},
		{ // deadline passed, wrong caller
			blockTime: created + 2*day + 1,
			sender:    stranger,
			err:       ErrUnauthorized,
		},
		{ // deadline passed, owner cannot claim either
			blockTime: created + 2*day + 1,
			sender:    owner,
			err:       ErrUnauthorized,
		},
		{
			blockTime: created + 2*day + 1,
			sender:    heir,
			err:       nil,
		},
		{ // terminal
			blockTime: created + 3*day,
			sender:    heir,
			err:       ErrAlreadyClaimed,
		},
		{ // terminal state wins over authorization
			blockTime: created + 3*day,
			sender:    stranger,
			err:       ErrAlreadyClaimed,
		},
	}
	for i, tv := range tt {
		tx := &ClaimTx{BaseTx: &BaseTx{}, Record: id}
		err := tx.Execute(txContext(g, db, tv.blockTime, tv.sender))
		if !errors.Is(err, tv.err) {
			t.Fatalf("#%d: tx.Execute err expected %v, got %v", i, tv.err, err)
		}
	}

	mustBalance(t, db, heir, token, 1000)
	mustBalance(t, db, EscrowAddress(id), token, 0)
	r, exists, err := GetHeirRecord(db, id)
	if err != nil {
		t.Fatal(err)
	}
	if !exists || !r.Claimed {
		t.Fatalf("record expected claimed, got %+v", r)
	}
}

func TestClaimTxUnescrowed(t *testing.T) {
	t.Parallel()

	owner := newAddress(t)
	heir := newAddress(t)

	db := memdb.New()
	defer db.Close()

	g := DefaultGenesis()
	g.SubscriptionTiers = false
	g.Allocations = []*Allocation{
		{Address: owner, Asset: NativeAsset, Balance: 500},
	}
	if err := g.Load(db); err != nil {
		t.Fatal(err)
	}

	create := &CreateHeirTx{
		BaseTx:           &BaseTx{},
		Heir:             heir,
		Asset:            NativeAsset,
		Amount:           400,
		InactivityPeriod: 10,
	}
	if err := create.Execute(txContext(g, db, 1, owner)); err != nil {
		t.Fatal(err)
	}
	// Nothing moves at creation.
	mustBalance(t, db, owner, NativeAsset, 500)

	id := HeirRecordID(owner, heir, NativeAsset)

	// Owner spends below the promised amount; the claim must fail as a
	// whole.
	if err := Transfer(db, owner, newAddress(t), NativeAsset, 200); err != nil {
		t.Fatal(err)
	}
	claim := &ClaimTx{BaseTx: &BaseTx{}, Record: id}
	if err := claim.Execute(txContext(g, db, 12, heir)); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("claim err expected %v, got %v", ErrInsufficientBalance, err)
	}
	r, _, err := GetHeirRecord(db, id)
	if err != nil {
		t.Fatal(err)
	}
	if r.Claimed {
		t.Fatal("record must stay active when the transfer fails")
	}

	if _, err := ModifyBalance(db, owner, NativeAsset, true, 100); err != nil {
		t.Fatal(err)
	}
	if err := claim.Execute(txContext(g, db, 12, heir)); err != nil {
		t.Fatal(err)
	}
	mustBalance(t, db, heir, NativeAsset, 400)
	mustBalance(t, db, owner, NativeAsset, 0)
}

func TestClaimTxMissing(t *testing.T) {
	t.Parallel()

	db := memdb.New()
	defer db.Close()

	tx := &ClaimTx{BaseTx: &BaseTx{}, Record: ids.GenerateTestID()}
	err := tx.Execute(txContext(DefaultGenesis(), db, 1, newAddress(t)))
	if !errors.Is(err, ErrRecordMissing) {
		t.Fatalf("err expected %v, got %v", ErrRecordMissing, err)
	}
}
