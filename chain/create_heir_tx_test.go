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

func TestCreateHeirTx(t *testing.T) {
	t.Parallel()

	owner := newAddress(t)
	heir := newAddress(t)
	heir2 := newAddress(t)
	poor := newAddress(t)
	token := ids.GenerateTestID()

	db := memdb.New()
	defer db.Close()

	g := DefaultGenesis()
	g.Allocations = []*Allocation{
		{Address: owner, Asset: NativeAsset, Balance: 10_000},
		{Address: owner, Asset: token, Balance: 50},
	}
	if err := g.Load(db); err != nil {
		t.Fatal(err)
	}
	period := g.DefaultInactivityPeriod

	tt := []struct {
		utx    *CreateHeirTx
		sender common.Address
		err    error
	}{
		{ // zero period
			utx:    &CreateHeirTx{BaseTx: &BaseTx{}, Heir: heir, Amount: 1},
			sender: owner,
			err:    ErrInvalidInactivityPeriod,
		},
		{ // negative period
			utx:    &CreateHeirTx{BaseTx: &BaseTx{}, Heir: heir, Amount: 1, InactivityPeriod: -1},
			sender: owner,
			err:    ErrInvalidInactivityPeriod,
		},
		{ // zero amount
			utx:    &CreateHeirTx{BaseTx: &BaseTx{}, Heir: heir, InactivityPeriod: period},
			sender: owner,
			err:    ErrInvalidAmount,
		},
		{ // zero heir
			utx:    &CreateHeirTx{BaseTx: &BaseTx{}, Amount: 1, InactivityPeriod: period},
			sender: owner,
			err:    ErrInvalidHeir,
		},
		{ // self as heir
			utx:    &CreateHeirTx{BaseTx: &BaseTx{}, Heir: owner, Amount: 1, InactivityPeriod: period},
			sender: owner,
			err:    ErrInvalidHeir,
		},
		{ // free tier must use the default period
			utx:    &CreateHeirTx{BaseTx: &BaseTx{}, Heir: heir, Amount: 1, InactivityPeriod: period + 1},
			sender: owner,
			err:    ErrCustomInactivityNotAllowed,
		},
		{ // escrow without funds
			utx:    &CreateHeirTx{BaseTx: &BaseTx{}, Heir: heir, Amount: 1, InactivityPeriod: period, Escrow: true},
			sender: poor,
			err:    ErrInsufficientBalance,
		},
		{ // escrow more than held
			utx:    &CreateHeirTx{BaseTx: &BaseTx{}, Heir: heir, Asset: token, Amount: 51, InactivityPeriod: period, Escrow: true},
			sender: owner,
			err:    ErrInsufficientBalance,
		},
		{
			utx:    &CreateHeirTx{BaseTx: &BaseTx{}, Heir: heir, Asset: token, Amount: 50, InactivityPeriod: period, Escrow: true},
			sender: owner,
			err:    nil,
		},
		{ // duplicate (owner, heir, asset)
			utx:    &CreateHeirTx{BaseTx: &BaseTx{}, Heir: heir, Asset: token, Amount: 1, InactivityPeriod: period},
			sender: owner,
			err:    ErrRecordExists,
		},
		{ // same heir, other asset
			utx:    &CreateHeirTx{BaseTx: &BaseTx{}, Heir: heir, Amount: 100, InactivityPeriod: period},
			sender: owner,
			err:    nil,
		},
		{ // unescrowed records need no balance
			utx:    &CreateHeirTx{BaseTx: &BaseTx{}, Heir: heir2, Amount: 100, InactivityPeriod: period},
			sender: poor,
			err:    nil,
		},
	}
	for i, tv := range tt {
		err := tv.utx.Execute(txContext(g, db, 10, tv.sender))
		if !errors.Is(err, tv.err) {
			t.Fatalf("#%d: tx.Execute err expected %v, got %v", i, tv.err, err)
		}
	}

	mustBalance(t, db, owner, token, 0)
	mustBalance(t, db, owner, NativeAsset, 10_000)
	mustBalance(t, db, EscrowAddress(HeirRecordID(owner, heir, token)), token, 50)

	owned, err := GetOwnedRecords(db, owner)
	if err != nil {
		t.Fatal(err)
	}
	if len(owned) != 2 {
		t.Fatalf("owned records expected 2, got %d", len(owned))
	}
	inherited, err := GetInheritances(db, heir)
	if err != nil {
		t.Fatal(err)
	}
	if len(inherited) != 2 {
		t.Fatalf("inheritances expected 2, got %d", len(inherited))
	}

	r, exists, err := GetHeirRecord(db, HeirRecordID(poor, heir2, NativeAsset))
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Fatal("record missing")
	}
	if r.LastActive != 10 || r.Claimed || r.Escrowed {
		t.Fatalf("unexpected record %+v", r)
	}
	if r.Custody() != poor {
		t.Fatalf("unescrowed custody expected owner, got %s", r.Custody().Hex())
	}
}

func TestCreateHeirTxProfile(t *testing.T) {
	t.Parallel()

	admin := newAddress(t)
	owner := newAddress(t)
	heir := newAddress(t)

	db := memdb.New()
	defer db.Close()

	g := DefaultGenesis()
	if err := g.Load(db); err != nil {
		t.Fatal(err)
	}
	if err := (&InitializePlatformTx{BaseTx: &BaseTx{}}).Execute(txContext(g, db, 1, admin)); err != nil {
		t.Fatal(err)
	}
	if err := (&CreateProfileTx{BaseTx: &BaseTx{}, Premium: true}).Execute(txContext(g, db, 1, owner)); err != nil {
		t.Fatal(err)
	}

	// Premium owners may pick any period.
	create := &CreateHeirTx{BaseTx: &BaseTx{}, Heir: heir, Amount: 5, InactivityPeriod: 60}
	if err := create.Execute(txContext(g, db, 2, owner)); err != nil {
		t.Fatal(err)
	}
	p, _, err := GetProfile(db, owner)
	if err != nil {
		t.Fatal(err)
	}
	if p.InheritancesCreated != 1 {
		t.Fatalf("inheritances created expected 1, got %d", p.InheritancesCreated)
	}

	// Paused platforms refuse new records.
	if err := (&PauseTx{BaseTx: &BaseTx{}, Paused: true}).Execute(txContext(g, db, 3, admin)); err != nil {
		t.Fatal(err)
	}
	create = &CreateHeirTx{BaseTx: &BaseTx{}, Heir: heir, Asset: ids.GenerateTestID(), Amount: 5, InactivityPeriod: 60}
	if err := create.Execute(txContext(g, db, 4, owner)); !errors.Is(err, ErrPlatformPaused) {
		t.Fatalf("err expected %v, got %v", ErrPlatformPaused, err)
	}
	// The pause lapses on its own.
	if err := create.Execute(txContext(g, db, 4+g.MaxPauseDuration, owner)); err != nil {
		t.Fatal(err)
	}
}
