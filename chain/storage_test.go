// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ethereum/go-ethereum/common"
)

func TestPrefixKeys(t *testing.T) {
	t.Parallel()

	addr := common.HexToAddress("0xff")
	id := ids.ID{0x1}
	tt := []struct {
		k        []byte
		expected []byte
	}{
		{
			k:        BalanceKey(addr, id),
			expected: append(append(append([]byte{balancePrefix, PrefixDelimiter}, addr[:]...), PrefixDelimiter), id[:]...),
		},
		{
			k:        HeirRecordKey(id),
			expected: append([]byte{heirPrefix, PrefixDelimiter}, id[:]...),
		},
		{
			k:        WalletKey(addr),
			expected: append([]byte{walletPrefix, PrefixDelimiter}, addr[:]...),
		},
	}
	for i, tv := range tt {
		if !bytes.Equal(tv.k, tv.expected) {
			t.Fatalf("#%d: key expected %x, got %x", i, tv.expected, tv.k)
		}
	}
}

func TestModifyBalance(t *testing.T) {
	t.Parallel()

	db := memdb.New()
	defer db.Close()

	addr := common.HexToAddress("0x01")
	asset := ids.GenerateTestID()

	if _, err := ModifyBalance(db, addr, asset, false, 1); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("err expected %v, got %v", ErrInsufficientBalance, err)
	}
	if _, err := ModifyBalance(db, addr, asset, true, math.MaxUint64); err != nil {
		t.Fatal(err)
	}
	if _, err := ModifyBalance(db, addr, asset, true, 1); !errors.Is(err, ErrBalanceOverflow) {
		t.Fatalf("err expected %v, got %v", ErrBalanceOverflow, err)
	}
	// Other assets of the same holder are independent.
	if bal, err := GetBalance(db, addr, NativeAsset); err != nil || bal != 0 {
		t.Fatalf("native balance expected 0, got %d (%v)", bal, err)
	}
	n, err := ModifyBalance(db, addr, asset, false, math.MaxUint64)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("balance expected 0, got %d", n)
	}
	// Empty balances are dropped from state.
	has, err := db.Has(BalanceKey(addr, asset))
	if err != nil {
		t.Fatal(err)
	}
	if has {
		t.Fatal("zero balance should be deleted")
	}
}

func TestRecordIndexes(t *testing.T) {
	t.Parallel()

	db := memdb.New()
	defer db.Close()

	owner := newAddress(t)
	other := newAddress(t)
	heir := newAddress(t)

	records := []*HeirRecord{
		{Owner: owner, Heir: heir, Asset: NativeAsset, Amount: 1, InactivityPeriod: 1},
		{Owner: owner, Heir: heir, Asset: ids.GenerateTestID(), Amount: 2, InactivityPeriod: 1},
		{Owner: other, Heir: heir, Asset: NativeAsset, Amount: 3, InactivityPeriod: 1},
		{Owner: other, Heir: owner, Asset: NativeAsset, Amount: 4, InactivityPeriod: 1},
	}
	for _, r := range records {
		if err := CreateHeirRecord(db, r); err != nil {
			t.Fatal(err)
		}
	}

	tt := []struct {
		f        func() ([]ids.ID, error)
		expected int
	}{
		{func() ([]ids.ID, error) { return GetOwnedRecords(db, owner) }, 2},
		{func() ([]ids.ID, error) { return GetOwnedRecords(db, other) }, 2},
		{func() ([]ids.ID, error) { return GetOwnedRecords(db, heir) }, 0},
		{func() ([]ids.ID, error) { return GetInheritances(db, heir) }, 3},
		{func() ([]ids.ID, error) { return GetInheritances(db, owner) }, 1},
	}
	for i, tv := range tt {
		got, err := tv.f()
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != tv.expected {
			t.Fatalf("#%d: expected %d ids, got %d", i, tv.expected, len(got))
		}
		for _, id := range got {
			if _, exists, err := GetHeirRecord(db, id); err != nil || !exists {
				t.Fatalf("#%d: indexed record %s missing (%v)", i, id, err)
			}
		}
	}
}

func TestGenesisVerify(t *testing.T) {
	t.Parallel()

	tt := []struct {
		mutate func(g *Genesis)
		err    error
	}{
		{mutate: func(g *Genesis) {}, err: nil},
		{mutate: func(g *Genesis) { g.Magic = 0 }, err: ErrInvalidMagic},
		{mutate: func(g *Genesis) { g.DefaultInactivityPeriod = 0 }, err: ErrInvalidGenesis},
		{mutate: func(g *Genesis) { g.FreeMaxHeirs = 0 }, err: ErrInvalidGenesis},
		{mutate: func(g *Genesis) { g.PremiumMaxHeirs = 0 }, err: ErrInvalidGenesis},
		{mutate: func(g *Genesis) { g.MaxBatchTransfers = 0 }, err: ErrInvalidGenesis},
		{mutate: func(g *Genesis) { g.DefaultFeeBPS = g.MaxFeeBPS + 1 }, err: ErrFeeTooHigh},
	}
	for i, tv := range tt {
		g := DefaultGenesis()
		tv.mutate(g)
		if err := g.Verify(); !errors.Is(err, tv.err) {
			t.Fatalf("#%d: err expected %v, got %v", i, tv.err, err)
		}
	}
}

func TestGenesisCodec(t *testing.T) {
	t.Parallel()

	g := DefaultGenesis()
	g.Allocations = []*Allocation{
		{Address: newAddress(t), Asset: NativeAsset, Balance: 10},
	}
	b, err := Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	decoded := new(Genesis)
	if _, err := Unmarshal(b, decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.MaxBatchTransfers != g.MaxBatchTransfers || decoded.MaxTokenAllocations != g.MaxTokenAllocations {
		t.Fatalf("limits expected %d/%d, got %d/%d",
			g.MaxBatchTransfers, g.MaxTokenAllocations,
			decoded.MaxBatchTransfers, decoded.MaxTokenAllocations)
	}
}

func TestIsCustodial(t *testing.T) {
	t.Parallel()

	db := memdb.New()
	defer db.Close()

	owner := newAddress(t)
	heir := newAddress(t)
	escrowed := &HeirRecord{Owner: owner, Heir: heir, Asset: NativeAsset, Amount: 1, Escrowed: true, InactivityPeriod: 1}
	direct := &HeirRecord{Owner: owner, Heir: heir, Asset: ids.GenerateTestID(), Amount: 1, InactivityPeriod: 1}
	for _, r := range []*HeirRecord{escrowed, direct} {
		if err := CreateHeirRecord(db, r); err != nil {
			t.Fatal(err)
		}
	}
	if err := PutWallet(db, &SmartWallet{Owner: heir, InactivityPeriod: 1}); err != nil {
		t.Fatal(err)
	}

	tt := []struct {
		addr      common.Address
		custodial bool
	}{
		{TreasuryAddress(), true},
		{escrowed.Custody(), true},
		{WalletAddress(heir), true},
		{WalletAddress(owner), false},
		{direct.Custody(), false}, // the owner itself
		{heir, false},
	}
	for i, tv := range tt {
		custodial, err := IsCustodial(db, tv.addr)
		if err != nil {
			t.Fatal(err)
		}
		if custodial != tv.custodial {
			t.Fatalf("#%d: custodial expected %t, got %t", i, tv.custodial, custodial)
		}
	}
}
