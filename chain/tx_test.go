// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/database/versiondb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

func TestTransaction(t *testing.T) {
	t.Parallel()

	priv, sender := newKey(t)
	heir := newAddress(t)

	db := memdb.New()
	defer db.Close()

	g := DefaultGenesis()
	g.Allocations = []*Allocation{
		{Address: sender, Asset: NativeAsset, Balance: 100},
	}
	if err := g.Load(db); err != nil {
		t.Fatal(err)
	}

	sign := func(utx UnsignedTransaction) *Transaction {
		dh, err := DigestHash(utx)
		if err != nil {
			t.Fatal(err)
		}
		sig, err := Sign(dh, priv)
		if err != nil {
			t.Fatal(err)
		}
		tx := NewTx(utx, sig)
		if err := tx.Init(g); err != nil {
			t.Fatal(err)
		}
		return tx
	}
	execute := func(tx *Transaction, blockTime int64) error {
		vdb := versiondb.New(db)
		if err := tx.Execute(g, vdb, blockTime); err != nil {
			vdb.Abort()
			return err
		}
		return vdb.Commit()
	}

	tx := sign(&CreateHeirTx{
		BaseTx:           &BaseTx{Magic: g.Magic, Nonce: 1},
		Heir:             heir,
		Amount:           10,
		InactivityPeriod: g.DefaultInactivityPeriod,
		Escrow:           true,
	})
	if tx.Sender() != sender {
		t.Fatalf("sender expected %s, got %s", sender.Hex(), tx.Sender().Hex())
	}

	// Decoding the wire bytes yields the same tx.
	decoded := new(Transaction)
	if _, err := Unmarshal(tx.Bytes(), decoded); err != nil {
		t.Fatal(err)
	}
	if err := decoded.Init(g); err != nil {
		t.Fatal(err)
	}
	if decoded.ID() != tx.ID() || decoded.Sender() != sender {
		t.Fatalf("decoded tx mismatch: %s/%s", decoded.ID(), decoded.Sender().Hex())
	}

	if err := execute(tx, 1); err != nil {
		t.Fatal(err)
	}
	has, err := HasTransaction(db, tx.ID())
	if err != nil {
		t.Fatal(err)
	}
	if !has {
		t.Fatal("executed tx not recorded")
	}
	mustBalance(t, db, sender, NativeAsset, 90)

	if err := execute(decoded, 2); !errors.Is(err, ErrDuplicateTx) {
		t.Fatalf("replay err expected %v, got %v", ErrDuplicateTx, err)
	}

	wrongMagic := sign(&ActivityTx{
		BaseTx: &BaseTx{Magic: g.Magic + 1},
		Record: HeirRecordID(sender, heir, NativeAsset),
	})
	if err := execute(wrongMagic, 3); !errors.Is(err, ErrInvalidMagic) {
		t.Fatalf("err expected %v, got %v", ErrInvalidMagic, err)
	}

	// A failing tx leaves no trace.
	failing := sign(&ClaimTx{
		BaseTx: &BaseTx{Magic: g.Magic},
		Record: HeirRecordID(sender, heir, NativeAsset),
	})
	if err := execute(failing, 4); !errors.Is(err, ErrOwnerStillActive) {
		t.Fatalf("err expected %v, got %v", ErrOwnerStillActive, err)
	}
	has, err = HasTransaction(db, failing.ID())
	if err != nil {
		t.Fatal(err)
	}
	if has {
		t.Fatal("failed tx must not be recorded")
	}

	bad := NewTx(&ActivityTx{BaseTx: &BaseTx{Magic: g.Magic}}, []byte{1, 2, 3})
	if err := bad.Init(g); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("err expected %v, got %v", ErrInvalidSignature, err)
	}
}

func TestSignatureReencoding(t *testing.T) {
	t.Parallel()

	priv, sender := newKey(t)
	recipient := newAddress(t)

	db := memdb.New()
	defer db.Close()

	g := DefaultGenesis()
	g.Allocations = []*Allocation{
		{Address: sender, Asset: NativeAsset, Balance: 100},
	}
	if err := g.Load(db); err != nil {
		t.Fatal(err)
	}

	utx := &BatchTransferTx{
		BaseTx:     &BaseTx{Magic: g.Magic, Nonce: 1},
		Asset:      NativeAsset,
		Recipients: []common.Address{recipient},
		Amounts:    []uint64{10},
	}
	dh, err := DigestHash(utx)
	if err != nil {
		t.Fatal(err)
	}
	sig, err := Sign(dh, priv)
	if err != nil {
		t.Fatal(err)
	}
	submit := func(sig []byte) error {
		tx := NewTx(utx.Copy(), sig)
		if err := tx.Init(g); err != nil {
			return err
		}
		vdb := versiondb.New(db)
		if err := tx.Execute(g, vdb, 1); err != nil {
			vdb.Abort()
			return err
		}
		return vdb.Commit()
	}
	if err := submit(sig); err != nil {
		t.Fatal(err)
	}

	// Same signature without the legacy V offset.
	unshifted := make([]byte, len(sig))
	copy(unshifted, sig)
	unshifted[vOffset] -= legacySigAdj
	if err := submit(unshifted); !errors.Is(err, ErrDuplicateTx) {
		t.Fatalf("err expected %v, got %v", ErrDuplicateTx, err)
	}

	// The high-S twin of the signature recovers the same key.
	n := crypto.S256().Params().N
	s := new(big.Int).SetBytes(sig[32:vOffset])
	highS := make([]byte, len(sig))
	copy(highS, sig)
	new(big.Int).Sub(n, s).FillBytes(highS[32:vOffset])
	highS[vOffset] = (sig[vOffset]-legacySigAdj)^1 + legacySigAdj
	if err := submit(highS); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("err expected %v, got %v", ErrInvalidSignature, err)
	}

	mustBalance(t, db, recipient, NativeAsset, 10)
	mustBalance(t, db, sender, NativeAsset, 90)
}

func TestDigestHashBindsType(t *testing.T) {
	t.Parallel()

	record := ids.GenerateTestID()
	a, err := DigestHash(&ActivityTx{BaseTx: &BaseTx{Magic: 1}, Record: record})
	if err != nil {
		t.Fatal(err)
	}
	c, err := DigestHash(&ClaimTx{BaseTx: &BaseTx{Magic: 1}, Record: record})
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a, c) {
		t.Fatal("txs of different types must not share a digest")
	}
}

func TestCopy(t *testing.T) {
	t.Parallel()

	orig := &BatchTransferTx{
		BaseTx:     &BaseTx{Magic: 1, Nonce: 2},
		Recipients: []common.Address{newAddress(t)},
		Amounts:    []uint64{5},
	}
	cp := orig.Copy().(*BatchTransferTx)
	cp.Amounts[0] = 6
	cp.BaseTx.Nonce = 3
	if orig.Amounts[0] != 5 || orig.Nonce != 2 {
		t.Fatal("copy shares memory with the original")
	}
}
