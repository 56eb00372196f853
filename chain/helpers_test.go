// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"crypto/ecdsa"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

func newKey(t *testing.T) (*ecdsa.PrivateKey, common.Address) {
	t.Helper()
	priv, err := crypto.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	return priv, crypto.PubkeyToAddress(priv.PublicKey)
}

func newAddress(t *testing.T) common.Address {
	t.Helper()
	_, addr := newKey(t)
	return addr
}

func txContext(g *Genesis, db database.Database, blockTime int64, sender common.Address) *TransactionContext {
	return &TransactionContext{
		Genesis:   g,
		Database:  db,
		BlockTime: blockTime,
		Sender:    sender,
	}
}

func mustBalance(t *testing.T, db database.KeyValueReader, addr common.Address, asset ids.ID, expected uint64) {
	t.Helper()
	bal, err := GetBalance(db, addr, asset)
	if err != nil {
		t.Fatal(err)
	}
	if bal != expected {
		t.Fatalf("balance of %s expected %d, got %d", addr.Hex(), expected, bal)
	}
}
