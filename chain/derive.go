// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Seeds for deterministic addressing. Changing any of them moves every
// record and custodial holding.
var (
	heirSeed     = []byte("heir")
	escrowSeed   = []byte("escrow")
	walletSeed   = []byte("smart_wallet")
	treasurySeed = []byte("treasury")
)

// HeirRecordID derives the storage key of the record for the
// (owner, heir, asset) tuple.
func HeirRecordID(owner common.Address, heir common.Address, asset ids.ID) ids.ID {
	var id ids.ID
	copy(id[:], crypto.Keccak256(heirSeed, owner[:], heir[:], asset[:]))
	return id
}

// EscrowAddress is the custodial holding of an escrowed heir record. No key
// controls it; only tx execution moves funds out of it.
func EscrowAddress(record ids.ID) common.Address {
	return common.BytesToAddress(crypto.Keccak256(escrowSeed, record[:]))
}

// WalletAddress is the custodial holding of [owner]'s smart wallet.
func WalletAddress(owner common.Address) common.Address {
	return common.BytesToAddress(crypto.Keccak256(walletSeed, owner[:]))
}

// TreasuryAddress holds collected platform fees.
func TreasuryAddress() common.Address {
	return common.BytesToAddress(crypto.Keccak256(treasurySeed))
}
