// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ethereum/go-ethereum/common"
)

// HeirRecord designates a single heir for one asset of an owner.
//
// A record is Active until claimed. Claimed never resets and records are
// never deleted, so a claimed record remains as an archive entry.
type HeirRecord struct {
	Owner common.Address `serialize:"true" json:"owner"`
	Heir  common.Address `serialize:"true" json:"heir"`
	Asset ids.ID         `serialize:"true" json:"asset"`

	// Amount is held in the record's escrow when Escrowed, otherwise it is
	// pulled from the owner's balance at claim time.
	Amount   uint64 `serialize:"true" json:"amount"`
	Escrowed bool   `serialize:"true" json:"escrowed"`

	InactivityPeriod int64 `serialize:"true" json:"inactivityPeriod"`
	LastActive       int64 `serialize:"true" json:"lastActive"`
	Created          int64 `serialize:"true" json:"created"`
	Claimed          bool  `serialize:"true" json:"claimed"`
}

func (r *HeirRecord) ID() ids.ID {
	return HeirRecordID(r.Owner, r.Heir, r.Asset)
}

// Custody returns the address the claim pays out of.
func (r *HeirRecord) Custody() common.Address {
	if r.Escrowed {
		return EscrowAddress(r.ID())
	}
	return r.Owner
}

// Claimable reports whether the heir may claim at [now].
func (r *HeirRecord) Claimable(now int64) bool {
	return !r.Claimed && Inactive(now, r.LastActive, r.InactivityPeriod)
}
