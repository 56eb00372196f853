// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ethereum/go-ethereum/common"
)

var _ UnsignedTransaction = &CreateHeirTx{}

type CreateHeirTx struct {
	*BaseTx `serialize:"true" json:"baseTx"`

	Heir   common.Address `serialize:"true" json:"heir"`
	Asset  ids.ID         `serialize:"true" json:"asset"`
	Amount uint64         `serialize:"true" json:"amount"`

	// InactivityPeriod is in seconds.
	InactivityPeriod int64 `serialize:"true" json:"inactivityPeriod"`

	// Escrow moves [Amount] into the record's custody at creation. Without
	// it the funds stay with the owner until the claim.
	Escrow bool `serialize:"true" json:"escrow"`
}

func (c *CreateHeirTx) Execute(t *TransactionContext) error {
	if c.InactivityPeriod <= 0 {
		return ErrInvalidInactivityPeriod
	}
	if c.Amount == 0 {
		return ErrInvalidAmount
	}
	if c.Heir == zeroAddress || c.Heir == t.Sender {
		return ErrInvalidHeir
	}
	if err := checkNotPaused(t); err != nil {
		return err
	}
	profile, premium, err := ownerTier(t, t.Sender)
	if err != nil {
		return err
	}
	if err := verifyInactivityPeriod(t.Genesis, premium, c.InactivityPeriod); err != nil {
		return err
	}

	id := HeirRecordID(t.Sender, c.Heir, c.Asset)
	exists, err := HasHeirRecord(t.Database, id)
	if err != nil {
		return err
	}
	if exists {
		return ErrRecordExists
	}

	r := &HeirRecord{
		Owner:            t.Sender,
		Heir:             c.Heir,
		Asset:            c.Asset,
		Amount:           c.Amount,
		Escrowed:         c.Escrow,
		InactivityPeriod: c.InactivityPeriod,
		LastActive:       t.BlockTime,
		Created:          t.BlockTime,
	}
	if c.Escrow {
		if err := Transfer(t.Database, t.Sender, r.Custody(), c.Asset, c.Amount); err != nil {
			return err
		}
	}
	if err := CreateHeirRecord(t.Database, r); err != nil {
		return err
	}
	return bumpInheritancesCreated(t, profile)
}

func (c *CreateHeirTx) Activity() *Activity {
	return &Activity{
		Typ:    ActivityCreate,
		To:     c.Heir.Hex(),
		Asset:  c.Asset.String(),
		Amount: c.Amount,
	}
}

func (c *CreateHeirTx) Copy() UnsignedTransaction {
	heir := make([]byte, common.AddressLength)
	copy(heir, c.Heir[:])
	return &CreateHeirTx{
		BaseTx:           c.BaseTx.Copy(),
		Heir:             common.BytesToAddress(heir),
		Asset:            c.Asset,
		Amount:           c.Amount,
		InactivityPeriod: c.InactivityPeriod,
		Escrow:           c.Escrow,
	}
}
