// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"bytes"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ethereum/go-ethereum/common"
)

func (t *TransactionContext) authorized(owner common.Address) bool {
	return bytes.Equal(owner[:], t.Sender[:])
}

func loadPlatform(t *TransactionContext) (*PlatformConfig, *Treasury, error) {
	p, tr, exists, err := GetPlatform(t.Database)
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		return nil, nil, ErrPlatformMissing
	}
	return p, tr, nil
}

// requireAdmin loads the platform state and checks the sender against the
// stored admin.
func requireAdmin(t *TransactionContext) (*PlatformConfig, *Treasury, error) {
	p, tr, err := loadPlatform(t)
	if err != nil {
		return nil, nil, err
	}
	if !t.authorized(p.Admin) {
		return nil, nil, ErrUnauthorizedAdmin
	}
	return p, tr, nil
}

// checkNotPaused passes when no platform has been initialized.
func checkNotPaused(t *TransactionContext) error {
	p, _, exists, err := GetPlatform(t.Database)
	if err != nil {
		return err
	}
	if exists && p.IsPaused(t.Genesis, t.BlockTime) {
		return ErrPlatformPaused
	}
	return nil
}

// ownerTier returns the profile of [owner] (nil if none) and whether it is
// premium.
func ownerTier(t *TransactionContext, owner common.Address) (*UserProfile, bool, error) {
	p, exists, err := GetProfile(t.Database, owner)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, nil
	}
	return p, p.Premium, nil
}

func verifyInactivityPeriod(g *Genesis, premium bool, period int64) error {
	if period <= 0 {
		return ErrInvalidInactivityPeriod
	}
	if g.SubscriptionTiers && !premium && period != g.DefaultInactivityPeriod {
		return ErrCustomInactivityNotAllowed
	}
	return nil
}

func requirePremium(t *TransactionContext, owner common.Address) error {
	if !t.Genesis.SubscriptionTiers {
		return nil
	}
	_, premium, err := ownerTier(t, owner)
	if err != nil {
		return err
	}
	if !premium {
		return ErrPremiumRequired
	}
	return nil
}

func bumpInheritancesCreated(t *TransactionContext, p *UserProfile) error {
	if p == nil {
		return nil
	}
	p.InheritancesCreated++
	return PutProfile(t.Database, p)
}

// verifyWallet returns the sender's unexecuted smart wallet.
func verifyWallet(t *TransactionContext) (*SmartWallet, error) {
	w, exists, err := GetWallet(t.Database, t.Sender)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrWalletMissing
	}
	if w.Executed {
		return nil, ErrAlreadyExecuted
	}
	return w, nil
}

// verifyRecipient rejects payments into custody that no record or wallet
// accounts for.
func verifyRecipient(db database.KeyValueReader, to common.Address) error {
	custodial, err := IsCustodial(db, to)
	if err != nil {
		return err
	}
	if custodial {
		return ErrCustodialRecipient
	}
	return nil
}

func addressString(a common.Address) string {
	if a == zeroAddress {
		return ""
	}
	return a.Hex()
}
