// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ethereum/go-ethereum/common"
)

const (
	day = 24 * 60 * 60

	// BasisPoints is the denominator of every fee rate.
	BasisPoints = 10_000
	// FullAllocation is the required sum of heir percentages.
	FullAllocation = 100
)

// NativeAsset identifies the ledger's native coin.
var NativeAsset = ids.Empty

type Allocation struct {
	Address common.Address `serialize:"true" json:"address"`
	Asset   ids.ID         `serialize:"true" json:"asset"`
	Balance uint64         `serialize:"true" json:"balance"`
}

type Genesis struct {
	Magic uint64 `serialize:"true" json:"magic"`

	// Inheritance params
	DefaultInactivityPeriod int64 `serialize:"true" json:"defaultInactivityPeriod"`
	SubscriptionTiers       bool  `serialize:"true" json:"subscriptionTiers"`
	FreeMaxHeirs            uint8 `serialize:"true" json:"freeMaxHeirs"`
	PremiumMaxHeirs         uint8 `serialize:"true" json:"premiumMaxHeirs"`
	MaxTokenAllocations     int32 `serialize:"true" json:"maxTokenAllocations"`

	// Batch transfer params
	MaxBatchTransfers int32 `serialize:"true" json:"maxBatchTransfers"`

	// Platform params
	DefaultFeeBPS    uint16 `serialize:"true" json:"defaultFeeBps"`
	MaxFeeBPS        uint16 `serialize:"true" json:"maxFeeBps"`
	MaxPauseDuration int64  `serialize:"true" json:"maxPauseDuration"`

	// Balances set at launch
	Allocations []*Allocation `serialize:"true" json:"allocations"`
}

func DefaultGenesis() *Genesis {
	return &Genesis{
		Magic: 1,

		DefaultInactivityPeriod: 2 * day,
		SubscriptionTiers:       true,
		FreeMaxHeirs:            1,
		PremiumMaxHeirs:         10,
		MaxTokenAllocations:     20,

		MaxBatchTransfers: 10,

		DefaultFeeBPS:    50,  // 0.5%
		MaxFeeBPS:        200, // 2%
		MaxPauseDuration: 7 * day,
	}
}

func (g *Genesis) Verify() error {
	if g.Magic == 0 {
		return ErrInvalidMagic
	}
	if g.DefaultInactivityPeriod <= 0 {
		return fmt.Errorf("%w: default inactivity period %d", ErrInvalidGenesis, g.DefaultInactivityPeriod)
	}
	if g.FreeMaxHeirs == 0 || g.PremiumMaxHeirs < g.FreeMaxHeirs {
		return fmt.Errorf("%w: heir limits %d/%d", ErrInvalidGenesis, g.FreeMaxHeirs, g.PremiumMaxHeirs)
	}
	if g.MaxBatchTransfers <= 0 || g.MaxTokenAllocations < 0 {
		return fmt.Errorf("%w: batch/token limits", ErrInvalidGenesis)
	}
	if g.MaxFeeBPS > BasisPoints || g.DefaultFeeBPS > g.MaxFeeBPS {
		return fmt.Errorf("%w: fee %d exceeds cap %d", ErrFeeTooHigh, g.DefaultFeeBPS, g.MaxFeeBPS)
	}
	return nil
}

// Load writes the genesis allocations to [db].
func (g *Genesis) Load(db database.Database) error {
	if err := g.Verify(); err != nil {
		return err
	}
	for _, alloc := range g.Allocations {
		if _, err := ModifyBalance(db, alloc.Address, alloc.Asset, true, alloc.Balance); err != nil {
			return err
		}
	}
	return nil
}

// MaxHeirs returns the heir limit of a subscription tier.
func (g *Genesis) MaxHeirs(premium bool) int {
	if premium || !g.SubscriptionTiers {
		return int(g.PremiumMaxHeirs)
	}
	return int(g.FreeMaxHeirs)
}
