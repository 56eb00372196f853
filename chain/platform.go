// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ethereum/go-ethereum/common"
)

// PlatformConfig is the singleton fee and admin configuration.
type PlatformConfig struct {
	Admin  common.Address `serialize:"true" json:"admin"`
	FeeBPS uint16         `serialize:"true" json:"feeBps"`

	Paused         bool  `serialize:"true" json:"paused"`
	PauseTimestamp int64 `serialize:"true" json:"pauseTimestamp"`

	TotalFeesCollected        uint64 `serialize:"true" json:"totalFeesCollected"`
	TotalInheritancesExecuted uint64 `serialize:"true" json:"totalInheritancesExecuted"`
	TotalInheritanceValue     uint64 `serialize:"true" json:"totalInheritanceValue"`
	TotalUsers                uint64 `serialize:"true" json:"totalUsers"`
	PremiumUsers              uint64 `serialize:"true" json:"premiumUsers"`
	TotalMultiTokenWallets    uint64 `serialize:"true" json:"totalMultiTokenWallets"`
}

// IsPaused reports whether a pause is in effect at [now]. Pauses lapse on
// their own after the genesis maximum.
func (p *PlatformConfig) IsPaused(g *Genesis, now int64) bool {
	return p.Paused && now-p.PauseTimestamp <= g.MaxPauseDuration
}

// Treasury mirrors the native balance of TreasuryAddress. Every path that
// moves fees updates both.
type Treasury struct {
	Admin        common.Address `serialize:"true" json:"admin"`
	TotalBalance uint64         `serialize:"true" json:"totalBalance"`
}

// UserProfile tracks subscription status and usage counters of one owner.
type UserProfile struct {
	User    common.Address `serialize:"true" json:"user"`
	Premium bool           `serialize:"true" json:"premium"`

	InheritancesCreated uint32 `serialize:"true" json:"inheritancesCreated"`
	FeesPaid            uint64 `serialize:"true" json:"feesPaid"`
	Created             int64  `serialize:"true" json:"created"`
}
