// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ethereum/go-ethereum/common"
)

type HeirAllocation struct {
	Heir       common.Address `serialize:"true" json:"heir"`
	Percentage uint8          `serialize:"true" json:"percentage"`
}

// TokenAllocation marks [Percentage] of the wallet's [Asset] holding as
// inheritable.
type TokenAllocation struct {
	Asset      ids.ID `serialize:"true" json:"asset"`
	Percentage uint8  `serialize:"true" json:"percentage"`
}

// SmartWallet splits everything deposited into its custodial holding across
// heirs once the owner goes inactive. Execution is permissionless.
type SmartWallet struct {
	Owner  common.Address    `serialize:"true" json:"owner"`
	Heirs  []HeirAllocation  `serialize:"true" json:"heirs"`
	Tokens []TokenAllocation `serialize:"true" json:"tokens"`

	InactivityPeriod int64 `serialize:"true" json:"inactivityPeriod"`
	LastActive       int64 `serialize:"true" json:"lastActive"`
	Created          int64 `serialize:"true" json:"created"`
	Executed         bool  `serialize:"true" json:"executed"`
}

func (w *SmartWallet) Custody() common.Address {
	return WalletAddress(w.Owner)
}

func (w *SmartWallet) Executable(now int64) bool {
	return !w.Executed && Inactive(now, w.LastActive, w.InactivityPeriod)
}

func (w *SmartWallet) HasToken(asset ids.ID) bool {
	for _, a := range w.Tokens {
		if a.Asset == asset {
			return true
		}
	}
	return false
}

func (w *SmartWallet) heirIndex(heir common.Address) int {
	for i, h := range w.Heirs {
		if h.Heir == heir {
			return i
		}
	}
	return -1
}

// TotalPercentage sums heir percentages without uint8 overflow.
func TotalPercentage(heirs []HeirAllocation) uint64 {
	total := uint64(0)
	for _, h := range heirs {
		total += uint64(h.Percentage)
	}
	return total
}

func validPercentage(p uint8) bool {
	return p > 0 && p <= FullAllocation
}

// verifyHeirs checks a full heir list for [owner].
func verifyHeirs(owner common.Address, heirs []HeirAllocation) error {
	seen := make(map[common.Address]struct{}, len(heirs))
	for _, h := range heirs {
		if h.Heir == zeroAddress || h.Heir == owner {
			return ErrInvalidHeir
		}
		if !validPercentage(h.Percentage) {
			return ErrInvalidAllocation
		}
		if _, ok := seen[h.Heir]; ok {
			return ErrHeirAlreadyExists
		}
		seen[h.Heir] = struct{}{}
	}
	if TotalPercentage(heirs) != FullAllocation {
		return ErrInvalidAllocation
	}
	return nil
}
