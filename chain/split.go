// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

type Share struct {
	Heir   common.Address `json:"heir"`
	Amount uint64         `json:"amount"`
}

// Distribution is the payout plan for one custodial balance.
//
// Shares are floored, so Remainder units stay behind in custody and are
// never paid out or returned to the owner.
type Distribution struct {
	Balance       uint64  `json:"balance"`
	Fee           uint64  `json:"fee"`
	Distributable uint64  `json:"distributable"`
	Shares        []Share `json:"shares"`
	Remainder     uint64  `json:"remainder"`
}

// mulDiv returns floor(a*b/d) without overflowing the product.
func mulDiv(a uint64, b uint64, d uint64) uint64 {
	x := uint256.NewInt(a)
	x.Mul(x, uint256.NewInt(b))
	x.Div(x, uint256.NewInt(d))
	return x.Uint64()
}

// Fee returns floor(balance*feeBPS/10000).
func Fee(balance uint64, feeBPS uint16) uint64 {
	return mulDiv(balance, uint64(feeBPS), BasisPoints)
}

// SplitDistribution computes the fee and per-heir shares of [balance].
// Heir percentages must sum to exactly 100.
func SplitDistribution(balance uint64, feeBPS uint16, heirs []HeirAllocation) (*Distribution, error) {
	if feeBPS > BasisPoints {
		return nil, ErrFeeTooHigh
	}
	if len(heirs) == 0 {
		return nil, ErrNoHeirs
	}
	for _, h := range heirs {
		if !validPercentage(h.Percentage) {
			return nil, ErrInvalidAllocation
		}
	}
	if TotalPercentage(heirs) != FullAllocation {
		return nil, ErrInvalidAllocation
	}

	d := &Distribution{
		Balance: balance,
		Fee:     Fee(balance, feeBPS),
		Shares:  make([]Share, len(heirs)),
	}
	d.Distributable = balance - d.Fee
	paid := uint64(0)
	for i, h := range heirs {
		amount := mulDiv(d.Distributable, uint64(h.Percentage), FullAllocation)
		d.Shares[i] = Share{Heir: h.Heir, Amount: amount}
		paid += amount
	}
	d.Remainder = d.Distributable - paid
	return d, nil
}
