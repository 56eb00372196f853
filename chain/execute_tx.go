// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ethereum/go-ethereum/common"
)

var _ UnsignedTransaction = &ExecuteTx{}

type TokenPayout struct {
	Asset        ids.ID        `json:"asset"`
	Distribution *Distribution `json:"distribution"`
}

// Payout is everything an execution of a wallet would move.
type Payout struct {
	Native *Distribution `json:"native"`
	Tokens []TokenPayout `json:"tokens"`
}

// PlanPayout splits the current custody of [w]. The platform fee is only
// charged on the native coin; each token allocation hands out its
// percentage of the token holding by the same heir percentages.
func PlanPayout(db database.KeyValueReader, w *SmartWallet, feeBPS uint16) (*Payout, error) {
	custody := w.Custody()
	bal, err := GetBalance(db, custody, NativeAsset)
	if err != nil {
		return nil, err
	}
	native, err := SplitDistribution(bal, feeBPS, w.Heirs)
	if err != nil {
		return nil, err
	}
	p := &Payout{Native: native, Tokens: make([]TokenPayout, 0, len(w.Tokens))}
	for _, tok := range w.Tokens {
		tbal, err := GetBalance(db, custody, tok.Asset)
		if err != nil {
			return nil, err
		}
		portion := mulDiv(tbal, uint64(tok.Percentage), FullAllocation)
		d, err := SplitDistribution(portion, 0, w.Heirs)
		if err != nil {
			return nil, err
		}
		p.Tokens = append(p.Tokens, TokenPayout{Asset: tok.Asset, Distribution: d})
	}
	return p, nil
}

// ExecuteTx distributes an inactive owner's smart wallet. Anyone may send
// it; funds only ever go to the stored heirs and the treasury.
type ExecuteTx struct {
	*BaseTx `serialize:"true" json:"baseTx"`
	Owner   common.Address `serialize:"true" json:"owner"`
}

func (e *ExecuteTx) Execute(t *TransactionContext) error {
	if err := checkNotPaused(t); err != nil {
		return err
	}
	w, exists, err := GetWallet(t.Database, e.Owner)
	if err != nil {
		return err
	}
	if !exists {
		return ErrWalletMissing
	}
	if w.Executed {
		return ErrAlreadyExecuted
	}
	if !Inactive(t.BlockTime, w.LastActive, w.InactivityPeriod) {
		return ErrOwnerStillActive
	}

	p, tr, initialized, err := GetPlatform(t.Database)
	if err != nil {
		return err
	}
	feeBPS := uint16(0)
	if initialized {
		feeBPS = p.FeeBPS
	}
	plan, err := PlanPayout(t.Database, w, feeBPS)
	if err != nil {
		return err
	}

	custody := w.Custody()
	if err := Transfer(t.Database, custody, TreasuryAddress(), NativeAsset, plan.Native.Fee); err != nil {
		return err
	}
	paid := uint64(0)
	for _, s := range plan.Native.Shares {
		if err := Transfer(t.Database, custody, s.Heir, NativeAsset, s.Amount); err != nil {
			return err
		}
		paid += s.Amount
	}
	for _, tok := range plan.Tokens {
		for _, s := range tok.Distribution.Shares {
			if err := Transfer(t.Database, custody, s.Heir, tok.Asset, s.Amount); err != nil {
				return err
			}
		}
	}

	w.Executed = true
	if err := PutWallet(t.Database, w); err != nil {
		return err
	}

	fee := plan.Native.Fee
	if initialized {
		tr.TotalBalance += fee
		p.TotalFeesCollected += fee
		p.TotalInheritancesExecuted++
		p.TotalInheritanceValue += paid
		if err := PutPlatform(t.Database, p, tr); err != nil {
			return err
		}
	}
	prof, exists, err := GetProfile(t.Database, e.Owner)
	if err != nil || !exists || fee == 0 {
		return err
	}
	prof.FeesPaid += fee
	return PutProfile(t.Database, prof)
}

func (e *ExecuteTx) Activity() *Activity {
	return &Activity{Typ: ActivityExecute, Owner: e.Owner.Hex()}
}

func (e *ExecuteTx) Copy() UnsignedTransaction {
	owner := make([]byte, common.AddressLength)
	copy(owner, e.Owner[:])
	return &ExecuteTx{BaseTx: e.BaseTx.Copy(), Owner: common.BytesToAddress(owner)}
}
