// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ethereum/go-ethereum/common"
)

var (
	_ UnsignedTransaction = &CreateWalletTx{}
	_ UnsignedTransaction = &WalletActivityTx{}
	_ UnsignedTransaction = &DepositTx{}
	_ UnsignedTransaction = &WithdrawTx{}
	_ UnsignedTransaction = &SetPeriodTx{}
	_ UnsignedTransaction = &AddHeirTx{}
	_ UnsignedTransaction = &SetAllocationTx{}
	_ UnsignedTransaction = &SetTokensTx{}
)

type CreateWalletTx struct {
	*BaseTx          `serialize:"true" json:"baseTx"`
	Heirs            []HeirAllocation `serialize:"true" json:"heirs"`
	InactivityPeriod int64            `serialize:"true" json:"inactivityPeriod"`
}

func (c *CreateWalletTx) Execute(t *TransactionContext) error {
	if c.InactivityPeriod <= 0 {
		return ErrInvalidInactivityPeriod
	}
	if len(c.Heirs) == 0 {
		return ErrNoHeirs
	}
	if err := checkNotPaused(t); err != nil {
		return err
	}
	profile, premium, err := ownerTier(t, t.Sender)
	if err != nil {
		return err
	}
	if len(c.Heirs) > t.Genesis.MaxHeirs(premium) {
		return ErrTooManyHeirs
	}
	if err := verifyInactivityPeriod(t.Genesis, premium, c.InactivityPeriod); err != nil {
		return err
	}
	if err := verifyHeirs(t.Sender, c.Heirs); err != nil {
		return err
	}
	_, exists, err := GetWallet(t.Database, t.Sender)
	if err != nil {
		return err
	}
	if exists {
		return ErrWalletExists
	}
	heirs := make([]HeirAllocation, len(c.Heirs))
	copy(heirs, c.Heirs)
	if err := PutWallet(t.Database, &SmartWallet{
		Owner:            t.Sender,
		Heirs:            heirs,
		Tokens:           []TokenAllocation{},
		InactivityPeriod: c.InactivityPeriod,
		LastActive:       t.BlockTime,
		Created:          t.BlockTime,
	}); err != nil {
		return err
	}
	return bumpInheritancesCreated(t, profile)
}

func (c *CreateWalletTx) Activity() *Activity {
	return &Activity{Typ: ActivityWallet}
}

func (c *CreateWalletTx) Copy() UnsignedTransaction {
	heirs := make([]HeirAllocation, len(c.Heirs))
	copy(heirs, c.Heirs)
	return &CreateWalletTx{
		BaseTx:           c.BaseTx.Copy(),
		Heirs:            heirs,
		InactivityPeriod: c.InactivityPeriod,
	}
}

type WalletActivityTx struct {
	*BaseTx `serialize:"true" json:"baseTx"`
}

func (a *WalletActivityTx) Execute(t *TransactionContext) error {
	w, err := verifyWallet(t)
	if err != nil {
		return err
	}
	w.LastActive = t.BlockTime
	return PutWallet(t.Database, w)
}

func (a *WalletActivityTx) Activity() *Activity {
	return &Activity{Typ: ActivityRefresh}
}

func (a *WalletActivityTx) Copy() UnsignedTransaction {
	return &WalletActivityTx{BaseTx: a.BaseTx.Copy()}
}

// DepositTx moves funds from the owner into the wallet custody. Deposits
// and withdrawals count as owner activity.
type DepositTx struct {
	*BaseTx `serialize:"true" json:"baseTx"`
	Asset   ids.ID `serialize:"true" json:"asset"`
	Amount  uint64 `serialize:"true" json:"amount"`
}

func (d *DepositTx) Execute(t *TransactionContext) error {
	if d.Amount == 0 {
		return ErrInvalidAmount
	}
	if err := checkNotPaused(t); err != nil {
		return err
	}
	w, err := verifyWallet(t)
	if err != nil {
		return err
	}
	// Execution only pays out the native asset and allocated tokens.
	if d.Asset != NativeAsset && !w.HasToken(d.Asset) {
		return ErrInvalidAsset
	}
	if err := Transfer(t.Database, t.Sender, w.Custody(), d.Asset, d.Amount); err != nil {
		return err
	}
	w.LastActive = t.BlockTime
	return PutWallet(t.Database, w)
}

func (d *DepositTx) Activity() *Activity {
	return &Activity{Typ: ActivityDeposit, Asset: d.Asset.String(), Amount: d.Amount}
}

func (d *DepositTx) Copy() UnsignedTransaction {
	return &DepositTx{BaseTx: d.BaseTx.Copy(), Asset: d.Asset, Amount: d.Amount}
}

type WithdrawTx struct {
	*BaseTx `serialize:"true" json:"baseTx"`
	Asset   ids.ID `serialize:"true" json:"asset"`
	Amount  uint64 `serialize:"true" json:"amount"`

	// To defaults to the owner when empty.
	To common.Address `serialize:"true" json:"to"`
}

func (wt *WithdrawTx) Execute(t *TransactionContext) error {
	if wt.Amount == 0 {
		return ErrInvalidAmount
	}
	w, err := verifyWallet(t)
	if err != nil {
		return err
	}
	to := wt.To
	if to == zeroAddress {
		to = t.Sender
	}
	if err := verifyRecipient(t.Database, to); err != nil {
		return err
	}
	if err := Transfer(t.Database, w.Custody(), to, wt.Asset, wt.Amount); err != nil {
		return err
	}
	w.LastActive = t.BlockTime
	return PutWallet(t.Database, w)
}

func (wt *WithdrawTx) Activity() *Activity {
	return &Activity{
		Typ:    ActivityWithdraw,
		To:     addressString(wt.To),
		Asset:  wt.Asset.String(),
		Amount: wt.Amount,
	}
}

func (wt *WithdrawTx) Copy() UnsignedTransaction {
	to := make([]byte, common.AddressLength)
	copy(to, wt.To[:])
	return &WithdrawTx{
		BaseTx: wt.BaseTx.Copy(),
		Asset:  wt.Asset,
		Amount: wt.Amount,
		To:     common.BytesToAddress(to),
	}
}

// SetPeriodTx changes the inactivity period of a wallet. Premium only.
type SetPeriodTx struct {
	*BaseTx          `serialize:"true" json:"baseTx"`
	InactivityPeriod int64 `serialize:"true" json:"inactivityPeriod"`
}

func (s *SetPeriodTx) Execute(t *TransactionContext) error {
	if s.InactivityPeriod <= 0 {
		return ErrInvalidInactivityPeriod
	}
	w, err := verifyWallet(t)
	if err != nil {
		return err
	}
	if err := requirePremium(t, t.Sender); err != nil {
		return err
	}
	w.InactivityPeriod = s.InactivityPeriod
	w.LastActive = t.BlockTime
	return PutWallet(t.Database, w)
}

func (s *SetPeriodTx) Activity() *Activity {
	return &Activity{Typ: ActivityWallet, Amount: uint64(s.InactivityPeriod)}
}

func (s *SetPeriodTx) Copy() UnsignedTransaction {
	return &SetPeriodTx{BaseTx: s.BaseTx.Copy(), InactivityPeriod: s.InactivityPeriod}
}

// AddHeirTx appends an heir. The resulting total may stay below 100 while
// the owner rebalances, but ExecuteTx refuses anything but exactly 100.
type AddHeirTx struct {
	*BaseTx    `serialize:"true" json:"baseTx"`
	Heir       common.Address `serialize:"true" json:"heir"`
	Percentage uint8          `serialize:"true" json:"percentage"`
}

func (a *AddHeirTx) Execute(t *TransactionContext) error {
	w, err := verifyWallet(t)
	if err != nil {
		return err
	}
	if err := requirePremium(t, t.Sender); err != nil {
		return err
	}
	if a.Heir == zeroAddress || a.Heir == t.Sender {
		return ErrInvalidHeir
	}
	if !validPercentage(a.Percentage) {
		return ErrInvalidAllocation
	}
	if w.heirIndex(a.Heir) >= 0 {
		return ErrHeirAlreadyExists
	}
	if len(w.Heirs) >= t.Genesis.MaxHeirs(true) {
		return ErrMaxHeirsReached
	}
	if TotalPercentage(w.Heirs)+uint64(a.Percentage) > FullAllocation {
		return ErrInvalidAllocation
	}
	w.Heirs = append(w.Heirs, HeirAllocation{Heir: a.Heir, Percentage: a.Percentage})
	w.LastActive = t.BlockTime
	return PutWallet(t.Database, w)
}

func (a *AddHeirTx) Activity() *Activity {
	return &Activity{Typ: ActivityWallet, To: a.Heir.Hex(), Amount: uint64(a.Percentage)}
}

func (a *AddHeirTx) Copy() UnsignedTransaction {
	heir := make([]byte, common.AddressLength)
	copy(heir, a.Heir[:])
	return &AddHeirTx{
		BaseTx:     a.BaseTx.Copy(),
		Heir:       common.BytesToAddress(heir),
		Percentage: a.Percentage,
	}
}

type SetAllocationTx struct {
	*BaseTx    `serialize:"true" json:"baseTx"`
	Heir       common.Address `serialize:"true" json:"heir"`
	Percentage uint8          `serialize:"true" json:"percentage"`
}

func (s *SetAllocationTx) Execute(t *TransactionContext) error {
	w, err := verifyWallet(t)
	if err != nil {
		return err
	}
	if err := requirePremium(t, t.Sender); err != nil {
		return err
	}
	i := w.heirIndex(s.Heir)
	if i < 0 {
		return ErrHeirNotFound
	}
	if !validPercentage(s.Percentage) {
		return ErrInvalidAllocation
	}
	total := TotalPercentage(w.Heirs) - uint64(w.Heirs[i].Percentage) + uint64(s.Percentage)
	if total > FullAllocation {
		return ErrInvalidAllocation
	}
	w.Heirs[i].Percentage = s.Percentage
	w.LastActive = t.BlockTime
	return PutWallet(t.Database, w)
}

func (s *SetAllocationTx) Activity() *Activity {
	return &Activity{Typ: ActivityWallet, To: s.Heir.Hex(), Amount: uint64(s.Percentage)}
}

func (s *SetAllocationTx) Copy() UnsignedTransaction {
	heir := make([]byte, common.AddressLength)
	copy(heir, s.Heir[:])
	return &SetAllocationTx{
		BaseTx:     s.BaseTx.Copy(),
		Heir:       common.BytesToAddress(heir),
		Percentage: s.Percentage,
	}
}

// SetTokensTx replaces the per-asset allocations of a wallet. The native
// coin is always distributed in full and cannot be listed.
type SetTokensTx struct {
	*BaseTx     `serialize:"true" json:"baseTx"`
	Allocations []TokenAllocation `serialize:"true" json:"allocations"`
}

func (s *SetTokensTx) Execute(t *TransactionContext) error {
	if len(s.Allocations) > int(t.Genesis.MaxTokenAllocations) {
		return ErrTooManyTokens
	}
	w, err := verifyWallet(t)
	if err != nil {
		return err
	}
	seen := make(map[ids.ID]struct{}, len(s.Allocations))
	for _, a := range s.Allocations {
		if a.Asset == NativeAsset {
			return ErrInvalidAsset
		}
		if _, ok := seen[a.Asset]; ok {
			return ErrInvalidAsset
		}
		seen[a.Asset] = struct{}{}
		if !validPercentage(a.Percentage) {
			return ErrInvalidAllocation
		}
	}

	first := len(w.Tokens) == 0 && len(s.Allocations) > 0
	tokens := make([]TokenAllocation, len(s.Allocations))
	copy(tokens, s.Allocations)
	w.Tokens = tokens
	w.LastActive = t.BlockTime
	if err := PutWallet(t.Database, w); err != nil {
		return err
	}
	if !first {
		return nil
	}
	p, tr, exists, err := GetPlatform(t.Database)
	if err != nil || !exists {
		return err
	}
	p.TotalMultiTokenWallets++
	return PutPlatform(t.Database, p, tr)
}

func (s *SetTokensTx) Activity() *Activity {
	return &Activity{Typ: ActivityWallet, Amount: uint64(len(s.Allocations))}
}

func (s *SetTokensTx) Copy() UnsignedTransaction {
	allocations := make([]TokenAllocation, len(s.Allocations))
	copy(allocations, s.Allocations)
	return &SetTokensTx{BaseTx: s.BaseTx.Copy(), Allocations: allocations}
}
