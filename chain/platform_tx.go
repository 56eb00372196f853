// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"strconv"

	"github.com/ethereum/go-ethereum/common"
)

var (
	_ UnsignedTransaction = &InitializePlatformTx{}
	_ UnsignedTransaction = &UpdateFeeTx{}
	_ UnsignedTransaction = &WithdrawTreasuryTx{}
	_ UnsignedTransaction = &PauseTx{}
	_ UnsignedTransaction = &TransferAdminTx{}
)

// InitializePlatformTx creates the platform config and treasury. The sender
// becomes the admin.
type InitializePlatformTx struct {
	*BaseTx `serialize:"true" json:"baseTx"`
}

func (i *InitializePlatformTx) Execute(t *TransactionContext) error {
	_, _, exists, err := GetPlatform(t.Database)
	if err != nil {
		return err
	}
	if exists {
		return ErrPlatformInitialized
	}
	p := &PlatformConfig{
		Admin:  t.Sender,
		FeeBPS: t.Genesis.DefaultFeeBPS,
	}
	return PutPlatform(t.Database, p, &Treasury{Admin: t.Sender})
}

func (i *InitializePlatformTx) Activity() *Activity {
	return &Activity{Typ: ActivityPlatform}
}

func (i *InitializePlatformTx) Copy() UnsignedTransaction {
	return &InitializePlatformTx{BaseTx: i.BaseTx.Copy()}
}

type UpdateFeeTx struct {
	*BaseTx `serialize:"true" json:"baseTx"`
	FeeBPS  uint16 `serialize:"true" json:"feeBps"`
}

func (u *UpdateFeeTx) Execute(t *TransactionContext) error {
	p, tr, err := requireAdmin(t)
	if err != nil {
		return err
	}
	if u.FeeBPS > t.Genesis.MaxFeeBPS {
		return ErrFeeTooHigh
	}
	p.FeeBPS = u.FeeBPS
	return PutPlatform(t.Database, p, tr)
}

func (u *UpdateFeeTx) Activity() *Activity {
	return &Activity{Typ: ActivityPlatform, Amount: uint64(u.FeeBPS)}
}

func (u *UpdateFeeTx) Copy() UnsignedTransaction {
	return &UpdateFeeTx{BaseTx: u.BaseTx.Copy(), FeeBPS: u.FeeBPS}
}

// WithdrawTreasuryTx pays collected fees out to the admin.
type WithdrawTreasuryTx struct {
	*BaseTx `serialize:"true" json:"baseTx"`
	Amount  uint64 `serialize:"true" json:"amount"`
}

func (w *WithdrawTreasuryTx) Execute(t *TransactionContext) error {
	p, tr, err := requireAdmin(t)
	if err != nil {
		return err
	}
	if w.Amount == 0 {
		return ErrInvalidAmount
	}
	if w.Amount > tr.TotalBalance {
		return ErrInsufficientTreasuryBalance
	}
	if err := Transfer(t.Database, TreasuryAddress(), p.Admin, NativeAsset, w.Amount); err != nil {
		return err
	}
	tr.TotalBalance -= w.Amount
	return PutPlatform(t.Database, p, tr)
}

func (w *WithdrawTreasuryTx) Activity() *Activity {
	return &Activity{Typ: ActivityWithdraw, Amount: w.Amount}
}

func (w *WithdrawTreasuryTx) Copy() UnsignedTransaction {
	return &WithdrawTreasuryTx{BaseTx: w.BaseTx.Copy(), Amount: w.Amount}
}

type PauseTx struct {
	*BaseTx `serialize:"true" json:"baseTx"`
	Paused  bool `serialize:"true" json:"paused"`
}

func (pt *PauseTx) Execute(t *TransactionContext) error {
	p, tr, err := requireAdmin(t)
	if err != nil {
		return err
	}
	p.Paused = pt.Paused
	if pt.Paused {
		p.PauseTimestamp = t.BlockTime
	}
	return PutPlatform(t.Database, p, tr)
}

func (pt *PauseTx) Activity() *Activity {
	return &Activity{Typ: ActivityPlatform, Record: "paused=" + strconv.FormatBool(pt.Paused)}
}

func (pt *PauseTx) Copy() UnsignedTransaction {
	return &PauseTx{BaseTx: pt.BaseTx.Copy(), Paused: pt.Paused}
}

type TransferAdminTx struct {
	*BaseTx `serialize:"true" json:"baseTx"`
	To      common.Address `serialize:"true" json:"to"`
}

func (a *TransferAdminTx) Execute(t *TransactionContext) error {
	p, tr, err := requireAdmin(t)
	if err != nil {
		return err
	}
	if a.To == zeroAddress || a.To == p.Admin {
		return ErrNonActionable
	}
	p.Admin = a.To
	tr.Admin = a.To
	return PutPlatform(t.Database, p, tr)
}

func (a *TransferAdminTx) Activity() *Activity {
	return &Activity{Typ: ActivityPlatform, To: a.To.Hex()}
}

func (a *TransferAdminTx) Copy() UnsignedTransaction {
	to := make([]byte, common.AddressLength)
	copy(to, a.To[:])
	return &TransferAdminTx{BaseTx: a.BaseTx.Copy(), To: common.BytesToAddress(to)}
}
