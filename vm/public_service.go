// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"fmt"
	"net/http"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/heirvm/chain"
)

type PublicService struct {
	vm *VM
}

type PingReply struct {
	Success bool `json:"success"`
}

func (svc *PublicService) Ping(_ *http.Request, _ *struct{}, reply *PingReply) (err error) {
	log.Info("ping")
	reply.Success = true
	return nil
}

type GenesisReply struct {
	Genesis *chain.Genesis `json:"genesis"`
}

func (svc *PublicService) Genesis(_ *http.Request, _ *struct{}, reply *GenesisReply) (err error) {
	reply.Genesis = svc.vm.Genesis()
	return nil
}

type IssueTxArgs struct {
	Tx hexutil.Bytes `json:"tx"`
}

type IssueTxReply struct {
	TxID    ids.ID `json:"txId"`
	Success bool   `json:"success"`
}

func (svc *PublicService) IssueTx(_ *http.Request, args *IssueTxArgs, reply *IssueTxReply) error {
	if len(args.Tx) == 0 {
		return ErrInvalidEmptyTx
	}
	tx := new(chain.Transaction)
	if _, err := chain.Unmarshal(args.Tx, tx); err != nil {
		return err
	}

	// otherwise, unexported tx.id field is empty
	if err := tx.Init(svc.vm.genesis); err != nil {
		reply.Success = false
		return err
	}
	reply.TxID = tx.ID()

	errs := svc.vm.Submit(tx)
	reply.Success = len(errs) == 0
	if reply.Success {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return fmt.Errorf("%v", errs)
}

type HasTxArgs struct {
	TxID ids.ID `json:"txId"`
}

type HasTxReply struct {
	Accepted bool      `json:"accepted"`
	Status   *TxStatus `json:"status,omitempty"`
}

func (svc *PublicService) HasTx(_ *http.Request, args *HasTxArgs, reply *HasTxReply) error {
	if status, ok := svc.vm.TxStatus(args.TxID); ok {
		reply.Status = status
	}
	return svc.vm.View(func(db database.Database) error {
		has, err := chain.HasTransaction(db, args.TxID)
		reply.Accepted = has
		return err
	})
}

type BalanceArgs struct {
	Address common.Address `json:"address"`
	Asset   ids.ID         `json:"asset"`
}

type BalanceReply struct {
	Balance uint64 `json:"balance"`
}

func (svc *PublicService) Balance(_ *http.Request, args *BalanceArgs, reply *BalanceReply) error {
	return svc.vm.View(func(db database.Database) error {
		bal, err := chain.GetBalance(db, args.Address, args.Asset)
		reply.Balance = bal
		return err
	})
}

// RecordInfo is a heir record along with its derived fields.
type RecordInfo struct {
	ID        ids.ID            `json:"id"`
	Record    *chain.HeirRecord `json:"record"`
	Custody   common.Address    `json:"custody"`
	Deadline  int64             `json:"deadline"`
	Claimable bool              `json:"claimable"`
}

func newRecordInfo(r *chain.HeirRecord, now int64) *RecordInfo {
	return &RecordInfo{
		ID:        r.ID(),
		Record:    r,
		Custody:   r.Custody(),
		Deadline:  chain.Deadline(r.LastActive, r.InactivityPeriod),
		Claimable: r.Claimable(now),
	}
}

type HeirRecordArgs struct {
	Record ids.ID `json:"record"`
}

type HeirRecordReply struct {
	Exists bool        `json:"exists"`
	Info   *RecordInfo `json:"info,omitempty"`
}

func (svc *PublicService) HeirRecord(_ *http.Request, args *HeirRecordArgs, reply *HeirRecordReply) error {
	now := svc.vm.Now()
	return svc.vm.View(func(db database.Database) error {
		r, exists, err := chain.GetHeirRecord(db, args.Record)
		if err != nil || !exists {
			return err
		}
		reply.Exists = true
		reply.Info = newRecordInfo(r, now)
		return nil
	})
}

type AddressArgs struct {
	Address common.Address `json:"address"`
}

type RecordsReply struct {
	Now     int64         `json:"now"`
	Records []*RecordInfo `json:"records"`
}

func (svc *PublicService) records(
	addr common.Address,
	index func(database.Iteratee, common.Address) ([]ids.ID, error),
	keep func(*chain.HeirRecord, int64) bool,
	reply *RecordsReply,
) error {
	reply.Now = svc.vm.Now()
	reply.Records = []*RecordInfo{}
	return svc.vm.View(func(db database.Database) error {
		recordIDs, err := index(db, addr)
		if err != nil {
			return err
		}
		for _, id := range recordIDs {
			r, exists, err := chain.GetHeirRecord(db, id)
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("%w: index points at missing record %s", ErrCorruption, id)
			}
			if keep != nil && !keep(r, reply.Now) {
				continue
			}
			reply.Records = append(reply.Records, newRecordInfo(r, reply.Now))
		}
		return nil
	})
}

func (svc *PublicService) OwnedRecords(_ *http.Request, args *AddressArgs, reply *RecordsReply) error {
	if args.Address == (common.Address{}) {
		return ErrMissingAddress
	}
	return svc.records(args.Address, chain.GetOwnedRecords, nil, reply)
}

func (svc *PublicService) Inheritances(_ *http.Request, args *AddressArgs, reply *RecordsReply) error {
	if args.Address == (common.Address{}) {
		return ErrMissingAddress
	}
	return svc.records(args.Address, chain.GetInheritances, nil, reply)
}

// DueRecords lists claimable records. With an address it only looks at
// records naming that heir.
func (svc *PublicService) DueRecords(_ *http.Request, args *AddressArgs, reply *RecordsReply) error {
	claimable := func(r *chain.HeirRecord, now int64) bool { return r.Claimable(now) }
	if args.Address != (common.Address{}) {
		return svc.records(args.Address, chain.GetInheritances, claimable, reply)
	}
	reply.Now = svc.vm.Now()
	reply.Records = []*RecordInfo{}
	return svc.vm.View(func(db database.Database) error {
		all, err := chain.GetAllHeirRecords(db)
		if err != nil {
			return err
		}
		for _, r := range all {
			if claimable(r, reply.Now) {
				reply.Records = append(reply.Records, newRecordInfo(r, reply.Now))
			}
		}
		return nil
	})
}

type WalletReply struct {
	Exists   bool               `json:"exists"`
	Wallet   *chain.SmartWallet `json:"wallet,omitempty"`
	Custody  common.Address     `json:"custody"`
	Deadline int64              `json:"deadline"`
	Payout   *chain.Payout      `json:"payout,omitempty"`
}

// Wallet returns a smart wallet and the payout it would make if executed
// now.
func (svc *PublicService) Wallet(_ *http.Request, args *AddressArgs, reply *WalletReply) error {
	return svc.vm.View(func(db database.Database) error {
		w, exists, err := chain.GetWallet(db, args.Address)
		if err != nil || !exists {
			return err
		}
		reply.Exists = true
		reply.Wallet = w
		reply.Custody = w.Custody()
		reply.Deadline = chain.Deadline(w.LastActive, w.InactivityPeriod)
		if w.Executed {
			return nil
		}
		feeBPS, err := currentFee(db)
		if err != nil {
			return err
		}
		// Wallets whose heirs do not add up yet have no payout.
		if payout, err := chain.PlanPayout(db, w, feeBPS); err == nil {
			reply.Payout = payout
		}
		return nil
	})
}

type DueWallet struct {
	Wallet *chain.SmartWallet `json:"wallet"`
	Payout *chain.Payout      `json:"payout,omitempty"`
}

type DueWalletsReply struct {
	Now     int64        `json:"now"`
	Wallets []*DueWallet `json:"wallets"`
}

// DueWallets lists every wallet that may be executed right now.
func (svc *PublicService) DueWallets(_ *http.Request, _ *struct{}, reply *DueWalletsReply) error {
	reply.Now = svc.vm.Now()
	reply.Wallets = []*DueWallet{}
	return svc.vm.View(func(db database.Database) error {
		wallets, err := chain.GetAllWallets(db)
		if err != nil {
			return err
		}
		feeBPS, err := currentFee(db)
		if err != nil {
			return err
		}
		for _, w := range wallets {
			if !w.Executable(reply.Now) {
				continue
			}
			due := &DueWallet{Wallet: w}
			if payout, err := chain.PlanPayout(db, w, feeBPS); err == nil {
				due.Payout = payout
			}
			reply.Wallets = append(reply.Wallets, due)
		}
		return nil
	})
}

func currentFee(db database.Database) (uint16, error) {
	p, _, exists, err := chain.GetPlatform(db)
	if err != nil || !exists {
		return 0, err
	}
	return p.FeeBPS, nil
}

type ProfileReply struct {
	Exists  bool               `json:"exists"`
	Profile *chain.UserProfile `json:"profile,omitempty"`
}

func (svc *PublicService) Profile(_ *http.Request, args *AddressArgs, reply *ProfileReply) error {
	return svc.vm.View(func(db database.Database) error {
		p, exists, err := chain.GetProfile(db, args.Address)
		reply.Exists = exists
		reply.Profile = p
		return err
	})
}

type PlatformReply struct {
	Initialized bool                  `json:"initialized"`
	Config      *chain.PlatformConfig `json:"config,omitempty"`
	Treasury    *chain.Treasury       `json:"treasury,omitempty"`
	Paused      bool                  `json:"paused"`
}

func (svc *PublicService) Platform(_ *http.Request, _ *struct{}, reply *PlatformReply) error {
	now := svc.vm.Now()
	return svc.vm.View(func(db database.Database) error {
		p, t, exists, err := chain.GetPlatform(db)
		if err != nil || !exists {
			return err
		}
		reply.Initialized = true
		reply.Config = p
		reply.Treasury = t
		reply.Paused = p.IsPaused(svc.vm.genesis, now)
		return nil
	})
}

type RecentActivityReply struct {
	Activity []*chain.Activity `json:"activity"`
}

func (svc *PublicService) RecentActivity(_ *http.Request, _ *struct{}, reply *RecentActivityReply) error {
	reply.Activity = svc.vm.RecentActivity()
	return nil
}
