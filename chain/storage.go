// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"encoding/binary"
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ethereum/go-ethereum/common"
)

// 0x0/ (balance)
//   -> [address]/[asset] => uint64
// 0x1/ (heir records)
//   -> [recordID] => HeirRecord
// 0x2/ (owned records)
//   -> [owner]/[recordID]
// 0x3/ (inheritances)
//   -> [heir]/[recordID]
// 0x4/ (smart wallets)
//   -> [owner] => SmartWallet
// 0x5/ (profiles)
//   -> [user] => UserProfile
// 0x6/ (platform config)
// 0x7/ (treasury)
// 0x8/ (tx hashes)
//   -> [txID]
// 0x9/ (custodial addresses)
//   -> [address]

const (
	balancePrefix = 0x0
	heirPrefix    = 0x1
	ownedPrefix   = 0x2
	inheritPrefix = 0x3
	walletPrefix  = 0x4
	profilePrefix = 0x5
	platformKey   = 0x6
	treasuryKey   = 0x7
	txPrefix      = 0x8
	custodyPrefix = 0x9

	PrefixDelimiter = byte('/')
)

var zeroAddress = common.Address{}

func prefixKey(prefix byte, parts ...[]byte) []byte {
	size := 2
	for _, p := range parts {
		size += len(p) + 1
	}
	k := make([]byte, 0, size)
	k = append(k, prefix, PrefixDelimiter)
	for i, p := range parts {
		if i > 0 {
			k = append(k, PrefixDelimiter)
		}
		k = append(k, p...)
	}
	return k
}

func BalanceKey(addr common.Address, asset ids.ID) []byte {
	return prefixKey(balancePrefix, addr[:], asset[:])
}

func HeirRecordKey(id ids.ID) []byte {
	return prefixKey(heirPrefix, id[:])
}

func OwnedKey(owner common.Address, id ids.ID) []byte {
	return prefixKey(ownedPrefix, owner[:], id[:])
}

func InheritanceKey(heir common.Address, id ids.ID) []byte {
	return prefixKey(inheritPrefix, heir[:], id[:])
}

func WalletKey(owner common.Address) []byte {
	return prefixKey(walletPrefix, owner[:])
}

func ProfileKey(user common.Address) []byte {
	return prefixKey(profilePrefix, user[:])
}

func PrefixTxKey(txID ids.ID) []byte {
	return prefixKey(txPrefix, txID[:])
}

func CustodyKey(addr common.Address) []byte {
	return prefixKey(custodyPrefix, addr[:])
}

// getRecord decodes the value at [k] into [dst]; a missing key is not an
// error.
func getRecord(db database.KeyValueReader, k []byte, dst interface{}) (bool, error) {
	v, err := db.Get(k)
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if _, err := Unmarshal(v, dst); err != nil {
		return false, err
	}
	return true, nil
}

func putRecord(db database.KeyValueWriter, k []byte, src interface{}) error {
	b, err := Marshal(src)
	if err != nil {
		return err
	}
	return db.Put(k, b)
}

// Balances

func GetBalance(db database.KeyValueReader, addr common.Address, asset ids.ID) (uint64, error) {
	v, err := db.Get(BalanceKey(addr, asset))
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(v), nil
}

func SetBalance(db database.Database, addr common.Address, asset ids.ID, bal uint64) error {
	k := BalanceKey(addr, asset)
	if bal == 0 {
		return db.Delete(k)
	}
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, bal)
	return db.Put(k, b)
}

func ModifyBalance(db database.Database, addr common.Address, asset ids.ID, add bool, change uint64) (uint64, error) {
	b, err := GetBalance(db, addr, asset)
	if err != nil {
		return 0, err
	}
	var n uint64
	if add {
		n = b + change
		if n < b {
			return 0, ErrBalanceOverflow
		}
	} else {
		if change > b {
			return 0, ErrInsufficientBalance
		}
		n = b - change
	}
	return n, SetBalance(db, addr, asset, n)
}

// Heir records

func GetHeirRecord(db database.KeyValueReader, id ids.ID) (*HeirRecord, bool, error) {
	r := new(HeirRecord)
	exists, err := getRecord(db, HeirRecordKey(id), r)
	if !exists || err != nil {
		return nil, exists, err
	}
	return r, true, nil
}

func HasHeirRecord(db database.KeyValueReader, id ids.ID) (bool, error) {
	return db.Has(HeirRecordKey(id))
}

// CreateHeirRecord writes a new record along with its owner and heir
// indexes.
func CreateHeirRecord(db database.KeyValueWriter, r *HeirRecord) error {
	id := r.ID()
	if err := putRecord(db, HeirRecordKey(id), r); err != nil {
		return err
	}
	if err := db.Put(OwnedKey(r.Owner, id), nil); err != nil {
		return err
	}
	if r.Escrowed {
		if err := db.Put(CustodyKey(r.Custody()), nil); err != nil {
			return err
		}
	}
	return db.Put(InheritanceKey(r.Heir, id), nil)
}

func PutHeirRecord(db database.KeyValueWriter, r *HeirRecord) error {
	return putRecord(db, HeirRecordKey(r.ID()), r)
}

// GetAllHeirRecords walks every heir record in key order.
func GetAllHeirRecords(db database.Iteratee) ([]*HeirRecord, error) {
	cursor := db.NewIteratorWithPrefix([]byte{heirPrefix, PrefixDelimiter})
	defer cursor.Release()

	out := []*HeirRecord{}
	for cursor.Next() {
		r := new(HeirRecord)
		if _, err := Unmarshal(cursor.Value(), r); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, cursor.Error()
}

// GetOwnedRecords returns the IDs of every record created by [owner].
func GetOwnedRecords(db database.Iteratee, owner common.Address) ([]ids.ID, error) {
	return collectIDs(db, prefixKey(ownedPrefix, owner[:], nil))
}

// GetInheritances returns the IDs of every record naming [heir].
func GetInheritances(db database.Iteratee, heir common.Address) ([]ids.ID, error) {
	return collectIDs(db, prefixKey(inheritPrefix, heir[:], nil))
}

func collectIDs(db database.Iteratee, pfx []byte) ([]ids.ID, error) {
	cursor := db.NewIteratorWithPrefix(pfx)
	defer cursor.Release()

	out := []ids.ID{}
	for cursor.Next() {
		k := cursor.Key()
		if len(k) != len(pfx)+len(ids.Empty) {
			continue
		}
		var id ids.ID
		copy(id[:], k[len(pfx):])
		out = append(out, id)
	}
	return out, cursor.Error()
}

// Smart wallets

func GetWallet(db database.KeyValueReader, owner common.Address) (*SmartWallet, bool, error) {
	w := new(SmartWallet)
	exists, err := getRecord(db, WalletKey(owner), w)
	if !exists || err != nil {
		return nil, exists, err
	}
	return w, true, nil
}

func PutWallet(db database.KeyValueWriter, w *SmartWallet) error {
	if err := db.Put(CustodyKey(w.Custody()), nil); err != nil {
		return err
	}
	return putRecord(db, WalletKey(w.Owner), w)
}

// GetAllWallets walks every smart wallet in key order.
func GetAllWallets(db database.Iteratee) ([]*SmartWallet, error) {
	cursor := db.NewIteratorWithPrefix([]byte{walletPrefix, PrefixDelimiter})
	defer cursor.Release()

	out := []*SmartWallet{}
	for cursor.Next() {
		w := new(SmartWallet)
		if _, err := Unmarshal(cursor.Value(), w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, cursor.Error()
}

// Profiles

func GetProfile(db database.KeyValueReader, user common.Address) (*UserProfile, bool, error) {
	p := new(UserProfile)
	exists, err := getRecord(db, ProfileKey(user), p)
	if !exists || err != nil {
		return nil, exists, err
	}
	return p, true, nil
}

func PutProfile(db database.KeyValueWriter, p *UserProfile) error {
	return putRecord(db, ProfileKey(p.User), p)
}

// Platform

func GetPlatform(db database.KeyValueReader) (*PlatformConfig, *Treasury, bool, error) {
	p := new(PlatformConfig)
	exists, err := getRecord(db, []byte{platformKey}, p)
	if !exists || err != nil {
		return nil, nil, exists, err
	}
	t := new(Treasury)
	exists, err = getRecord(db, []byte{treasuryKey}, t)
	if err != nil {
		return nil, nil, false, err
	}
	if !exists {
		return nil, nil, false, ErrPlatformMissing
	}
	return p, t, true, nil
}

func PutPlatform(db database.KeyValueWriter, p *PlatformConfig, t *Treasury) error {
	if err := putRecord(db, []byte{platformKey}, p); err != nil {
		return err
	}
	return putRecord(db, []byte{treasuryKey}, t)
}

// Transactions

func SetTransaction(db database.KeyValueWriter, tx *Transaction) error {
	return db.Put(PrefixTxKey(tx.ID()), nil)
}

func HasTransaction(db database.KeyValueReader, txID ids.ID) (bool, error) {
	return db.Has(PrefixTxKey(txID))
}

// Custody

// IsCustodial reports whether [addr] is the treasury or the custody of an
// existing escrowed record or smart wallet. Escrow markers outlive the
// record since the derived address can be reused.
func IsCustodial(db database.KeyValueReader, addr common.Address) (bool, error) {
	if addr == TreasuryAddress() {
		return true, nil
	}
	return db.Has(CustodyKey(addr))
}
