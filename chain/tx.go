// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

type Transaction struct {
	UnsignedTransaction `serialize:"true" json:"unsignedTransaction"`
	Signature           []byte `serialize:"true" json:"signature"`

	digestHash []byte
	bytes      []byte
	id         ids.ID
	size       uint64
	sender     common.Address
}

func NewTx(utx UnsignedTransaction, sig []byte) *Transaction {
	return &Transaction{
		UnsignedTransaction: utx,
		Signature:           sig,
	}
}

// unsignedEnvelope wraps the interface so the codec writes the type ID into
// the digest. A signature for one tx type can never be replayed as another.
type unsignedEnvelope struct {
	Tx UnsignedTransaction `serialize:"true"`
}

func DigestHash(utx UnsignedTransaction) ([]byte, error) {
	b, err := Marshal(&unsignedEnvelope{Tx: utx})
	if err != nil {
		return nil, err
	}
	return crypto.Keccak256(b), nil
}

func (t *Transaction) Init(g *Genesis) error {
	stx, err := Marshal(t)
	if err != nil {
		return err
	}
	t.bytes = stx

	dh, err := DigestHash(t.UnsignedTransaction)
	if err != nil {
		return err
	}
	t.digestHash = dh

	sender, err := DeriveSender(t.digestHash, t.Signature)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	t.sender = sender

	// The ID covers what was signed and who signed it, not the signature
	// encoding. Re-encoding a signature yields the same ID.
	h := sha3.Sum256(append(append([]byte{}, t.digestHash...), sender[:]...))
	id, err := ids.ToID(h[:])
	if err != nil {
		return err
	}
	t.id = id

	t.size = uint64(len(t.bytes))
	return nil
}

func (t *Transaction) Bytes() []byte { return t.bytes }

func (t *Transaction) DigestHash() []byte { return t.digestHash }

func (t *Transaction) Size() uint64 { return t.size }

func (t *Transaction) ID() ids.ID { return t.id }

func (t *Transaction) Sender() common.Address { return t.sender }

// Execute runs the tx against [db]. Callers are expected to hand in a
// versioned layer and only commit it when Execute returns nil.
func (t *Transaction) Execute(g *Genesis, db database.Database, blockTime int64) error {
	if err := t.UnsignedTransaction.ExecuteBase(g); err != nil {
		return err
	}
	dup, err := HasTransaction(db, t.id)
	if err != nil {
		return err
	}
	if dup {
		return ErrDuplicateTx
	}
	if t.sender == zeroAddress {
		return ErrInvalidSender
	}
	tc := &TransactionContext{
		Genesis:   g,
		Database:  db,
		BlockTime: blockTime,
		TxID:      t.id,
		Sender:    t.sender,
	}
	if err := t.UnsignedTransaction.Execute(tc); err != nil {
		return err
	}
	return SetTransaction(db, t)
}

// Activity returns the feed entry of an executed tx.
func (t *Transaction) Activity(blockTime int64) *Activity {
	a := t.UnsignedTransaction.Activity()
	a.Tmstmp = blockTime
	a.TxID = t.id
	a.Sender = t.sender.Hex()
	return a
}

type TransactionContext struct {
	Genesis   *Genesis
	Database  database.Database
	BlockTime int64
	TxID      ids.ID
	Sender    common.Address
}
