// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	vOffset      = 64
	legacySigAdj = 27
)

func Sign(dh []byte, priv *ecdsa.PrivateKey) ([]byte, error) {
	sig, err := crypto.Sign(dh, priv)
	if err != nil {
		return nil, err
	}
	sig[vOffset] += legacySigAdj
	return sig, nil
}

func DeriveSender(dh []byte, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, ErrInvalidSignature
	}
	sigcpy := make([]byte, crypto.SignatureLength)
	copy(sigcpy, sig)

	// Support signers that don't apply offset (ex: ledger)
	if sigcpy[vOffset] >= legacySigAdj {
		sigcpy[vOffset] -= legacySigAdj
	}
	// Only low-S signatures are accepted, so (r, s) has a single encoding.
	r := new(big.Int).SetBytes(sigcpy[:32])
	s := new(big.Int).SetBytes(sigcpy[32:vOffset])
	if !crypto.ValidateSignatureValues(sigcpy[vOffset], r, s, true) {
		return common.Address{}, ErrInvalidSignature
	}
	pk, err := crypto.SigToPub(dh, sigcpy)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*pk), nil
}
