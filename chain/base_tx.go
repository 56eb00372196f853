// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

type BaseTx struct {
	// Magic is the chain identifier; a tx signed for another chain never
	// executes here.
	Magic uint64 `serialize:"true" json:"magic"`

	// Nonce separates otherwise identical txs from the same sender so that
	// each has its own ID.
	Nonce uint64 `serialize:"true" json:"nonce"`
}

func (b *BaseTx) GetMagic() uint64 {
	return b.Magic
}

func (b *BaseTx) SetMagic(magic uint64) {
	b.Magic = magic
}

func (b *BaseTx) GetNonce() uint64 {
	return b.Nonce
}

func (b *BaseTx) SetNonce(nonce uint64) {
	b.Nonce = nonce
}

func (b *BaseTx) ExecuteBase(g *Genesis) error {
	if b.Magic != g.Magic {
		return ErrInvalidMagic
	}
	return nil
}

func (b *BaseTx) Copy() *BaseTx {
	return &BaseTx{
		Magic: b.Magic,
		Nonce: b.Nonce,
	}
}
