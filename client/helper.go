// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"context"
	"crypto/ecdsa"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/fatih/color"

	"github.com/ava-labs/heirvm/chain"
)

var pollInterval = time.Second

// Signs and issues the transaction.
func SignIssueTx(
	ctx context.Context,
	cli Client,
	utx chain.UnsignedTransaction,
	priv *ecdsa.PrivateKey,
	opts ...OpOption,
) (txID ids.ID, err error) {
	ret := &Op{}
	ret.applyOpts(opts)

	g, err := cli.Genesis(ctx)
	if err != nil {
		return ids.Empty, err
	}
	utx.SetMagic(g.Magic)
	if utx.GetNonce() == 0 {
		utx.SetNonce(uint64(time.Now().UnixNano()))
	}

	dh, err := chain.DigestHash(utx)
	if err != nil {
		return ids.Empty, err
	}
	sig, err := chain.Sign(dh, priv)
	if err != nil {
		return ids.Empty, err
	}

	tx := chain.NewTx(utx, sig)
	if err := tx.Init(g); err != nil {
		return ids.Empty, err
	}

	if !ret.quiet {
		color.Yellow("issuing tx %s (sender=%s, size=%d)", tx.ID(), tx.Sender().Hex(), tx.Size())
	}
	txID, err = cli.IssueTx(ctx, tx.Bytes())
	if err != nil {
		return ids.Empty, err
	}

	if ret.pollTx {
		if !ret.quiet {
			color.Green("issued transaction %s (now polling)", txID)
		}
		accepted, err := cli.PollTx(ctx, txID)
		if err != nil {
			return ids.Empty, err
		}
		if !accepted {
			return txID, ErrUnconfirmed
		}
		if !ret.quiet {
			color.Green("transaction %s confirmed", txID)
		}
	}
	return txID, nil
}

type Op struct {
	pollTx bool
	quiet  bool
}

type OpOption func(*Op)

func (op *Op) applyOpts(opts []OpOption) {
	for _, opt := range opts {
		opt(op)
	}
}

// "true" to poll transaction for its confirmation.
func WithPollTx() OpOption {
	return func(op *Op) { op.pollTx = true }
}

// WithQuiet suppresses terminal output, for use in long running loops.
func WithQuiet() OpOption {
	return func(op *Op) { op.quiet = true }
}

// PPActivity pretty prints recent activity.
func PPActivity(a []*chain.Activity) error {
	if len(a) == 0 {
		color.Cyan("no recent activity")
		return nil
	}
	for _, item := range a {
		switch item.Typ {
		case chain.ActivityCreate:
			color.Green("%s %s created heir %s for %d of %s", item.TxID, item.Sender, item.To, item.Amount, item.Asset)
		case chain.ActivityRefresh:
			color.Cyan("%s %s checked in %s", item.TxID, item.Sender, item.Record)
		case chain.ActivityClaim:
			color.Yellow("%s %s claimed %s", item.TxID, item.Sender, item.Record)
		case chain.ActivityExecute:
			color.Yellow("%s %s executed wallet of %s", item.TxID, item.Sender, item.Owner)
		case chain.ActivityBatch, chain.ActivityDeposit, chain.ActivityWithdraw:
			color.Magenta("%s %s %s %d of %s", item.TxID, item.Sender, item.Typ, item.Amount, item.Asset)
		default:
			color.White("%s %s %s %+v", item.TxID, item.Sender, item.Typ, item)
		}
		color.White("  at %s", time.Unix(item.Tmstmp, 0).UTC().Format(time.RFC3339))
	}
	return nil
}
