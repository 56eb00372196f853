// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package keeper runs the permissionless executor that settles overdue
// smart wallets and claims heir records on behalf of its own key.
package keeper

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	log "github.com/inconshreveable/log15"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/heirvm/chain"
	"github.com/ava-labs/heirvm/client"
)

// Report summarizes one scan.
type Report struct {
	RunID    string `json:"runId"`
	Now      int64  `json:"now"`
	Executed int    `json:"executed"`
	Claimed  int    `json:"claimed"`
	Skipped  int    `json:"skipped"`
	Failed   int    `json:"failed"`
}

type Keeper struct {
	config Config
	cli    client.Client
	priv   *ecdsa.PrivateKey
	addr   common.Address

	targets map[common.Address]struct{}
	log     log.Logger
}

func New(config Config, cli client.Client, priv *ecdsa.PrivateKey) (*Keeper, error) {
	if err := config.Verify(); err != nil {
		return nil, err
	}
	k := &Keeper{
		config: config,
		cli:    cli,
		priv:   priv,
		addr:   ethcrypto.PubkeyToAddress(priv.PublicKey),
		log:    log.New("module", "keeper"),
	}
	if len(config.TargetOwners) > 0 {
		k.targets = make(map[common.Address]struct{}, len(config.TargetOwners))
		for _, owner := range config.TargetOwners {
			k.targets[owner] = struct{}{}
		}
	}
	return k, nil
}

func (k *Keeper) Address() common.Address {
	return k.addr
}

// Run scans every CheckInterval until [ctx] is done. Scan errors are logged
// and do not stop the loop.
func (k *Keeper) Run(ctx context.Context) error {
	k.log.Info("starting keeper", "address", k.addr, "interval", k.config.CheckInterval)
	t := time.NewTicker(k.config.CheckInterval)
	defer t.Stop()
	for {
		if _, err := k.RunOnce(ctx); err != nil && ctx.Err() == nil {
			k.log.Warn("scan failed", "err", err)
		}
		select {
		case <-t.C:
		case <-ctx.Done():
			k.log.Info("stopping keeper")
			return nil
		}
	}
}

// RunOnce collects every due wallet and claimable record and submits them
// in deadline order.
func (k *Keeper) RunOnce(ctx context.Context) (*Report, error) {
	r := &Report{RunID: uuid.NewString()}
	l := k.log.New("run", r.RunID)

	q := newDeadlineQueue()
	now, wallets, err := k.cli.DueWallets(ctx)
	if err != nil {
		return nil, err
	}
	r.Now = now
	for _, due := range wallets {
		w := due.Wallet
		if k.targets != nil {
			if _, ok := k.targets[w.Owner]; !ok {
				continue
			}
		}
		if due.Payout == nil {
			// heirs do not add up to a full allocation yet
			l.Debug("wallet not executable", "owner", w.Owner)
			r.Skipped++
			continue
		}
		q.push(&task{
			kind:     executeTask,
			deadline: chain.Deadline(w.LastActive, w.InactivityPeriod),
			owner:    w.Owner,
		})
	}

	if k.config.ClaimRecords {
		_, records, err := k.cli.DueRecords(ctx, k.addr)
		if err != nil {
			return nil, err
		}
		for _, info := range records {
			q.push(&task{
				kind:     claimTask,
				deadline: info.Deadline,
				owner:    info.Record.Owner,
				record:   info.ID,
			})
		}
	}

	l.Info("scan started", "now", now, "due", q.len())
	for q.len() > 0 {
		if err := k.submitBatch(ctx, l, q.pop(k.config.BatchSize), r); err != nil {
			return r, err
		}
	}
	l.Info("scan finished",
		"executed", r.Executed,
		"claimed", r.Claimed,
		"skipped", r.Skipped,
		"failed", r.Failed,
	)
	return r, nil
}

func (k *Keeper) submitBatch(ctx context.Context, l log.Logger, batch []*task, r *Report) error {
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(k.config.Concurrency)
	for _, t := range batch {
		t := t
		g.Go(func() error {
			skipped, err := k.submit(gctx, l, t)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				r.Failed++
			case skipped:
				r.Skipped++
			case t.kind == claimTask:
				r.Claimed++
			default:
				r.Executed++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// submit issues the transaction for [t], retrying transient failures. A
// rejection that means someone else already settled the target is
// reported as skipped.
func (k *Keeper) submit(ctx context.Context, l log.Logger, t *task) (bool, error) {
	l = l.New("kind", t.kind, "owner", t.owner)
	if t.kind == claimTask {
		l = l.New("record", t.record)
	}

	var err error
	for attempt := 0; attempt <= k.config.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(k.config.RetryDelay):
			case <-ctx.Done():
				return false, ctx.Err()
			}
		}

		var txID ids.ID
		txID, err = client.SignIssueTx(ctx, k.cli, k.unsigned(t), k.priv, client.WithQuiet())
		if err == nil {
			l.Info("submitted", "txId", txID)
			return false, nil
		}
		if settled(err) {
			l.Debug("already settled", "err", err)
			return true, nil
		}
		if permanent(err) {
			break
		}
		l.Warn("submission failed", "attempt", attempt+1, "err", err)
	}
	l.Error("giving up", "err", err)
	return false, err
}

func (k *Keeper) unsigned(t *task) chain.UnsignedTransaction {
	if t.kind == claimTask {
		return &chain.ClaimTx{BaseTx: &chain.BaseTx{}, Record: t.record}
	}
	return &chain.ExecuteTx{BaseTx: &chain.BaseTx{}, Owner: t.owner}
}

func settled(err error) bool {
	return errors.Is(err, chain.ErrAlreadyExecuted) ||
		errors.Is(err, chain.ErrAlreadyClaimed) ||
		errors.Is(err, chain.ErrOwnerStillActive)
}

// permanent errors will not change on retry.
func permanent(err error) bool {
	return errors.Is(err, chain.ErrInvalidAllocation) ||
		errors.Is(err, chain.ErrUnauthorized) ||
		errors.Is(err, chain.ErrWalletMissing) ||
		errors.Is(err, chain.ErrRecordMissing) ||
		errors.Is(err, chain.ErrPlatformPaused) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
