// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package client implements "heirvm" client SDK.
package client

import (
	"context"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"

	"github.com/ava-labs/heirvm/chain"
	"github.com/ava-labs/heirvm/vm"
)

// Client defines heirvm client operations.
type Client interface {
	// Pings the node.
	Ping(ctx context.Context) (bool, error)
	// Returns the ledger genesis.
	Genesis(ctx context.Context) (*chain.Genesis, error)

	// Issues the signed transaction and returns the transaction ID.
	IssueTx(ctx context.Context, d []byte) (ids.ID, error)
	// Checks the status of the transaction, and returns "true" if accepted.
	HasTx(ctx context.Context, id ids.ID) (bool, *vm.TxStatus, error)
	// Polls the transaction until it is accepted or rejected.
	PollTx(ctx context.Context, txID ids.ID) (accepted bool, err error)

	// Balance returns the balance of [asset] held by [addr].
	Balance(ctx context.Context, addr common.Address, asset ids.ID) (uint64, error)
	HeirRecord(ctx context.Context, id ids.ID) (*vm.RecordInfo, error)
	OwnedRecords(ctx context.Context, owner common.Address) ([]*vm.RecordInfo, error)
	Inheritances(ctx context.Context, heir common.Address) ([]*vm.RecordInfo, error)
	// DueRecords returns claimable records, optionally only those naming
	// [heir].
	DueRecords(ctx context.Context, heir common.Address) (int64, []*vm.RecordInfo, error)

	Wallet(ctx context.Context, owner common.Address) (*vm.WalletReply, error)
	// DueWallets returns every wallet whose owner is past the deadline.
	DueWallets(ctx context.Context) (int64, []*vm.DueWallet, error)

	Profile(ctx context.Context, user common.Address) (*chain.UserProfile, error)
	Platform(ctx context.Context) (*vm.PlatformReply, error)

	RecentActivity(ctx context.Context) ([]*chain.Activity, error)
}

// New creates a new client object.
func New(uri string, reqTimeout time.Duration) Client {
	return &client{req: newRequester(uri, vm.PublicEndpoint, vm.Name, reqTimeout)}
}

type client struct {
	req *requester
}

func (cli *client) Ping(ctx context.Context) (bool, error) {
	resp := new(vm.PingReply)
	if err := cli.req.SendRequest(ctx, "Ping", nil, resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}

func (cli *client) Genesis(ctx context.Context) (*chain.Genesis, error) {
	resp := new(vm.GenesisReply)
	err := cli.req.SendRequest(ctx, "Genesis", nil, resp)
	return resp.Genesis, err
}

func (cli *client) IssueTx(ctx context.Context, d []byte) (ids.ID, error) {
	resp := new(vm.IssueTxReply)
	if err := cli.req.SendRequest(
		ctx,
		"IssueTx",
		&vm.IssueTxArgs{Tx: d},
		resp,
	); err != nil {
		return ids.Empty, err
	}
	return resp.TxID, nil
}

func (cli *client) HasTx(ctx context.Context, txID ids.ID) (bool, *vm.TxStatus, error) {
	resp := new(vm.HasTxReply)
	if err := cli.req.SendRequest(
		ctx,
		"HasTx",
		&vm.HasTxArgs{TxID: txID},
		resp,
	); err != nil {
		return false, nil, err
	}
	return resp.Accepted, resp.Status, nil
}

func (cli *client) PollTx(ctx context.Context, txID ids.ID) (accepted bool, err error) {
done:
	for ctx.Err() == nil {
		select {
		case <-time.After(pollInterval):
		case <-ctx.Done():
			break done
		}

		accepted, status, err := cli.HasTx(ctx, txID)
		if err != nil {
			color.Red("polling transaction failed %v", err)
			continue
		}
		if accepted {
			return true, nil
		}
		if status != nil && !status.Accepted {
			return false, nil
		}
	}
	return false, ctx.Err()
}

func (cli *client) Balance(ctx context.Context, addr common.Address, asset ids.ID) (uint64, error) {
	resp := new(vm.BalanceReply)
	if err := cli.req.SendRequest(
		ctx,
		"Balance",
		&vm.BalanceArgs{Address: addr, Asset: asset},
		resp,
	); err != nil {
		return 0, err
	}
	return resp.Balance, nil
}

func (cli *client) HeirRecord(ctx context.Context, id ids.ID) (*vm.RecordInfo, error) {
	resp := new(vm.HeirRecordReply)
	if err := cli.req.SendRequest(
		ctx,
		"HeirRecord",
		&vm.HeirRecordArgs{Record: id},
		resp,
	); err != nil {
		return nil, err
	}
	if !resp.Exists {
		return nil, chain.ErrRecordMissing
	}
	return resp.Info, nil
}

func (cli *client) records(ctx context.Context, method string, addr common.Address) (int64, []*vm.RecordInfo, error) {
	resp := new(vm.RecordsReply)
	if err := cli.req.SendRequest(
		ctx,
		method,
		&vm.AddressArgs{Address: addr},
		resp,
	); err != nil {
		return 0, nil, err
	}
	return resp.Now, resp.Records, nil
}

func (cli *client) OwnedRecords(ctx context.Context, owner common.Address) ([]*vm.RecordInfo, error) {
	_, records, err := cli.records(ctx, "OwnedRecords", owner)
	return records, err
}

func (cli *client) Inheritances(ctx context.Context, heir common.Address) ([]*vm.RecordInfo, error) {
	_, records, err := cli.records(ctx, "Inheritances", heir)
	return records, err
}

func (cli *client) DueRecords(ctx context.Context, heir common.Address) (int64, []*vm.RecordInfo, error) {
	return cli.records(ctx, "DueRecords", heir)
}

func (cli *client) Wallet(ctx context.Context, owner common.Address) (*vm.WalletReply, error) {
	resp := new(vm.WalletReply)
	if err := cli.req.SendRequest(
		ctx,
		"Wallet",
		&vm.AddressArgs{Address: owner},
		resp,
	); err != nil {
		return nil, err
	}
	if !resp.Exists {
		return nil, chain.ErrWalletMissing
	}
	return resp, nil
}

func (cli *client) DueWallets(ctx context.Context) (int64, []*vm.DueWallet, error) {
	resp := new(vm.DueWalletsReply)
	if err := cli.req.SendRequest(ctx, "DueWallets", nil, resp); err != nil {
		return 0, nil, err
	}
	return resp.Now, resp.Wallets, nil
}

func (cli *client) Profile(ctx context.Context, user common.Address) (*chain.UserProfile, error) {
	resp := new(vm.ProfileReply)
	if err := cli.req.SendRequest(
		ctx,
		"Profile",
		&vm.AddressArgs{Address: user},
		resp,
	); err != nil {
		return nil, err
	}
	if !resp.Exists {
		return nil, chain.ErrProfileMissing
	}
	return resp.Profile, nil
}

func (cli *client) Platform(ctx context.Context) (*vm.PlatformReply, error) {
	resp := new(vm.PlatformReply)
	if err := cli.req.SendRequest(ctx, "Platform", nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (cli *client) RecentActivity(ctx context.Context) ([]*chain.Activity, error) {
	resp := new(vm.RecentActivityReply)
	if err := cli.req.SendRequest(ctx, "RecentActivity", nil, resp); err != nil {
		return nil, err
	}
	return resp.Activity, nil
}
