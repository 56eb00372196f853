// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/rpc/v2/json2"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/heirvm/chain"
)

func call(t *testing.T, url string, method string, args interface{}, reply interface{}) error {
	t.Helper()
	body, err := json2.EncodeClientRequest(Name+"."+method, args)
	require.NoError(t, err)
	resp, err := http.Post(url+PublicEndpoint, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	return json2.DecodeClientResponse(resp.Body, reply)
}

func TestPublicService(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	n := newTestNode(t, memdb.New())
	h, err := n.vm.Handler()
	require.NoError(err)
	srv := httptest.NewServer(h)
	defer srv.Close()

	ping := new(PingReply)
	require.NoError(call(t, srv.URL, "Ping", struct{}{}, ping))
	require.True(ping.Success)

	gen := new(GenesisReply)
	require.NoError(call(t, srv.URL, "Genesis", struct{}{}, gen))
	require.Equal(n.g.Magic, gen.Genesis.Magic)

	heir := common.HexToAddress("0x0d")
	tx := n.sign(t, n.priv, &chain.CreateHeirTx{
		BaseTx:           &chain.BaseTx{},
		Heir:             heir,
		Amount:           100,
		InactivityPeriod: n.g.DefaultInactivityPeriod,
		Escrow:           true,
	})
	issued := new(IssueTxReply)
	require.NoError(call(t, srv.URL, "IssueTx", &IssueTxArgs{Tx: tx.Bytes()}, issued))
	require.True(issued.Success)
	require.Equal(tx.ID(), issued.TxID)

	has := new(HasTxReply)
	require.NoError(call(t, srv.URL, "HasTx", &HasTxArgs{TxID: tx.ID()}, has))
	require.True(has.Accepted)

	// Resubmission surfaces the ledger error verbatim.
	err = call(t, srv.URL, "IssueTx", &IssueTxArgs{Tx: tx.Bytes()}, new(IssueTxReply))
	require.Error(err)
	require.Contains(err.Error(), chain.ErrDuplicateTx.Error())

	id := chain.HeirRecordID(n.addr, heir, chain.NativeAsset)
	rec := new(HeirRecordReply)
	require.NoError(call(t, srv.URL, "HeirRecord", &HeirRecordArgs{Record: id}, rec))
	require.True(rec.Exists)
	require.Equal(id, rec.Info.ID)
	require.EqualValues(100, rec.Info.Record.Amount)
	require.Equal(chain.EscrowAddress(id), rec.Info.Custody)
	require.False(rec.Info.Claimable)

	bal := new(BalanceReply)
	require.NoError(call(t, srv.URL, "Balance", &BalanceArgs{Address: rec.Info.Custody}, bal))
	require.EqualValues(100, bal.Balance)

	owned := new(RecordsReply)
	require.NoError(call(t, srv.URL, "OwnedRecords", &AddressArgs{Address: n.addr}, owned))
	require.Len(owned.Records, 1)
	inherited := new(RecordsReply)
	require.NoError(call(t, srv.URL, "Inheritances", &AddressArgs{Address: heir}, inherited))
	require.Len(inherited.Records, 1)

	due := new(RecordsReply)
	require.NoError(call(t, srv.URL, "DueRecords", &AddressArgs{}, due))
	require.Empty(due.Records)

	// Past the deadline the record shows up as due.
	n.setNow(1_000 + n.g.DefaultInactivityPeriod + 1)
	require.NoError(call(t, srv.URL, "DueRecords", &AddressArgs{Address: heir}, due))
	require.Len(due.Records, 1)
	require.True(due.Records[0].Claimable)

	platform := new(PlatformReply)
	require.NoError(call(t, srv.URL, "Platform", struct{}{}, platform))
	require.False(platform.Initialized)

	activity := new(RecentActivityReply)
	require.NoError(call(t, srv.URL, "RecentActivity", struct{}{}, activity))
	require.Len(activity.Activity, 1)
	require.Equal(chain.ActivityCreate, activity.Activity[0].Typ)
}
