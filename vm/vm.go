// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vm implements the heirvm ledger node.
package vm

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/cache"
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/prefixdb"
	"github.com/ava-labs/avalanchego/database/versiondb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/heirvm/chain"
)

const (
	Name           = "heirvm"
	PublicEndpoint = "/public"
)

var (
	statePrefix = []byte("state")
	metaPrefix  = []byte("meta")

	genesisKey = []byte("genesis")
)

// TxStatus is the outcome of a recently submitted tx. Accepted txs are also
// recorded in state; rejections only live here.
type TxStatus struct {
	Accepted  bool   `json:"accepted"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// VM is a single-writer ledger. Every tx runs in its own versioned layer
// over the state and is committed only when it executes cleanly.
type VM struct {
	config  Config
	genesis *chain.Genesis

	baseDB database.Database
	db     database.Database
	meta   database.Database

	clock func() time.Time

	mu       sync.RWMutex
	lastTime int64
	activity *activityLog
	txStatus *cache.LRU
}

func New(config Config, genesis *chain.Genesis, db database.Database) (*VM, error) {
	if config.ActivityCacheSize <= 0 || config.TxStatusCacheSize <= 0 {
		return nil, ErrInvalidCacheSize
	}
	vm := &VM{
		config:   config,
		genesis:  genesis,
		baseDB:   db,
		db:       prefixdb.New(statePrefix, db),
		meta:     prefixdb.New(metaPrefix, db),
		clock:    time.Now,
		activity: newActivityLog(config.ActivityCacheSize),
		txStatus: &cache.LRU{Size: config.TxStatusCacheSize},
	}
	if err := vm.loadGenesis(); err != nil {
		return nil, err
	}
	log.Info("initialized heirvm",
		"magic", genesis.Magic,
		"allocations", len(genesis.Allocations),
		"subscriptionTiers", genesis.SubscriptionTiers,
	)
	return vm, nil
}

// loadGenesis writes the allocations on first start and refuses a database
// that was seeded by another genesis.
func (vm *VM) loadGenesis() error {
	b, err := chain.Marshal(vm.genesis)
	if err != nil {
		return err
	}
	h := crypto.Keccak256(b)

	stored, err := vm.meta.Get(genesisKey)
	switch {
	case errors.Is(err, database.ErrNotFound):
		vdb := versiondb.New(vm.db)
		if err := vm.genesis.Load(vdb); err != nil {
			vdb.Abort()
			return err
		}
		if err := vdb.Commit(); err != nil {
			return err
		}
		return vm.meta.Put(genesisKey, h)
	case err != nil:
		return err
	case !bytes.Equal(stored, h):
		return ErrGenesisMismatch
	default:
		log.Debug("genesis already loaded")
		return nil
	}
}

func (vm *VM) Genesis() *chain.Genesis { return vm.genesis }

// Now returns the time the next tx would execute at.
func (vm *VM) Now() int64 {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.peekTime()
}

func (vm *VM) peekTime() int64 {
	now := vm.clock().Unix()
	if now < vm.lastTime {
		return vm.lastTime
	}
	return now
}

// Submit executes [txs] in order. Each tx is atomic on its own; a failure
// does not affect the txs around it.
func (vm *VM) Submit(txs ...*chain.Transaction) (errs []error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	for _, tx := range txs {
		if err := vm.execute(tx); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (vm *VM) execute(tx *chain.Transaction) error {
	if tx.UnsignedTransaction == nil {
		return ErrInvalidEmptyTx
	}
	now := vm.peekTime()
	vm.lastTime = now

	vdb := versiondb.New(vm.db)
	if err := tx.Execute(vm.genesis, vdb, now); err != nil {
		vdb.Abort()
		// Keep the status of the tx that was accepted first.
		if !errors.Is(err, chain.ErrDuplicateTx) {
			vm.txStatus.Put(tx.ID(), &TxStatus{Error: err.Error(), Timestamp: now})
		}
		log.Debug("tx rejected", "txID", tx.ID(), "sender", tx.Sender(), "err", err)
		return err
	}
	if err := vdb.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruption, err)
	}

	a := tx.Activity(now)
	vm.activity.add(a)
	vm.txStatus.Put(tx.ID(), &TxStatus{Accepted: true, Timestamp: now})
	log.Info("tx accepted", "txID", tx.ID(), "type", a.Typ, "sender", a.Sender)
	return nil
}

// TxStatus returns the cached outcome of a recent submission.
func (vm *VM) TxStatus(txID ids.ID) (*TxStatus, bool) {
	v, ok := vm.txStatus.Get(txID)
	if !ok {
		return nil, false
	}
	return v.(*TxStatus), true
}

// RecentActivity returns the latest accepted txs, newest first.
func (vm *VM) RecentActivity() []*chain.Activity {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.activity.recent()
}

// View runs [f] against a consistent snapshot of state.
func (vm *VM) View(f func(db database.Database) error) error {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return f(vm.db)
}

// Handler serves the public JSON-RPC API under PublicEndpoint.
func (vm *VM) Handler() (http.Handler, error) {
	server := rpc.NewServer()
	server.RegisterCodec(json2.NewCodec(), "application/json")
	server.RegisterCodec(json2.NewCodec(), "application/json;charset=UTF-8")
	if err := server.RegisterService(&PublicService{vm: vm}, Name); err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle(PublicEndpoint, server)
	return mux, nil
}

func (vm *VM) Shutdown() error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.baseDB.Close()
}
