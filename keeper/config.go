// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package keeper

import (
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

var ErrInvalidConfig = errors.New("invalid keeper config")

type Config struct {
	// CheckInterval is the pause between two scans.
	CheckInterval time.Duration `json:"checkInterval"`

	// BatchSize bounds the number of submissions per scan step and
	// Concurrency the number in flight at once.
	BatchSize   int `json:"batchSize"`
	Concurrency int `json:"concurrency"`

	Retries    int           `json:"retries"`
	RetryDelay time.Duration `json:"retryDelay"`

	// TargetOwners restricts execution to these wallets. Empty means every
	// due wallet.
	TargetOwners []common.Address `json:"targetOwners"`

	// ClaimRecords also claims due heir records that name the keeper key.
	ClaimRecords bool `json:"claimRecords"`
}

func (c *Config) SetDefaults() {
	c.CheckInterval = 5 * time.Minute
	c.BatchSize = 10
	c.Concurrency = 4
	c.Retries = 3
	c.RetryDelay = 2 * time.Second
}

func (c *Config) Verify() error {
	if c.CheckInterval <= 0 || c.BatchSize <= 0 || c.Concurrency <= 0 || c.Retries < 0 {
		return ErrInvalidConfig
	}
	return nil
}
