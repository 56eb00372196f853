// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"time"
)

type Config struct {
	ListenAddress string `json:"listenAddress"`

	ReadHeaderTimeout time.Duration `json:"readHeaderTimeout"`
	ShutdownTimeout   time.Duration `json:"shutdownTimeout"`

	ActivityCacheSize int `json:"activityCacheSize"`
	TxStatusCacheSize int `json:"txStatusCacheSize"`
}

func (c *Config) SetDefaults() {
	c.ListenAddress = "127.0.0.1:9650"

	c.ReadHeaderTimeout = 10 * time.Second
	c.ShutdownTimeout = 5 * time.Second

	c.ActivityCacheSize = 128
	c.TxStatusCacheSize = 1024
}
