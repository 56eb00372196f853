// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"errors"
)

var (
	ErrInvalidEmptyTx   = errors.New("invalid empty transaction")
	ErrCorruption       = errors.New("corruption detected")
	ErrGenesisMismatch  = errors.New("database was initialized with a different genesis")
	ErrMissingAddress   = errors.New("address is required")
	ErrInvalidCacheSize = errors.New("cache size must be positive")
)
