// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package parser defines command line argument parsing operations.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ethereum/go-ethereum/common"

	"github.com/ava-labs/heirvm/chain"
)

const (
	ListDelimiter  = ","
	PairDelimiter  = ":"
	NativeAssetArg = "native"
)

var (
	ErrEmpty           = errors.New("value cannot be empty")
	ErrInvalidAddress  = errors.New("invalid address")
	ErrInvalidAsset    = errors.New("invalid asset")
	ErrInvalidPair     = errors.New("expected <key>:<value>")
	ErrInvalidPercent  = errors.New("percentage must be in 1..100")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrIncompleteTotal = errors.New("percentages must add up to 100")
)

// ParseAddress parses a 0x-prefixed hex address. The zero address is
// rejected.
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return common.Address{}, ErrEmpty
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	addr := common.HexToAddress(s)
	if addr == (common.Address{}) {
		return common.Address{}, fmt.Errorf("%w: zero address", ErrInvalidAddress)
	}
	return addr, nil
}

// ParseAsset parses a cb58 asset ID. An empty string or "native" selects the
// native coin.
func ParseAsset(s string) (ids.ID, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || strings.EqualFold(s, NativeAssetArg) {
		return chain.NativeAsset, nil
	}
	id, err := ids.FromString(s)
	if err != nil {
		return ids.Empty, fmt.Errorf("%w: %v", ErrInvalidAsset, err)
	}
	return id, nil
}

func ParsePercentage(s string) (uint8, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
	if err != nil || v == 0 || v > chain.FullAllocation {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPercent, s)
	}
	return uint8(v), nil
}

func ParseAmount(s string) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return v, nil
}

// ParseHeirs parses "0xabc:60,0xdef:40" into heir allocations.
func ParseHeirs(s string, opts ...OpOption) ([]chain.HeirAllocation, error) {
	ret := &Op{}
	ret.applyOpts(opts)

	pairs, err := splitPairs(s)
	if err != nil {
		return nil, err
	}
	heirs := make([]chain.HeirAllocation, 0, len(pairs))
	for _, p := range pairs {
		addr, err := ParseAddress(p[0])
		if err != nil {
			return nil, err
		}
		pct, err := ParsePercentage(p[1])
		if err != nil {
			return nil, err
		}
		heirs = append(heirs, chain.HeirAllocation{Heir: addr, Percentage: pct})
	}
	if ret.checkTotal && chain.TotalPercentage(heirs) != chain.FullAllocation {
		return nil, ErrIncompleteTotal
	}
	return heirs, nil
}

// ParseTokens parses "<assetID>:<pct>,..." into token allocations.
func ParseTokens(s string) ([]chain.TokenAllocation, error) {
	pairs, err := splitPairs(s)
	if err != nil {
		return nil, err
	}
	tokens := make([]chain.TokenAllocation, 0, len(pairs))
	for _, p := range pairs {
		asset, err := ParseAsset(p[0])
		if err != nil {
			return nil, err
		}
		pct, err := ParsePercentage(p[1])
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, chain.TokenAllocation{Asset: asset, Percentage: pct})
	}
	return tokens, nil
}

// ParseTransfers parses "0xabc:100,0xdef:250" into parallel recipient and
// amount lists.
func ParseTransfers(s string) ([]common.Address, []uint64, error) {
	pairs, err := splitPairs(s)
	if err != nil {
		return nil, nil, err
	}
	recipients := make([]common.Address, 0, len(pairs))
	amounts := make([]uint64, 0, len(pairs))
	for _, p := range pairs {
		addr, err := ParseAddress(p[0])
		if err != nil {
			return nil, nil, err
		}
		amount, err := ParseAmount(p[1])
		if err != nil {
			return nil, nil, err
		}
		recipients = append(recipients, addr)
		amounts = append(amounts, amount)
	}
	return recipients, amounts, nil
}

func splitPairs(s string) ([][2]string, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return nil, ErrEmpty
	}
	items := strings.Split(s, ListDelimiter)
	pairs := make([][2]string, 0, len(items))
	for _, item := range items {
		kv := strings.Split(item, PairDelimiter)
		if len(kv) != 2 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPair, item)
		}
		pairs = append(pairs, [2]string{kv[0], kv[1]})
	}
	return pairs, nil
}

type Op struct {
	checkTotal bool
}

type OpOption func(*Op)

func (op *Op) applyOpts(opts []OpOption) {
	for _, opt := range opts {
		opt(op)
	}
}

// WithCheckTotal requires heir percentages to add up to 100.
func WithCheckTotal() OpOption {
	return func(op *Op) {
		op.checkTotal = true
	}
}
