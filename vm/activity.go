// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"github.com/ava-labs/heirvm/chain"
)

// activityLog keeps the last accepted txs in a fixed ring. Callers hold the
// VM lock.
type activityLog struct {
	entries []*chain.Activity
	cursor  uint64
}

func newActivityLog(size int) *activityLog {
	return &activityLog{entries: make([]*chain.Activity, size)}
}

func (l *activityLog) add(a *chain.Activity) {
	l.entries[l.cursor%uint64(len(l.entries))] = a
	l.cursor++
}

// recent returns entries newest first.
func (l *activityLog) recent() []*chain.Activity {
	size := uint64(len(l.entries))
	n := l.cursor
	if n > size {
		n = size
	}
	out := make([]*chain.Activity, 0, n)
	for i := uint64(1); i <= n; i++ {
		out = append(out, l.entries[(l.cursor-i)%size])
	}
	return out
}
