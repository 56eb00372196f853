// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package keeper

import (
	"bytes"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/btree"
)

const btreeDegree = 16

type taskKind uint8

const (
	executeTask taskKind = iota
	claimTask
)

func (k taskKind) String() string {
	if k == claimTask {
		return "claim"
	}
	return "execute"
}

// task is one pending submission, ordered by the deadline it is overdue
// since.
type task struct {
	kind     taskKind
	deadline int64
	owner    common.Address
	record   ids.ID
}

func (t *task) key() []byte {
	if t.kind == claimTask {
		return t.record[:]
	}
	return t.owner[:]
}

func (t *task) Less(than btree.Item) bool {
	o := than.(*task)
	if t.deadline != o.deadline {
		return t.deadline < o.deadline
	}
	if t.kind != o.kind {
		return t.kind < o.kind
	}
	return bytes.Compare(t.key(), o.key()) < 0
}

// deadlineQueue hands out the most overdue tasks first.
type deadlineQueue struct {
	tree *btree.BTree
}

func newDeadlineQueue() *deadlineQueue {
	return &deadlineQueue{tree: btree.New(btreeDegree)}
}

func (q *deadlineQueue) push(t *task) {
	q.tree.ReplaceOrInsert(t)
}

func (q *deadlineQueue) len() int {
	return q.tree.Len()
}

// pop removes up to [n] tasks in deadline order.
func (q *deadlineQueue) pop(n int) []*task {
	out := make([]*task, 0, n)
	for len(out) < n {
		item := q.tree.DeleteMin()
		if item == nil {
			break
		}
		out = append(out, item.(*task))
	}
	return out
}
