// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/custodyd/fault"
)

// Transaction - atomic multi-pool batch
//
// writes collect in the batch and become visible to Get/Has through
// the cache before commit; Commit writes the whole batch or nothing
type Transaction interface {
	Begin() error
	Put(*PoolHandle, []byte, []byte)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	Has(*PoolHandle, []byte) bool
	Commit() error
	Abort()
	InUse() bool
}

type transactionData struct {
	sync.Mutex
	inUse bool
	batch *leveldb.Batch
}

// NewTransaction - create an unstarted transaction
func NewTransaction() Transaction {
	return &transactionData{
		batch: new(leveldb.Batch),
	}
}

func (t *transactionData) Begin() error {
	t.Lock()
	defer t.Unlock()

	if t.inUse {
		return fault.ErrTransactionInUse
	}
	t.inUse = true
	return nil
}

func (t *transactionData) Put(p *PoolHandle, key []byte, value []byte) {
	prefixed := p.prefixKey(key)
	poolData.cache.Set(dbPut, string(prefixed), value)
	t.batch.Put(prefixed, value)
}

func (t *transactionData) Delete(p *PoolHandle, key []byte) {
	prefixed := p.prefixKey(key)
	poolData.cache.Set(dbDelete, string(prefixed), []byte{})
	t.batch.Delete(prefixed)
}

func (t *transactionData) Get(p *PoolHandle, key []byte) []byte {
	prefixed := p.prefixKey(key)
	if op, value, found := poolData.cache.Op(string(prefixed)); found {
		if dbDelete == op {
			return nil
		}
		return value
	}
	return p.Get(key)
}

func (t *transactionData) Has(p *PoolHandle, key []byte) bool {
	prefixed := p.prefixKey(key)
	if op, _, found := poolData.cache.Op(string(prefixed)); found {
		return dbDelete != op
	}
	return p.Has(key)
}

func (t *transactionData) Commit() error {
	t.Lock()
	defer t.Unlock()

	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return fault.ErrNotInitialised
	}

	err := poolData.db.Write(t.batch, nil)
	if nil != err {
		return err
	}

	t.batch.Reset()
	poolData.cache.Clear()
	t.inUse = false
	return nil
}

func (t *transactionData) Abort() {
	t.Lock()
	defer t.Unlock()

	t.batch.Reset()
	if nil != poolData.cache {
		poolData.cache.Clear()
	}
	t.inUse = false
}

func (t *transactionData) InUse() bool {
	t.Lock()
	defer t.Unlock()

	return t.inUse
}
