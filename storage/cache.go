// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// pending batch operations
const (
	dbPut = iota
	dbDelete
)

const (
	cacheExpiry        = 1 * time.Minute
	cacheSweepInterval = 2 * time.Minute
)

// Cache - read-your-writes view over an uncommitted batch
//
// every batch operation is mirrored here under the prefixed database
// key, so a transaction observes its own puts and deletes before
// Commit makes them durable; Commit and Abort clear the whole view
type Cache interface {
	Op(key string) (int, []byte, bool)
	Set(op int, key string, value []byte)
	Clear()
}

type dbCache struct {
	pending *cache.Cache
}

type pendingWrite struct {
	op    int
	value []byte
}

func newCache() Cache {
	return &dbCache{
		pending: cache.New(cacheExpiry, cacheSweepInterval),
	}
}

// Op - the pending operation recorded for a key
//
// found false means the batch never touched the key and the caller
// must fall back to the database
func (c *dbCache) Op(key string) (int, []byte, bool) {
	obj, found := c.pending.Get(key)
	if !found {
		return dbPut, nil, false
	}
	w := obj.(pendingWrite)
	return w.op, w.value, true
}

// Set - record a put or delete for a key
func (c *dbCache) Set(op int, key string, value []byte) {
	c.pending.Set(key, pendingWrite{op: op, value: value}, cacheExpiry)
}

// Clear - drop every pending record
func (c *dbCache) Clear() {
	c.pending.Flush()
}
