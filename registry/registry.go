// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry - keyed store of unconstrained holdings
//
// ids recorded here reference slots in the collection's arena; an id is
// present in at most one of registry and ledger
package registry

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/custodyd/arena"
	"github.com/bitmark-inc/custodyd/asset"
	"github.com/bitmark-inc/custodyd/fault"
)

// Registry - unconstrained holdings of one collection
type Registry struct {
	sync.RWMutex
	arena *arena.Arena
	ids   map[uint64]struct{}
}

// New - create an empty registry over a shared arena
func New(ar *arena.Arena) *Registry {
	return &Registry{
		arena: ar,
		ids:   make(map[uint64]struct{}),
	}
}

// Deposit - insert an asset by its id
//
// a prior entry at the same id is discarded; this is defensive and
// must not occur under correct use
func (r *Registry) Deposit(a *asset.Asset) {
	r.Lock()
	defer r.Unlock()

	if _, ok := r.ids[a.Id]; ok {
		old, err := r.arena.Take(a.Id)
		logger.PanicIfError("registry.Deposit take", err)
		err = r.arena.Discard(old)
		logger.PanicIfError("registry.Deposit discard", err)
		delete(r.ids, a.Id)
	}

	err := r.arena.Put(a)
	logger.PanicIfError("registry.Deposit put", err)
	r.ids[a.Id] = struct{}{}
}

// Withdraw - remove and return the asset at id
func (r *Registry) Withdraw(id uint64) (*asset.Asset, error) {
	r.Lock()
	defer r.Unlock()

	if _, ok := r.ids[id]; !ok {
		return nil, fault.ErrAssetNotFound
	}
	a, err := r.arena.Take(id)
	logger.PanicIfError("registry.Withdraw take", err)
	delete(r.ids, id)
	return a, nil
}

// Borrow - non-owning read access to the asset at id
func (r *Registry) Borrow(id uint64) (*asset.Asset, error) {
	r.RLock()
	defer r.RUnlock()

	if _, ok := r.ids[id]; !ok {
		return nil, fault.ErrAssetNotFound
	}
	return r.arena.Borrow(id)
}

// Has - check presence of an id
func (r *Registry) Has(id uint64) bool {
	r.RLock()
	defer r.RUnlock()

	_, ok := r.ids[id]
	return ok
}

// Ids - snapshot of current keys, order unspecified
func (r *Registry) Ids() []uint64 {
	r.RLock()
	defer r.RUnlock()

	ids := make([]uint64, 0, len(r.ids))
	for id := range r.ids {
		ids = append(ids, id)
	}
	return ids
}

// Size - number of entries
func (r *Registry) Size() int {
	r.RLock()
	defer r.RUnlock()

	return len(r.ids)
}

// Drain - withdraw every entry, used during collection teardown
func (r *Registry) Drain() []*asset.Asset {
	r.Lock()
	defer r.Unlock()

	assets := make([]*asset.Asset, 0, len(r.ids))
	for id := range r.ids {
		a, err := r.arena.Take(id)
		logger.PanicIfError("registry.Drain take", err)
		assets = append(assets, a)
		delete(r.ids, id)
	}
	return assets
}
