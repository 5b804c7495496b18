// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package arena - slot map of exclusively owned assets
//
// every live asset occupies exactly one slot keyed by its id; moving an
// asset between holders is an explicit Take followed by a Put, so an
// asset is owned by one slot or by the caller in transit, never both
package arena

import (
	"sync"

	"github.com/bitmark-inc/custodyd/asset"
	"github.com/bitmark-inc/custodyd/fault"
)

// Arena - the set of owning slots
type Arena struct {
	sync.RWMutex
	slots map[uint64]*asset.Asset
}

// New - create an empty arena
func New() *Arena {
	return &Arena{
		slots: make(map[uint64]*asset.Asset),
	}
}

// Put - move an asset into its slot
//
// fails if the slot is already occupied; the caller keeps ownership
// on failure
func (ar *Arena) Put(a *asset.Asset) error {
	ar.Lock()
	defer ar.Unlock()

	if _, ok := ar.slots[a.Id]; ok {
		return fault.ErrAssetAlreadyHeld
	}
	ar.slots[a.Id] = a
	return nil
}

// Take - move an asset out of its slot, transferring ownership to the
// caller
func (ar *Arena) Take(id uint64) (*asset.Asset, error) {
	ar.Lock()
	defer ar.Unlock()

	a, ok := ar.slots[id]
	if !ok {
		return nil, fault.ErrAssetNotFound
	}
	delete(ar.slots, id)
	return a, nil
}

// Borrow - non-owning read access to a slotted asset
func (ar *Arena) Borrow(id uint64) (*asset.Asset, error) {
	ar.RLock()
	defer ar.RUnlock()

	a, ok := ar.slots[id]
	if !ok {
		return nil, fault.ErrAssetNotFound
	}
	return a, nil
}

// Has - check if a slot is occupied
func (ar *Arena) Has(id uint64) bool {
	ar.RLock()
	defer ar.RUnlock()

	_, ok := ar.slots[id]
	return ok
}

// Size - number of occupied slots
func (ar *Arena) Size() int {
	ar.RLock()
	defer ar.RUnlock()

	return len(ar.slots)
}

// Discard - destroy an asset that is not currently slotted
//
// destroying a held asset is refused; Take it first
func (ar *Arena) Discard(a *asset.Asset) error {
	ar.Lock()
	defer ar.Unlock()

	if _, ok := ar.slots[a.Id]; ok {
		return fault.ErrAssetAlreadyHeld
	}
	return nil
}
