// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - keyed store of holdings under an active lender claim
//
// an entry exists here iff exactly one un-consumed seize capability for
// the same id exists; both are created by the collection's seizable
// deposit and destroyed together by seize or release
//
// there is no external insert or remove; only the collection mutates
// the ledger
package ledger

import (
	"sync"
	"sync/atomic"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/custodyd/arena"
	"github.com/bitmark-inc/custodyd/asset"
	"github.com/bitmark-inc/custodyd/fault"
)

// claim data carried per entry
type claim struct {
	digest [32]byte // SHA3-256 of the capability secret
	lender string   // lender account, base58 form; empty under token policy
}

// Ledger - constrained holdings of one collection
type Ledger struct {
	sync.RWMutex
	arena  *arena.Arena
	claims map[uint64]claim

	// un-consumed capabilities, read without the lock by Outstanding
	outstanding uint64
}

// New - create an empty ledger over a shared arena
func New(ar *arena.Arena) *Ledger {
	return &Ledger{
		arena:  ar,
		claims: make(map[uint64]claim),
	}
}

// Attach - place an asset under claim
//
// digest is the redemption digest of the freshly minted capability;
// lender is recorded only for the address authorization policy
func (l *Ledger) Attach(a *asset.Asset, digest [32]byte, lender string) error {
	l.Lock()
	defer l.Unlock()

	if _, ok := l.claims[a.Id]; ok {
		return fault.ErrAssetAlreadyHeld
	}
	err := l.arena.Put(a)
	if nil != err {
		return err
	}
	l.claims[a.Id] = claim{
		digest: digest,
		lender: lender,
	}
	atomic.AddUint64(&l.outstanding, 1)
	return nil
}

// Detach - remove and return the asset at id, consuming the claim
func (l *Ledger) Detach(id uint64) (*asset.Asset, error) {
	l.Lock()
	defer l.Unlock()

	if _, ok := l.claims[id]; !ok {
		return nil, fault.ErrAssetNotFound
	}
	a, err := l.arena.Take(id)
	logger.PanicIfError("ledger.Detach take", err)
	delete(l.claims, id)
	atomic.AddUint64(&l.outstanding, ^uint64(0))
	return a, nil
}

// Borrow - non-owning read access to the asset at id
func (l *Ledger) Borrow(id uint64) (*asset.Asset, error) {
	l.RLock()
	defer l.RUnlock()

	if _, ok := l.claims[id]; !ok {
		return nil, fault.ErrAssetNotFound
	}
	return l.arena.Borrow(id)
}

// Has - check presence of an id
func (l *Ledger) Has(id uint64) bool {
	l.RLock()
	defer l.RUnlock()

	_, ok := l.claims[id]
	return ok
}

// Digest - the redemption digest recorded for id
func (l *Ledger) Digest(id uint64) ([32]byte, error) {
	l.RLock()
	defer l.RUnlock()

	c, ok := l.claims[id]
	if !ok {
		return [32]byte{}, fault.ErrAssetNotFound
	}
	return c.digest, nil
}

// Lender - the lender account recorded for id, base58 form
func (l *Ledger) Lender(id uint64) (string, error) {
	l.RLock()
	defer l.RUnlock()

	c, ok := l.claims[id]
	if !ok {
		return "", fault.ErrAssetNotFound
	}
	return c.lender, nil
}

// Ids - snapshot of current keys, order unspecified
func (l *Ledger) Ids() []uint64 {
	l.RLock()
	defer l.RUnlock()

	ids := make([]uint64, 0, len(l.claims))
	for id := range l.claims {
		ids = append(ids, id)
	}
	return ids
}

// Size - number of entries
func (l *Ledger) Size() int {
	l.RLock()
	defer l.RUnlock()

	return len(l.claims)
}

// Outstanding - count of un-consumed capabilities
//
// always equal to Size; tracked separately so the audit scanner can
// verify the pairing invariant
func (l *Ledger) Outstanding() uint64 {
	return atomic.LoadUint64(&l.outstanding)
}
