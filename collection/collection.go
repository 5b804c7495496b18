// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package collection

import (
	"sort"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/arena"
	"github.com/bitmark-inc/custodyd/asset"
	"github.com/bitmark-inc/custodyd/capability"
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/ledger"
	"github.com/bitmark-inc/custodyd/liveness"
	"github.com/bitmark-inc/custodyd/messagebus"
	"github.com/bitmark-inc/custodyd/registry"
)

// Collection - one holder's assets and the lender protocol over them
type Collection struct {
	sync.RWMutex
	log       *logger.L
	arena     *arena.Arena
	registry  *registry.Registry
	ledger    *ledger.Ledger
	policy    capability.Policy
	link      *liveness.Link
	destroyed bool
}

// New - create an empty collection under the given authorization policy
func New(policy capability.Policy) *Collection {
	ar := arena.New()
	return &Collection{
		log:      logger.New("collection"),
		arena:    ar,
		registry: registry.New(ar),
		ledger:   ledger.New(ar),
		policy:   policy,
	}
}

// Policy - the active authorization policy
func (c *Collection) Policy() capability.Policy {
	return c.policy
}

// EstablishLink - register the public reach-back handle
//
// at most one active link; a severed link may be replaced, which is
// how the holder restores usability while claims are outstanding
func (c *Collection) EstablishLink() error {
	c.Lock()
	defer c.Unlock()

	if c.destroyed {
		return fault.ErrNotInitialised
	}
	if c.link.Resolve() {
		return fault.ErrLinkAlreadyEstablished
	}

	link, err := liveness.Register()
	if nil != err {
		return err
	}
	c.link = link
	return nil
}

// SeverLink - revoke the public reach-back handle
//
// models the holder cutting public reachability; with constrained
// assets outstanding this flags the collection unusable until a new
// link is established
func (c *Collection) SeverLink() {
	c.Lock()
	defer c.Unlock()

	liveness.Unregister(c.link)
}

// CheckUse - the lender's liveness probe
//
// true iff the ledger is empty or the link still resolves; read only
// and safe to call arbitrarily often
func (c *Collection) CheckUse() bool {
	c.RLock()
	defer c.RUnlock()

	return c.usable()
}

// must hold at least a read lock
func (c *Collection) usable() bool {
	return 0 == c.ledger.Size() || c.link.Resolve()
}

// Deposit - place an asset into the registry
//
// a duplicate of a constrained id is refused; a duplicate of an
// unconstrained id is discarded defensively by the registry
func (c *Collection) Deposit(a *asset.Asset) error {
	c.Lock()
	defer c.Unlock()

	if c.destroyed {
		return fault.ErrNotInitialised
	}
	if !c.usable() {
		return fault.ErrCollectionUnusable
	}
	if c.ledger.Has(a.Id) {
		return fault.ErrAssetAlreadyHeld
	}

	c.registry.Deposit(a)
	c.log.Infof("deposit: asset %d", a.Id)
	messagebus.Send(messagebus.Deposited, a.Id)
	return nil
}

// Withdraw - remove and return an unconstrained asset
//
// a constrained asset is not withdrawable; it reports not found just
// like an absent one
func (c *Collection) Withdraw(id uint64) (*asset.Asset, error) {
	c.Lock()
	defer c.Unlock()

	if c.destroyed {
		return nil, fault.ErrNotInitialised
	}
	if !c.usable() {
		return nil, fault.ErrCollectionUnusable
	}

	a, err := c.registry.Withdraw(id)
	if nil != err {
		return nil, err
	}
	c.log.Infof("withdraw: asset %d", id)
	messagebus.Send(messagebus.Withdrawn, id)
	return a, nil
}

// DepositSeizable - place an asset under a lender's claim
//
// mints a fresh capability bound to the asset id and records its
// redemption digest in the ledger; under the address policy the lender
// account is recorded as well and must be supplied
//
// any depositor may constrain an asset; caller authorization is the
// lending collaborator's concern
func (c *Collection) DepositSeizable(a *asset.Asset, lender *account.Account) (*capability.Capability, error) {
	c.Lock()
	defer c.Unlock()

	if c.destroyed {
		return nil, fault.ErrNotInitialised
	}
	if !c.usable() {
		return nil, fault.ErrCollectionUnusable
	}
	if c.registry.Has(a.Id) {
		return nil, fault.ErrAssetAlreadyHeld
	}

	lenderText := ""
	if capability.AddressPolicyName == c.policy.Name() {
		if nil == lender {
			return nil, fault.ErrLenderRequired
		}
		lenderText = lender.String()
	}

	token, digest, err := capability.Mint(a.Id)
	if nil != err {
		return nil, err
	}

	err = c.ledger.Attach(a, digest, lenderText)
	if nil != err {
		return nil, err
	}

	c.log.Infof("deposit seizable: asset %d", a.Id)
	messagebus.Send(messagebus.DepositedSeizable, a.Id)
	return token, nil
}

// RestoreConstrained - rebuild a ledger entry from stored state
//
// only used when reloading from the database at startup; the original
// redemption digest and lender are preserved so capabilities issued
// before the restart stay redeemable
func (c *Collection) RestoreConstrained(a *asset.Asset, digest [32]byte, lender string) error {
	c.Lock()
	defer c.Unlock()

	if c.destroyed {
		return fault.ErrNotInitialised
	}
	if c.registry.Has(a.Id) {
		return fault.ErrAssetAlreadyHeld
	}
	return c.ledger.Attach(a, digest, lender)
}

// ConstraintRecord - the stored digest and lender for a constrained id
func (c *Collection) ConstraintRecord(id uint64) ([32]byte, string, error) {
	c.RLock()
	defer c.RUnlock()

	digest, err := c.ledger.Digest(id)
	if nil != err {
		return digest, "", err
	}
	lender, err := c.ledger.Lender(id)
	return digest, lender, err
}

// Seize - the lender reclaims a constrained asset
//
// never gated by the liveness check: a severed link must not stop the
// lender's remedy
func (c *Collection) Seize(claimant capability.Claimant, assetId uint64) (*asset.Asset, error) {
	c.Lock()
	defer c.Unlock()

	if c.destroyed {
		return nil, fault.ErrNotInitialised
	}
	if !c.ledger.Has(assetId) {
		return nil, fault.ErrAssetNotFound
	}

	err := c.policy.Authorize(c.ledger, claimant, assetId)
	if nil != err {
		return nil, err
	}

	a, err := c.ledger.Detach(assetId)
	if nil != err {
		return nil, err
	}
	c.log.Infof("seize: asset %d", assetId)
	messagebus.Send(messagebus.Seized, assetId)
	return a, nil
}

// ReleaseConstraint - the lender releases a claim after repayment
//
// the asset moves back to the registry; the capability is consumed
func (c *Collection) ReleaseConstraint(claimant capability.Claimant, assetId uint64) error {
	c.Lock()
	defer c.Unlock()

	if c.destroyed {
		return fault.ErrNotInitialised
	}
	if !c.ledger.Has(assetId) {
		return fault.ErrAssetNotFound
	}

	err := c.policy.Authorize(c.ledger, claimant, assetId)
	if nil != err {
		return err
	}

	a, err := c.ledger.Detach(assetId)
	if nil != err {
		return err
	}
	c.registry.Deposit(a)
	c.log.Infof("release: asset %d", assetId)
	messagebus.Send(messagebus.Released, assetId)
	return nil
}

// IDs - snapshot of every held id, unconstrained and constrained
//
// refused while the collection is unusable
func (c *Collection) IDs() ([]uint64, error) {
	c.RLock()
	defer c.RUnlock()

	if c.destroyed {
		return nil, fault.ErrNotInitialised
	}
	if !c.usable() {
		return nil, fault.ErrCollectionUnusable
	}

	ids := append(c.registry.Ids(), c.ledger.Ids()...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Borrow - non-owning read access to any held asset
//
// refused while the collection is unusable
func (c *Collection) Borrow(id uint64) (*asset.Asset, error) {
	c.RLock()
	defer c.RUnlock()

	if c.destroyed {
		return nil, fault.ErrNotInitialised
	}
	if !c.usable() {
		return nil, fault.ErrCollectionUnusable
	}

	a, err := c.registry.Borrow(id)
	if fault.ErrAssetNotFound == err {
		return c.ledger.Borrow(id)
	}
	return a, err
}

// Constrained - ids currently under claim
//
// used by the audit scanner; not part of the gated public surface
func (c *Collection) Constrained() []uint64 {
	c.RLock()
	defer c.RUnlock()

	return c.ledger.Ids()
}

// Outstanding - count of un-consumed capabilities
func (c *Collection) Outstanding() uint64 {
	return c.ledger.Outstanding()
}

// ConstrainedSize - number of ledger entries
func (c *Collection) ConstrainedSize() int {
	c.RLock()
	defer c.RUnlock()

	return c.ledger.Size()
}

// Destroy - tear the collection down
//
// refused while any lender claim is outstanding; silently discarding
// constrained assets would erase the claim
func (c *Collection) Destroy() error {
	c.Lock()
	defer c.Unlock()

	if c.destroyed {
		return fault.ErrNotInitialised
	}
	if 0 != c.ledger.Size() {
		c.log.Criticalf("destroy refused: %d outstanding claims", c.ledger.Size())
		return fault.ErrLedgerNotEmpty
	}

	for _, a := range c.registry.Drain() {
		err := c.arena.Discard(a)
		logger.PanicIfError("collection.Destroy discard", err)
		messagebus.Send(messagebus.Destroyed, a.Id)
	}

	liveness.Unregister(c.link)
	c.link = nil
	c.destroyed = true
	c.log.Info("destroyed")
	return nil
}
