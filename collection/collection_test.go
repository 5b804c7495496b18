// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package collection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/capability"
	"github.com/bitmark-inc/custodyd/collection"
	"github.com/bitmark-inc/custodyd/fault"
)

func TestDepositWithdrawRoundTrip(t *testing.T) {
	setup(t)
	defer teardown(t)

	c := newTokenCollection(t)
	a := makeAsset(7)

	assert.NoError(t, c.Deposit(a), "deposit failed")

	b, err := c.Withdraw(7)
	assert.NoError(t, err, "withdraw failed")
	assert.Equal(t, a, b, "asset changed by round trip")

	_, err = c.Withdraw(7)
	assert.Equal(t, fault.ErrAssetNotFound, err, "second withdraw succeeded")
}

func TestWithdrawConstrained(t *testing.T) {
	setup(t)
	defer teardown(t)

	c := newTokenCollection(t)
	_, err := c.DepositSeizable(makeAsset(3), nil)
	assert.NoError(t, err, "seizable deposit failed")

	// a constrained asset is not withdrawable
	_, err = c.Withdraw(3)
	assert.Equal(t, fault.ErrAssetNotFound, err, "constrained asset withdrawn")
}

func TestConstrainedRoundTrip(t *testing.T) {
	setup(t)
	defer teardown(t)

	c := newTokenCollection(t)
	a := makeAsset(12)

	token, err := c.DepositSeizable(a, nil)
	assert.NoError(t, err, "seizable deposit failed")

	err = c.ReleaseConstraint(capability.Claimant{Token: token}, token.AssetId())
	assert.NoError(t, err, "release failed")

	b, err := c.Withdraw(12)
	assert.NoError(t, err, "withdraw after release failed")
	assert.Equal(t, a, b, "asset changed by constrained round trip")
}

func TestSeizeExclusivity(t *testing.T) {
	setup(t)
	defer teardown(t)

	c := newTokenCollection(t)
	a := makeAsset(9)

	token, err := c.DepositSeizable(a, nil)
	assert.NoError(t, err, "seizable deposit failed")

	b, err := c.Seize(capability.Claimant{Token: token}, token.AssetId())
	assert.NoError(t, err, "seize failed")
	assert.Equal(t, a, b, "different asset seized")
	assert.Empty(t, c.Constrained(), "ledger still holds the id")
}

func TestCapabilitySingleUse(t *testing.T) {
	setup(t)
	defer teardown(t)

	orders := []struct {
		name   string
		first  func(*collection.Collection, capability.Claimant, uint64) error
		second func(*collection.Collection, capability.Claimant, uint64) error
	}{
		{"seize-then-seize", doSeize, doSeize},
		{"seize-then-release", doSeize, doRelease},
		{"release-then-seize", doRelease, doSeize},
		{"release-then-release", doRelease, doRelease},
	}

	for i, order := range orders {
		c := newTokenCollection(t)
		token, err := c.DepositSeizable(makeAsset(uint64(100+i)), nil)
		assert.NoError(t, err, "%s: seizable deposit failed", order.name)

		claimant := capability.Claimant{Token: token}
		assert.NoError(t, order.first(c, claimant, token.AssetId()),
			"%s: first redemption failed", order.name)
		assert.Equal(t, fault.ErrAssetNotFound, order.second(c, claimant, token.AssetId()),
			"%s: second redemption did not fail not found", order.name)
	}
}

func doSeize(c *collection.Collection, claimant capability.Claimant, id uint64) error {
	_, err := c.Seize(claimant, id)
	return err
}

func doRelease(c *collection.Collection, claimant capability.Claimant, id uint64) error {
	// release moves the asset back to the registry; drop it again so a
	// following redemption sees a clean not found
	err := c.ReleaseConstraint(claimant, id)
	if nil == err {
		_, _ = c.Withdraw(id)
	}
	return err
}

func TestDisjointness(t *testing.T) {
	setup(t)
	defer teardown(t)

	c := newTokenCollection(t)

	assert.NoError(t, c.Deposit(makeAsset(1)), "deposit failed")
	token, err := c.DepositSeizable(makeAsset(2), nil)
	assert.NoError(t, err, "seizable deposit failed")

	// each id is visible exactly once
	ids, err := c.IDs()
	assert.NoError(t, err, "ids failed")
	assert.Equal(t, []uint64{1, 2}, ids, "wrong id set")

	// cannot deposit a duplicate of a constrained id
	assert.Equal(t, fault.ErrAssetAlreadyHeld, c.Deposit(makeAsset(2)),
		"constrained id deposited unconstrained")

	// cannot constrain a duplicate of an unconstrained id
	_, err = c.DepositSeizable(makeAsset(1), nil)
	assert.Equal(t, fault.ErrAssetAlreadyHeld, err,
		"unconstrained id deposited seizable")

	// release keeps the id singular
	assert.NoError(t, c.ReleaseConstraint(capability.Claimant{Token: token}, 2), "release failed")
	ids, err = c.IDs()
	assert.NoError(t, err, "ids failed")
	assert.Equal(t, []uint64{1, 2}, ids, "wrong id set after release")
	assert.Empty(t, c.Constrained(), "ledger not empty after release")
}

func TestForgedCapability(t *testing.T) {
	setup(t)
	defer teardown(t)

	c := newTokenCollection(t)
	_, err := c.DepositSeizable(makeAsset(4), nil)
	assert.NoError(t, err, "seizable deposit failed")

	forged, _, err := capability.Mint(4)
	assert.NoError(t, err, "mint failed")

	_, err = c.Seize(capability.Claimant{Token: forged}, 4)
	assert.Equal(t, fault.ErrNotAuthorized, err, "forged capability seized")
	assert.Equal(t, 1, c.ConstrainedSize(), "failed seize mutated the ledger")
}

func TestDestructionGuard(t *testing.T) {
	setup(t)
	defer teardown(t)

	c := newTokenCollection(t)
	token, err := c.DepositSeizable(makeAsset(21), nil)
	assert.NoError(t, err, "seizable deposit failed")

	assert.Equal(t, fault.ErrLedgerNotEmpty, c.Destroy(), "non-empty ledger destroyed")

	_, err = c.Seize(capability.Claimant{Token: token}, 21)
	assert.NoError(t, err, "seize failed")

	assert.NoError(t, c.Destroy(), "destroy failed after seize")

	// a destroyed collection refuses everything
	assert.Equal(t, fault.ErrNotInitialised, c.Deposit(makeAsset(22)), "deposit after destroy")
	_, err = c.IDs()
	assert.Equal(t, fault.ErrNotInitialised, err, "ids after destroy")
}

func TestLivenessGating(t *testing.T) {
	setup(t)
	defer teardown(t)

	c := newTokenCollection(t)
	assert.NoError(t, c.Deposit(makeAsset(1)), "deposit failed")
	_, err := c.DepositSeizable(makeAsset(2), nil)
	assert.NoError(t, err, "seizable deposit failed")

	assert.True(t, c.CheckUse(), "fresh collection unusable")

	c.SeverLink()
	assert.False(t, c.CheckUse(), "severed link still usable")

	// reads refuse while unusable
	_, err = c.IDs()
	assert.Equal(t, fault.ErrCollectionUnusable, err, "ids served while unusable")
	_, err = c.Borrow(1)
	assert.Equal(t, fault.ErrCollectionUnusable, err, "borrow served while unusable")

	// unconstrained writes refuse too
	assert.Equal(t, fault.ErrCollectionUnusable, c.Deposit(makeAsset(3)),
		"deposit served while unusable")
	_, err = c.Withdraw(1)
	assert.Equal(t, fault.ErrCollectionUnusable, err, "withdraw served while unusable")
}

func TestEmptyLedgerAlwaysReadable(t *testing.T) {
	setup(t)
	defer teardown(t)

	policy, _ := capability.NewPolicy(capability.TokenPolicyName)
	c := collection.New(policy)

	// no link was ever established and no asset is constrained
	assert.NoError(t, c.Deposit(makeAsset(5)), "deposit failed")
	assert.True(t, c.CheckUse(), "empty ledger reported unusable")

	ids, err := c.IDs()
	assert.NoError(t, err, "ids failed")
	assert.Equal(t, []uint64{5}, ids, "wrong id set")
}

func TestSeizeNotGatedByLiveness(t *testing.T) {
	setup(t)
	defer teardown(t)

	c := newTokenCollection(t)
	token, err := c.DepositSeizable(makeAsset(6), nil)
	assert.NoError(t, err, "seizable deposit failed")

	// the holder cannot block the lender's remedy by severing the link
	c.SeverLink()
	assert.False(t, c.CheckUse(), "severed link still usable")

	a, err := c.Seize(capability.Claimant{Token: token}, 6)
	assert.NoError(t, err, "seize blocked by severed link")
	assert.Equal(t, uint64(6), a.Id, "wrong asset seized")
}

func TestEstablishLinkOnce(t *testing.T) {
	setup(t)
	defer teardown(t)

	c := newTokenCollection(t)
	assert.Equal(t, fault.ErrLinkAlreadyEstablished, c.EstablishLink(),
		"second link established")
}

func TestReestablishLinkRestoresUse(t *testing.T) {
	setup(t)
	defer teardown(t)

	c := newTokenCollection(t)
	_, err := c.DepositSeizable(makeAsset(4), nil)
	assert.NoError(t, err, "seizable deposit failed")

	c.SeverLink()
	assert.False(t, c.CheckUse(), "severed link still usable")

	// the holder recovers by registering a fresh link
	assert.NoError(t, c.EstablishLink(), "link not re-established")
	assert.True(t, c.CheckUse(), "re-established link still unusable")

	assert.NoError(t, c.Deposit(makeAsset(5)), "deposit refused after recovery")
	ids, err := c.IDs()
	assert.NoError(t, err, "ids refused after recovery")
	assert.Equal(t, []uint64{4, 5}, ids, "wrong id set after recovery")

	// only one active link at a time
	assert.Equal(t, fault.ErrLinkAlreadyEstablished, c.EstablishLink(),
		"second active link established")
}

func TestAddressPolicyCollection(t *testing.T) {
	setup(t)
	defer teardown(t)

	lender, _, err := account.NewKeyPair(true)
	assert.NoError(t, err, "key generation failed")
	stranger, _, err := account.NewKeyPair(true)
	assert.NoError(t, err, "key generation failed")

	policy, err := capability.NewPolicy(capability.AddressPolicyName)
	assert.NoError(t, err, "policy failed")
	c := collection.New(policy)
	assert.NoError(t, c.EstablishLink(), "establish link failed")

	// lender account is mandatory under the address policy
	_, err = c.DepositSeizable(makeAsset(30), nil)
	assert.Equal(t, fault.ErrLenderRequired, err, "missing lender accepted")

	_, err = c.DepositSeizable(makeAsset(30), lender)
	assert.NoError(t, err, "seizable deposit failed")

	_, err = c.Seize(capability.Claimant{Account: stranger}, 30)
	assert.Equal(t, fault.ErrNotAuthorized, err, "stranger seized")

	a, err := c.Seize(capability.Claimant{Account: lender}, 30)
	assert.NoError(t, err, "recorded lender refused")
	assert.Equal(t, uint64(30), a.Id, "wrong asset seized")
}

// end to end: mint 7 unconstrained, 9 seizable, seize 9
func TestEndToEnd(t *testing.T) {
	setup(t)
	defer teardown(t)

	c := newTokenCollection(t)

	assert.NoError(t, c.Deposit(makeAsset(7)), "deposit failed")
	ids, err := c.IDs()
	assert.NoError(t, err, "ids failed")
	assert.Equal(t, []uint64{7}, ids, "wrong id set")

	token, err := c.DepositSeizable(makeAsset(9), nil)
	assert.NoError(t, err, "seizable deposit failed")
	ids, err = c.IDs()
	assert.NoError(t, err, "ids failed")
	assert.Equal(t, []uint64{7, 9}, ids, "wrong id set")

	seized, err := c.Seize(capability.Claimant{Token: token}, token.AssetId())
	assert.NoError(t, err, "seize failed")
	assert.Equal(t, uint64(9), seized.Id, "wrong asset seized")

	ids, err = c.IDs()
	assert.NoError(t, err, "ids failed")
	assert.Equal(t, []uint64{7}, ids, "wrong id set after seize")
}
