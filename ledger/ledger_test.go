// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/custodyd/arena"
	"github.com/bitmark-inc/custodyd/asset"
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/ledger"
)

var testDigest = [32]byte{0x01, 0x02, 0x03}

func TestAttachDetach(t *testing.T) {
	l := ledger.New(arena.New())
	a := &asset.Asset{Id: 9, Name: "nine"}

	assert.NoError(t, l.Attach(a, testDigest, ""), "attach failed")
	assert.True(t, l.Has(9), "attach not recorded")
	assert.Equal(t, uint64(1), l.Outstanding(), "wrong outstanding count")

	d, err := l.Digest(9)
	assert.NoError(t, err, "digest failed")
	assert.Equal(t, testDigest, d, "wrong digest")

	b, err := l.Detach(9)
	assert.NoError(t, err, "detach failed")
	assert.Equal(t, a, b, "asset changed")
	assert.False(t, l.Has(9), "detach not recorded")
	assert.Equal(t, uint64(0), l.Outstanding(), "outstanding not decremented")

	_, err = l.Detach(9)
	assert.Equal(t, fault.ErrAssetNotFound, err, "second detach succeeded")
}

func TestDoubleAttach(t *testing.T) {
	l := ledger.New(arena.New())

	assert.NoError(t, l.Attach(&asset.Asset{Id: 2}, testDigest, ""), "attach failed")
	assert.Equal(t, fault.ErrAssetAlreadyHeld,
		l.Attach(&asset.Asset{Id: 2}, testDigest, ""), "duplicate attach succeeded")
	assert.Equal(t, uint64(1), l.Outstanding(), "failed attach counted")
}

func TestAttachOccupiedArena(t *testing.T) {
	ar := arena.New()
	assert.NoError(t, ar.Put(&asset.Asset{Id: 3}), "put failed")

	l := ledger.New(ar)
	err := l.Attach(&asset.Asset{Id: 3}, testDigest, "")
	assert.Equal(t, fault.ErrAssetAlreadyHeld, err, "occupied slot attached")
	assert.False(t, l.Has(3), "failed attach recorded")
	assert.Equal(t, uint64(0), l.Outstanding(), "failed attach counted")
}

func TestLender(t *testing.T) {
	l := ledger.New(arena.New())
	assert.NoError(t, l.Attach(&asset.Asset{Id: 5}, testDigest, "some-lender"), "attach failed")

	lender, err := l.Lender(5)
	assert.NoError(t, err, "lender failed")
	assert.Equal(t, "some-lender", lender, "wrong lender")

	_, err = l.Lender(6)
	assert.Equal(t, fault.ErrAssetNotFound, err, "absent lender served")
}

func TestPairingInvariant(t *testing.T) {
	l := ledger.New(arena.New())

	for id := uint64(1); id <= 5; id += 1 {
		assert.NoError(t, l.Attach(&asset.Asset{Id: id}, testDigest, ""), "attach failed")
	}
	assert.Equal(t, uint64(l.Size()), l.Outstanding(), "pairing broken after attaches")

	_, err := l.Detach(3)
	assert.NoError(t, err, "detach failed")
	_, err = l.Detach(1)
	assert.NoError(t, err, "detach failed")
	assert.Equal(t, uint64(l.Size()), l.Outstanding(), "pairing broken after detaches")
}
