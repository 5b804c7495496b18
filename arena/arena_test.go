// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package arena_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/custodyd/arena"
	"github.com/bitmark-inc/custodyd/asset"
	"github.com/bitmark-inc/custodyd/fault"
)

func TestPutTake(t *testing.T) {
	ar := arena.New()
	a := &asset.Asset{Id: 11, Name: "first"}

	assert.NoError(t, ar.Put(a), "put failed")
	assert.True(t, ar.Has(11), "slot not occupied")
	assert.Equal(t, 1, ar.Size(), "wrong size")

	b, err := ar.Take(11)
	assert.NoError(t, err, "take failed")
	assert.Equal(t, a, b, "different asset returned")
	assert.False(t, ar.Has(11), "slot still occupied")
	assert.Equal(t, 0, ar.Size(), "wrong size")
}

func TestDoublePut(t *testing.T) {
	ar := arena.New()
	assert.NoError(t, ar.Put(&asset.Asset{Id: 5}), "put failed")
	assert.Equal(t, fault.ErrAssetAlreadyHeld, ar.Put(&asset.Asset{Id: 5}), "occupied slot overwritten")
}

func TestTakeMissing(t *testing.T) {
	ar := arena.New()
	_, err := ar.Take(99)
	assert.Equal(t, fault.ErrAssetNotFound, err, "wrong error")
}

func TestBorrow(t *testing.T) {
	ar := arena.New()
	a := &asset.Asset{Id: 2, Name: "borrowed"}
	assert.NoError(t, ar.Put(a), "put failed")

	b, err := ar.Borrow(2)
	assert.NoError(t, err, "borrow failed")
	assert.Equal(t, "borrowed", b.Name, "wrong asset")
	assert.True(t, ar.Has(2), "borrow removed the asset")

	_, err = ar.Borrow(3)
	assert.Equal(t, fault.ErrAssetNotFound, err, "wrong error")
}

func TestDiscardWhileHeld(t *testing.T) {
	ar := arena.New()
	a := &asset.Asset{Id: 8}
	assert.NoError(t, ar.Put(a), "put failed")

	assert.Equal(t, fault.ErrAssetAlreadyHeld, ar.Discard(a), "held asset discarded")

	taken, err := ar.Take(8)
	assert.NoError(t, err, "take failed")
	assert.NoError(t, ar.Discard(taken), "discard of taken asset failed")
}
