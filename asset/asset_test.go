// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/custodyd/asset"
	"github.com/bitmark-inc/custodyd/fault"
)

func TestPackUnpack(t *testing.T) {
	a := &asset.Asset{
		Id:          7,
		Name:        "spanner",
		Description: "one adjustable spanner",
		Thumbnail:   "https://assets.test/spanner.png",
		Royalties: []asset.Royalty{
			{Receiver: "workshop", Rate: 250},
			{Receiver: "gallery", Rate: 1000},
		},
	}

	packed, err := a.Pack()
	assert.NoError(t, err, "pack failed")

	b, err := asset.Unpack(packed)
	assert.NoError(t, err, "unpack failed")
	assert.Equal(t, a, b, "record changed by round trip")
}

func TestPackNoRoyalties(t *testing.T) {
	a := &asset.Asset{
		Id:   901,
		Name: "plain",
	}

	packed, err := a.Pack()
	assert.NoError(t, err, "pack failed")

	b, err := asset.Unpack(packed)
	assert.NoError(t, err, "unpack failed")
	assert.Equal(t, uint64(901), b.Id, "wrong id")
	assert.Empty(t, b.Royalties, "unexpected royalties")
}

func TestPackExcessiveRoyaltyRate(t *testing.T) {
	a := &asset.Asset{
		Id:        3,
		Royalties: []asset.Royalty{{Receiver: "x", Rate: 10001}},
	}

	_, err := a.Pack()
	assert.Equal(t, fault.ErrInvalidRoyaltyRate, err, "wrong error")
}

func TestUnpackTruncated(t *testing.T) {
	a := &asset.Asset{Id: 55, Name: "tool"}
	packed, err := a.Pack()
	assert.NoError(t, err, "pack failed")

	for i := 0; i < len(packed); i += 1 {
		_, err := asset.Unpack(packed[:i])
		assert.Error(t, err, "truncated record %d unpacked", i)
	}

	// trailing junk is also invalid
	_, err = asset.Unpack(append(packed, 0x00))
	assert.Error(t, err, "record with trailing byte unpacked")
}

func TestFingerprintDependsOnContent(t *testing.T) {
	a := &asset.Asset{Id: 1, Name: "one"}
	b := &asset.Asset{Id: 1, Name: "two"}

	fa, err := a.Fingerprint()
	assert.NoError(t, err, "fingerprint failed")
	fb, err := b.Fingerprint()
	assert.NoError(t, err, "fingerprint failed")
	assert.NotEqual(t, fa, fb, "different records share a fingerprint")
}
