// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"bytes"
	"testing"

	"github.com/bitmark-inc/custodyd/util"
)

func TestBase58RoundTrip(t *testing.T) {
	testData := [][]byte{
		{0x00},
		{0x01, 0x02, 0x03, 0x04},
		[]byte("the quick brown fox"),
		{0xff, 0xfe, 0xfd, 0x00, 0x00, 0x01},
	}

	for i, item := range testData {
		encoded := util.ToBase58(item)
		decoded := util.FromBase58(encoded)
		if !bytes.Equal(item, decoded) {
			t.Errorf("%d: round trip failed: %x -> %q -> %x", i, item, encoded, decoded)
		}
	}
}

func TestFromBase58Invalid(t *testing.T) {
	if 0 != len(util.FromBase58("0OIl+")) {
		t.Error("invalid base58 must decode to empty")
	}
}
