// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package collection_test

import (
	"testing"

	"github.com/bitmark-inc/custodyd/asset"
	"github.com/bitmark-inc/custodyd/capability"
	"github.com/bitmark-inc/custodyd/collection"
	"github.com/bitmark-inc/custodyd/fixtures"
	"github.com/bitmark-inc/custodyd/liveness"
)

// common test setup routines

func setup(t *testing.T) {
	fixtures.SetupTestLogger()
	if err := liveness.Initialise(); nil != err {
		t.Fatalf("liveness initialise error: %s", err)
	}
}

func teardown(t *testing.T) {
	liveness.Finalise()
	fixtures.TeardownTestLogger()
}

// a collection under the token policy with its link established
func newTokenCollection(t *testing.T) *collection.Collection {
	policy, err := capability.NewPolicy(capability.TokenPolicyName)
	if nil != err {
		t.Fatalf("policy error: %s", err)
	}
	c := collection.New(policy)
	if err := c.EstablishLink(); nil != err {
		t.Fatalf("establish link error: %s", err)
	}
	return c
}

func makeAsset(id uint64) *asset.Asset {
	return &asset.Asset{
		Id:   id,
		Name: "test asset",
	}
}
