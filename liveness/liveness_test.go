// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package liveness_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/fixtures"
	"github.com/bitmark-inc/custodyd/liveness"
)

func TestRegisterResolve(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	assert.NoError(t, liveness.Initialise(), "initialise failed")
	defer liveness.Finalise()

	link, err := liveness.Register()
	assert.NoError(t, err, "register failed")
	assert.True(t, link.Resolve(), "fresh handle does not resolve")

	liveness.Unregister(link)
	assert.False(t, link.Resolve(), "revoked handle resolves")

	// revoking again is a no-op
	liveness.Unregister(link)
}

func TestNilLink(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	assert.NoError(t, liveness.Initialise(), "initialise failed")
	defer liveness.Finalise()

	var link *liveness.Link
	assert.False(t, link.Resolve(), "nil link resolves")
	liveness.Unregister(link)
}

func TestDoubleInitialise(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	assert.NoError(t, liveness.Initialise(), "initialise failed")
	assert.Equal(t, fault.ErrAlreadyInitialised, liveness.Initialise(), "second initialise allowed")
	assert.NoError(t, liveness.Finalise(), "finalise failed")
	assert.Equal(t, fault.ErrNotInitialised, liveness.Finalise(), "second finalise allowed")
}

func TestRegisterUninitialised(t *testing.T) {
	_, err := liveness.Register()
	assert.Equal(t, fault.ErrNotInitialised, err, "register succeeded uninitialised")
}
