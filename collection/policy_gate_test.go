// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package collection_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/custodyd/capability"
	"github.com/bitmark-inc/custodyd/collection"
	"github.com/bitmark-inc/custodyd/collection/mocks"
	"github.com/bitmark-inc/custodyd/fault"
)

// every seize and release consults the policy exactly once with the
// claimed asset id
func TestPolicyConsulted(t *testing.T) {
	setup(t)
	defer teardown(t)

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockPolicy(ctl)
	m.EXPECT().Name().Return(capability.TokenPolicyName).AnyTimes()
	m.EXPECT().Authorize(gomock.Any(), gomock.Any(), uint64(5)).Return(nil).Times(1)

	c := collection.New(m)
	assert.NoError(t, c.EstablishLink(), "establish link failed")

	token, err := c.DepositSeizable(makeAsset(5), nil)
	assert.NoError(t, err, "seizable deposit failed")

	_, err = c.Seize(capability.Claimant{Token: token}, 5)
	assert.NoError(t, err, "seize failed")
}

// a policy refusal must leave the ledger untouched
func TestPolicyRefusalAborts(t *testing.T) {
	setup(t)
	defer teardown(t)

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockPolicy(ctl)
	m.EXPECT().Name().Return(capability.TokenPolicyName).AnyTimes()
	m.EXPECT().Authorize(gomock.Any(), gomock.Any(), uint64(6)).
		Return(fault.ErrNotAuthorized).Times(2)

	c := collection.New(m)
	assert.NoError(t, c.EstablishLink(), "establish link failed")

	token, err := c.DepositSeizable(makeAsset(6), nil)
	assert.NoError(t, err, "seizable deposit failed")

	_, err = c.Seize(capability.Claimant{Token: token}, 6)
	assert.Equal(t, fault.ErrNotAuthorized, err, "refusal ignored")
	assert.Equal(t, 1, c.ConstrainedSize(), "refused seize mutated the ledger")

	err = c.ReleaseConstraint(capability.Claimant{Token: token}, 6)
	assert.Equal(t, fault.ErrNotAuthorized, err, "refusal ignored")
	assert.Equal(t, 1, c.ConstrainedSize(), "refused release mutated the ledger")
}

// the policy is not consulted for an absent ledger entry
func TestPolicySkippedWhenAbsent(t *testing.T) {
	setup(t)
	defer teardown(t)

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockPolicy(ctl)
	m.EXPECT().Name().Return(capability.TokenPolicyName).AnyTimes()
	m.EXPECT().Authorize(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	c := collection.New(m)
	assert.NoError(t, c.EstablishLink(), "establish link failed")

	_, err := c.Seize(capability.Claimant{}, 77)
	assert.Equal(t, fault.ErrAssetNotFound, err, "absent entry seized")
}
