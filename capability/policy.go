// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package capability

import (
	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/fault"
)

// policy names accepted by configuration
const (
	TokenPolicyName   = "token"
	AddressPolicyName = "address"
)

// Claimant - what a caller presents when exercising a claim
//
// under the token policy only Token is consulted; under the address
// policy only Account
type Claimant struct {
	Token   *Capability
	Account *account.Account
}

// LedgerView - the read access a policy needs to the constraint ledger
type LedgerView interface {
	Digest(id uint64) ([32]byte, error)
	Lender(id uint64) (string, error)
}

// Policy - pluggable seize/release authorization
//
// two incompatible designs exist for seize authorization; they are kept
// as separate policies selected by configuration, never merged
type Policy interface {
	Name() string
	Authorize(view LedgerView, claimant Claimant, assetId uint64) error
}

// NewPolicy - select a policy by its configuration name
func NewPolicy(name string) (Policy, error) {
	switch name {
	case TokenPolicyName:
		return tokenPolicy{}, nil
	case AddressPolicyName:
		return addressPolicy{}, nil
	default:
		return nil, fault.ErrInvalidPolicy
	}
}

// authorization by possession of a valid capability token
type tokenPolicy struct{}

func (tokenPolicy) Name() string {
	return TokenPolicyName
}

func (tokenPolicy) Authorize(view LedgerView, claimant Claimant, assetId uint64) error {
	if nil == claimant.Token {
		return fault.ErrNotAuthorized
	}
	if claimant.Token.AssetId() != assetId {
		return fault.ErrCapabilityMismatch
	}

	recorded, err := view.Digest(assetId)
	if nil != err {
		return err
	}
	if recorded != claimant.Token.RedemptionDigest() {
		return fault.ErrNotAuthorized
	}
	return nil
}

// authorization by identity equality against the recorded lender
type addressPolicy struct{}

func (addressPolicy) Name() string {
	return AddressPolicyName
}

func (addressPolicy) Authorize(view LedgerView, claimant Claimant, assetId uint64) error {
	if nil == claimant.Account {
		return fault.ErrNotAuthorized
	}

	lender, err := view.Lender(assetId)
	if nil != err {
		return err
	}
	if "" == lender || lender != claimant.Account.String() {
		return fault.ErrNotAuthorized
	}
	return nil
}
