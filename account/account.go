// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - lender and holder identities
//
// an account is an ed25519 public key carried in a tagged, checksummed
// base58 encoding; the address authorization policy compares accounts
// for equality
package account

import (
	"bytes"

	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/util"
)

// miscellaneous constants
const (
	checksumLength = 4

	// bits in key code starting from LSB
	publicKeyCode = 0x01
	testKeyCode   = 0x02
)

// Account - an ed25519 public key identity
type Account struct {
	Test      bool
	PublicKey []byte
}

// FromBase58 - decode a base58 account string
func FromBase58(accountBase58Encoded string) (*Account, error) {
	decoded := util.FromBase58(accountBase58Encoded)
	if 0 == len(decoded) {
		return nil, fault.ErrCannotDecodeAccount
	}

	if len(decoded) != 1+ed25519.PublicKeySize+checksumLength {
		return nil, fault.ErrCannotDecodeAccount
	}

	keyVariant := decoded[0]
	if keyVariant&publicKeyCode != publicKeyCode {
		return nil, fault.ErrCannotDecodeAccount
	}

	prefix := len(decoded) - checksumLength
	checksum := sha3.Sum256(decoded[:prefix])
	if !bytes.Equal(checksum[:checksumLength], decoded[prefix:]) {
		return nil, fault.ErrChecksumMismatch
	}

	return &Account{
		Test:      keyVariant&testKeyCode == testKeyCode,
		PublicKey: decoded[1:prefix],
	}, nil
}

// Bytes - tagged binary form of the account
func (account *Account) Bytes() []byte {
	keyVariant := byte(publicKeyCode)
	if account.Test {
		keyVariant |= testKeyCode
	}
	return append([]byte{keyVariant}, account.PublicKey...)
}

// String - checksummed base58 form of the account
func (account *Account) String() string {
	buffer := account.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return util.ToBase58(buffer)
}

// MarshalText - base58 JSON form
func (account Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - decode base58 JSON form
func (account *Account) UnmarshalText(text []byte) error {
	a, err := FromBase58(string(text))
	if nil != err {
		return err
	}
	*account = *a
	return nil
}

// CheckSignature - verify a signature made by this account's key
func (account *Account) CheckSignature(message []byte, signature []byte) error {
	if len(account.PublicKey) != ed25519.PublicKeySize {
		return fault.ErrInvalidKeyLength
	}
	if !ed25519.Verify(account.PublicKey, message, signature) {
		return fault.ErrInvalidSignature
	}
	return nil
}
