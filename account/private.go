// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"crypto/rand"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/custodyd/fault"
)

// PrivateKey - an ed25519 private key with its test flag
type PrivateKey struct {
	Test       bool
	PrivateKey []byte
}

// NewKeyPair - generate a fresh account and private key
func NewKeyPair(test bool) (*Account, *PrivateKey, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, nil, err
	}
	account := &Account{
		Test:      test,
		PublicKey: publicKey,
	}
	private := &PrivateKey{
		Test:       test,
		PrivateKey: privateKey,
	}
	return account, private, nil
}

// PrivateKeyFromBytes - reconstruct a private key from its raw bytes
func PrivateKeyFromBytes(test bool, buffer []byte) (*PrivateKey, error) {
	if len(buffer) != ed25519.PrivateKeySize {
		return nil, fault.ErrInvalidKeyLength
	}
	return &PrivateKey{
		Test:       test,
		PrivateKey: buffer,
	}, nil
}

// Account - the public account for this key
func (private *PrivateKey) Account() *Account {
	return &Account{
		Test:      private.Test,
		PublicKey: []byte(ed25519.PrivateKey(private.PrivateKey).Public().(ed25519.PublicKey)),
	}
}

// Sign - sign a message with this key
func (private *PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(private.PrivateKey, message)
}
