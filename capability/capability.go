// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package capability - the seize capability token
//
// a bearer token bound to one asset id, minted when an asset is placed
// under claim and consumed by the first successful seize or release;
// validity is keyed to the presence of the matching ledger entry, there
// is no separate spent flag
//
// the token carries a random secret; the ledger records only the
// secret's digest, so a token cannot be forged from observable state
package capability

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/util"
)

// encoding constants
const (
	tagByte      = 0x43 // 'C'
	secretLength = 32

	checksumLength = 4
)

// Capability - an unforgeable, transferable, single-use seize token
type Capability struct {
	assetId uint64
	secret  [secretLength]byte
}

// Mint - create a fresh capability for an asset id
//
// returns the token and the redemption digest the ledger must record
func Mint(assetId uint64) (*Capability, [32]byte, error) {
	c := &Capability{
		assetId: assetId,
	}
	_, err := rand.Read(c.secret[:])
	if nil != err {
		return nil, [32]byte{}, err
	}
	return c, c.RedemptionDigest(), nil
}

// AssetId - the asset this token is bound to
func (c *Capability) AssetId() uint64 {
	return c.assetId
}

// RedemptionDigest - SHA3-256 over secret and asset id
//
// binding the id into the digest stops a token minted for one asset
// being replayed against another entry
func (c *Capability) RedemptionDigest() [32]byte {
	buffer := make([]byte, secretLength+8)
	copy(buffer, c.secret[:])
	binary.BigEndian.PutUint64(buffer[secretLength:], c.assetId)
	return sha3.Sum256(buffer)
}

// String - checksummed base58 form for out-of-band transport
func (c *Capability) String() string {
	buffer := make([]byte, 0, 1+8+secretLength+checksumLength)
	buffer = append(buffer, tagByte)
	id := make([]byte, 8)
	binary.BigEndian.PutUint64(id, c.assetId)
	buffer = append(buffer, id...)
	buffer = append(buffer, c.secret[:]...)
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return util.ToBase58(buffer)
}

// FromBase58 - reconstruct a capability from its transport form
func FromBase58(text string) (*Capability, error) {
	decoded := util.FromBase58(text)
	if len(decoded) != 1+8+secretLength+checksumLength {
		return nil, fault.ErrCannotDecodeCapability
	}
	if tagByte != decoded[0] {
		return nil, fault.ErrCannotDecodeCapability
	}

	prefix := len(decoded) - checksumLength
	checksum := sha3.Sum256(decoded[:prefix])
	if !bytes.Equal(checksum[:checksumLength], decoded[prefix:]) {
		return nil, fault.ErrChecksumMismatch
	}

	c := &Capability{
		assetId: binary.BigEndian.Uint64(decoded[1:9]),
	}
	copy(c.secret[:], decoded[9:prefix])
	return c, nil
}
