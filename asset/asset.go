// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/custodyd/fault"
)

// limits on packed field sizes
const (
	maximumStringLength = 4096
	maximumRoyalties    = 16

	// royalty rate is in basis points
	maximumRoyaltyRate = 10000
)

// Royalty - a single royalty entry, rate in basis points
type Royalty struct {
	Receiver string
	Rate     uint32
}

// Asset - the immutable asset record
//
// Id is assigned by the external minter and is never reused;
// the metadata fields are display only
type Asset struct {
	Id          uint64
	Name        string
	Description string
	Thumbnail   string
	Royalties   []Royalty
}

// Fingerprint - SHA3-256 digest of the packed record
//
// identifies the full record content, not just the id
func (a *Asset) Fingerprint() ([32]byte, error) {
	packed, err := a.Pack()
	if nil != err {
		return [32]byte{}, err
	}
	return sha3.Sum256(packed), nil
}

// Pack - serialise the record
//
// structure:
//   8 bytes    id (big endian)
//   strings    name, description, thumbnail (each uint16 length ++ bytes)
//   2 bytes    royalty count
//   royalties  receiver (uint16 length ++ bytes) ++ 4 byte rate
func (a *Asset) Pack() ([]byte, error) {
	if len(a.Royalties) > maximumRoyalties {
		return nil, fault.ErrInvalidAssetRecord
	}

	buffer := make([]byte, 8, 256)
	binary.BigEndian.PutUint64(buffer, a.Id)

	var err error
	for _, s := range []string{a.Name, a.Description, a.Thumbnail} {
		buffer, err = packString(buffer, s)
		if nil != err {
			return nil, err
		}
	}

	count := make([]byte, 2)
	binary.BigEndian.PutUint16(count, uint16(len(a.Royalties)))
	buffer = append(buffer, count...)

	for _, r := range a.Royalties {
		if r.Rate > maximumRoyaltyRate {
			return nil, fault.ErrInvalidRoyaltyRate
		}
		buffer, err = packString(buffer, r.Receiver)
		if nil != err {
			return nil, err
		}
		rate := make([]byte, 4)
		binary.BigEndian.PutUint32(rate, r.Rate)
		buffer = append(buffer, rate...)
	}

	return buffer, nil
}

// Unpack - deserialise a packed record
func Unpack(buffer []byte) (*Asset, error) {
	if len(buffer) < 8 {
		return nil, fault.ErrInvalidAssetRecord
	}

	a := &Asset{
		Id: binary.BigEndian.Uint64(buffer[:8]),
	}
	rest := buffer[8:]

	var err error
	a.Name, rest, err = unpackString(rest)
	if nil != err {
		return nil, err
	}
	a.Description, rest, err = unpackString(rest)
	if nil != err {
		return nil, err
	}
	a.Thumbnail, rest, err = unpackString(rest)
	if nil != err {
		return nil, err
	}

	if len(rest) < 2 {
		return nil, fault.ErrInvalidAssetRecord
	}
	count := int(binary.BigEndian.Uint16(rest[:2]))
	rest = rest[2:]
	if count > maximumRoyalties {
		return nil, fault.ErrInvalidAssetRecord
	}

	for i := 0; i < count; i += 1 {
		r := Royalty{}
		r.Receiver, rest, err = unpackString(rest)
		if nil != err {
			return nil, err
		}
		if len(rest) < 4 {
			return nil, fault.ErrInvalidAssetRecord
		}
		r.Rate = binary.BigEndian.Uint32(rest[:4])
		rest = rest[4:]
		if r.Rate > maximumRoyaltyRate {
			return nil, fault.ErrInvalidRoyaltyRate
		}
		a.Royalties = append(a.Royalties, r)
	}

	if 0 != len(rest) {
		return nil, fault.ErrInvalidAssetRecord
	}

	return a, nil
}

// append a uint16 length prefixed string
func packString(buffer []byte, s string) ([]byte, error) {
	if len(s) > maximumStringLength {
		return nil, fault.ErrInvalidAssetRecord
	}
	size := make([]byte, 2)
	binary.BigEndian.PutUint16(size, uint16(len(s)))
	buffer = append(buffer, size...)
	return append(buffer, s...), nil
}

// remove a uint16 length prefixed string from the front of the buffer
func unpackString(buffer []byte) (string, []byte, error) {
	if len(buffer) < 2 {
		return "", nil, fault.ErrInvalidAssetRecord
	}
	size := int(binary.BigEndian.Uint16(buffer[:2]))
	buffer = buffer[2:]
	if len(buffer) < size {
		return "", nil, fault.ErrInvalidAssetRecord
	}
	return string(buffer[:size]), buffer[size:], nil
}
