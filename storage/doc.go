// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++       = concatenation of byte data
// 3. asset id = big endian uint64 (8 bytes)
// 4. digest   = capability redemption digest as 32 byte SHA3-256
// 5. lender   = lender account in checksummed base58 form (variable length)
//
// Assets:
//
//   A ++ asset id   - every held asset
//                     data: packed asset record
//
// Custody state:
//
//   U ++ asset id   - unconstrained holding
//                     data: (empty)
//   C ++ asset id   - constrained holding
//                     data: digest ++ lender
//
// Testing:
//
//   Z ++ key        - testing data
package storage
