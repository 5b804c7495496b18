// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package vault - durable custody over a collection
//
// every state transition is written through to the database pools in a
// single batch so a restart rebuilds exactly the holdings and claims
// that were committed:
//
//   Assets        packed asset record keyed by big endian id
//   Unconstrained empty value, marks an id as freely withdrawable
//   Constrained   redemption digest (32 bytes) followed by the lender
//                 account string, marks an id as under claim
//
// the in-memory collection stays authoritative for request checking;
// the pools are only read back during Restore
package vault
