// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// custody-cli - command line tool to manage a local custody collection
//
// operates directly on the custodyd database, so the daemon must be
// stopped first; identities hold password encrypted signing keys used
// by the address authorization policy
package main
