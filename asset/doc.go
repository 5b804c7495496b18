// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package asset - the immutable asset record
//
// an asset is created once by the external minter and never mutated;
// its identity is a minter-assigned 64 bit id, display metadata rides
// along but plays no part in any ownership transition
//
// records pack to a length-prefixed binary form for the storage pools
package asset
