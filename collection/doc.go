// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package collection - the holder facing ownership collection
//
// aggregate root owning one asset registry, one constraint ledger and
// at most one liveness link, all over a shared arena of owning slots
//
// per asset states:
//
//	Unconstrained  in the registry, reached by plain deposit or release
//	Constrained    in the ledger with one un-consumed capability
//	Seized         terminal, asset handed to the authorized claimant
//
// every operation is atomic: it completes with all invariants restored
// or aborts with no visible mutation
package collection
