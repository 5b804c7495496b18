// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - a queuing system for custody events
//
// collections announce deposits, seizures and releases here; the
// daemon consumes the queue for logging
package messagebus
