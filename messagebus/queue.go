// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

// internal constants
const (
	queueSize = 1000
)

// EventKind - what happened to an asset
type EventKind int

// all event kinds
const (
	Deposited EventKind = iota
	DepositedSeizable
	Seized
	Released
	Withdrawn
	Destroyed
)

// String - event kind for logs
func (k EventKind) String() string {
	switch k {
	case Deposited:
		return "deposited"
	case DepositedSeizable:
		return "deposited-seizable"
	case Seized:
		return "seized"
	case Released:
		return "released"
	case Withdrawn:
		return "withdrawn"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Event - a single custody notification
type Event struct {
	Kind    EventKind
	AssetId uint64
}

var (
	// for queueing events
	queue = make(chan Event, queueSize)
)

// Send - queue an event
//
// fire and forget; the event is dropped if nothing is draining the
// queue fast enough, notifications never block a transition
func Send(kind EventKind, assetId uint64) {
	select {
	case queue <- Event{Kind: kind, AssetId: assetId}:
	default:
	}
}

// Chan - channel to read from
func Chan() <-chan Event {
	return queue
}
