// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package liveness - registry of active public handles
//
// a collection registers one handle here as its public reach-back path;
// the handle is weak, it carries no ownership and its only use is the
// lender's liveness probe
//
// a holder trying to frustrate seizure by severing public reachability
// is detected when the probe no longer resolves; resolution failure is
// a normal outcome, not an error
package liveness

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/custodyd/fault"
)

// Link - a weak handle onto the registry
type Link struct {
	handle uint64
}

// globals
var globalData struct {
	sync.RWMutex
	log        *logger.L
	handles    map[uint64]struct{}
	nextHandle uint64

	// set once during initialise
	initialised bool
}

// Initialise - set up the handle registry
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("liveness")
	globalData.log.Info("starting…")

	globalData.handles = make(map[uint64]struct{})
	globalData.nextHandle = 1

	globalData.initialised = true
	return nil
}

// Finalise - drop all handles
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.handles = nil
	globalData.initialised = false
	return nil
}

// Register - create a new active handle
func Register() (*Link, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return nil, fault.ErrNotInitialised
	}

	handle := globalData.nextHandle
	globalData.nextHandle += 1
	globalData.handles[handle] = struct{}{}

	globalData.log.Debugf("register handle: %d", handle)
	return &Link{handle: handle}, nil
}

// Unregister - revoke a handle
//
// revoking an unknown or already revoked handle is a no-op
func Unregister(link *Link) {
	if nil == link {
		return
	}

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return
	}

	globalData.log.Debugf("unregister handle: %d", link.handle)
	delete(globalData.handles, link.handle)
}

// Resolve - check that a handle is still active
//
// read only and safe to call arbitrarily often
func (link *Link) Resolve() bool {
	if nil == link {
		return false
	}

	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return false
	}

	_, ok := globalData.handles[link.handle]
	return ok
}
