// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/custodyd/messagebus"
)

// drain the custody event queue into the log
func startEventLogger() chan<- struct{} {

	log := logger.New("events")
	stop := make(chan struct{})

	go func() {
		for {
			select {
			case <-stop:
				log.Info("shutting down…")
				return

			case event := <-messagebus.Chan():
				log.Infof("%s: asset %d", event.Kind, event.AssetId)
			}
		}
	}()

	return stop
}
