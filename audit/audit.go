// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package audit

import (
	"encoding/binary"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/custodyd/background"
	"github.com/bitmark-inc/custodyd/collection"
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/storage"
)

// global constants
const (
	defaultInterval = 1 * time.Minute
	minimumScanGap  = 10 * time.Second // scans never run closer together than this
)

// scanner - background process that checks the custody state at rest
type scanner struct {
	log      *logger.L
	coll     *collection.Collection
	limiter  *rate.Limiter
	interval time.Duration
}

// globals for background process
type auditData struct {
	sync.RWMutex // to allow locking

	log *logger.L

	scan scanner

	// for background
	background *background.T

	// set once during initialise
	initialised bool
}

// global data
var globalData auditData

// Initialise - start the periodic invariant scanner over a collection
func Initialise(coll *collection.Collection, interval time.Duration) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("audit")
	globalData.log.Info("starting…")

	if interval <= 0 {
		interval = defaultInterval
	}

	globalData.scan = scanner{
		log:      logger.New("audit-scan"),
		coll:     coll,
		limiter:  rate.NewLimiter(rate.Every(minimumScanGap), 1),
		interval: interval,
	}

	// all data initialised
	globalData.initialised = true

	// start background processes
	globalData.log.Info("start background…")
	processes := background.Processes{
		&globalData.scan,
	}
	globalData.background = background.Start(processes, nil)

	return nil
}

// Finalise - stop all background tasks
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.background.Stop()

	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// background process loop
func (scn *scanner) Run(args interface{}, shutdown <-chan struct{}) {
	log := scn.log
	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case <-time.After(scn.interval):
			if scn.limiter.Allow() {
				scn.process()
			}
		}
	}

	log.Info("shutting down…")
	log.Flush()
}

// one scan over the live collection and the database pools
func (scn *scanner) process() {
	log := scn.log
	log.Debug("scan…")

	coll := scn.coll

	// every constrained asset must have exactly one outstanding capability
	outstanding := coll.Outstanding()
	constrained := coll.ConstrainedSize()
	if outstanding != uint64(constrained) {
		log.Criticalf("capability imbalance: outstanding: %d  constrained: %d", outstanding, constrained)
	}

	// a constrained holding with a severed link is stuck until re-established
	if constrained > 0 && !coll.CheckUse() {
		log.Warn("collection unusable: constrained assets present and link severed")
	}

	scn.processPools()
}

// cross checks between the stored pools
func (scn *scanner) processPools() {
	log := scn.log

	unconstrained, err := storage.Pool.Unconstrained.Fetch(-1)
	if nil != err {
		log.Warnf("pool fetch error: %s", err)
		return
	}
	constrained, err := storage.Pool.Constrained.Fetch(-1)
	if nil != err {
		log.Warnf("pool fetch error: %s", err)
		return
	}

	seen := make(map[uint64]struct{}, len(unconstrained))

	for _, element := range unconstrained {
		id := binary.BigEndian.Uint64(element.Key)
		seen[id] = struct{}{}
		if !storage.Pool.Assets.Has(element.Key) {
			log.Criticalf("unconstrained asset: %d has no stored record", id)
		}
	}

	// the same asset id must never appear in both pools
	for _, element := range constrained {
		id := binary.BigEndian.Uint64(element.Key)
		if _, ok := seen[id]; ok {
			log.Criticalf("asset: %d present in both pools", id)
		}
		if !storage.Pool.Assets.Has(element.Key) {
			log.Criticalf("constrained asset: %d has no stored record", id)
		}
	}
}
