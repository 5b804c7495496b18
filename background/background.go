// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - run a set of background processes and stop
// them cleanly on shutdown
package background

// the shutdown and completed channels for one background process
type shutdown struct {
	shutdown chan struct{}
	finished chan struct{}
}

// T - handle for the stop routine
type T struct {
	s []shutdown
}

// Process - a single background process
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// Start - run a set of background processes
func Start(processes Processes, args interface{}) *T {

	register := new(T)
	register.s = make([]shutdown, len(processes))

	// start each background
	for i, p := range processes {
		s := make(chan struct{})
		f := make(chan struct{})
		register.s[i].shutdown = s
		register.s[i].finished = f
		go func(p Process, s <-chan struct{}, f chan<- struct{}) {
			p.Run(args, s)

			// flag for the stop routine to detect shutdown
			close(f)
		}(p, s, f)
	}
	return register
}

// Stop - stop a set of background processes
func (t *T) Stop() {

	if nil == t {
		return
	}

	// shutdown all background tasks
	for _, shutdown := range t.s {
		close(shutdown.shutdown)
	}

	// wait for finished
	for _, shutdown := range t.s {
		<-shutdown.finished
	}
}
