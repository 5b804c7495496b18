// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/custodyd/audit"
	"github.com/bitmark-inc/custodyd/capability"
	"github.com/bitmark-inc/custodyd/collection"
	"github.com/bitmark-inc/custodyd/configuration"
	"github.com/bitmark-inc/custodyd/liveness"
	"github.com/bitmark-inc/custodyd/mode"
	"github.com/bitmark-inc/custodyd/storage"
	"github.com/bitmark-inc/custodyd/vault"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := configuration.GetConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	logging := logger.Configuration{
		Directory: theConfiguration.Logging.Directory,
		File:      theConfiguration.Logging.File,
		Size:      theConfiguration.Logging.Size,
		Count:     theConfiguration.Logging.Count,
		Console:   theConfiguration.Logging.Console,
		Levels:    theConfiguration.Logging.Levels,
	}
	if err = logger.Initialise(logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// set the initial system mode - before any background tasks are started
	err = mode.Initialise(theConfiguration.Testing)
	if nil != err {
		log.Criticalf("mode initialise error: %s", err)
		exitwithstatus.Message("mode initialise error: %s", err)
	}
	defer mode.Finalise()

	// general info
	log.Infof("test mode: %v", mode.IsTesting())
	log.Infof("database: %q", theConfiguration.Database.Name)
	log.Infof("policy: %q", theConfiguration.Custody.Policy)

	// start the data storage
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.Database.Name)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// liveness handle registry
	log.Info("initialise liveness")
	err = liveness.Initialise()
	if nil != err {
		log.Criticalf("liveness initialise error: %s", err)
		exitwithstatus.Message("liveness initialise error: %s", err)
	}
	defer liveness.Finalise()

	// the collection under the configured authorization policy
	policy, err := capability.NewPolicy(theConfiguration.Custody.Policy)
	if nil != err {
		log.Criticalf("policy error: %s", err)
		exitwithstatus.Message("policy error: %s", err)
	}

	coll := collection.New(policy)
	err = coll.EstablishLink()
	if nil != err {
		log.Criticalf("establish link error: %s", err)
		exitwithstatus.Message("establish link error: %s", err)
	}

	// rebuild holdings and claims from the database
	log.Info("restore vault")
	v := vault.New(coll)
	err = v.Restore()
	if nil != err {
		log.Criticalf("vault restore error: %s", err)
		exitwithstatus.Message("vault restore error: %s", err)
	}

	// these commands are allowed to access the internal database
	if len(arguments) > 0 && processDataCommand(log, arguments, v) {
		return
	}

	// start the background invariant scanner
	log.Info("initialise audit")
	err = audit.Initialise(coll, theConfiguration.AuditInterval())
	if nil != err {
		log.Criticalf("audit initialise error: %s", err)
		exitwithstatus.Message("audit initialise error: %s", err)
	}
	defer audit.Finalise()

	// log custody events as they occur
	stopEvents := startEventLogger()
	defer close(stopEvents)

	// watch the configuration file, the daemon restarts on change
	watcherChannel := WatcherChannel{
		change: make(chan struct{}, 1),
		remove: make(chan struct{}, 1),
	}
	watcher, err := newFileWatcher(configurationFile, logger.New(fileWatcherLoggerPrefix), watcherChannel)
	if nil != err {
		log.Criticalf("file watcher setup failed with error: %s", err)
		exitwithstatus.Message("%s: file watcher setup failed with error: %s", program, err)
	}
	err = watcher.Start()
	if nil != err {
		log.Criticalf("file watcher start failed with error: %s", err)
		exitwithstatus.Message("%s: file watcher start failed with error: %s", program, err)
	}

	// if memory logging enabled
	if len(options["memory-stats"]) > 0 {
		go memstats()
	}

	// all initialised; accept operations
	mode.Set(mode.Normal)

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
loop:
	for {
		select {
		case sig := <-ch:
			log.Infof("received signal: %v", sig)
			if 0 == len(options["quiet"]) {
				fmt.Printf("\nreceived signal: %v\n", sig)
				fmt.Printf("\nshutting down…\n")
			}
			break loop

		case <-watcherChannel.change:
			log.Warn("configuration file changed, shutting down for restart")
			break loop

		case <-watcherChannel.remove:
			log.Error("configuration file removed, shutting down")
			break loop
		}
	}

	log.Info("shutting down…")
	mode.Set(mode.Stopped)
}
