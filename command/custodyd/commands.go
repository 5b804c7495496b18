// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/custodyd/configuration"
	"github.com/bitmark-inc/custodyd/vault"
)

// setup command handler
//
// commands that cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "config-test", "cfg":
		return false // defer processing until configuration is read

	case "list", "l":
		return false // defer processing until database is loaded

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                 (h)   - display this message\n\n")
		fmt.Printf("  version              (v)   - display version string\n\n")
		fmt.Printf("  config-test          (cfg) - just check the configuration file\n\n")
		fmt.Printf("  list [COUNT]         (l)   - dump up to COUNT asset records to stdout\n\n")
		fmt.Printf("  start                (run) - just run the program, same as no arguments\n")
		fmt.Printf("                               for convenience when passing script arguments\n\n")
	}
	return true
}

// config command handler
//
// commands that run after the configuration is read
func processConfigCommand(arguments []string, theConfiguration *configuration.Configuration) bool {

	switch arguments[0] {

	case "config-test", "cfg":
		fmt.Printf("data directory: %q\n", theConfiguration.DataDirectory)
		fmt.Printf("database: %q\n", theConfiguration.Database.Name)
		fmt.Printf("policy: %q\n", theConfiguration.Custody.Policy)
		fmt.Printf("audit interval: %s\n", theConfiguration.AuditInterval())
		fmt.Printf("configuration is ok\n")
		return true

	default:
	}
	return false
}

// data command handler
//
// commands that run after the database is restored
func processDataCommand(log *logger.L, arguments []string, v *vault.Vault) bool {

	switch arguments[0] {

	case "list", "l":
		count := 20
		if len(arguments) > 1 {
			n, err := strconv.Atoi(arguments[1])
			if nil != err || n <= 0 {
				fmt.Printf("error: invalid count: %q\n", arguments[1])
				return true
			}
			count = n
		}

		ids, err := v.Collection().IDs()
		if nil != err {
			fmt.Printf("error: %s\n", err)
			return true
		}
		if len(ids) > count {
			ids = ids[:count]
		}
		for _, id := range ids {
			a, err := v.Collection().Borrow(id)
			if nil != err {
				fmt.Printf("error: %s\n", err)
				return true
			}
			fmt.Printf("%d %q\n", id, a.Name)
		}
		log.Infof("listed %d assets", len(ids))
		return true

	default:
	}
	return false
}
