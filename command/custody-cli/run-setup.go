// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/custodyd/command/custody-cli/configuration"
	"github.com/bitmark-inc/custodyd/command/custody-cli/encrypt"
)

func runSetup(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)
	testing := c.Bool("testing")

	name, err := checkName(c.GlobalString("identity"))
	if err != nil {
		return err
	}

	description, err := checkDescription(c.String("description"))
	if err != nil {
		return err
	}

	database := c.String("database")
	if "" == database {
		return fmt.Errorf("database cannot be blank")
	}
	database, err = filepath.Abs(filepath.Clean(database))
	if err != nil {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "config: %s\n", m.file)
		fmt.Fprintf(m.e, "testing: %t\n", testing)
		fmt.Fprintf(m.e, "database: %s\n", database)
		fmt.Fprintf(m.e, "identity: %s\n", name)
		fmt.Fprintf(m.e, "description: %s\n", description)
	}

	// create the folder hierarchy for configuration if not existing
	configDir := path.Dir(m.file)
	d, err := checkFileExists(configDir)
	if err != nil {
		if err := os.MkdirAll(configDir, 0o750); err != nil {
			return err
		}
	} else if !d {
		return fmt.Errorf("path: %q is not a directory", configDir)
	}

	config := configuration.New(testing, c.String("policy"), database)

	password := c.GlobalString("password")
	if password == "" {
		password, err = promptNewPassword()
		if err != nil {
			return err
		}
	}

	identity, err := encrypt.MakeIdentity(name, description, c.String("privateKey"), password, testing)
	if err != nil {
		return err
	}
	err = config.AddIdentity(identity)
	if err != nil {
		return err
	}

	m.config = config
	m.testing = testing
	m.save = true

	return nil
}
