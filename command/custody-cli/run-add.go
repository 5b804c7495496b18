// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/custodyd/command/custody-cli/encrypt"
)

func runAdd(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name, err := checkName(c.GlobalString("identity"))
	if err != nil {
		return err
	}

	description, err := checkDescription(c.String("description"))
	if err != nil {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "identity: %s\n", name)
		fmt.Fprintf(m.e, "description: %s\n", description)
	}

	password := c.GlobalString("password")
	if password == "" {
		password, err = promptNewPassword()
		if err != nil {
			return err
		}
	}

	identity, err := encrypt.MakeIdentity(name, description, c.String("privateKey"), password, m.testing)
	if err != nil {
		return err
	}
	err = m.config.AddIdentity(identity)
	if err != nil {
		return err
	}

	m.save = true
	return nil
}
