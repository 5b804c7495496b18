// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/custodyd/command/custody-cli/encrypt"
)

func runChangePassword(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	identity, err := identityFromFlag(m, c.GlobalString("identity"))
	if nil != err {
		return err
	}

	// unlock with the old password first
	private, err := unlockIdentity(m, c.GlobalString("password"), identity)
	if nil != err {
		return err
	}

	password, err := promptNewPassword()
	if nil != err {
		return err
	}

	replacement, err := encrypt.MakeIdentity(
		identity.Name,
		identity.Description,
		hex.EncodeToString(private.PrivateKey),
		password,
		m.testing,
	)
	if nil != err {
		return err
	}

	*identity = *replacement
	m.save = true
	return nil
}
