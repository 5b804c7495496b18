// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/custodyd/command/custody-cli/configuration"
)

func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	// the info view hides private keys
	info, err := configuration.GetInfoConfiguration(m.file)
	if nil != err {
		return err
	}

	return printJson(m.w, info)
}
