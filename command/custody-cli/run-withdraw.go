// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/custodyd/vault"
)

func runWithdraw(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id := c.Uint64("id")
	if 0 == id {
		return fmt.Errorf("invalid asset id: %d", id)
	}

	return withVault(m, func(v *vault.Vault) error {
		a, err := v.Withdraw(id)
		if nil != err {
			return err
		}
		return printJson(m.w, a)
	})
}
