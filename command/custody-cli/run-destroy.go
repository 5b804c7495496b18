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

func runDestroy(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	return withVault(m, func(v *vault.Vault) error {
		err := v.Destroy()
		if nil != err {
			return err
		}
		fmt.Fprintf(m.w, "destroyed\n")
		return nil
	})
}
