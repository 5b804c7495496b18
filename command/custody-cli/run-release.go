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

func runRelease(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id := c.Uint64("id")
	if 0 == id {
		return fmt.Errorf("invalid asset id: %d", id)
	}

	claimant, err := makeClaimant(m, c)
	if nil != err {
		return err
	}

	return withVault(m, func(v *vault.Vault) error {
		err := v.ReleaseConstraint(claimant, id)
		if nil != err {
			return err
		}
		fmt.Fprintf(m.w, "released: %d\n", id)
		return nil
	})
}
