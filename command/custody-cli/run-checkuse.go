// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/custodyd/vault"
)

func runCheckUse(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	return withVault(m, func(v *vault.Vault) error {

		type checkUseDisplay struct {
			Usable      bool   `json:"usable"`
			Constrained int    `json:"constrained"`
			Outstanding uint64 `json:"outstanding"`
		}
		return printJson(m.w, checkUseDisplay{
			Usable:      v.Collection().CheckUse(),
			Constrained: v.Collection().ConstrainedSize(),
			Outstanding: v.Collection().Outstanding(),
		})
	})
}
