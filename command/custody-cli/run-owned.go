// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/custodyd/vault"
)

func runOwned(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	return withVault(m, func(v *vault.Vault) error {

		ids, err := v.Collection().IDs()
		if nil != err {
			return err
		}

		constrained := make(map[uint64]struct{})
		for _, id := range v.Collection().Constrained() {
			constrained[id] = struct{}{}
		}

		type ownedItem struct {
			AssetId     uint64 `json:"asset_id"`
			Name        string `json:"name"`
			Constrained bool   `json:"constrained"`
		}
		items := make([]ownedItem, 0, len(ids))
		for _, id := range ids {
			a, err := v.Collection().Borrow(id)
			if nil != err {
				return err
			}
			_, isConstrained := constrained[id]
			items = append(items, ownedItem{
				AssetId:     id,
				Name:        a.Name,
				Constrained: isConstrained,
			})
		}

		return printJson(m.w, items)
	})
}
