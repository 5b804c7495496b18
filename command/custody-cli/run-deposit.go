// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/asset"
	"github.com/bitmark-inc/custodyd/vault"
)

func runDeposit(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id := c.Uint64("id")
	if 0 == id {
		return fmt.Errorf("invalid asset id: %d", id)
	}

	name := c.String("name")
	if "" == name {
		return fmt.Errorf("asset name cannot be blank")
	}

	a := &asset.Asset{
		Id:          id,
		Name:        name,
		Description: c.String("metadata"),
		Thumbnail:   c.String("thumbnail"),
	}

	seizable := c.Bool("seizable")

	var lender *account.Account
	if lenderText := c.String("lender"); "" != lenderText {
		var err error
		lender, err = account.FromBase58(lenderText)
		if nil != err {
			return err
		}
	}

	if m.verbose {
		fmt.Fprintf(m.e, "asset: %d %q\n", id, name)
		fmt.Fprintf(m.e, "seizable: %t\n", seizable)
	}

	return withVault(m, func(v *vault.Vault) error {
		if !seizable {
			return v.Deposit(a)
		}

		token, err := v.DepositSeizable(a, lender)
		if nil != err {
			return err
		}

		type capabilityDisplay struct {
			AssetId    uint64 `json:"asset_id"`
			Capability string `json:"capability"`
		}
		return printJson(m.w, capabilityDisplay{
			AssetId:    token.AssetId(),
			Capability: token.String(),
		})
	})
}
