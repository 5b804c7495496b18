// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/custodyd/capability"
	"github.com/bitmark-inc/custodyd/vault"
)

func runVerify(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	text := c.String("capability")
	if "" == text {
		return fmt.Errorf("capability cannot be blank")
	}

	token, err := capability.FromBase58(text)
	if nil != err {
		return err
	}

	digest := token.RedemptionDigest()

	return withVault(m, func(v *vault.Vault) error {

		// redeemable only while the ledger still holds the matching
		// digest for the bound asset
		redeemable := false
		stored, _, err := v.Collection().ConstraintRecord(token.AssetId())
		if nil == err && digest == stored {
			redeemable = true
		}

		type verifyDisplay struct {
			AssetId    uint64 `json:"asset_id"`
			Digest     string `json:"digest"`
			Redeemable bool   `json:"redeemable"`
		}
		return printJson(m.w, verifyDisplay{
			AssetId:    token.AssetId(),
			Digest:     hex.EncodeToString(digest[:]),
			Redeemable: redeemable,
		})
	})
}
