// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/custodyd/account"
)

func runGenerate(c *cli.Context) error {

	acc, private, err := account.NewKeyPair(true)
	if nil != err {
		return err
	}

	type keyPairDisplay struct {
		Account    string `json:"account"`
		PublicKey  string `json:"public_key"`
		PrivateKey string `json:"private_key"`
	}
	return printJson(c.App.Writer, keyPairDisplay{
		Account:    acc.String(),
		PublicKey:  hex.EncodeToString(acc.PublicKey),
		PrivateKey: hex.EncodeToString(private.PrivateKey),
	})
}
