// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/custodyd/account"
)

func runAccount(c *cli.Context) error {

	publicKey, err := hex.DecodeString(c.String("publickey"))
	if nil != err {
		return err
	}

	acc := &account.Account{
		Test:      c.Bool("testing"),
		PublicKey: publicKey,
	}
	fmt.Fprintf(c.App.Writer, "%s\n", acc)
	return nil
}
