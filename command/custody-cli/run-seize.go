// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/custodyd/capability"
	"github.com/bitmark-inc/custodyd/vault"
)

// build the claimant for seize/release
//
// the token policy redeems the supplied capability; the address policy
// proves key possession by unlocking the identity then claims by
// account
func makeClaimant(m *metadata, c *cli.Context) (capability.Claimant, error) {

	claimant := capability.Claimant{}

	if text := c.String("capability"); "" != text {
		token, err := capability.FromBase58(text)
		if nil != err {
			return claimant, err
		}
		claimant.Token = token
	}

	if capability.AddressPolicyName == m.config.Policy {
		identity, err := identityFromFlag(m, c.GlobalString("identity"))
		if nil != err {
			return claimant, err
		}
		private, err := unlockIdentity(m, c.GlobalString("password"), identity)
		if nil != err {
			return claimant, err
		}
		claimant.Account = private.Account()
	}

	return claimant, nil
}

func runSeize(c *cli.Context) error {

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
		a, err := v.Seize(claimant, id)
		if nil != err {
			return err
		}
		return printJson(m.w, a)
	})
}
