// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/custodyd/capability"
	"github.com/bitmark-inc/custodyd/collection"
	"github.com/bitmark-inc/custodyd/command/custody-cli/encrypt"
	"github.com/bitmark-inc/custodyd/liveness"
	"github.com/bitmark-inc/custodyd/storage"
	"github.com/bitmark-inc/custodyd/vault"
)

// identity names are simple words
func checkName(name string) (string, error) {
	if "" == name {
		return "", fmt.Errorf("identity cannot be blank")
	}
	for _, item := range name {
		switch item {
		case ' ', '\t', '\r', '\n', '/', '\\', ':':
			return "", fmt.Errorf("identity: %q contains invalid character", name)
		}
	}
	return name, nil
}

func checkDescription(description string) (string, error) {
	if "" == description {
		return "", fmt.Errorf("description cannot be blank")
	}
	return description, nil
}

// returns true if file exists and is a directory
func checkFileExists(name string) (bool, error) {
	s, err := os.Stat(name)
	if nil != err {
		return false, err
	}
	return s.IsDir(), nil
}

// the identity selected by flag or the configured default
func identityFromFlag(m *metadata, name string) (*encrypt.IdentityType, error) {
	if "" == name {
		name = m.config.DefaultIdentity
	}
	return m.config.Identity(name)
}

// open the database, rebuild the collection and run one operation
//
// the daemon owns the database while it runs, so this will fail with a
// lock error if custodyd is active
func withVault(m *metadata, f func(v *vault.Vault) error) error {

	logDir := filepath.Dir(m.config.Database)
	err := logger.Initialise(logger.Configuration{
		Directory: logDir,
		File:      "custody-cli.log",
		Size:      1048576,
		Count:     2,
		Levels: map[string]string{
			logger.DefaultTag: "error",
		},
	})
	if nil != err {
		return err
	}
	defer logger.Finalise()

	err = storage.Initialise(m.config.Database)
	if nil != err {
		return err
	}
	defer storage.Finalise()

	err = liveness.Initialise()
	if nil != err {
		return err
	}
	defer liveness.Finalise()

	policy, err := capability.NewPolicy(m.config.Policy)
	if nil != err {
		return err
	}

	coll := collection.New(policy)
	err = coll.EstablishLink()
	if nil != err {
		return err
	}

	v := vault.New(coll)
	err = v.Restore()
	if nil != err {
		return err
	}

	return f(v)
}
