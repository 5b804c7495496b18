// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/custodyd/command/custody-cli/configuration"
	"github.com/bitmark-inc/custodyd/command/custody-cli/encrypt"
)

func TestSaveAndReload(t *testing.T) {

	dir, err := ioutil.TempDir("", "configuration-test")
	if nil != err {
		t.Fatalf("tempdir error: %s", err)
	}
	defer os.RemoveAll(dir)

	fileName := filepath.Join(dir, "custody-cli.json")

	config := configuration.New(true, "token", filepath.Join(dir, "custody.leveldb"))
	err = config.AddIdentity(&encrypt.IdentityType{
		Name:        "first",
		Description: "first identity",
		Account:     "no real account",
	})
	if nil != err {
		t.Fatalf("add identity error: %s", err)
	}

	err = configuration.Save(fileName, config)
	if nil != err {
		t.Fatalf("save error: %s", err)
	}

	reloaded, err := configuration.GetConfiguration(fileName)
	if nil != err {
		t.Fatalf("reload error: %s", err)
	}

	assert.Equal(t, config.DefaultIdentity, reloaded.DefaultIdentity, "wrong default identity")
	assert.Equal(t, config.Policy, reloaded.Policy, "wrong policy")
	assert.Equal(t, config.Database, reloaded.Database, "wrong database")
	assert.Equal(t, 1, len(reloaded.Identities), "wrong identity count")

	// a second save must keep a backup of the first
	err = configuration.Save(fileName, reloaded)
	if nil != err {
		t.Fatalf("second save error: %s", err)
	}
	_, err = os.Stat(fileName + ".bk")
	assert.NoError(t, err, "missing backup file")
}

func TestDuplicateIdentity(t *testing.T) {

	config := configuration.New(true, "", "custody.leveldb")

	err := config.AddIdentity(&encrypt.IdentityType{Name: "dup"})
	if nil != err {
		t.Fatalf("add identity error: %s", err)
	}
	err = config.AddIdentity(&encrypt.IdentityType{Name: "dup"})
	assert.Equal(t, configuration.ErrIdentityExists, err, "wrong duplicate error")
}
