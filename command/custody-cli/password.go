// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/ssh/terminal"

	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/command/custody-cli/encrypt"
	"github.com/bitmark-inc/custodyd/fault"
)

var (
	ErrInvalidPasswordLength = fault.InvalidError("password length is invalid")
	ErrPasswordMismatch      = fault.InvalidError("password mismatch")
)

var passwordConsole *terminal.Terminal

func getTerminal() (*terminal.Terminal, int, *terminal.State) {
	oldState, err := terminal.MakeRaw(0)
	if err != nil {
		panic(err)
	}

	if nil != passwordConsole {
		return passwordConsole, 0, oldState
	}

	tmpIO, err := os.OpenFile("/dev/tty", os.O_RDWR, os.ModePerm)
	if nil != err {
		panic("No console")
	}

	passwordConsole = terminal.NewTerminal(tmpIO, "custody-cli: ")

	return passwordConsole, 0, oldState
}

func promptNewPassword() (string, error) {
	console, fd, state := getTerminal()
	password, err := console.ReadPassword("Set identity password(length >= 8): ")
	if nil != err {
		fmt.Printf("Get password fail: %s\n", err)
		return "", err
	}
	terminal.Restore(fd, state)

	passwordLen := len(password)
	if passwordLen < 8 {
		return "", ErrInvalidPasswordLength
	}

	console, fd, state = getTerminal()
	verifyPassword, err := console.ReadPassword("Verify password: ")
	if nil != err {
		fmt.Printf("verify failed: %s\n", err)
		return "", ErrPasswordMismatch
	}
	terminal.Restore(fd, state)

	if password != verifyPassword {
		return "", ErrPasswordMismatch
	}

	return password, nil
}

func promptPassword() (string, error) {
	console, fd, state := getTerminal()
	password, err := console.ReadPassword("password: ")
	if nil != err {
		fmt.Printf("Get password fail: %s\n", err)
		return "", err
	}
	terminal.Restore(fd, state)

	return password, nil
}

// obtain the private key for an identity, prompting if no password
// was supplied on the command line
func unlockIdentity(m *metadata, password string, identity *encrypt.IdentityType) (*account.PrivateKey, error) {
	var err error
	if "" == password {
		password, err = promptPassword()
		if nil != err {
			return nil, err
		}
	}
	return encrypt.VerifyPassword(password, identity, m.testing)
}
