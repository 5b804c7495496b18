// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package encrypt_test

import (
	"encoding/hex"
	"testing"

	"github.com/bitmark-inc/custodyd/command/custody-cli/encrypt"
)

func TestIdentityRoundTrip(t *testing.T) {

	identity, err := encrypt.MakeIdentity("tester", "unit test identity", "", "Nothing to see here", true)
	if nil != err {
		t.Fatalf("make identity error: %s", err)
	}

	private, err := encrypt.VerifyPassword("Nothing to see here", identity, true)
	if nil != err {
		t.Fatalf("verify password error: %s", err)
	}

	// the decrypted key must regenerate the stored public key
	publicKey := hex.EncodeToString(private.Account().PublicKey)
	if identity.PublicKey != publicKey {
		t.Fatalf("public key mismatch: %s != %s", identity.PublicKey, publicKey)
	}
	if identity.Account != private.Account().String() {
		t.Fatalf("account mismatch: %s != %s", identity.Account, private.Account().String())
	}
}

func TestWrongPassword(t *testing.T) {

	identity, err := encrypt.MakeIdentity("tester", "unit test identity", "", "correct password", true)
	if nil != err {
		t.Fatalf("make identity error: %s", err)
	}

	_, err = encrypt.VerifyPassword("incorrect password", identity, true)
	if encrypt.ErrWrongPassword != err {
		t.Fatalf("verify password error: %v", err)
	}
}

func TestRecoverFromPrivateKey(t *testing.T) {

	original, err := encrypt.MakeIdentity("tester", "unit test identity", "", "pass phrase", true)
	if nil != err {
		t.Fatalf("make identity error: %s", err)
	}
	private, err := encrypt.VerifyPassword("pass phrase", original, true)
	if nil != err {
		t.Fatalf("verify password error: %s", err)
	}

	recovered, err := encrypt.MakeIdentity("again", "recovered identity", hex.EncodeToString(private.PrivateKey), "new pass phrase", true)
	if nil != err {
		t.Fatalf("make identity error: %s", err)
	}

	if original.PublicKey != recovered.PublicKey {
		t.Fatalf("public key mismatch: %s != %s", original.PublicKey, recovered.PublicKey)
	}
}
