// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package encrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"io"

	argon2 "github.com/bitmark-inc/go-argon2"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/fault"
)

const (
	PublicKeySize  = ed25519.PublicKeySize
	PrivateKeySize = ed25519.PrivateKeySize
)

var (
	ErrKeyLength     = fault.InvalidError("key length is invalid")
	ErrWrongPassword = fault.InvalidError("wrong password")
)

// IdentityType - one stored identity (includes private data)
type IdentityType struct {
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	Account          string           `json:"account"`
	PublicKey        string           `json:"public_key"`
	PrivateKey       string           `json:"private_key"`
	PrivateKeyConfig PrivateKeyConfig `json:"private_key_config"`
}

type PrivateKeyConfig struct {
	Salt string `json:"salt"`
}

// MakeIdentity - generate a key pair and store the private key
// encrypted under the password
//
// privateKeyHex allows recovering an identity from raw key bytes, an
// empty string makes a fresh key pair
func MakeIdentity(name string, description string, privateKeyHex string, password string, test bool) (*IdentityType, error) {

	var acc *account.Account
	var private *account.PrivateKey
	var err error

	if "" == privateKeyHex {
		acc, private, err = account.NewKeyPair(test)
		if nil != err {
			return nil, err
		}
	} else {
		buffer, err := hex.DecodeString(privateKeyHex)
		if nil != err {
			return nil, err
		}
		private, err = account.PrivateKeyFromBytes(test, buffer)
		if nil != err {
			return nil, err
		}
		acc = private.Account()
	}

	salt, key, err := hashPassword(password)
	if nil != err {
		return nil, err
	}

	encryptedPrivateKey, err := encryptPrivateKey(private.PrivateKey, key)
	if nil != err {
		return nil, err
	}

	return &IdentityType{
		Name:        name,
		Description: description,
		Account:     acc.String(),
		PublicKey:   hex.EncodeToString(acc.PublicKey),
		PrivateKey:  hex.EncodeToString(encryptedPrivateKey),
		PrivateKeyConfig: PrivateKeyConfig{
			Salt: salt.String(),
		},
	}, nil
}

// VerifyPassword - decrypt an identity's private key
//
// a decrypt with the wrong password yields garbage, so the result is
// checked by a sign/verify round trip against the stored public key
func VerifyPassword(password string, identity *IdentityType, test bool) (*account.PrivateKey, error) {
	salt := new(Salt)
	err := salt.UnmarshalText([]byte(identity.PrivateKeyConfig.Salt))
	if nil != err {
		return nil, err
	}

	key, err := generateKey(password, salt)
	if nil != err {
		return nil, err
	}

	ciphertext, err := hex.DecodeString(identity.PrivateKey)
	if nil != err {
		return nil, err
	}

	privateKey, err := decryptPrivateKey(ciphertext, key)
	if nil != err {
		return nil, err
	}

	publicKey, err := hex.DecodeString(identity.PublicKey)
	if nil != err {
		return nil, err
	}

	if !checkSignature(publicKey, privateKey) {
		return nil, ErrWrongPassword
	}

	return account.PrivateKeyFromBytes(test, privateKey)
}

func hashPassword(password string) (*Salt, []byte, error) {
	salt, err := MakeSalt()
	if nil != err {
		return nil, nil, err
	}

	key, err := generateKey(password, salt)
	if nil != err {
		return nil, nil, err
	}

	return salt, key, nil
}

func generateKey(password string, salt *Salt) ([]byte, error) {

	saltBytes := salt.Bytes()

	ctx := &argon2.Context{
		Iterations:  5,
		Memory:      1 << 16,
		Parallelism: 4,
		HashLen:     32,
		Mode:        argon2.ModeArgon2i,
		Version:     argon2.Version13,
	}

	hash, err := argon2.Hash(ctx, []byte(password), saltBytes)
	return hash, err
}

func encryptPrivateKey(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if nil != err {
		return nil, err
	}

	if len(plaintext) != PrivateKeySize {
		return nil, ErrKeyLength
	}

	ciphertext := make([]byte, aes.BlockSize+PrivateKeySize)
	iv := ciphertext[:aes.BlockSize]
	if _, err = io.ReadFull(rand.Reader, iv); nil != err {
		return nil, err
	}
	mode := cipher.NewCBCEncrypter(block, iv)
	mode.CryptBlocks(ciphertext[aes.BlockSize:], plaintext)

	return ciphertext, nil
}

func decryptPrivateKey(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if nil != err {
		return nil, err
	}

	if len(ciphertext) != aes.BlockSize+PrivateKeySize {
		return nil, ErrKeyLength
	}

	iv := ciphertext[:aes.BlockSize]
	ciphertext = ciphertext[aes.BlockSize:]
	plaintext := make([]byte, len(ciphertext))
	mode := cipher.NewCBCDecrypter(block, iv)
	mode.CryptBlocks(plaintext, ciphertext)

	return plaintext, nil
}

func checkSignature(publicKey []byte, privateKey []byte) bool {
	if len(publicKey) != PublicKeySize || len(privateKey) != PrivateKeySize {
		return false
	}
	salt, err := MakeSalt()
	if nil != err {
		return false
	}
	message := salt.String() + "Custody Command Line Interface"
	signature := ed25519.Sign(privateKey, []byte(message))
	return ed25519.Verify(publicKey, []byte(message), signature)
}
