// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type UnusableError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised     = ExistsError("already initialised")
	ErrAssetAlreadyHeld       = ExistsError("asset already held")
	ErrAssetNotFound          = NotFoundError("asset not found")
	ErrCannotDecodeAccount    = InvalidError("cannot decode account")
	ErrCannotDecodeCapability = InvalidError("cannot decode capability")
	ErrCapabilityMismatch     = InvalidError("capability does not match asset")
	ErrChecksumMismatch       = InvalidError("checksum mismatch")
	ErrCollectionUnusable     = UnusableError("collection unusable")
	ErrInvalidAssetRecord     = InvalidError("invalid asset record")
	ErrInvalidDatabaseVersion = InvalidError("invalid database version")
	ErrInvalidItem            = InvalidError("invalid item")
	ErrInvalidKeyLength       = InvalidError("invalid key length")
	ErrInvalidMode            = InvalidError("invalid mode")
	ErrInvalidPolicy          = InvalidError("invalid authorization policy")
	ErrInvalidRoyaltyRate     = InvalidError("invalid royalty rate")
	ErrInvalidSignature       = InvalidError("invalid signature")
	ErrKeyNotFound            = NotFoundError("key not found")
	ErrLedgerNotEmpty         = ProcessError("constraint ledger is not empty")
	ErrLenderRequired         = InvalidError("lender account is required")
	ErrLinkAlreadyEstablished = ExistsError("liveness link already established")
	ErrNotAuthorized          = InvalidError("claimant is not authorized")
	ErrNotInitialised         = ProcessError("not initialised")
	ErrTransactionInUse       = ProcessError("transaction already in use")
	ErrWrongPassword          = InvalidError("wrong password")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e UnusableError) Error() string { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrUnusable(e error) bool { _, ok := e.(UnusableError); return ok }
