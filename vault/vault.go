// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/asset"
	"github.com/bitmark-inc/custodyd/capability"
	"github.com/bitmark-inc/custodyd/collection"
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/storage"
)

const digestLength = 32

// Vault - a collection with write-through persistence
type Vault struct {
	log  *logger.L
	coll *collection.Collection
}

// New - wrap a collection; the pools must already be initialised
func New(coll *collection.Collection) *Vault {
	return &Vault{
		log:  logger.New("vault"),
		coll: coll,
	}
}

// Collection - the wrapped collection for read-only queries
func (v *Vault) Collection() *collection.Collection {
	return v.coll
}

// Restore - rebuild the collection from the database pools
//
// unconstrained assets first so the liveness gate sees an empty ledger
// while they load
func (v *Vault) Restore() error {

	unconstrained, err := storage.Pool.Unconstrained.Fetch(-1)
	if nil != err {
		return err
	}
	for _, element := range unconstrained {
		a, err := v.fetchAsset(element.Key)
		if nil != err {
			return err
		}
		err = v.coll.Deposit(a)
		if nil != err {
			return err
		}
	}

	constrained, err := storage.Pool.Constrained.Fetch(-1)
	if nil != err {
		return err
	}
	for _, element := range constrained {
		a, err := v.fetchAsset(element.Key)
		if nil != err {
			return err
		}
		if len(element.Value) < digestLength {
			return fault.ErrInvalidItem
		}
		digest := [digestLength]byte{}
		copy(digest[:], element.Value[:digestLength])
		lender := string(element.Value[digestLength:])

		err = v.coll.RestoreConstrained(a, digest, lender)
		if nil != err {
			return err
		}
	}

	v.log.Infof("restored: %d unconstrained  %d constrained", len(unconstrained), len(constrained))
	return nil
}

// Deposit - store an unconstrained asset
func (v *Vault) Deposit(a *asset.Asset) error {
	packed, err := a.Pack()
	if nil != err {
		return err
	}

	trx := storage.NewTransaction()
	err = trx.Begin()
	if nil != err {
		return err
	}

	err = v.coll.Deposit(a)
	if nil != err {
		trx.Abort()
		return err
	}

	key := assetKey(a.Id)
	trx.Put(storage.Pool.Assets, key, packed)
	trx.Put(storage.Pool.Unconstrained, key, []byte{})
	return trx.Commit()
}

// Withdraw - remove an unconstrained asset and erase its records
func (v *Vault) Withdraw(id uint64) (*asset.Asset, error) {
	trx := storage.NewTransaction()
	err := trx.Begin()
	if nil != err {
		return nil, err
	}

	a, err := v.coll.Withdraw(id)
	if nil != err {
		trx.Abort()
		return nil, err
	}

	key := assetKey(id)
	trx.Delete(storage.Pool.Unconstrained, key)
	trx.Delete(storage.Pool.Assets, key)
	err = trx.Commit()
	if nil != err {
		return nil, err
	}
	return a, nil
}

// DepositSeizable - store an asset under a lender's claim
func (v *Vault) DepositSeizable(a *asset.Asset, lender *account.Account) (*capability.Capability, error) {
	packed, err := a.Pack()
	if nil != err {
		return nil, err
	}

	trx := storage.NewTransaction()
	err = trx.Begin()
	if nil != err {
		return nil, err
	}

	token, err := v.coll.DepositSeizable(a, lender)
	if nil != err {
		trx.Abort()
		return nil, err
	}

	digest, lenderText, err := v.coll.ConstraintRecord(a.Id)
	if nil != err {
		trx.Abort()
		return nil, err
	}

	key := assetKey(a.Id)
	trx.Put(storage.Pool.Assets, key, packed)
	trx.Put(storage.Pool.Constrained, key, append(digest[:], lenderText...))
	err = trx.Commit()
	if nil != err {
		return nil, err
	}
	return token, nil
}

// Seize - the lender takes a constrained asset out of custody
func (v *Vault) Seize(claimant capability.Claimant, assetId uint64) (*asset.Asset, error) {
	trx := storage.NewTransaction()
	err := trx.Begin()
	if nil != err {
		return nil, err
	}

	a, err := v.coll.Seize(claimant, assetId)
	if nil != err {
		trx.Abort()
		return nil, err
	}

	key := assetKey(assetId)
	trx.Delete(storage.Pool.Constrained, key)
	trx.Delete(storage.Pool.Assets, key)
	err = trx.Commit()
	if nil != err {
		return nil, err
	}
	return a, nil
}

// ReleaseConstraint - move a claimed asset back to unconstrained
func (v *Vault) ReleaseConstraint(claimant capability.Claimant, assetId uint64) error {
	trx := storage.NewTransaction()
	err := trx.Begin()
	if nil != err {
		return err
	}

	err = v.coll.ReleaseConstraint(claimant, assetId)
	if nil != err {
		trx.Abort()
		return err
	}

	key := assetKey(assetId)
	trx.Delete(storage.Pool.Constrained, key)
	trx.Put(storage.Pool.Unconstrained, key, []byte{})
	return trx.Commit()
}

// Destroy - tear down the collection and erase its stored state
//
// refused, like the collection itself, while any claim is outstanding
func (v *Vault) Destroy() error {
	ids, err := v.coll.IDs()
	if nil != err {
		return err
	}

	trx := storage.NewTransaction()
	err = trx.Begin()
	if nil != err {
		return err
	}

	err = v.coll.Destroy()
	if nil != err {
		trx.Abort()
		return err
	}

	for _, id := range ids {
		key := assetKey(id)
		trx.Delete(storage.Pool.Unconstrained, key)
		trx.Delete(storage.Pool.Assets, key)
	}
	return trx.Commit()
}

func (v *Vault) fetchAsset(key []byte) (*asset.Asset, error) {
	packed := storage.Pool.Assets.Get(key)
	if nil == packed {
		return nil, fault.ErrAssetNotFound
	}
	return asset.Unpack(packed)
}

func assetKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}
