// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/custodyd/fault"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Assets        *PoolHandle `prefix:"A"`
	Unconstrained *PoolHandle `prefix:"U"`
	Constrained   *PoolHandle `prefix:"C"`
	TestData      *PoolHandle `prefix:"Z"`
}

// Pool - the set of exported pools
var Pool pools

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
)

// holds the database handle
var poolData struct {
	sync.RWMutex
	db    *leveldb.DB
	cache Cache
}

// Initialise - open up the database connection
//
// this must be called before any pool is accessed
func Initialise(database string) error {
	poolData.Lock()
	defer poolData.Unlock()

	if nil != poolData.db {
		return fault.ErrAlreadyInitialised
	}

	db, err := leveldb.OpenFile(database, nil)
	if nil != err {
		return err
	}

	version, err := getVersion(db)
	if nil != err {
		db.Close()
		return err
	}

	switch {
	case 0 == version:
		// database was empty so tag as current version
		err = putVersion(db, currentDBVersion)
		if nil != err {
			db.Close()
			return err
		}
	case currentDBVersion == version:
		// already current
	default:
		logger.Criticalf("database version: %d  expected: %d", version, currentDBVersion)
		db.Close()
		return fault.ErrInvalidDatabaseVersion
	}

	poolData.db = db
	poolData.cache = newCache()

	// this will be a struct type
	poolType := reflect.TypeOf(Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&Pool).Elem()

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)
		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			logger.Panicf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix: prefix,
			limit:  limit,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}

	return nil
}

// Finalise - close the database connection
func Finalise() {
	poolData.Lock()
	defer poolData.Unlock()

	if nil == poolData.db {
		return
	}

	poolData.db.Close()
	poolData.db = nil
	poolData.cache = nil
}

// read the database version
func getVersion(db *leveldb.DB) (int, error) {
	value, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	}
	if nil != err {
		return 0, err
	}
	if 4 != len(value) {
		return 0, fault.ErrInvalidDatabaseVersion
	}
	return int(binary.BigEndian.Uint32(value)), nil
}

// write the database version
func putVersion(db *leveldb.DB, version int) error {
	value := make([]byte, 4)
	binary.BigEndian.PutUint32(value, uint32(version))
	return db.Put(versionKey, value, &ldb_opt.WriteOptions{Sync: true})
}
