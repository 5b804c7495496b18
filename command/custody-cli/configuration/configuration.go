// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/bitmark-inc/custodyd/capability"
	"github.com/bitmark-inc/custodyd/command/custody-cli/encrypt"
	"github.com/bitmark-inc/custodyd/fault"
)

var (
	ErrIdentityExists   = fault.ExistsError("identity already exists")
	ErrIdentityNotFound = fault.NotFoundError("identity not found")
)

// Configuration - configuration file data format
type Configuration struct {
	DefaultIdentity string                 `json:"default_identity"`
	Testing         bool                   `json:"testing"`
	Policy          string                 `json:"policy"`
	Database        string                 `json:"database"`
	Identities      []encrypt.IdentityType `json:"identities"`
}

// InfoIdentityType - restricted access to data (excludes private items)
type InfoIdentityType struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Account     string `json:"account"`
}

// InfoConfiguration - restricted view of configuration
type InfoConfiguration struct {
	DefaultIdentity string             `json:"default_identity"`
	Testing         bool               `json:"testing"`
	Policy          string             `json:"policy"`
	Database        string             `json:"database"`
	Identities      []InfoIdentityType `json:"identities"`
}

func (s *InfoConfiguration) Len() int {
	return len(s.Identities)
}

func (s *InfoConfiguration) Swap(i, j int) {
	s.Identities[i], s.Identities[j] = s.Identities[j], s.Identities[i]
}

func (s *InfoConfiguration) Less(i int, j int) bool {
	return s.Identities[i].Name < s.Identities[j].Name
}

// New - initial configuration data
func New(testing bool, policy string, database string) *Configuration {
	if "" == policy {
		policy = capability.TokenPolicyName
	}
	return &Configuration{
		Testing:    testing,
		Policy:     policy,
		Database:   database,
		Identities: []encrypt.IdentityType{},
	}
}

// GetConfiguration - full access to data (includes private data)
func GetConfiguration(filename string) (*Configuration, error) {

	options := &Configuration{}

	err := readConfiguration(filename, options)
	if nil != err {
		return nil, err
	}
	return options, nil
}

// GetInfoConfiguration - restricted access to data (excludes private items)
func GetInfoConfiguration(filename string) (*InfoConfiguration, error) {

	options := &InfoConfiguration{}

	err := readConfiguration(filename, options)
	if nil != err {
		return nil, err
	}

	sort.Sort(options)

	return options, nil
}

// AddIdentity - store a new identity, refusing duplicate names
func (config *Configuration) AddIdentity(identity *encrypt.IdentityType) error {
	for _, existing := range config.Identities {
		if identity.Name == existing.Name {
			return ErrIdentityExists
		}
	}
	config.Identities = append(config.Identities, *identity)
	if "" == config.DefaultIdentity {
		config.DefaultIdentity = identity.Name
	}
	return nil
}

// Identity - find an identity by name
func (config *Configuration) Identity(name string) (*encrypt.IdentityType, error) {
	for i, identity := range config.Identities {
		if name == identity.Name {
			return &config.Identities[i], nil
		}
	}
	return nil, ErrIdentityNotFound
}

// generic JSON decoder
func readConfiguration(filename string, options interface{}) error {

	filename, err := filepath.Abs(filepath.Clean(filename))
	if nil != err {
		return err
	}

	f, err := os.Open(filename)
	if nil != err {
		return err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	err = dec.Decode(options)
	if nil != err {
		return err
	}

	return nil
}
