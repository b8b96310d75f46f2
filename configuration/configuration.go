// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Fundledger Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/fundledger/custodyd/account"
	"github.com/fundledger/custodyd/funds"
)

// default database file
const defaultDatabase = "custody.leveldb"

// Configuration - the engine settings
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	Database      string               `gluamapper:"database" json:"database"`
	Owner         string               `gluamapper:"owner" json:"owner"`
	Split         funds.SplitPolicy    `gluamapper:"split" json:"split"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// GetConfiguration - read a configuration file and fill in defaults
func GetConfiguration(fileName string) (*Configuration, error) {

	options := &Configuration{
		Database: defaultDatabase,
		Split:    funds.DefaultPolicy(),
	}

	fileName, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	if "" == options.DataDirectory {
		options.DataDirectory = filepath.Dir(fileName)
	}

	err = ParseConfigurationFile(fileName, options)
	if nil != err {
		return nil, err
	}

	return options, nil
}

// DatabasePath - database file resolved against the data directory
func (configuration *Configuration) DatabasePath() string {
	if filepath.IsAbs(configuration.Database) {
		return configuration.Database
	}
	return filepath.Join(configuration.DataDirectory, configuration.Database)
}

// OwnerAddress - the decoded owner address
func (configuration *Configuration) OwnerAddress() (*account.Address, error) {
	return account.AddressFromBase58(configuration.Owner)
}

// Validate - check the settings are usable
func (configuration *Configuration) Validate() error {
	if _, err := configuration.OwnerAddress(); nil != err {
		return err
	}
	return configuration.Split.Validate()
}
