// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Fundledger Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared test environment setup
package fixtures

import (
	"crypto/rand"
	"fmt"
	"os"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/logger"

	"github.com/fundledger/custodyd/account"
)

const (
	dir         = "testing"
	logCategory = "testing"
)

// SetupTestLogger - logging environment for tests that touch packages
// with a log channel
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", logCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the log directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

// NewAddress - a fresh random test address
func NewAddress() *account.Address {
	publicKey, _, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		panic(fmt.Sprintf("fixtures: keypair generation failed: %s", err))
	}
	address, err := account.AddressFromKey(publicKey, true)
	if nil != err {
		panic(fmt.Sprintf("fixtures: address creation failed: %s", err))
	}
	return address
}
