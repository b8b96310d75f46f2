// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Fundledger Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"bytes"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/fundledger/custodyd/account"
	"github.com/fundledger/custodyd/background"
	"github.com/fundledger/custodyd/balance"
	"github.com/fundledger/custodyd/counter"
	"github.com/fundledger/custodyd/fault"
	"github.com/fundledger/custodyd/funds"
	"github.com/fundledger/custodyd/institution"
	"github.com/fundledger/custodyd/project"
	"github.com/fundledger/custodyd/storage"
)

// metadata key for the persisted owner address
var ownerAddressKey = []byte("A")

// globals
var globalData struct {
	sync.RWMutex
	log    *logger.L
	owner  *account.Address
	policy funds.SplitPolicy

	// serialises all mutating operations
	operationLock sync.Mutex

	// operation statistics
	registrations counter.Counter
	submissions   counter.Counter
	reviews       counter.Counter
	donations     counter.Counter
	withdrawals   counter.Counter

	background *background.T

	// set once during initialise
	initialised bool
}

// Statistics - counts of operations performed since initialise
type Statistics struct {
	Registrations uint64 `json:"registrations"`
	Submissions   uint64 `json:"submissions"`
	Reviews       uint64 `json:"reviews"`
	Donations     uint64 `json:"donations"`
	Withdrawals   uint64 `json:"withdrawals"`
}

// Initialise - start the engine
//
// storage must already be initialised; the owner address is persisted
// on first start and verified on every later start so a ledger can
// never silently change hands
func Initialise(owner *account.Address, policy funds.SplitPolicy) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}
	if owner.IsZero() {
		return fault.ErrIncorrectOwner
	}
	if err := policy.Validate(); nil != err {
		return err
	}
	if nil == storage.Pool.Metadata {
		return fault.ErrNotInitialised
	}

	globalData.log = logger.New("engine")
	globalData.log.Info("starting…")

	// bind or verify the ledger owner
	stored := storage.Pool.Metadata.Get(ownerAddressKey)
	if nil == stored {
		storage.Pool.Metadata.Put(ownerAddressKey, owner.Bytes())
	} else if !bytes.Equal(stored, owner.Bytes()) {
		return fault.ErrIncorrectOwner
	}

	globalData.owner = owner
	globalData.policy = policy

	if err := institution.Initialise(); nil != err {
		return err
	}
	if err := project.Initialise(); nil != err {
		return err
	}
	if err := balance.Initialise(); nil != err {
		return err
	}

	// start the conservation audit
	globalData.background = background.Start(background.Processes{
		&auditData{log: logger.New("audit")},
	}, nil)

	globalData.initialised = true
	return nil
}

// Finalise - stop the engine
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.background.Stop()

	balance.Finalise()
	project.Finalise()
	institution.Finalise()

	globalData.log.Infof("statistics: %+v", currentStatistics())
	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.owner = nil
	globalData.initialised = false
	return nil
}

// OwnerAddress - the ledger owner
func OwnerAddress() *account.Address {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.owner
}

// GetStatistics - snapshot of the operation counters
func GetStatistics() Statistics {
	return currentStatistics()
}

func currentStatistics() Statistics {
	return Statistics{
		Registrations: globalData.registrations.Uint64(),
		Submissions:   globalData.submissions.Uint64(),
		Reviews:       globalData.reviews.Uint64(),
		Donations:     globalData.donations.Uint64(),
		Withdrawals:   globalData.withdrawals.Uint64(),
	}
}
