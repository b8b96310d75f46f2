// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Fundledger Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package balance - the owner balance and the conservation totals
//
// the owner accrues protocol fees and forfeited escrow; the
// cumulative deposit and withdrawal totals let the audit verify that
// no unit of funds was created or destroyed: at any time
//
//	owner + Σ institution + Σ (escrow + author) == deposits - withdrawals
package balance

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/fundledger/custodyd/fault"
	"github.com/fundledger/custodyd/funds"
	"github.com/fundledger/custodyd/storage"
)

// storage keys
var (
	ownerKey       = []byte("O")
	depositsKey    = []byte("D")
	withdrawalsKey = []byte("W")
)

// globals
var globalData struct {
	sync.RWMutex
	log *logger.L

	// set once during initialise
	initialised bool
}

// Initialise - set up the balance ledger
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("balance")
	globalData.log.Info("starting…")

	globalData.initialised = true
	return nil
}

// Finalise - shut down the balance ledger
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.initialised = false
	return nil
}

// CreditOwner - add fees or forfeited escrow to the owner balance
func CreditOwner(trx storage.Transaction, amount funds.Amount) error {
	if amount.IsZero() {
		return nil
	}
	current, _ := trx.GetN(storage.Pool.Balances, ownerKey)
	sum, err := funds.Amount(current).CheckedAdd(amount)
	if nil != err {
		return err
	}
	trx.PutN(storage.Pool.Balances, ownerKey, uint64(sum))

	globalData.log.Debugf("owner credit: %d  balance: %d", amount, sum)
	return nil
}

// WithdrawOwner - atomically read and zero the owner balance
//
// the read and the zeroing are one step inside the enclosing
// transaction so a concurrent withdrawal cannot observe a stale
// balance
func WithdrawOwner(trx storage.Transaction) (funds.Amount, error) {
	current, _ := trx.GetN(storage.Pool.Balances, ownerKey)
	if 0 == current {
		return 0, fault.ErrNothingToWithdraw
	}
	trx.PutN(storage.Pool.Balances, ownerKey, 0)

	globalData.log.Infof("owner withdraw: %d", current)
	return funds.Amount(current), nil
}

// Owner - the owner balance inside a transaction
func Owner(trx storage.Transaction) funds.Amount {
	current, _ := trx.GetN(storage.Pool.Balances, ownerKey)
	return funds.Amount(current)
}

// OwnerDirect - the owner balance without a transaction, for the
// read accessors
func OwnerDirect() funds.Amount {
	current, _ := storage.Pool.Balances.GetN(ownerKey)
	return funds.Amount(current)
}

// RecordDeposit - account an incoming payment in the running total
func RecordDeposit(trx storage.Transaction, amount funds.Amount) error {
	current, _ := trx.GetN(storage.Pool.Metadata, depositsKey)
	sum, err := funds.Amount(current).CheckedAdd(amount)
	if nil != err {
		return err
	}
	trx.PutN(storage.Pool.Metadata, depositsKey, uint64(sum))
	return nil
}

// RecordWithdrawal - account an outgoing payment in the running total
func RecordWithdrawal(trx storage.Transaction, amount funds.Amount) error {
	current, _ := trx.GetN(storage.Pool.Metadata, withdrawalsKey)
	sum, err := funds.Amount(current).CheckedAdd(amount)
	if nil != err {
		return err
	}
	trx.PutN(storage.Pool.Metadata, withdrawalsKey, uint64(sum))
	return nil
}

// TotalsDirect - the cumulative deposit and withdrawal totals
func TotalsDirect() (funds.Amount, funds.Amount) {
	deposits, _ := storage.Pool.Metadata.GetN(depositsKey)
	withdrawals, _ := storage.Pool.Metadata.GetN(withdrawalsKey)
	return funds.Amount(deposits), funds.Amount(withdrawals)
}
