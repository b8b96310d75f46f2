// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Fundledger Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package institution

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/fundledger/custodyd/account"
	"github.com/fundledger/custodyd/fault"
	"github.com/fundledger/custodyd/funds"
	"github.com/fundledger/custodyd/storage"
)

// globals
var globalData struct {
	sync.RWMutex
	log *logger.L

	// set once during initialise
	initialised bool
}

// Initialise - set up the registry
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("institution")
	globalData.log.Info("starting…")

	globalData.initialised = true
	return nil
}

// Finalise - shut down the registry
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

// Register - create a new active institution
//
// refuses a second registration so duplicate attempts are visible to
// the caller
func Register(trx storage.Transaction, address *account.Address) error {
	if trx.Has(storage.Pool.Institutions, address.Bytes()) {
		return fault.ErrAlreadyRegistered
	}

	record := Record{
		Registered: true,
		Active:     true,
		Balance:    0,
	}
	trx.Put(storage.Pool.Institutions, address.Bytes(), record.pack())

	globalData.log.Infof("registered: %s", address)
	return nil
}

// Disable - mark an institution inactive
//
// one way: there is no re-enable; balance and projects are preserved
func Disable(trx storage.Transaction, address *account.Address) error {
	record, ok := fetch(trx, address)
	if !ok {
		return fault.ErrNotRegistered
	}

	record.Active = false
	trx.Put(storage.Pool.Institutions, address.Bytes(), record.pack())

	globalData.log.Infof("disabled: %s", address)
	return nil
}

// IsActive - check an institution can accept new projects
func IsActive(trx storage.Transaction, address *account.Address) bool {
	record, ok := fetch(trx, address)
	return ok && record.Active
}

// IsRegistered - check an institution exists
func IsRegistered(trx storage.Transaction, address *account.Address) bool {
	_, ok := fetch(trx, address)
	return ok
}

// Credit - add an approval share to the institution balance
func Credit(trx storage.Transaction, address *account.Address, amount funds.Amount) error {
	record, ok := fetch(trx, address)
	if !ok {
		return fault.ErrNotRegistered
	}

	balance, err := record.Balance.CheckedAdd(amount)
	if nil != err {
		return err
	}
	record.Balance = balance
	trx.Put(storage.Pool.Institutions, address.Bytes(), record.pack())
	return nil
}

// WithdrawAll - atomically read and zero the institution balance
//
// the read and the zeroing are one step inside the enclosing
// transaction so a concurrent withdrawal cannot observe a stale
// balance
func WithdrawAll(trx storage.Transaction, address *account.Address) (funds.Amount, error) {
	record, ok := fetch(trx, address)
	if !ok {
		return 0, fault.ErrNotRegistered
	}
	if record.Balance.IsZero() {
		return 0, fault.ErrNothingToWithdraw
	}

	amount := record.Balance
	record.Balance = 0
	trx.Put(storage.Pool.Institutions, address.Bytes(), record.pack())

	globalData.log.Infof("withdraw: %s  amount: %d", address, amount)
	return amount, nil
}

// Read - snapshot of one institution
//
// never fails: an unknown address reads as the zero record
func Read(trx storage.Transaction, address *account.Address) Record {
	record, _ := fetch(trx, address)
	return record
}

// ReadDirect - snapshot without a transaction, for the read accessors
func ReadDirect(address *account.Address) Record {
	buffer := storage.Pool.Institutions.Get(address.Bytes())
	if nil == buffer {
		return Record{}
	}
	return unpack(buffer)
}

// Entry - one institution in a listing
type Entry struct {
	Address *account.Address `json:"address"`
	Record
}

// List - walk the registry returning up to count entries starting
// after the start address; pass nil to start from the beginning
func List(start *account.Address, count int) ([]Entry, error) {
	cursor := storage.Pool.Institutions.NewFetchCursor()
	if !start.IsZero() {
		// the cursor start key is inclusive so step past it
		cursor.Seek(append(start.Bytes(), 0x00))
	}

	items, err := cursor.Fetch(count)
	if nil != err {
		return nil, err
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		address, err := account.AddressFromBytes(item.Key)
		if nil != err {
			logger.Panicf("institution: corrupt address key: %x", item.Key)
		}
		entries = append(entries, Entry{
			Address: address,
			Record:  unpack(item.Value),
		})
	}
	return entries, nil
}

// TotalBalanceDirect - sum of all institution balances without a
// transaction, for the conservation audit
//
// an overflowing sum is reported, not wrapped
func TotalBalanceDirect() (funds.Amount, error) {
	total := funds.Amount(0)
	err := storage.Pool.Institutions.NewFetchCursor().Map(func(key []byte, value []byte) error {
		sum, err := total.CheckedAdd(unpack(value).Balance)
		if nil != err {
			return err
		}
		total = sum
		return nil
	})
	return total, err
}

// common read of a record inside a transaction
func fetch(trx storage.Transaction, address *account.Address) (Record, bool) {
	buffer := trx.Get(storage.Pool.Institutions, address.Bytes())
	if nil == buffer {
		return Record{}, false
	}
	return unpack(buffer), true
}
