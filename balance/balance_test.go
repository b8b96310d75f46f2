// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Fundledger Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package balance_test

import (
	"os"
	"testing"

	"github.com/fundledger/custodyd/balance"
	"github.com/fundledger/custodyd/fault"
	"github.com/fundledger/custodyd/fixtures"
	"github.com/fundledger/custodyd/storage"
)

// test database file
const (
	databaseFileName = "test.leveldb"
)

// remove all files created by test
func removeFiles() {
	os.RemoveAll(databaseFileName)
}

// configure for testing
func setup(t *testing.T) {
	removeFiles()
	fixtures.SetupTestLogger()

	err := storage.Initialise(databaseFileName, false)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}

	err = balance.Initialise()
	if nil != err {
		t.Fatalf("balance initialise error: %s", err)
	}
}

// post test cleanup
func teardown(t *testing.T) {
	balance.Finalise()
	storage.Finalise()
	fixtures.TeardownTestLogger()
	removeFiles()
}

func begin(t *testing.T) storage.Transaction {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction begin error: %s", err)
	}
	return trx
}

func commit(t *testing.T, trx storage.Transaction) {
	err := trx.Commit()
	if nil != err {
		t.Fatalf("transaction commit error: %s", err)
	}
}

func TestOwnerCreditAndWithdraw(t *testing.T) {
	setup(t)
	defer teardown(t)

	if 0 != balance.OwnerDirect() {
		t.Fatalf("fresh owner balance: %d  expected zero", balance.OwnerDirect())
	}

	trx := begin(t)
	err := balance.CreditOwner(trx, 250)
	if nil != err {
		t.Fatalf("credit error: %s", err)
	}
	err = balance.CreditOwner(trx, 750)
	if nil != err {
		t.Fatalf("credit error: %s", err)
	}
	commit(t, trx)

	if 1000 != balance.OwnerDirect() {
		t.Fatalf("owner balance: %d  expected: %d", balance.OwnerDirect(), 1000)
	}

	trx = begin(t)
	amount, err := balance.WithdrawOwner(trx)
	if nil != err {
		t.Fatalf("withdraw error: %s", err)
	}
	commit(t, trx)

	if 1000 != amount {
		t.Fatalf("withdrawn: %d  expected: %d", amount, 1000)
	}
	if 0 != balance.OwnerDirect() {
		t.Fatalf("owner balance after withdraw: %d  expected zero", balance.OwnerDirect())
	}

	trx = begin(t)
	_, err = balance.WithdrawOwner(trx)
	trx.Abort()
	if fault.ErrNothingToWithdraw != err {
		t.Fatalf("second withdraw error: %s  expected: %s", err, fault.ErrNothingToWithdraw)
	}
}

func TestZeroCreditIsNoOp(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx := begin(t)
	err := balance.CreditOwner(trx, 0)
	if nil != err {
		t.Fatalf("zero credit error: %s", err)
	}
	commit(t, trx)

	if 0 != balance.OwnerDirect() {
		t.Fatalf("owner balance: %d  expected zero", balance.OwnerDirect())
	}
}

func TestRunningTotals(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx := begin(t)
	err := balance.RecordDeposit(trx, 5000)
	if nil != err {
		t.Fatalf("deposit record error: %s", err)
	}
	err = balance.RecordDeposit(trx, 2500)
	if nil != err {
		t.Fatalf("deposit record error: %s", err)
	}
	err = balance.RecordWithdrawal(trx, 1500)
	if nil != err {
		t.Fatalf("withdrawal record error: %s", err)
	}
	commit(t, trx)

	deposits, withdrawals := balance.TotalsDirect()
	if 7500 != deposits {
		t.Fatalf("deposits: %d  expected: %d", deposits, 7500)
	}
	if 1500 != withdrawals {
		t.Fatalf("withdrawals: %d  expected: %d", withdrawals, 1500)
	}
}

func TestAbortDiscardsCredit(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx := begin(t)
	err := balance.CreditOwner(trx, 4000)
	if nil != err {
		t.Fatalf("credit error: %s", err)
	}
	trx.Abort()

	if 0 != balance.OwnerDirect() {
		t.Fatalf("aborted credit is visible: %d", balance.OwnerDirect())
	}
}
