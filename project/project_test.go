// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Fundledger Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package project_test

import (
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fundledger/custodyd/fault"
	"github.com/fundledger/custodyd/fixtures"
	"github.com/fundledger/custodyd/funds"
	"github.com/fundledger/custodyd/project"
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

	err = project.Initialise()
	if nil != err {
		t.Fatalf("project initialise error: %s", err)
	}
}

// post test cleanup
func teardown(t *testing.T) {
	project.Finalise()
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

func makeHash(fill byte) project.Hash {
	var hash project.Hash
	for i := range hash {
		hash[i] = fill
	}
	return hash
}

func TestSubmitAndRead(t *testing.T) {
	setup(t)
	defer teardown(t)

	author := fixtures.NewAddress()
	inst := fixtures.NewAddress()
	hash := makeHash(0x11)

	trx := begin(t)
	record, err := project.Submit(trx, hash, author, inst, 10000, 9000)
	assert.Nil(t, err, "submit failed")
	commit(t, trx)

	assert.Equal(t, project.Submitted, record.Status, "wrong status")
	assert.Equal(t, funds.Amount(9000), record.EscrowBalance, "wrong escrow")
	assert.Equal(t, funds.Amount(0), record.AuthorBalance, "author balance not zero")

	stored := project.ReadDirect(hash)
	assert.Equal(t, project.Submitted, stored.Status, "stored status mismatch")
	assert.Equal(t, funds.Amount(9000), stored.EscrowBalance, "stored escrow mismatch")
	assert.Equal(t, funds.Amount(10000), stored.Submitted, "stored gross mismatch")
	assert.True(t, author.Equal(stored.Author), "stored author mismatch")
	assert.True(t, inst.Equal(stored.Institution), "stored institution mismatch")
}

func TestDuplicateSubmit(t *testing.T) {
	setup(t)
	defer teardown(t)

	hash := makeHash(0x22)

	trx := begin(t)
	_, err := project.Submit(trx, hash, fixtures.NewAddress(), fixtures.NewAddress(), 1000, 900)
	assert.Nil(t, err, "submit failed")
	commit(t, trx)

	trx = begin(t)
	_, err = project.Submit(trx, hash, fixtures.NewAddress(), fixtures.NewAddress(), 2000, 1800)
	assert.Equal(t, fault.ErrDuplicateProjectHash, err, "duplicate hash accepted")
	trx.Abort()
}

func TestApproveSettlement(t *testing.T) {
	setup(t)
	defer teardown(t)

	hash := makeHash(0x33)
	policy := funds.DefaultPolicy()

	trx := begin(t)
	_, err := project.Submit(trx, hash, fixtures.NewAddress(), fixtures.NewAddress(), 10000, 9000)
	assert.Nil(t, err, "submit failed")
	commit(t, trx)

	trx = begin(t)
	institutionShare, record, err := project.Approve(trx, hash, policy)
	assert.Nil(t, err, "approve failed")
	commit(t, trx)

	// escrow 9000 settles 7000 author / 2000 institution
	assert.Equal(t, funds.Amount(2000), institutionShare, "wrong institution share")
	assert.Equal(t, project.Approved, record.Status, "wrong status")
	assert.Equal(t, funds.Amount(7000), record.AuthorBalance, "wrong author balance")
	assert.Equal(t, funds.Amount(0), record.EscrowBalance, "escrow not emptied")

	// a second review of either kind is refused
	trx = begin(t)
	_, _, err = project.Approve(trx, hash, policy)
	assert.Equal(t, fault.ErrAlreadyReviewed, err, "second approve accepted")
	_, _, err = project.Reject(trx, hash)
	assert.Equal(t, fault.ErrAlreadyReviewed, err, "reject after approve accepted")
	trx.Abort()
}

func TestRejectForfeit(t *testing.T) {
	setup(t)
	defer teardown(t)

	hash := makeHash(0x44)

	trx := begin(t)
	_, err := project.Submit(trx, hash, fixtures.NewAddress(), fixtures.NewAddress(), 5000, 4500)
	assert.Nil(t, err, "submit failed")
	commit(t, trx)

	trx = begin(t)
	forfeited, record, err := project.Reject(trx, hash)
	assert.Nil(t, err, "reject failed")
	commit(t, trx)

	assert.Equal(t, funds.Amount(4500), forfeited, "wrong forfeit")
	assert.Equal(t, project.Rejected, record.Status, "wrong status")
	assert.Equal(t, funds.Amount(0), record.EscrowBalance, "escrow not emptied")
}

func TestReviewUnknown(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx := begin(t)
	_, _, err := project.Approve(trx, makeHash(0x55), funds.DefaultPolicy())
	assert.Equal(t, fault.ErrProjectNotFound, err, "approve of unknown hash accepted")
	_, _, err = project.Reject(trx, makeHash(0x55))
	assert.Equal(t, fault.ErrProjectNotFound, err, "reject of unknown hash accepted")
	trx.Abort()
}

func TestDonateStates(t *testing.T) {
	setup(t)
	defer teardown(t)

	hash := makeHash(0x66)
	policy := funds.DefaultPolicy()

	trx := begin(t)
	_, err := project.Submit(trx, hash, fixtures.NewAddress(), fixtures.NewAddress(), 10000, 9000)
	assert.Nil(t, err, "submit failed")
	commit(t, trx)

	// donation to Submitted accumulates in escrow
	trx = begin(t)
	institutionShare, record, err := project.Donate(trx, hash, 900, policy)
	assert.Nil(t, err, "donate failed")
	commit(t, trx)
	assert.Equal(t, funds.Amount(0), institutionShare, "escrowed donation produced a share")
	assert.Equal(t, funds.Amount(9900), record.EscrowBalance, "escrow not accumulated")

	// donation to Approved settles immediately
	trx = begin(t)
	_, _, err = project.Approve(trx, hash, policy)
	assert.Nil(t, err, "approve failed")
	commit(t, trx)

	trx = begin(t)
	institutionShare, record, err = project.Donate(trx, hash, 900, policy)
	assert.Nil(t, err, "donate to approved failed")
	commit(t, trx)
	// net 900 settles 700 author / 200 institution
	assert.Equal(t, funds.Amount(200), institutionShare, "wrong settled share")
	assert.Equal(t, funds.Amount(0), record.EscrowBalance, "approved project escrowed a donation")

	// donation to Rejected is refused
	rejected := makeHash(0x67)
	trx = begin(t)
	_, err = project.Submit(trx, rejected, fixtures.NewAddress(), fixtures.NewAddress(), 1000, 900)
	assert.Nil(t, err, "submit failed")
	_, _, err = project.Reject(trx, rejected)
	assert.Nil(t, err, "reject failed")
	commit(t, trx)

	trx = begin(t)
	_, _, err = project.Donate(trx, rejected, 900, policy)
	assert.Equal(t, fault.ErrProjectClosed, err, "donation to rejected accepted")
	trx.Abort()
}

func TestWithdrawAuthor(t *testing.T) {
	setup(t)
	defer teardown(t)

	hash := makeHash(0x77)
	policy := funds.DefaultPolicy()

	trx := begin(t)
	_, err := project.Submit(trx, hash, fixtures.NewAddress(), fixtures.NewAddress(), 10000, 9000)
	assert.Nil(t, err, "submit failed")
	commit(t, trx)

	// not yet approved
	trx = begin(t)
	_, err = project.WithdrawAuthor(trx, hash)
	assert.Equal(t, fault.ErrProjectNotApproved, err, "withdraw before approval accepted")
	trx.Abort()

	trx = begin(t)
	_, _, err = project.Approve(trx, hash, policy)
	assert.Nil(t, err, "approve failed")
	commit(t, trx)

	trx = begin(t)
	amount, err := project.WithdrawAuthor(trx, hash)
	assert.Nil(t, err, "withdraw failed")
	commit(t, trx)
	assert.Equal(t, funds.Amount(7000), amount, "wrong withdrawal amount")

	record := project.ReadDirect(hash)
	assert.Equal(t, funds.Amount(0), record.AuthorBalance, "author balance not zeroed")

	// the balance is gone
	trx = begin(t)
	_, err = project.WithdrawAuthor(trx, hash)
	assert.Equal(t, fault.ErrNothingToWithdraw, err, "second withdrawal accepted")
	trx.Abort()
}

func TestAbortLeavesNoTrace(t *testing.T) {
	setup(t)
	defer teardown(t)

	hash := makeHash(0x88)

	trx := begin(t)
	_, err := project.Submit(trx, hash, fixtures.NewAddress(), fixtures.NewAddress(), 1000, 900)
	assert.Nil(t, err, "submit failed")
	trx.Abort()

	record := project.ReadDirect(hash)
	assert.Equal(t, project.Nothing, record.Status, "aborted submission is visible")
}

func TestTotalHeld(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx := begin(t)
	_, err := project.Submit(trx, makeHash(0x91), fixtures.NewAddress(), fixtures.NewAddress(), 1000, 900)
	assert.Nil(t, err, "submit failed")
	_, err = project.Submit(trx, makeHash(0x92), fixtures.NewAddress(), fixtures.NewAddress(), 2000, 1800)
	assert.Nil(t, err, "submit failed")
	commit(t, trx)

	trx = begin(t)
	_, _, err = project.Approve(trx, makeHash(0x92), funds.DefaultPolicy())
	assert.Nil(t, err, "approve failed")
	commit(t, trx)

	// escrow 900 plus the settled author share 1400
	total, err := project.TotalHeldDirect()
	assert.Nil(t, err, "total failed")
	assert.Equal(t, funds.Amount(900+1400), total, "wrong held total")
}

func TestTotalHeldOverflow(t *testing.T) {
	setup(t)
	defer teardown(t)

	// each escrow fits, the sum does not
	huge := funds.Amount(math.MaxUint64/2 + 1)
	trx := begin(t)
	_, err := project.Submit(trx, makeHash(0x93), fixtures.NewAddress(), fixtures.NewAddress(), huge, huge)
	assert.Nil(t, err, "submit failed")
	_, err = project.Submit(trx, makeHash(0x94), fixtures.NewAddress(), fixtures.NewAddress(), huge, huge)
	assert.Nil(t, err, "submit failed")
	commit(t, trx)

	_, err = project.TotalHeldDirect()
	assert.Equal(t, fault.ErrAmountOverflow, err, "overflowing total not reported")
}

func TestProjectList(t *testing.T) {
	setup(t)
	defer teardown(t)

	hashes := []project.Hash{makeHash(0x01), makeHash(0x02), makeHash(0x03)}
	for _, hash := range hashes {
		trx := begin(t)
		_, err := project.Submit(trx, hash, fixtures.NewAddress(), fixtures.NewAddress(), 1000, 900)
		assert.Nil(t, err, "submit failed")
		commit(t, trx)
	}

	entries, err := project.List(project.Hash{}, 10)
	assert.Nil(t, err, "list failed")
	assert.Equal(t, len(hashes), len(entries), "wrong listing length")
	for i, entry := range entries {
		assert.Equal(t, hashes[i], entry.Hash, "listing order mismatch: %d", i)
	}

	// paging resumes after the start hash
	entries, err = project.List(hashes[0], 10)
	assert.Nil(t, err, "paged list failed")
	assert.Equal(t, 2, len(entries), "wrong page length")
	assert.Equal(t, hashes[1], entries[0].Hash, "wrong page start")
}
