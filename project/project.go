// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Fundledger Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package project

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

// Initialise - set up the project ledger
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("project")
	globalData.log.Info("starting…")

	globalData.initialised = true
	return nil
}

// Finalise - shut down the project ledger
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

// Submit - create a project in the Submitted state
//
// the hash is write once: a second submission with the same hash is
// refused; the escrow receives the net amount after the owner fee,
// the submitted amount records the gross payment
func Submit(trx storage.Transaction, hash Hash, author *account.Address, institution *account.Address, gross funds.Amount, net funds.Amount) (Record, error) {
	if trx.Has(storage.Pool.Projects, hash[:]) {
		return Record{}, fault.ErrDuplicateProjectHash
	}

	record := Record{
		Author:        author,
		Institution:   institution,
		Status:        Submitted,
		EscrowBalance: net,
		AuthorBalance: 0,
		Submitted:     gross,
	}
	trx.Put(storage.Pool.Projects, hash[:], record.pack())

	globalData.log.Infof("submitted: %s  author: %s  institution: %s  escrow: %d", hash, author, institution, net)
	return record, nil
}

// Approve - settle a Submitted project
//
// the escrow divides between the author balance, kept on the record,
// and the institution share which is returned for the caller to
// credit; a project that already left Submitted is refused
func Approve(trx storage.Transaction, hash Hash, policy funds.SplitPolicy) (funds.Amount, Record, error) {
	record, ok := fetch(trx, hash)
	if !ok {
		return 0, Record{}, fault.ErrProjectNotFound
	}
	if Submitted != record.Status {
		return 0, Record{}, fault.ErrAlreadyReviewed
	}

	authorShare, institutionShare := policy.Settle(record.EscrowBalance)

	record.Status = Approved
	record.AuthorBalance = authorShare
	record.EscrowBalance = 0
	trx.Put(storage.Pool.Projects, hash[:], record.pack())

	globalData.log.Infof("approved: %s  author share: %d  institution share: %d", hash, authorShare, institutionShare)
	return institutionShare, record, nil
}

// Reject - close a Submitted project
//
// the whole escrow is forfeited and returned for the caller to
// credit to the owner; no refund path exists as donations carry no
// per donor record
func Reject(trx storage.Transaction, hash Hash) (funds.Amount, Record, error) {
	record, ok := fetch(trx, hash)
	if !ok {
		return 0, Record{}, fault.ErrProjectNotFound
	}
	if Submitted != record.Status {
		return 0, Record{}, fault.ErrAlreadyReviewed
	}

	forfeited := record.EscrowBalance

	record.Status = Rejected
	record.EscrowBalance = 0
	trx.Put(storage.Pool.Projects, hash[:], record.pack())

	globalData.log.Infof("rejected: %s  forfeited: %d", hash, forfeited)
	return forfeited, record, nil
}

// Donate - add a donation to an open project
//
// a Submitted project accumulates the net amount in escrow; an
// Approved project settles the donation immediately, crediting the
// author balance and returning the institution share; a Rejected
// project accepts nothing
func Donate(trx storage.Transaction, hash Hash, net funds.Amount, policy funds.SplitPolicy) (funds.Amount, Record, error) {
	record, ok := fetch(trx, hash)
	if !ok {
		return 0, Record{}, fault.ErrProjectNotFound
	}

	switch record.Status {

	case Submitted:
		escrow, err := record.EscrowBalance.CheckedAdd(net)
		if nil != err {
			return 0, Record{}, err
		}
		record.EscrowBalance = escrow
		trx.Put(storage.Pool.Projects, hash[:], record.pack())

		globalData.log.Infof("donation: %s  amount: %d  escrow: %d", hash, net, escrow)
		return 0, record, nil

	case Approved:
		authorShare, institutionShare := policy.Settle(net)
		balance, err := record.AuthorBalance.CheckedAdd(authorShare)
		if nil != err {
			return 0, Record{}, err
		}
		record.AuthorBalance = balance
		trx.Put(storage.Pool.Projects, hash[:], record.pack())

		globalData.log.Infof("donation: %s  amount: %d  author share: %d  institution share: %d", hash, net, authorShare, institutionShare)
		return institutionShare, record, nil

	case Rejected:
		return 0, Record{}, fault.ErrProjectClosed

	default:
		logger.Panicf("project: invalid status in record: %s  status: %d", hash, record.Status)
		return 0, Record{}, fault.ErrInvalidReviewStatus
	}
}

// WithdrawAuthor - atomically read and zero the author balance
//
// only valid on an Approved project with funds; the caller identity
// is checked by the access layer before this is reached
func WithdrawAuthor(trx storage.Transaction, hash Hash) (funds.Amount, error) {
	record, ok := fetch(trx, hash)
	if !ok {
		return 0, fault.ErrProjectNotFound
	}
	if Approved != record.Status {
		return 0, fault.ErrProjectNotApproved
	}
	if record.AuthorBalance.IsZero() {
		return 0, fault.ErrNothingToWithdraw
	}

	amount := record.AuthorBalance
	record.AuthorBalance = 0
	trx.Put(storage.Pool.Projects, hash[:], record.pack())

	globalData.log.Infof("author withdraw: %s  amount: %d", hash, amount)
	return amount, nil
}

// Read - snapshot of one project inside a transaction
//
// never fails: an unknown hash reads as the zero record
func Read(trx storage.Transaction, hash Hash) Record {
	record, _ := fetch(trx, hash)
	return record
}

// Exists - check a project hash is present
func Exists(trx storage.Transaction, hash Hash) bool {
	return trx.Has(storage.Pool.Projects, hash[:])
}

// ReadDirect - snapshot without a transaction, for the read accessors
func ReadDirect(hash Hash) Record {
	buffer := storage.Pool.Projects.Get(hash[:])
	if nil == buffer {
		return Record{}
	}
	return unpack(buffer)
}

// Entry - one project in a listing
type Entry struct {
	Hash Hash `json:"projectHash"`
	Record
}

// List - walk the ledger returning up to count entries starting
// after the start hash; pass the zero hash to start from the
// beginning
func List(start Hash, count int) ([]Entry, error) {
	cursor := storage.Pool.Projects.NewFetchCursor()
	if !start.IsZero() {
		// the cursor start key is inclusive so step past it
		cursor.Seek(append(start[:], 0x00))
	}

	items, err := cursor.Fetch(count)
	if nil != err {
		return nil, err
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		hash, err := HashFromBytes(item.Key)
		if nil != err {
			logger.Panicf("project: corrupt hash key: %x", item.Key)
		}
		entries = append(entries, Entry{
			Hash:   hash,
			Record: unpack(item.Value),
		})
	}
	return entries, nil
}

// TotalHeldDirect - sum of all escrow and author balances without a
// transaction, for the conservation audit
//
// an overflowing sum is reported, not wrapped
func TotalHeldDirect() (funds.Amount, error) {
	total := funds.Amount(0)
	err := storage.Pool.Projects.NewFetchCursor().Map(func(key []byte, value []byte) error {
		record := unpack(value)
		sum, err := total.CheckedAdd(record.EscrowBalance)
		if nil == err {
			sum, err = sum.CheckedAdd(record.AuthorBalance)
		}
		if nil != err {
			return err
		}
		total = sum
		return nil
	})
	return total, err
}

// common read of a record inside a transaction
func fetch(trx storage.Transaction, hash Hash) (Record, bool) {
	buffer := trx.Get(storage.Pool.Projects, hash[:])
	if nil == buffer {
		return Record{}, false
	}
	return unpack(buffer), true
}
