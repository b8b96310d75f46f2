// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Fundledger Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/fundledger/custodyd/access"
	"github.com/fundledger/custodyd/account"
	"github.com/fundledger/custodyd/balance"
	"github.com/fundledger/custodyd/fault"
	"github.com/fundledger/custodyd/funds"
	"github.com/fundledger/custodyd/institution"
	"github.com/fundledger/custodyd/project"
	"github.com/fundledger/custodyd/storage"
)

// RegisterInstitution - owner only: create a new active institution
func RegisterInstitution(caller *account.Address, address *account.Address) error {
	globalData.operationLock.Lock()
	defer globalData.operationLock.Unlock()

	err := access.Authorize(caller, access.RegisterInstitution, access.Context{Owner: globalData.owner})
	if nil != err {
		return err
	}
	if address.IsZero() {
		return fault.ErrInvalidKeyLength
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	err = institution.Register(trx, address)
	if nil != err {
		trx.Abort()
		return err
	}

	err = trx.Commit()
	if nil != err {
		return err
	}
	globalData.registrations.Increment()
	return nil
}

// DisableInstitution - owner only: mark an institution inactive
//
// the institution keeps its balance and its projects; only new
// submissions naming it are refused
func DisableInstitution(caller *account.Address, address *account.Address) error {
	globalData.operationLock.Lock()
	defer globalData.operationLock.Unlock()

	err := access.Authorize(caller, access.DisableInstitution, access.Context{Owner: globalData.owner})
	if nil != err {
		return err
	}
	if address.IsZero() {
		return fault.ErrNotRegistered
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	err = institution.Disable(trx, address)
	if nil != err {
		trx.Abort()
		return err
	}

	return trx.Commit()
}

// SubmitProject - create a proposal escrowed with the payment
//
// any caller may submit and becomes the project author; the named
// institution must be registered and active; the owner fee is taken
// from the payment and the remainder becomes the initial escrow
func SubmitProject(caller *account.Address, hash project.Hash, institutionAddress *account.Address, payment funds.Payment) (project.Record, error) {
	globalData.operationLock.Lock()
	defer globalData.operationLock.Unlock()

	err := access.Authorize(caller, access.SubmitProject, access.Context{Owner: globalData.owner})
	if nil != err {
		return project.Record{}, err
	}
	if hash.IsZero() {
		return project.Record{}, fault.ErrInvalidProjectHash
	}
	if institutionAddress.IsZero() {
		return project.Record{}, fault.ErrUnknownOrInactiveInstitution
	}

	amount, err := payment.Validate()
	if nil != err {
		return project.Record{}, err
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return project.Record{}, err
	}

	if !institution.IsActive(trx, institutionAddress) {
		trx.Abort()
		return project.Record{}, fault.ErrUnknownOrInactiveInstitution
	}

	fee, net := globalData.policy.Fee(amount)

	record, err := project.Submit(trx, hash, caller, institutionAddress, amount, net)
	if nil != err {
		trx.Abort()
		return project.Record{}, err
	}

	err = balance.CreditOwner(trx, fee)
	if nil == err {
		err = balance.RecordDeposit(trx, amount)
	}
	if nil != err {
		trx.Abort()
		return project.Record{}, err
	}

	err = trx.Commit()
	if nil != err {
		return project.Record{}, err
	}
	globalData.submissions.Increment()
	return record, nil
}

// ReviewProject - owner only: decide a Submitted project exactly once
//
// approval settles the escrow into the author balance and the
// institution balance per the split policy; rejection forfeits the
// whole escrow to the owner as no per donor refund record exists
func ReviewProject(caller *account.Address, hash project.Hash, decision project.Status) (project.Record, error) {
	globalData.operationLock.Lock()
	defer globalData.operationLock.Unlock()

	err := access.Authorize(caller, access.ReviewProject, access.Context{Owner: globalData.owner})
	if nil != err {
		return project.Record{}, err
	}
	if !decision.ValidDecision() {
		return project.Record{}, fault.ErrInvalidReviewStatus
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return project.Record{}, err
	}

	var record project.Record

	switch decision {

	case project.Approved:
		institutionShare, approved, err := project.Approve(trx, hash, globalData.policy)
		if nil != err {
			trx.Abort()
			return project.Record{}, err
		}
		err = institution.Credit(trx, approved.Institution, institutionShare)
		if nil != err {
			trx.Abort()
			return project.Record{}, err
		}
		record = approved

	case project.Rejected:
		forfeited, rejected, err := project.Reject(trx, hash)
		if nil != err {
			trx.Abort()
			return project.Record{}, err
		}
		err = balance.CreditOwner(trx, forfeited)
		if nil != err {
			trx.Abort()
			return project.Record{}, err
		}
		record = rejected
	}

	err = trx.Commit()
	if nil != err {
		return project.Record{}, err
	}
	globalData.reviews.Increment()
	return record, nil
}

// Donate - add funds to an open project
//
// any caller may donate; the owner fee is taken from the payment; a
// Submitted project escrows the remainder, an Approved project
// settles it immediately, a Rejected project refuses the donation
func Donate(caller *account.Address, hash project.Hash, payment funds.Payment) (project.Record, error) {
	globalData.operationLock.Lock()
	defer globalData.operationLock.Unlock()

	err := access.Authorize(caller, access.Donate, access.Context{Owner: globalData.owner})
	if nil != err {
		return project.Record{}, err
	}

	amount, err := payment.Validate()
	if nil != err {
		return project.Record{}, err
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return project.Record{}, err
	}

	fee, net := globalData.policy.Fee(amount)

	institutionShare, record, err := project.Donate(trx, hash, net, globalData.policy)
	if nil != err {
		trx.Abort()
		return project.Record{}, err
	}

	if !institutionShare.IsZero() {
		err = institution.Credit(trx, record.Institution, institutionShare)
		if nil != err {
			trx.Abort()
			return project.Record{}, err
		}
	}

	err = balance.CreditOwner(trx, fee)
	if nil == err {
		err = balance.RecordDeposit(trx, amount)
	}
	if nil != err {
		trx.Abort()
		return project.Record{}, err
	}

	err = trx.Commit()
	if nil != err {
		return project.Record{}, err
	}
	globalData.donations.Increment()
	return record, nil
}

// Withdraw - pay out the whole balance of the owner or an institution
//
// the balance read and its zeroing commit atomically so two
// concurrent withdrawals can never both be paid; the returned amount
// is what the settlement layer must transfer to the caller
func Withdraw(caller *account.Address) (funds.Amount, error) {
	globalData.operationLock.Lock()
	defer globalData.operationLock.Unlock()

	// refuse an unidentifiable caller before probing the registry
	if caller.IsZero() {
		return 0, fault.ErrUnauthorized
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return 0, err
	}

	registered := institution.IsRegistered(trx, caller)

	err = access.Authorize(caller, access.Withdraw, access.Context{
		Owner:                 globalData.owner,
		InstitutionRegistered: registered,
	})
	if nil != err {
		trx.Abort()
		return 0, err
	}

	var amount funds.Amount
	if caller.Equal(globalData.owner) {
		amount, err = balance.WithdrawOwner(trx)
	} else {
		amount, err = institution.WithdrawAll(trx, caller)
	}
	if nil != err {
		trx.Abort()
		return 0, err
	}

	err = balance.RecordWithdrawal(trx, amount)
	if nil != err {
		trx.Abort()
		return 0, err
	}

	err = trx.Commit()
	if nil != err {
		return 0, err
	}
	globalData.withdrawals.Increment()
	return amount, nil
}

// AuthorWithdraw - pay out the author balance of an Approved project
//
// only the recorded author may withdraw and only after approval; the
// balance read and its zeroing commit atomically
func AuthorWithdraw(caller *account.Address, hash project.Hash) (funds.Amount, error) {
	globalData.operationLock.Lock()
	defer globalData.operationLock.Unlock()

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return 0, err
	}

	if !project.Exists(trx, hash) {
		trx.Abort()
		return 0, fault.ErrProjectNotFound
	}

	record := project.Read(trx, hash)
	err = access.Authorize(caller, access.AuthorWithdraw, access.Context{
		Owner:         globalData.owner,
		ProjectAuthor: record.Author,
	})
	if nil != err {
		trx.Abort()
		return 0, err
	}

	amount, err := project.WithdrawAuthor(trx, hash)
	if nil != err {
		trx.Abort()
		return 0, err
	}

	err = balance.RecordWithdrawal(trx, amount)
	if nil != err {
		trx.Abort()
		return 0, err
	}

	err = trx.Commit()
	if nil != err {
		return 0, err
	}
	globalData.withdrawals.Increment()
	return amount, nil
}

// OwnerBalance - the owner withdrawable balance
func OwnerBalance() funds.Amount {
	return balance.OwnerDirect()
}

// ReadInstitution - snapshot of one institution; an unknown address
// reads as the zero record
func ReadInstitution(address *account.Address) institution.Record {
	return institution.ReadDirect(address)
}

// ReadProject - snapshot of one project; an unknown hash reads as
// the zero record
func ReadProject(hash project.Hash) project.Record {
	return project.ReadDirect(hash)
}

// ListInstitutions - page through the institution registry
func ListInstitutions(start *account.Address, count int) ([]institution.Entry, error) {
	return institution.List(start, count)
}

// ListProjects - page through the project ledger
func ListProjects(start project.Hash, count int) ([]project.Entry, error) {
	return project.List(start, count)
}
