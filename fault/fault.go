// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Fundledger Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// error instances
//
// Provides a single instance of errors to allow easy comparison
package fault

// error base
type GenericError string

// to allow for different classes of errors
type AccessError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised           = ProcessError("already initialised")
	ErrAlreadyRegistered            = ExistsError("institution already registered")
	ErrAlreadyReviewed              = InvalidError("project already reviewed")
	ErrAmountMismatch               = InvalidError("declared amount does not match transferred amount")
	ErrAmountOverflow               = InvalidError("amount overflows")
	ErrCannotDecodeAddress          = InvalidError("cannot decode address")
	ErrChecksumMismatch             = InvalidError("checksum mismatch")
	ErrDuplicateProjectHash         = ExistsError("project hash already exists")
	ErrIncorrectOwner               = InvalidError("owner does not match ledger owner")
	ErrInvalidAmount                = InvalidError("amount is invalid")
	ErrInvalidKeyLength             = InvalidError("invalid key length")
	ErrInvalidProjectHash           = InvalidError("project hash is invalid")
	ErrInvalidReviewStatus          = InvalidError("review status is invalid")
	ErrInvalidSplitPolicy           = InvalidError("split policy is invalid")
	ErrNotInitialised               = ProcessError("not initialised")
	ErrNotRegistered                = NotFoundError("institution is not registered")
	ErrNothingToWithdraw            = InvalidError("nothing to withdraw")
	ErrProjectClosed                = InvalidError("project is closed")
	ErrProjectNotApproved           = InvalidError("project is not approved")
	ErrProjectNotFound              = NotFoundError("project not found")
	ErrUnauthorized                 = AccessError("operation not authorized for caller")
	ErrUnknownOrInactiveInstitution = InvalidError("institution is unknown or inactive")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AccessError) Error() string   { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrAccess(e error) bool   { _, ok := e.(AccessError); return ok }
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
