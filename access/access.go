// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Fundledger Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package access - authorization of ledger operations
//
// a pure decision layer: given the caller, the operation and the
// relevant ledger context it either allows the operation or refuses
// with unauthorized; it never touches ledger state
package access

import (
	"github.com/fundledger/custodyd/account"
	"github.com/fundledger/custodyd/fault"
)

// Operation - the operations subject to authorization
type Operation int

// all authorized operations
const (
	RegisterInstitution Operation = iota
	DisableInstitution  Operation = iota
	SubmitProject       Operation = iota
	ReviewProject       Operation = iota
	Donate              Operation = iota
	Withdraw            Operation = iota
	AuthorWithdraw      Operation = iota
)

// Context - the ledger facts an authorization decision may need
type Context struct {
	Owner                 *account.Address // the engine owner, always set
	ProjectAuthor         *account.Address // set for AuthorWithdraw
	InstitutionRegistered bool             // set for Withdraw
}

// Authorize - decide whether the caller may perform the operation
//
// returns nil when allowed, otherwise ErrUnauthorized
func Authorize(caller *account.Address, operation Operation, context Context) error {
	if caller.IsZero() {
		return fault.ErrUnauthorized
	}

	switch operation {

	case RegisterInstitution, DisableInstitution:
		// owner manages the registry
		if !caller.Equal(context.Owner) {
			return fault.ErrUnauthorized
		}

	case ReviewProject:
		// review is an owner decision; institutions are the subject
		// of review, not reviewers
		if !caller.Equal(context.Owner) {
			return fault.ErrUnauthorized
		}

	case SubmitProject, Donate:
		// open to any caller

	case Withdraw:
		// owner or any registered institution; a disabled
		// institution keeps the right to withdraw its balance
		if !caller.Equal(context.Owner) && !context.InstitutionRegistered {
			return fault.ErrUnauthorized
		}

	case AuthorWithdraw:
		if !caller.Equal(context.ProjectAuthor) {
			return fault.ErrUnauthorized
		}

	default:
		return fault.ErrUnauthorized
	}

	return nil
}
