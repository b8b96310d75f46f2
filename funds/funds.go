// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Fundledger Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package funds - currency amounts in the smallest unit
//
// all ledger arithmetic is overflow checked; an operation that would
// overflow is refused before any state is modified
package funds

import (
	"github.com/fundledger/custodyd/fault"
)

// Amount - a quantity of funds in the smallest currency unit
type Amount uint64

// CheckedAdd - add two amounts refusing overflow
func (a Amount) CheckedAdd(b Amount) (Amount, error) {
	sum := a + b
	if sum < a {
		return 0, fault.ErrAmountOverflow
	}
	return sum, nil
}

// CheckedSub - subtract refusing underflow
func (a Amount) CheckedSub(b Amount) (Amount, error) {
	if b > a {
		return 0, fault.ErrInvalidAmount
	}
	return a - b, nil
}

// IsZero - check for the zero amount
func (a Amount) IsZero() bool {
	return 0 == a
}

// Payment - the value attached to a submission or donation
//
// the declared amount is the argument the caller supplied, the
// transferred amount is what the settlement layer actually moved;
// the ledger refuses the operation unless they agree
type Payment struct {
	Declared    Amount
	Transferred Amount
}

// Validate - check a payment before crediting escrow
//
// returns the single agreed amount
func (p Payment) Validate() (Amount, error) {
	if p.Declared != p.Transferred {
		return 0, fault.ErrAmountMismatch
	}
	if p.Declared.IsZero() {
		return 0, fault.ErrInvalidAmount
	}
	return p.Declared, nil
}
