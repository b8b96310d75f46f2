// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Fundledger Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package funds

import (
	"github.com/fundledger/custodyd/fault"
)

// SplitBasis - shares are expressed in basis points of the gross amount
const SplitBasis = 10000

// SplitPolicy - the economic split between owner, author and institution
//
// the owner fee is deducted from every incoming payment; the author
// and institution shares divide the escrow at approval settlement
type SplitPolicy struct {
	OwnerFee         uint64 `gluamapper:"owner_fee" json:"owner_fee"`
	AuthorShare      uint64 `gluamapper:"author_share" json:"author_share"`
	InstitutionShare uint64 `gluamapper:"institution_share" json:"institution_share"`
}

// DefaultPolicy - the split of the original funding contract
// 10% owner fee, 70% author, 20% institution
func DefaultPolicy() SplitPolicy {
	return SplitPolicy{
		OwnerFee:         1000,
		AuthorShare:      7000,
		InstitutionShare: 2000,
	}
}

// Validate - a policy must exactly exhaust the basis
func (p SplitPolicy) Validate() error {
	if p.OwnerFee+p.AuthorShare+p.InstitutionShare != SplitBasis {
		return fault.ErrInvalidSplitPolicy
	}
	if 0 == p.AuthorShare && 0 == p.InstitutionShare {
		return fault.ErrInvalidSplitPolicy
	}
	return nil
}

// Fee - the owner fee for a gross payment
//
// returns fee and the net remainder; fee + net == gross
func (p SplitPolicy) Fee(gross Amount) (Amount, Amount) {
	fee := mulBasis(gross, p.OwnerFee)
	return fee, gross - fee
}

// Settle - divide an escrow balance at approval
//
// returns author and institution amounts; truncation remainders are
// credited to the institution so that author + institution == escrow
func (p SplitPolicy) Settle(escrow Amount) (Amount, Amount) {
	shares := p.AuthorShare + p.InstitutionShare
	author := Amount(uint64(escrow) / shares * p.AuthorShare)
	author += Amount(uint64(escrow) % shares * p.AuthorShare / shares)
	return author, escrow - author
}

// overflow safe gross*points/SplitBasis
func mulBasis(gross Amount, points uint64) Amount {
	g := uint64(gross)
	return Amount(g/SplitBasis*points + g%SplitBasis*points/SplitBasis)
}
