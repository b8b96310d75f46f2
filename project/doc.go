// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Fundledger Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package project - the ledger of funding proposals
//
// a project is created in the Submitted state carrying the escrowed
// submission payment and moves exactly once to Approved or Rejected;
// approval settles the escrow into the institution and author
// balances, rejection forfeits it to the owner; donations accumulate
// while the project is open
package project
