// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Fundledger Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - the ledger database
//
// maintains a single LevelDB database split into prefixed pools, one
// pool per record kind:
//
//	Institutions  U  institution records keyed by address
//	Projects      P  project records keyed by project hash
//	Balances      B  singleton balances (owner)
//	Metadata      M  owner address and cumulative fund totals
//
// mutating operations write through a batch transaction so that a
// whole ledger operation commits atomically or not at all; a
// write-through cache lets reads inside a transaction observe its
// own pending writes
package storage
