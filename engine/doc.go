// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Fundledger Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package engine - the funding engine orchestrator
//
// the single entry point for every ledger operation: it authorizes
// the caller, runs the mutation inside one storage transaction under
// the operation lock and commits or aborts as a whole, so concurrent
// callers always observe a serial history and a failed operation
// leaves no trace
//
// the engine never blocks inside an operation: all waiting for
// confirmation or settlement belongs to the transport layer around it
package engine
