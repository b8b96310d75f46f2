// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Fundledger Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package institution - the registry of recognised institutions
//
// an institution is created by the owner and is active until
// disabled; disabling is one way and keeps the record, its accrued
// balance and any projects it supervises
package institution
