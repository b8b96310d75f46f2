// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Fundledger Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - engine settings from a Lua file
//
// the configuration file is a Lua program whose final expression is
// a table; this allows derived values and local variables in the
// configuration itself
package configuration
