// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Fundledger Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package institution

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/fundledger/custodyd/funds"
)

// record flag bits
const (
	flagRegistered = 0x01
	flagActive     = 0x02
)

// serialised record: flags(1) || balance(8)
const recordLength = 9

// Record - the state of one institution
type Record struct {
	Registered bool         `json:"registered"`
	Active     bool         `json:"active"`
	Balance    funds.Amount `json:"balance"`
}

// pack a record to its storage form
func (record Record) pack() []byte {
	buffer := make([]byte, recordLength)
	if record.Registered {
		buffer[0] |= flagRegistered
	}
	if record.Active {
		buffer[0] |= flagActive
	}
	binary.BigEndian.PutUint64(buffer[1:], uint64(record.Balance))
	return buffer
}

// unpack a storage form record
//
// a corrupt record is fatal: the database is the only authority for
// custody state
func unpack(buffer []byte) Record {
	if recordLength != len(buffer) {
		logger.Panicf("institution: corrupt record: %x", buffer)
	}
	return Record{
		Registered: 0 != buffer[0]&flagRegistered,
		Active:     0 != buffer[0]&flagActive,
		Balance:    funds.Amount(binary.BigEndian.Uint64(buffer[1:])),
	}
}
