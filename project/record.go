// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Fundledger Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package project

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/fundledger/custodyd/account"
	"github.com/fundledger/custodyd/funds"
	"github.com/fundledger/custodyd/util"
)

// Record - the state of one project
//
// serialised as:
//
//	status(1) || escrow(8) || authorBalance(8) || submitted(8) ||
//	author(varint length + bytes) || institution(varint length + bytes)
type Record struct {
	Author        *account.Address `json:"author"`
	Institution   *account.Address `json:"institution"`
	Status        Status           `json:"status"`
	EscrowBalance funds.Amount     `json:"escrowBalance"`
	AuthorBalance funds.Amount     `json:"authorBalance"`
	Submitted     funds.Amount     `json:"submittedAmount"`
}

// pack a record to its storage form
func (record Record) pack() []byte {
	buffer := make([]byte, 25, 96)
	buffer[0] = byte(record.Status)
	binary.BigEndian.PutUint64(buffer[1:], uint64(record.EscrowBalance))
	binary.BigEndian.PutUint64(buffer[9:], uint64(record.AuthorBalance))
	binary.BigEndian.PutUint64(buffer[17:], uint64(record.Submitted))

	author := record.Author.Bytes()
	buffer = append(buffer, util.ToVarint64(uint64(len(author)))...)
	buffer = append(buffer, author...)

	institution := record.Institution.Bytes()
	buffer = append(buffer, util.ToVarint64(uint64(len(institution)))...)
	buffer = append(buffer, institution...)

	return buffer
}

// unpack a storage form record
//
// a corrupt record is fatal: the database is the only authority for
// custody state
func unpack(buffer []byte) Record {
	if len(buffer) < 27 {
		logger.Panicf("project: corrupt record: %x", buffer)
	}

	record := Record{
		Status:        Status(buffer[0]),
		EscrowBalance: funds.Amount(binary.BigEndian.Uint64(buffer[1:])),
		AuthorBalance: funds.Amount(binary.BigEndian.Uint64(buffer[9:])),
		Submitted:     funds.Amount(binary.BigEndian.Uint64(buffer[17:])),
	}

	n := 25
	record.Author, n = unpackAddress(buffer, n)
	record.Institution, n = unpackAddress(buffer, n)
	if len(buffer) != n {
		logger.Panicf("project: excess data in record: %x", buffer)
	}
	return record
}

func unpackAddress(buffer []byte, offset int) (*account.Address, int) {
	length, used := util.FromVarint64(buffer[offset:])
	if 0 == used {
		logger.Panicf("project: corrupt address length in record: %x", buffer)
	}
	offset += used
	end := offset + int(length)
	if end > len(buffer) {
		logger.Panicf("project: truncated address in record: %x", buffer)
	}
	address, err := account.AddressFromBytes(buffer[offset:end])
	if nil != err {
		logger.Panicf("project: corrupt address in record: %x  error: %s", buffer, err)
	}
	return address, end
}
