// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Fundledger Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"
)

// Transaction - batch write access for one ledger operation
//
// all writes are buffered and either committed as one database write
// or aborted leaving the database untouched; reads observe writes
// buffered by the same transaction
type Transaction interface {
	Begin() error
	Abort()
	Commit() error
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
}

type TransactionImpl struct {
	access Access
}

func newTransaction(access Access) Transaction {
	return &TransactionImpl{
		access: access,
	}
}

func (t *TransactionImpl) Begin() error {
	return t.access.Begin()
}

func (t *TransactionImpl) Abort() {
	t.access.Abort()
}

func (t *TransactionImpl) Commit() error {
	return t.access.Commit()
}

func (t *TransactionImpl) Put(p *PoolHandle, key []byte, value []byte) {
	t.access.Put(p.prefixKey(key), value)
}

func (t *TransactionImpl) PutN(p *PoolHandle, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	t.access.Put(p.prefixKey(key), buffer)
}

func (t *TransactionImpl) Delete(p *PoolHandle, key []byte) {
	t.access.Delete(p.prefixKey(key))
}

func (t *TransactionImpl) Get(p *PoolHandle, key []byte) []byte {
	value, err := t.access.Get(p.prefixKey(key))
	if nil != err {
		return nil
	}
	return value
}

func (t *TransactionImpl) GetN(p *PoolHandle, key []byte) (uint64, bool) {
	buffer := t.Get(p, key)
	if nil == buffer {
		return 0, false
	}
	if len(buffer) < 8 {
		logger.Panicf("transaction.GetN truncated record for: %x: %s", key, buffer)
	}
	return binary.BigEndian.Uint64(buffer[:8]), true
}

func (t *TransactionImpl) Has(p *PoolHandle, key []byte) bool {
	ok, err := t.access.Has(p.prefixKey(key))
	if nil != err {
		return false
	}
	return ok
}
