// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Fundledger Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package project

import (
	"encoding/hex"

	"github.com/fundledger/custodyd/fault"
)

// HashLength - number of bytes in a project hash
const HashLength = 32

// Hash - the caller supplied content identifier of a proposal
//
// represented as hex text externally
type Hash [HashLength]byte

// HashFromBytes - convert a byte slice to a hash
func HashFromBytes(buffer []byte) (Hash, error) {
	var hash Hash
	if HashLength != len(buffer) {
		return hash, fault.ErrInvalidProjectHash
	}
	copy(hash[:], buffer)
	return hash, nil
}

// HashFromHexString - convert a hex string to a hash
func HashFromHexString(s string) (Hash, error) {
	var hash Hash
	buffer, err := hex.DecodeString(s)
	if nil != err || HashLength != len(buffer) {
		return hash, fault.ErrInvalidProjectHash
	}
	copy(hash[:], buffer)
	return hash, nil
}

// String - convert a binary hash to hex string for use by the fmt package (for %s)
func (hash Hash) String() string {
	return hex.EncodeToString(hash[:])
}

// GoString - convert a binary hash to hex string for use by the fmt package (for %#v)
func (hash Hash) GoString() string {
	return "<project:" + hex.EncodeToString(hash[:]) + ">"
}

// MarshalText - convert hash to hex text
func (hash Hash) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(len(hash)))
	hex.Encode(buffer, hash[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a hash
func (hash *Hash) UnmarshalText(s []byte) error {
	if hex.EncodedLen(HashLength) != len(s) {
		return fault.ErrInvalidProjectHash
	}
	buffer := make([]byte, hex.DecodedLen(len(s)))
	_, err := hex.Decode(buffer, s)
	if nil != err {
		return fault.ErrInvalidProjectHash
	}
	copy(hash[:], buffer)
	return nil
}

// IsZero - check for the unset hash
func (hash Hash) IsZero() bool {
	return Hash{} == hash
}
