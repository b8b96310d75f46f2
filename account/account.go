// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Fundledger Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - opaque party identities
//
// an address is the public half of an ed25519 key pair tagged with a
// key variant byte and protected by a 4 byte checksum; its Base58
// form is the external representation, its byte form is the ledger
// storage key
package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/fundledger/custodyd/fault"
	"github.com/fundledger/custodyd/util"
)

// enumeration of supported key algorithms
const (
	ED25519 = iota
	// end of list (one greater than last item)
	algorithmLimit = iota
)

// miscellaneous constants
const (
	checksumLength = 4

	// bits in key variant starting from LSB
	publicKeyCode = 0x01
	testKeyCode   = 0x02

	algorithmShift = 4 // shift 4 bits to get algorithm
)

// Address - the identity of a party on the ledger
type Address struct {
	Test      bool
	PublicKey []byte
}

// AddressFromKey - wrap an ed25519 public key as an address
func AddressFromKey(publicKey ed25519.PublicKey, testnet bool) (*Address, error) {
	if ed25519.PublicKeySize != len(publicKey) {
		return nil, fault.ErrInvalidKeyLength
	}
	k := make([]byte, ed25519.PublicKeySize)
	copy(k, publicKey)
	return &Address{
		Test:      testnet,
		PublicKey: k,
	}, nil
}

// AddressFromBase58 - convert a Base58 encoded string to an address
func AddressFromBase58(addressBase58Encoded string) (*Address, error) {
	addressDecoded, err := base58.Decode(addressBase58Encoded)
	if nil != err {
		return nil, fault.ErrCannotDecodeAddress
	}

	// parse the key variant
	keyVariant, keyVariantLength := util.FromVarint64(addressDecoded)

	// check key type
	if 0 == keyVariantLength || keyVariant&publicKeyCode != publicKeyCode {
		return nil, fault.ErrCannotDecodeAddress
	}

	// compute algorithm
	keyAlgorithm := keyVariant >> algorithmShift
	if keyAlgorithm >= algorithmLimit {
		return nil, fault.ErrCannotDecodeAddress
	}

	// network selection
	isTest := 0 != keyVariant&testKeyCode

	// key length
	keyLength := len(addressDecoded) - keyVariantLength - checksumLength
	if ed25519.PublicKeySize != keyLength {
		return nil, fault.ErrInvalidKeyLength
	}

	// checksum
	checksumStart := len(addressDecoded) - checksumLength
	checksum := sha3.Sum256(addressDecoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], addressDecoded[checksumStart:]) {
		return nil, fault.ErrChecksumMismatch
	}

	publicKey := make([]byte, keyLength)
	copy(publicKey, addressDecoded[keyVariantLength:checksumStart])

	return &Address{
		Test:      isTest,
		PublicKey: publicKey,
	}, nil
}

// AddressFromBytes - convert the storage byte form back to an address
func AddressFromBytes(buffer []byte) (*Address, error) {
	keyVariant, keyVariantLength := util.FromVarint64(buffer)
	if 0 == keyVariantLength || keyVariant&publicKeyCode != publicKeyCode {
		return nil, fault.ErrCannotDecodeAddress
	}
	if keyVariant>>algorithmShift >= algorithmLimit {
		return nil, fault.ErrCannotDecodeAddress
	}
	if ed25519.PublicKeySize != len(buffer)-keyVariantLength {
		return nil, fault.ErrInvalidKeyLength
	}
	publicKey := make([]byte, ed25519.PublicKeySize)
	copy(publicKey, buffer[keyVariantLength:])
	return &Address{
		Test:      0 != keyVariant&testKeyCode,
		PublicKey: publicKey,
	}, nil
}

// Bytes - the storage byte form: key variant followed by the raw key
//
// the zero address has no byte form
func (address *Address) Bytes() []byte {
	if address.IsZero() {
		return nil
	}
	keyVariant := byte(ED25519<<algorithmShift | publicKeyCode)
	if address.Test {
		keyVariant |= testKeyCode
	}
	return append([]byte{keyVariant}, address.PublicKey...)
}

// String - the Base58 external form with checksum
func (address *Address) String() string {
	buffer := address.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// GoString - for debugging
func (address *Address) GoString() string {
	return "<address:" + address.String() + ">"
}

// MarshalText - encode as Base58 for JSON and text output
func (address Address) MarshalText() ([]byte, error) {
	return []byte(address.String()), nil
}

// UnmarshalText - decode a Base58 encoded address
func (address *Address) UnmarshalText(s []byte) error {
	a, err := AddressFromBase58(string(s))
	if nil != err {
		return err
	}
	address.Test = a.Test
	address.PublicKey = a.PublicKey
	return nil
}

// IsZero - check for the unset address
func (address *Address) IsZero() bool {
	return nil == address || 0 == len(address.PublicKey)
}

// Equal - compare two addresses for the same identity
func (address *Address) Equal(other *Address) bool {
	if nil == address || nil == other {
		return false
	}
	return address.Test == other.Test && bytes.Equal(address.PublicKey, other.PublicKey)
}
