// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Fundledger Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package project

import (
	"fmt"
	"strings"

	"github.com/fundledger/custodyd/fault"
)

// Status - review state of a project
type Status uint8

// possible status values
const (
	Nothing   Status = iota // this must be the first value
	Submitted Status = iota
	Approved  Status = iota
	Rejected  Status = iota
	maximumValue Status = iota // this must be the last value
)

// internal conversion
func toString(status Status) (string, error) {
	switch status {
	case Nothing:
		return "", nil
	case Submitted:
		return "Submitted", nil
	case Approved:
		return "Approved", nil
	case Rejected:
		return "Rejected", nil
	default:
		return "", fault.ErrInvalidReviewStatus
	}
}

// StatusFromString - convert a string to a status
func StatusFromString(in string) (Status, error) {
	switch strings.ToLower(in) {
	case "":
		return Nothing, nil
	case "submitted":
		return Submitted, nil
	case "approved":
		return Approved, nil
	case "rejected":
		return Rejected, nil
	default:
		return Nothing, fault.ErrInvalidReviewStatus
	}
}

// String - convert a status to its string form
func (status Status) String() string {
	s, err := toString(status)
	if nil != err {
		return fmt.Sprintf("*unknown:%d*", status)
	}
	return s
}

// GoString - status value and name, for debugging
func (status Status) GoString() string {
	return fmt.Sprintf("<Status#%d:%q>", status, status.String())
}

// MarshalText - convert status to text
func (status Status) MarshalText() ([]byte, error) {
	s, err := toString(status)
	if nil != err {
		return nil, err
	}
	return []byte(s), nil
}

// UnmarshalText - convert text to status
func (status *Status) UnmarshalText(s []byte) error {
	parsed, err := StatusFromString(string(s))
	if nil != err {
		return err
	}
	*status = parsed
	return nil
}

// IsFinal - a reviewed project never changes status again
func (status Status) IsFinal() bool {
	return Approved == status || Rejected == status
}

// ValidDecision - only these values may be the result of a review
func (status Status) ValidDecision() bool {
	return Approved == status || Rejected == status
}
