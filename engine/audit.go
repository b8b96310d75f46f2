// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Fundledger Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/fundledger/custodyd/balance"
	"github.com/fundledger/custodyd/institution"
	"github.com/fundledger/custodyd/project"
)

// time between conservation checks
const auditInterval = 60 * time.Second

// background process to verify that held funds match the recorded
// deposit and withdrawal totals
type auditData struct {
	log *logger.L
}

func (audit *auditData) Run(args interface{}, shutdown <-chan struct{}) {
	log := audit.log
	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case <-time.After(auditInterval):
			audit.check()
		}
	}
	log.Info("shutting down…")
	log.Flush()
}

// compare the sum of all balances against deposits minus withdrawals
//
// the operation lock is held so the snapshot is quiescent
func (audit *auditData) check() {
	globalData.operationLock.Lock()
	defer globalData.operationLock.Unlock()

	owner := balance.OwnerDirect()
	institutions, err := institution.TotalBalanceDirect()
	if nil != err {
		audit.log.Criticalf("institution totals corrupt: %s", err)
		return
	}
	held, err := project.TotalHeldDirect()
	if nil != err {
		audit.log.Criticalf("project totals corrupt: %s", err)
		return
	}
	deposits, withdrawals := balance.TotalsDirect()

	total, err := owner.CheckedAdd(institutions)
	if nil == err {
		total, err = total.CheckedAdd(held)
	}
	if nil != err {
		audit.log.Criticalf("balance totals corrupt: %s", err)
		return
	}
	expected, err := deposits.CheckedSub(withdrawals)
	if nil != err {
		audit.log.Criticalf("withdrawals exceed deposits: %d > %d", withdrawals, deposits)
		return
	}

	if total != expected {
		audit.log.Criticalf(
			"conservation failure: owner: %d  institutions: %d  projects: %d  total: %d  expected: %d",
			owner, institutions, held, total, expected)
		return
	}
	audit.log.Debugf("conservation ok: total: %d", total)
}
