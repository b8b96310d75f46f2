// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Fundledger Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/fundledger/custodyd/counter"
)

// test incrementing/decrementing a counter
func TestCounter(t *testing.T) {

	var c1 counter.Counter

	if !c1.IsZero() {
		t.Errorf("counter is not zero at start: %d", c1.Uint64())
	}

	c1.Increment()
	c1.Increment()
	c1.Increment()
	c1.Increment()
	c1.Increment()

	if 5 != c1.Uint64() {
		t.Errorf("counter is not 5 after incrementing: %d", c1.Uint64())
	}

	c1.Add(10)

	if 15 != c1.Uint64() {
		t.Errorf("counter is not 15 after adding: %d", c1.Uint64())
	}

	c1.Decrement()

	if 14 != c1.Uint64() {
		t.Errorf("counter is not 14 after decrementing: %d", c1.Uint64())
	}
}

// counters are shared between operation goroutines so
// concurrent increments must not lose updates
func TestCounterConcurrent(t *testing.T) {

	var c1 counter.Counter

	loops := 100
	increments := 250

	var wg sync.WaitGroup
	wg.Add(loops)
	for i := 0; i < loops; i += 1 {
		go func() {
			defer wg.Done()
			for j := 0; j < increments; j += 1 {
				c1.Increment()
			}
		}()
	}
	wg.Wait()

	if uint64(loops*increments) != c1.Uint64() {
		t.Errorf("counter is: %d  expected: %d", c1.Uint64(), loops*increments)
	}
}
