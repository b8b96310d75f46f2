// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Fundledger Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - run tasks in background goroutines with a
// clean shutdown protocol
package background

// Process - interface for a background process
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// T - handle for the started set of processes
type T struct {
	sync chan struct{}
	fin  []chan struct{}
}

// Start - start up a set of background processes
// all of the processes are sent the same arguments
func Start(processes Processes, args interface{}) *T {

	register := new(T)
	register.sync = make(chan struct{})
	register.fin = make([]chan struct{}, 0, len(processes))

	// start each background
	for _, p := range processes {
		finished := make(chan struct{})
		register.fin = append(register.fin, finished)
		go func(p Process, finished chan<- struct{}) {
			// pass the shutdown to the Run loop for shutdown signalling
			p.Run(args, register.sync)
			// flag for the stop routine to wait for shutdown
			close(finished)
		}(p, finished)
	}
	return register
}

// Stop - stop a set of background processes and wait for them to finish
func (t *T) Stop() {

	if nil == t {
		return
	}

	// shutdown all background tasks
	close(t.sync)

	// wait for finished
	for _, f := range t.fin {
		<-f
	}
}
