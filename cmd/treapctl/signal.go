// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"os/signal"

	"github.com/btcsuite/treapmap/internal/log"
)

// interruptSignals defines the default signals to catch in order to stop
// running a script early.  This may be modified during init depending on the
// platform.
var interruptSignals = []os.Signal{os.Interrupt}

// interruptListener listens for SIGINT (Ctrl+C) signals.  It returns a channel
// that is closed when a signal is received.
func interruptListener() <-chan struct{} {
	c := make(chan struct{})

	go func() {
		interruptChannel := make(chan os.Signal, 1)
		signal.Notify(interruptChannel, interruptSignals...)

		sig := <-interruptChannel
		log.TctlLog.Infof("Received signal (%s).  Stopping script...", sig)

		close(c)
	}()

	return c
}

// interruptRequested returns true when the channel returned by
// interruptListener was closed.  This simplifies early shutdown slightly since
// the caller can just use an if statement instead of a select.
func interruptRequested(interrupted <-chan struct{}) bool {
	select {
	case <-interrupted:
		return true
	default:
		return false
	}
}
