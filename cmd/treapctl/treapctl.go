// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2016-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/btcsuite/treapmap/internal/log"
)

// realMain is the real main function for the utility.  It is necessary to work
// around the fact that deferred functions do not run when os.Exit() is called.
func realMain() error {
	// Load configuration and parse command line.
	cfg, _, err := loadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	// Initialize the log rotator unless file logging is disabled.
	if !cfg.NoFileLogging {
		logFile := filepath.Join(cfg.LogDir, defaultLogFilename)
		if err := log.InitLogRotator(logFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return err
		}
		defer log.CloseLogRotator()
	}

	var in io.Reader = os.Stdin
	if cfg.InFile != defaultInFile {
		fi, err := os.Open(cfg.InFile)
		if err != nil {
			log.TctlLog.Errorf("Failed to open file %v: %v", cfg.InFile, err)
			return err
		}
		defer fi.Close()
		in = fi
	}

	log.TctlLog.Debugf("Running script %s with seed %d", cfg.InFile,
		cfg.Seed)
	runner := newScriptRunner(cfg.Seed, cfg.OverwriteCache)
	runner.interrupt = interruptListener()
	if err := runner.Run(in, os.Stdout); err != nil {
		log.TctlLog.Errorf("%v", err)
		return err
	}

	log.TctlLog.Infof("Processed a total of %d commands (%d keys)",
		runner.numCommands, runner.treap.Len())
	return nil
}

func main() {
	if err := realMain(); err != nil {
		os.Exit(1)
	}
}
