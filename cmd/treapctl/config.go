// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2016-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/treapmap/internal/log"
	"github.com/btcsuite/treapmap/internal/version"
	"github.com/btcsuite/treapmap/treap"
	flags "github.com/jessevdk/go-flags"
)

const (
	defaultConfigFilename = "treapctl.conf"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "treapctl.log"
	defaultLogLevel       = "info"
	defaultInFile         = "-"
	defaultOverwriteCache = 100
)

var (
	treapctlHomeDir   = appDataDir("treapctl")
	defaultConfigFile = filepath.Join(treapctlHomeDir, defaultConfigFilename)
	defaultLogDir     = filepath.Join(treapctlHomeDir, defaultLogDirname)
)

// config defines the configuration options for treapctl.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ConfigFile     string `short:"C" long:"configfile" description:"Path to configuration file"`
	InFile         string `short:"i" long:"infile" description:"File containing the command script -- Use - to read standard input"`
	Seed           uint32 `long:"seed" description:"Seed for the priority generator used when a script omits an insert priority"`
	DebugLevel     string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	LogDir         string `long:"logdir" description:"Directory to log output"`
	NoFileLogging  bool   `long:"nologfile" description:"Disable file logging"`
	OverwriteCache uint   `long:"overwritecache" description:"Number of recently replaced keys to remember so each is only warned about once"`
	ShowVersion    bool   `short:"V" long:"version" description:"Display version information and exit"`
}

// appDataDir returns the default application data directory for the named
// application.  It falls back to the current directory when the home
// directory can't be determined.
func appDataDir(appName string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return "."
	}
	return filepath.Join(homeDir, "."+strings.ToLower(appName))
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(treapctlHomeDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but they variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

// supportedSubsystems returns a sorted slice of the supported subsystems for
// logging purposes.
func supportedSubsystems() []string {
	return log.SupportedSubsystems()
}

// parseAndSetDebugLevels attempts to parse the specified debug level and set
// the levels accordingly.  An appropriate error is returned if anything is
// invalid.
func parseAndSetDebugLevels(debugLevel string) error {
	// When the specified string doesn't have any delimiters, treat it as
	// the log level for all subsystems.
	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		// Validate debug log level.
		if !log.ValidLogLevel(debugLevel) {
			str := "the specified debug level [%v] is invalid"
			return fmt.Errorf(str, debugLevel)
		}

		// Change the logging level for all subsystems.
		log.SetLogLevels(debugLevel)

		return nil
	}

	// Split the specified string into subsystem/level pairs while detecting
	// issues and update the log levels accordingly.
	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			str := "the specified debug level contains an invalid " +
				"subsystem/level pair [%v]"
			return fmt.Errorf(str, logLevelPair)
		}

		// Extract the specified subsystem and log level.
		fields := strings.Split(logLevelPair, "=")
		subsysID, logLevel := fields[0], fields[1]

		// Validate subsystem.
		if !isSupportedSubsystem(subsysID) {
			str := "the specified subsystem [%v] is invalid -- " +
				"supported subsystems %v"
			return fmt.Errorf(str, subsysID, supportedSubsystems())
		}

		// Validate log level.
		if !log.ValidLogLevel(logLevel) {
			str := "the specified debug level [%v] is invalid"
			return fmt.Errorf(str, logLevel)
		}

		log.SetLogLevel(subsysID, logLevel)
	}

	return nil
}

// isSupportedSubsystem returns whether or not the passed subsystem identifier
// has a logger.
func isSupportedSubsystem(subsysID string) bool {
	for _, id := range supportedSubsystems() {
		if id == subsysID {
			return true
		}
	}
	return false
}

// loadConfig initializes and parses the config using a config file and command
// line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
//
// The above results in treapctl functioning properly without any config
// settings while still allowing the user to override settings with config
// files and command line options.  Command line options always take
// precedence.
func loadConfig(args []string) (*config, []string, error) {
	// Default config.
	cfg := config{
		ConfigFile:     defaultConfigFile,
		InFile:         defaultInFile,
		Seed:           treap.DefaultSeed,
		DebugLevel:     defaultLogLevel,
		LogDir:         defaultLogDir,
		OverwriteCache: defaultOverwriteCache,
	}

	// Pre-parse the command line options to see if an alternative config
	// file was specified.
	preCfg := cfg
	preParser := flags.NewParser(&preCfg, flags.Default)
	_, err := preParser.ParseArgs(args)
	if err != nil {
		var e *flags.Error
		if !errors.As(err, &e) || e.Type != flags.ErrHelp {
			preParser.WriteHelp(os.Stderr)
		}
		return nil, nil, err
	}

	// Show the version and exit if the version flag was specified.
	if preCfg.ShowVersion {
		appName := filepath.Base(os.Args[0])
		appName = strings.TrimSuffix(appName, filepath.Ext(appName))
		fmt.Println(appName, "version", version.String())
		os.Exit(0)
	}

	// Load additional config from file.  A missing file is only worth a
	// warning since every option has a default.
	parser := flags.NewParser(&cfg, flags.Default)
	err = flags.NewIniParser(parser).ParseFile(preCfg.ConfigFile)
	if err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			fmt.Fprintln(os.Stderr, err)
			parser.WriteHelp(os.Stderr)
			return nil, nil, err
		}
		if preCfg.ConfigFile != defaultConfigFile {
			log.TctlLog.Warnf("%v", err)
		}
	}

	// Parse command line options again to ensure they take precedence.
	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		var e *flags.Error
		if !errors.As(err, &e) || e.Type != flags.ErrHelp {
			parser.WriteHelp(os.Stderr)
		}
		return nil, nil, err
	}

	// Special show command to list supported subsystems and exit.
	if cfg.DebugLevel == "show" {
		fmt.Println("Supported subsystems", supportedSubsystems())
		os.Exit(0)
	}

	// Parse, validate, and set debug log level(s).
	if err := parseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		err := fmt.Errorf("%s: %w", "loadConfig", err)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	// The overwrite cache must be able to hold at least one key.
	if cfg.OverwriteCache == 0 {
		str := "%s: The overwrite cache size must be at least 1"
		err := fmt.Errorf(str, "loadConfig")
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	// Ensure the specified script file exists.
	if cfg.InFile != defaultInFile {
		cfg.InFile = cleanAndExpandPath(cfg.InFile)
		if !fileExists(cfg.InFile) {
			str := "%s: The specified script file [%v] does not exist"
			err := fmt.Errorf(str, "loadConfig", cfg.InFile)
			fmt.Fprintln(os.Stderr, err)
			parser.WriteHelp(os.Stderr)
			return nil, nil, err
		}
	}

	cfg.LogDir = cleanAndExpandPath(cfg.LogDir)

	return &cfg, remainingArgs, nil
}

// fileExists reports whether the named file or directory exists.
func fileExists(name string) bool {
	if _, err := os.Stat(name); err != nil {
		if os.IsNotExist(err) {
			return false
		}
	}
	return true
}
