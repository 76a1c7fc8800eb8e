// Package config provides a go-simpler.org/env configuration table for the
// event index demo binary.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go-simpler.org/env"
	lol "lol.mleku.dev"
	"lol.mleku.dev/chk"
)

// C holds the demo binary's configuration, loaded from environment
// variables and default values.
type C struct {
	LogLevel    string `env:"EVENTINDEX_LOG_LEVEL" default:"info" usage:"log level: fatal error warn info debug trace"`
	LogToStdout bool   `env:"EVENTINDEX_LOG_TO_STDOUT" default:"false" usage:"log to stdout instead of stderr"`
	Workers     int    `env:"EVENTINDEX_WORKERS" default:"0" usage:"parallel scan worker count; 0 uses GOMAXPROCS"`
}

// New loads configuration from the environment, applying defaults for any
// variable left unset.
func New() (cfg *C, err error) {
	cfg = &C{}
	if err = env.Load(cfg, &env.Options{SliceSep: ","}); chk.T(err) {
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n\n", err)
		}
		return
	}
	if HelpRequested() {
		PrintHelp(cfg, os.Stderr)
		os.Exit(0)
	}
	if cfg.LogToStdout {
		lol.Writer = os.Stdout
	}
	lol.SetLogLevel(cfg.LogLevel)
	return
}

// HelpRequested reports whether the command line is asking for usage help.
func HelpRequested() bool {
	if len(os.Args) > 1 {
		switch strings.ToLower(os.Args[1]) {
		case "help", "-h", "--help", "?":
			return true
		}
	}
	return false
}

// PrintHelp writes the env tag usage table for cfg to w.
func PrintHelp(cfg *C, w io.Writer) {
	fmt.Fprintln(w, "eventindex-demo environment variables:")
	env.Usage(cfg, w, &env.Options{SliceSep: ","})
}
