package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/accmachine/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-e string   registration endpoint URL (empty switches to dry-run)
//	-f string   path to the local SQLite database
//	-n int      number of accounts to generate per run
//	-w int      delay between submissions in seconds
//	-t int      request timeout in seconds
//	-p string   path to a YAML generation profile
//	-o string   trace output file (enables tracing)
//	-y          dry-run, do not call the endpoint
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-e", "-f", "-n", "-w", "-t", "-p", "-o", "-y"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointURL, "e", cfg.EndpointURL, "registration endpoint URL")
	fs.StringVar(&cfg.DatabasePath, "f", cfg.DatabasePath, "path to the local database file")
	fs.IntVar(&cfg.TargetCount, "n", cfg.TargetCount, "number of accounts to generate per run")
	delay := fs.Int("w", int(cfg.RequestDelay.Seconds()), "delay between submissions (in seconds)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.ProfilePath, "p", cfg.ProfilePath, "path to a YAML generation profile")
	fs.StringVar(&cfg.TraceFile, "o", cfg.TraceFile, "trace output file")
	fs.BoolVar(&cfg.DryRun, "y", cfg.DryRun, "dry-run, do not call the endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestDelay = time.Duration(*delay) * time.Second
	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
