package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/api"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/commands"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/config"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

const defaultCommand = "sync"

func main() {
	ctx := &commands.AppContext{}

	// Define flags
	flag.StringVar(&ctx.ConfigPath, "config", "", "Path to a TOML or YAML configuration file (optional)")
	flag.StringVar(&ctx.EnvFile, "env-file", config.DefaultEnvFile, "Path to a dotenv file, relative to the config file when -config is set (optional)")
	flag.StringVar(&ctx.LogFormat, "log-format", "", "Log format: text, logfmt or json (default: general.log_format)")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug logging")
	flag.BoolVar(&ctx.LogStdErr, "log-stderr", false, "Write all log levels to stderr")
	flag.BoolVar(&ctx.DryRun, "dry-run", false, "Read the IP group but never update it")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Azure Front Door IP group updater\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [command]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  sync                    Update the IP group once (default)\n")
		fmt.Fprintf(os.Stderr, "  service                 Update the IP group on a schedule, optionally serving a status API\n")
		fmt.Fprintf(os.Stderr, "  self-check              Validate configuration and print the effective settings\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if ctx.Verbose {
		log.SetVerbose(true)
	}
	log.SetForceStdErr(ctx.LogStdErr)

	api.Version, api.Commit, api.Date = version, commit, date

	cmds := []commands.Runner{
		commands.CreateSyncCommand(),
		commands.CreateServiceCommand(),
		commands.CreateSelfCheckCommand(),
	}

	args := flag.Args()
	subcommand := defaultCommand
	if len(args) > 0 {
		subcommand = args[0]
		args = args[1:]
	}

	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(args, ctx); err != nil {
				log.Errorf("Failed to initialize command: %v", err)
				os.Exit(1)
			}

			if err := cmd.Run(); err != nil {
				log.Errorf("Failed to run command: %v", err)
				os.Exit(1)
			}

			os.Exit(0)
		}
	}

	log.Errorf("Unknown subcommand: %s", subcommand)
	flag.Usage()
	os.Exit(1)
}
