// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Command agekey drives the AgeKey Use and Create flows from the command line
// and runs a small demo relying party.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/CadamTech/agekey-sdk/agekey"
	"github.com/CadamTech/agekey-sdk/config"
	"github.com/CadamTech/agekey-sdk/env"
	"github.com/CadamTech/agekey-sdk/logger"
	"github.com/CadamTech/agekey-sdk/metrics"
)

const usage = `usage: agekey <command> [flags]

commands:
  use-url    build a Use-flow authorization URL
  callback   validate a Use-flow callback URL
  par        push a verification and print the Create-flow URL
  serve      run the demo relying party
`

// errUsage reports a bad command line. The message has already been printed.
var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, &env.OSReader{})
	stop()
	logger.Sync()

	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, "agekey:", err)
		os.Exit(1)
	}
}

// command is one subcommand. The flag set is already parsed when run is called.
type command struct {
	flags *flag.FlagSet
	run   func(ctx context.Context, a *app) error
}

// app holds what every subcommand shares.
type app struct {
	cfg      *config.Config
	stdout   io.Writer
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, envReader env.Reader) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return errUsage
	}

	var (
		configPath string
		debug      bool
	)
	cmd, ok := commands(args[0])
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return errUsage
	}
	cmd.flags.SetOutput(stderr)
	cmd.flags.StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/agekey/config.yaml)")
	cmd.flags.BoolVar(&debug, "debug", false, "enable debug logging")
	if err := cmd.flags.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return errUsage
	}

	cfg, err := config.Load(configPath, envReader)
	if err != nil {
		return err
	}
	logger.InitializeWithOptions(logEnv(envReader, cfg.Log), logger.StaticDebug(debug || cfg.Log.DebugLogging()))

	reg := prometheus.NewRegistry()
	return cmd.run(ctx, &app{
		cfg:      cfg,
		stdout:   stdout,
		registry: reg,
		metrics:  metrics.New(reg),
	})
}

func commands(name string) (*command, bool) {
	switch name {
	case "use-url":
		return useURLCommand(), true
	case "callback":
		return callbackCommand(), true
	case "par":
		return parCommand(), true
	case "serve":
		return serveCommand(), true
	default:
		return nil, false
	}
}

// logEnv maps log.format onto UNSTRUCTURED_LOGS unless the environment
// already sets it.
func logEnv(r env.Reader, l config.Log) env.Reader {
	if r.Getenv(logger.UnstructuredLogsEnv) != "" {
		return r
	}
	return env.MapReader{logger.UnstructuredLogsEnv: strconv.FormatBool(!l.StructuredLogging())}
}

// client builds the SDK client from the loaded configuration.
func (a *app) client(opts ...agekey.Option) (*agekey.Client, error) {
	opts = append([]agekey.Option{
		agekey.WithLogger(logger.NewSlog()),
		agekey.WithMetrics(a.metrics),
	}, opts...)
	return agekey.New(a.cfg.Client, opts...)
}
