package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"spendwise/internal/cli"
	"spendwise/internal/log"
	"spendwise/internal/services"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const usageText = `Usage: spendwise [-config file] [-env file] <command> [flags]

Commands:
  add        -type income|expense -amount N -desc TEXT [-category C] [-note N]
  delete     ID
  list       [-type all|income|expense] [-category C] [-categories]
  summary
  upcoming   add -name N -amount N -date YYYY-MM-DD | list | remove ID
  goal       -name N -cost N -monthly N [-saved N]
  settle     -total N [-upi VPA] < "Name, paid" lines
  split      add -name N -price N -people "A, B" | list | run | clear
  challenge  list | done ID
  voice      [-category C] [-yes] < transcript
`

func main() {
	ctx, stop := cli.SignalContext(context.Background())
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("spendwise", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() { fmt.Fprint(stderr, usageText) }
	configPath := global.String("config", "", "path to a config file")
	envFile := global.String("env", ".env", "dotenv file loaded before the config")

	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if global.NArg() == 0 {
		global.Usage()
		return exitUsage
	}

	if err := cli.LoadEnvFile(*envFile); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitFailure
	}

	cfg, err := cli.LoadAndValidateConfig(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitFailure
	}

	logger, err := cli.SetupLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitFailure
	}
	ctx = log.IntoContext(ctx, logger)
	cliLog := logger.WithComponent(log.ComponentCLI)

	res, err := cli.OpenBackend(ctx, logger, cfg)
	if err != nil {
		cliLog.ErrorContext(ctx, "Failed to open backend",
			log.FieldOperation, log.OpStartup,
			log.FieldBackend, cfg.DataBackend,
			log.FieldError, err)
		fmt.Fprintln(stderr, "error:", err)
		return exitFailure
	}
	defer func() {
		if err := res.Close(); err != nil {
			cliLog.ErrorContext(ctx, "Failed to close backend",
				log.FieldOperation, log.OpShutdown,
				log.FieldError, err)
		}
	}()

	tracker, err := services.Open(ctx, res.Store, services.WithLogger(logger))
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitFailure
	}

	a := &app{tracker: tracker, stdin: stdin, stdout: stdout, stderr: stderr}
	return exitCode(a.dispatch(ctx, global.Args()), stderr)
}

func exitCode(err error, stderr io.Writer) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, err)
		fmt.Fprint(stderr, usageText)
		return exitUsage
	default:
		fmt.Fprintln(stderr, "error:", userMessage(err))
		return exitFailure
	}
}
