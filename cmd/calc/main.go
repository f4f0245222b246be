package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"calc/interpreter-go/pkg/driver"
	"calc/interpreter-go/pkg/interpreter"
	"calc/interpreter-go/pkg/runtime"
)

const cliToolVersion = "calc-cli 0.0.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) > 0 {
		switch args[0] {
		case "--help", "-h":
			printUsage()
			return 0
		case "--version", "-V", "version":
			fmt.Fprintln(os.Stdout, cliToolVersion)
			return 0
		case "run":
			args = args[1:]
		}
	}
	return runEntry(args)
}

type runOptions struct {
	strict   bool
	logLevel string
	program  string
}

func parseRunArgs(args []string) (runOptions, error) {
	var opts runOptions
	var positional []string
	for idx := 0; idx < len(args); idx++ {
		arg := args[idx]
		switch {
		case arg == "--strict":
			opts.strict = true
		case arg == "--log-level":
			if idx+1 >= len(args) {
				return opts, fmt.Errorf("--log-level requires a value")
			}
			idx++
			opts.logLevel = args[idx]
		case strings.HasPrefix(arg, "--log-level="):
			opts.logLevel = strings.TrimPrefix(arg, "--log-level=")
		case strings.HasPrefix(arg, "--"):
			return opts, fmt.Errorf("unknown flag %s", arg)
		default:
			positional = append(positional, arg)
		}
	}
	if len(positional) > 1 {
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(positional[1:], " "))
	}
	if len(positional) == 1 {
		opts.program = positional[0]
	}
	return opts, nil
}

func runEntry(args []string) int {
	opts, err := parseRunArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		printUsage()
		return 1
	}

	cfg, err := loadConfigFrom(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", driver.ConfigFileName, err)
		return 1
	}

	entry := opts.program
	if entry == "" {
		entry = cfg.EntryPath()
	}
	if entry == "" {
		fmt.Fprintf(os.Stderr, "calc run requires a program file (no entry in %s)\n", driver.ConfigFileName)
		return 1
	}

	level := cfg.LogLevel
	if opts.logLevel != "" {
		parsed, err := zerolog.ParseLevel(opts.logLevel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --log-level %q\n", opts.logLevel)
			return 1
		}
		level = parsed
	}
	logger := newLogger(os.Stderr, level)

	module, err := driver.LoadModule(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	interp := interpreter.New()
	interp.SetOutput(os.Stdout)
	interp.SetLogger(logger)
	interp.SetStrict(cfg.Strict || opts.strict)
	interp.SetMaxCallDepth(cfg.MaxCallDepth)
	for _, name := range cfg.GlobalNames() {
		interp.Environment().DefineGlobal(name, runtime.Value(cfg.Globals[name]))
	}

	logger.Debug().Str("entry", entry).Bool("strict", cfg.Strict || opts.strict).Msg("run")
	if err := interp.EvaluateModule(module); err != nil {
		fmt.Fprintf(os.Stderr, "runtime error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfigFrom returns the nearest calc.yml above dir, or the defaults when
// there is none.
func loadConfigFrom(dir string) (*driver.Config, error) {
	path, err := driver.FindConfig(dir)
	if err != nil {
		if errors.Is(err, driver.ErrConfigNotFound) {
			return driver.DefaultConfig(), nil
		}
		return nil, err
	}
	return driver.LoadConfig(path)
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	console := zerolog.ConsoleWriter{Out: w, NoColor: noColor}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  calc run [--strict] [--log-level <level>] [program.json|program.yml]")
	fmt.Fprintln(os.Stderr, "  calc <program.json|program.yml>")
	fmt.Fprintln(os.Stderr, "  calc --version")
}
