package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/olehluchkiv/enumshift/internal/config"
	"github.com/olehluchkiv/enumshift/internal/enums"
	"github.com/olehluchkiv/enumshift/internal/imports"
	"github.com/olehluchkiv/enumshift/internal/logging"
	"github.com/olehluchkiv/enumshift/internal/pipeline"
	"github.com/olehluchkiv/enumshift/internal/source"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs, cli := newFlagSet(stderr)

	// Flags may come after the file path: "enumshift file.ts -mode enums".
	flags, positional := reorderArgs(fs, args)
	if err := fs.Parse(flags); err != nil {
		return 1
	}
	positional = append(positional, fs.Args()...)

	if len(positional) != 1 {
		fmt.Fprintln(stderr, "Usage: enumshift [flags] <path-to-ts-file>")
		fs.PrintDefaults()
		return 1
	}
	input := positional[0]

	cfg, err := config.Load(cli.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}
	applyFlags(cfg, cli.mode, cli.typePrefix, cli.logFile, cli.logLevel)

	level, err := parseLogLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid log level %q: %v\n", cfg.LogLevel, err)
		return 1
	}

	logger, logCleanup, err := logging.Setup(cfg.LogFile, level)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to setup logging: %v\n", err)
		return 1
	}
	defer logCleanup()

	passMode, err := pipeline.ParseMode(cfg.Mode)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid mode: %v\n", err)
		return 1
	}

	file, err := source.Resolve(input, cfg.Extensions, logger)
	if err != nil {
		logger.Error("failed to resolve input", "error", err)
		if errors.Is(err, source.ErrPathNotFound) {
			fmt.Fprintf(stderr, "File does not exist: %s\n", input)
		} else {
			fmt.Fprintf(stderr, "Error resolving input: %v\n", err)
		}
		return 1
	}
	if !source.HasExtension(file.Path, cfg.Extensions) {
		fmt.Fprintln(stderr, "Warning: file may not be a TypeScript file")
	}

	text, err := file.Read()
	if err != nil {
		logger.Error("failed to read input", "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// Progress goes to stderr when stdout carries the document.
	out := stdout
	var commit pipeline.CommitFunc
	if cli.dryRun {
		out = stderr
	} else {
		commit = func(pass, src string) error {
			logger.Debug("writing file", "pass", pass, "path", file.Path)
			return file.Write(src)
		}
	}

	passes := pipeline.Passes(pipeline.Options{Mode: passMode, TypePrefix: cfg.TypePrefix}, logger)
	report, err := pipeline.Run(ctx, text, passes, commit, logger)
	if err != nil {
		logger.Error("pipeline failed", "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	printEnumSummary(out, report.Enums)
	printImportSummary(out, report.Imports, logger)
	for _, w := range report.Warnings {
		if errors.Is(w, pipeline.ErrPassFailed) {
			fmt.Fprintf(out, "Error: %v\n", w)
		}
	}

	if cli.dryRun {
		fmt.Fprint(stdout, report.Source)
	} else {
		fmt.Fprintf(out, "Done: %s\n", file.Path)
	}
	return 0
}

type cliFlags struct {
	configPath string
	mode       string
	typePrefix string
	dryRun     bool
	logFile    string
	logLevel   string
}

func newFlagSet(stderr io.Writer) (*flag.FlagSet, *cliFlags) {
	var f cliFlags
	fs := flag.NewFlagSet("enumshift", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", "", "YAML config file")
	fs.StringVar(&f.mode, "mode", "", "passes to run (all, enums, imports)")
	fs.StringVar(&f.typePrefix, "type-prefix", "", "prefix for derived union type names (default T)")
	fs.BoolVar(&f.dryRun, "dry-run", false, "print the result to stdout instead of rewriting the file")
	fs.StringVar(&f.logFile, "log-file", "", "also append logs to this file")
	fs.StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	return fs, &f
}

// applyFlags overrides config values with flags that were given.
func applyFlags(cfg *config.Config, mode, typePrefix, logFile, logLevel string) {
	if mode != "" {
		cfg.Mode = mode
	}
	if typePrefix != "" {
		cfg.TypePrefix = typePrefix
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
}

func printEnumSummary(w io.Writer, res *enums.Result) {
	if res == nil {
		return
	}
	if res.Found == 0 {
		fmt.Fprintln(w, "No enums found")
		return
	}
	for _, err := range res.Skipped {
		fmt.Fprintf(w, "Warning: %v\n", err)
	}
	if len(res.Converted) == 0 {
		return
	}
	fmt.Fprintf(w, "Converted %d enum(s):\n", len(res.Converted))
	for _, d := range res.Converted {
		values := make([]string, len(d.Members))
		for i, m := range d.Members {
			values[i] = m.Key + "=" + m.ValueString()
		}
		fmt.Fprintf(w, "  - %s -> %s\n", d.Name, d.TypeName)
		fmt.Fprintf(w, "    values: %s\n", strings.Join(values, ", "))
	}
}

func printImportSummary(w io.Writer, res *imports.Result, logger *slog.Logger) {
	if res == nil {
		return
	}
	logger.Debug("usage classification",
		"types", res.Classification.TypeNames(),
		"values", res.Classification.ValueNames())

	changed := 0
	for _, st := range res.Statements {
		for _, d := range st.Decisions {
			logger.Debug("import specifier",
				"module", st.ModulePath,
				"name", d.Specifier.Local,
				"usage", d.Usage.String(),
				"type_only", d.TypeOnly)
		}
		if st.Before != st.After {
			changed++
		}
	}
	fmt.Fprintf(w, "Imports: %d statement(s), %d rewritten\n", len(res.Statements), changed)
}

// reorderArgs moves flags ahead of positional arguments for fs.Parse. A
// flag defined in fs that is not boolean takes the following argument as its
// value unless written as -name=value. Unknown flags are passed through for
// fs.Parse to reject.
func reorderArgs(fs *flag.FlagSet, args []string) (flags, positional []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positional = append(positional, arg)
			continue
		}
		flags = append(flags, arg)
		if strings.Contains(arg, "=") || i+1 >= len(args) {
			continue
		}
		if takesValue(fs, strings.TrimLeft(arg, "-")) {
			i++
			flags = append(flags, args[i])
		}
	}
	return flags, positional
}

func takesValue(fs *flag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	if f == nil {
		return false
	}
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return false
	}
	return true
}

// parseLogLevel accepts the slog level names in any case.
func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s (valid: debug, info, warn, error)", s)
	}
	return level, nil
}
