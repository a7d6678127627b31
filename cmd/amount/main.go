package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lehrbaum/firefly/internal/amount"
	"github.com/lehrbaum/firefly/internal/locale"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	locale    string
	mode      amount.Mode
	decimal   string
	grouping  string
	overrides string
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	opts, values, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		logger.Error("invalid arguments", "error", err)

		return 2
	}

	normalize, err := newNormalizer(opts)
	if err != nil {
		logger.Error("failed to set up normalizer", "error", err)
		return 1
	}

	failed := false
	emit := func(raw string) {
		parsed, err := normalize(ctx, raw)
		if err != nil {
			logger.Error("failed to normalize amount", "input", raw, "kind", amount.Kind(err), "error", err)
			failed = true

			return
		}

		fmt.Fprintln(stdout, parsed)
	}

	if len(values) > 0 {
		for _, v := range values {
			emit(v)
		}
	} else {
		scanner := bufio.NewScanner(stdin)
		for scanner.Scan() {
			emit(scanner.Text())
		}

		if err := scanner.Err(); err != nil {
			logger.Error("failed to read input", "error", err)
			return 1
		}
	}

	if failed {
		return 1
	}

	return 0
}

func parseFlags(args []string, output io.Writer) (options, []string, error) {
	var (
		opts options
		mode string
	)

	fs := flag.NewFlagSet("amount", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.locale, "locale", "", "locale id such as de_DE or pt-PT (default: system locale)")
	fs.StringVar(&mode, "mode", amount.ModeLenient.String(), "lenient, strict or locale")
	fs.StringVar(&opts.decimal, "decimal", "", "explicit decimal separator, overrides -locale")
	fs.StringVar(&opts.grouping, "grouping", "", "explicit grouping separators, one per character")
	fs.StringVar(&opts.overrides, "overrides", os.Getenv("LOCALE_OVERRIDES_FILE"), "YAML file with locale overrides")

	if err := fs.Parse(args); err != nil {
		return options{}, nil, err
	}

	m, err := amount.ParseMode(mode)
	if err != nil {
		return options{}, nil, err
	}

	opts.mode = m

	if opts.decimal != "" && len([]rune(opts.decimal)) != 1 {
		return options{}, nil, fmt.Errorf("decimal separator %q must be a single character", opts.decimal)
	}

	if opts.grouping != "" && opts.decimal == "" {
		return options{}, nil, errors.New("-grouping requires -decimal")
	}

	return opts, fs.Args(), nil
}

type normalizeFunc func(ctx context.Context, raw string) (amount.Parsed, error)

func newNormalizer(opts options) (normalizeFunc, error) {
	if opts.decimal != "" {
		seps := amount.NewSeparators([]rune(opts.decimal)[0], []rune(opts.grouping)...)

		return func(_ context.Context, raw string) (amount.Parsed, error) {
			return amount.Parse(raw, seps, opts.mode)
		}, nil
	}

	table, err := locale.NewSystemTable()
	if err != nil {
		return nil, err
	}

	if opts.overrides != "" {
		overrides, err := locale.LoadOverrides(opts.overrides)
		if err != nil {
			return nil, err
		}

		if table, err = table.WithOverrides(overrides); err != nil {
			return nil, err
		}
	}

	svc := amount.NewService(table, opts.mode)

	return func(ctx context.Context, raw string) (amount.Parsed, error) {
		return svc.Normalize(ctx, raw, opts.locale)
	}, nil
}
