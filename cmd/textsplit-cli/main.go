// Command textsplit-cli reads stdin, files or URLs into one buffer, splits it
// on an exact separator and prints one field per line (or JSON).
//
// Usage:
//
//	printf 'a,,b' | textsplit-cli -s ,
//	textsplit-cli -s '\n\n' notes.txt archive.txt.gz
//	textsplit-cli -s '\r\n' --json --limit 10 https://example.com/data.csv
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"

	"github.com/Alfex4936/textsplit/internal/log"
	"github.com/Alfex4936/textsplit/internal/source"
	"github.com/Alfex4936/textsplit/internal/util"
	"github.com/Alfex4936/textsplit/textsplit"
)

var sepFlag = &cli.StringFlag{
	Name:     "sep",
	Aliases:  []string{"s"},
	Usage:    "exact separator; Go escapes such as \\n, \\t and \\x00 are decoded",
	Required: true,
}

var configFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "growth policy file (.toml, .yaml or .yml)",
	EnvVars: []string{"TEXTSPLIT_CONFIG"},
}

var initialCapacityFlag = &cli.IntFlag{
	Name:  "initial-capacity",
	Usage: "first allocation, in elements, for both the byte buffer and the view array",
}

var growthFactorFlag = &cli.Float64Flag{
	Name:  "growth-factor",
	Usage: "capacity multiplier applied when a buffer is full (values below 1 act as 1)",
}

var maxCapacityFlag = &cli.IntFlag{
	Name:  "max-capacity",
	Usage: "refuse to buffer more than this many input bytes (0 = unlimited)",
}

var jsonFlag = &cli.BoolFlag{
	Name:  "json",
	Usage: "print the result as JSON with byte offsets",
}

var quoteFlag = &cli.BoolFlag{
	Name:    "quote",
	Aliases: []string{"q"},
	Usage:   "print each field as a Go-quoted string",
}

var limitFlag = &cli.IntFlag{
	Name:  "limit",
	Usage: "print at most this many fields (0 = all)",
}

var keepGoingFlag = &cli.BoolFlag{
	Name:    "keep-going",
	Aliases: []string{"k"},
	Usage:   "skip sources that fail to open or read instead of stopping",
}

var timeoutFlag = &cli.DurationFlag{
	Name:  "timeout",
	Usage: "overall timeout for reading remote sources",
	Value: 30 * time.Second,
}

var verboseFlag = &cli.BoolFlag{
	Name:  "verbose",
	Usage: "log every source read",
}

// CLI returns the textsplit-cli application.
func CLI() *cli.App {
	return &cli.App{
		Name:      "textsplit-cli",
		Usage:     "split stdin, files or URLs on an exact separator",
		ArgsUsage: "[source ...]  (\"-\" or nothing reads stdin)",
		Flags: []cli.Flag{
			sepFlag, configFlag, initialCapacityFlag, growthFactorFlag, maxCapacityFlag,
			jsonFlag, quoteFlag, limitFlag, keepGoingFlag, timeoutFlag, verboseFlag,
		},
		Action: split,
	}
}

func main() {
	if err := CLI().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "textsplit-cli:", err)
		os.Exit(1)
	}
}

func split(c *cli.Context) error {
	level := log.InfoLevel
	if c.Bool(verboseFlag.Name) {
		level = log.DebugLevel
	}
	logger := log.New(zapcore.AddSync(c.App.ErrWriter), level, false).Named("textsplit-cli")
	defer logger.Sync() //nolint:errcheck

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	sep, err := util.Unescape(c.String(sepFlag.Name))
	if err != nil {
		return err
	}
	if len(sep) == 0 {
		return fmt.Errorf("%w: --%s must not be empty", textsplit.ErrInvalidArgument, sepFlag.Name)
	}

	ctx, cancel := context.WithTimeout(log.ToContext(c.Context, logger), c.Duration(timeoutFlag.Name))
	defer cancel()

	names := c.Args().Slice()
	if len(names) == 0 {
		names = []string{source.Stdin}
	}

	buf := textsplit.NewBuffer(cfg.Bytes)
	var merr *multierror.Error
	for _, name := range names {
		n, err := ingest(ctx, buf, name)
		if err != nil {
			if !c.Bool(keepGoingFlag.Name) {
				return err
			}
			// bytes read before the failure stay in the buffer
			logger.Warnw("skipping source", "source", name, "kept", n, "err", err)
			merr = multierror.Append(merr, err)
			if errors.Is(err, textsplit.ErrOutOfMemory) {
				break
			}
			continue
		}
		logger.Debugw("read source", "source", name, "bytes", n, "total", buf.Len(), "capacity", buf.Cap())
	}

	views, err := textsplit.Split(buf, sep, cfg.Views)
	if err != nil {
		return err
	}
	logger.Debugw("split", "views", views.Len(), "capacity", views.Cap())

	if err := printViews(c, views, sep); err != nil {
		return err
	}
	return merr.ErrorOrNil()
}

func ingest(ctx context.Context, buf *textsplit.Buffer, name string) (int64, error) {
	rc, err := source.Open(ctx, name)
	if err != nil {
		return 0, err
	}
	n, err := buf.ReadFrom(rc)
	if cerr := rc.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

func loadConfig(c *cli.Context) (textsplit.Config, error) {
	cfg := textsplit.DefaultConfig()
	if c.IsSet(configFlag.Name) {
		var err error
		if cfg, err = textsplit.LoadConfig(c.String(configFlag.Name)); err != nil {
			return cfg, err
		}
	}
	if c.IsSet(initialCapacityFlag.Name) {
		cfg.Bytes.InitialCapacity = c.Int(initialCapacityFlag.Name)
		cfg.Views.InitialCapacity = c.Int(initialCapacityFlag.Name)
	}
	if c.IsSet(growthFactorFlag.Name) {
		cfg.Bytes.GrowthFactor = c.Float64(growthFactorFlag.Name)
		cfg.Views.GrowthFactor = c.Float64(growthFactorFlag.Name)
	}
	if c.IsSet(maxCapacityFlag.Name) {
		cfg.Bytes.MaxCapacity = c.Int(maxCapacityFlag.Name)
	}
	return cfg.Normalize(), nil
}

func printViews(c *cli.Context, views *textsplit.Views, sep []byte) error {
	limit := c.Int(limitFlag.Name)
	w := bufio.NewWriter(c.App.Writer)

	if c.Bool(jsonFlag.Name) {
		res, err := textsplit.NewResult(views, sep, limit)
		if err != nil {
			return err
		}
		if err := util.EncodeNoEscape(w, res, true); err != nil {
			return err
		}
		return w.Flush()
	}

	quote := c.Bool(quoteFlag.Name)
	for i, field := range views.All() {
		if limit > 0 && i >= limit {
			break
		}
		if quote {
			w.WriteString(strconv.Quote(string(field)))
		} else {
			w.Write(field)
		}
		w.WriteByte('\n')
	}
	return w.Flush()
}
