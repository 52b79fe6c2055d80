/*
Command fontcrawl reports the font variants used by an HTML document.

	fontcrawl [--config FILE] [--css FILE]... [--async] [--visible-only]
	          [--format yaml|json] [--tree] [--browser URL] [--debug] INPUT

INPUT is either the path of an HTML file or an http(s) URL. Files are
styled with the stylesheets embedded in the document plus the ones given
with --css. URLs are loaded in a headless browser, which is launched
locally unless --browser names the DevTools websocket of a running one.

The result maps every font family to its variants, e.g.

	Georgia: [400, 400i, 700]

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/npillmayer/schuko/tracing"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Tracing keys of the crawling packages.
var traceKeys = []string{
	"fontcrawl", "fontcrawl.crawl", "fontcrawl.entry", "fontcrawl.frame",
	"fontcrawl.dom", "fontcrawl.rod",
}

type envKey struct{}

// env is the application environment, stored in the command context.
type env struct {
	log *zap.Logger
}

func envFromContext(ctx context.Context) *env {
	if e, ok := ctx.Value(envKey{}).(*env); ok {
		return e
	}
	return &env{log: zap.NewNop()}
}

// initializeAppContext prepares logging after the command line has been
// parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	e := envFromContext(ctx)
	var err error
	if e.log, err = newLogger(cmd.Bool("debug")); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	level := tracing.LevelError
	if cmd.Bool("debug") {
		level = tracing.LevelDebug
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
	e.log.Debug("Program started", zap.Strings("args", os.Args))
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)
	e.log.Debug("Program ended", zap.Strings("parsed args", cmd.Args().Slice()))
	_ = e.log.Sync() // syncing stderr fails on some platforms
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if !debug {
		config := zap.NewProductionConfig()
		config.Encoding = "console"
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		return config.Build()
	}
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Sampling = nil
	return config.Build()
}

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	envFromContext(ctx).log.Error("Program ended with error", zap.Error(err))
}

func main() {
	ctx, stop := signal.NotifyContext(context.WithValue(context.Background(), envKey{}, &env{log: zap.NewNop()}),
		os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            "fontcrawl",
		Usage:           "reports the font variants used by an HTML document",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		ExitErrHandler:  exitErrHandler,
		ArgsUsage:       "INPUT",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load crawler settings from `FILE` (YAML)"},
			&cli.StringSliceFlag{Name: "css", Usage: "apply additional stylesheet `FILE` (HTML files only)"},
			&cli.BoolFlag{Name: "async", Usage: "crawl in frame-budgeted slices"},
			&cli.BoolFlag{Name: "visible-only", Usage: "skip elements which are not displayed"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "yaml", Usage: "output `FORMAT` (yaml or json)"},
			&cli.BoolFlag{Name: "tree", Usage: "print the styled tree with computed fonts (HTML files only)"},
			&cli.StringFlag{Name: "browser", Usage: "connect to a running browser at DevTools `URL`"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log and trace crawling in detail"},
		},
		Action: run,
	}

	err := app.Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fontcrawl: %v\n", err)
		os.Exit(1)
	}
}
