package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/fontcrawl"
	"github.com/npillmayer/fontcrawl/crawl"
	"github.com/npillmayer/fontcrawl/dom/domdbg"
	"github.com/npillmayer/fontcrawl/dom/style/cssom"
	"github.com/npillmayer/fontcrawl/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/fontcrawl/dom/styledom"
	"github.com/npillmayer/fontcrawl/frame"
	"github.com/npillmayer/fontcrawl/rodhost"
	"github.com/npillmayer/fontcrawl/variant"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// crawler is what both kinds of crawlers have in common.
type crawler interface {
	Crawl() (*variant.Usage, error)
	CrawlAsync(onDone func(*variant.Usage, error)) error
	Clear()
}

func run(ctx context.Context, cmd *cli.Command) (err error) {
	log := envFromContext(ctx).log
	if cmd.NArg() != 1 {
		return fmt.Errorf("expecting exactly one INPUT, have %d", cmd.NArg())
	}
	format := strings.ToLower(cmd.String("format"))
	if format != "yaml" && format != "json" {
		return fmt.Errorf("unknown output format %q", format)
	}
	settings, err := loadSettings(cmd.String("config"))
	if err != nil {
		return err
	}
	input := cmd.Args().First()
	var usage *variant.Usage
	if isURL(input) {
		usage, err = crawlURL(ctx, cmd, input, settings, log)
	} else {
		usage, err = crawlFile(ctx, cmd, input, settings, log)
	}
	if err != nil {
		return err
	}
	log.Info("Crawl finished", zap.String("input", input), zap.Int("families", usage.Len()))
	return output(os.Stdout, usage, format)
}

func isURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

func loadSettings(path string) (crawl.Settings, error) {
	if path == "" {
		return crawl.Settings{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return crawl.Settings{}, fmt.Errorf("unable to read configuration: %w", err)
	}
	defer f.Close()
	return crawl.LoadSettings(f)
}

// loadStylesheets reads additional stylesheets and merges them, in order,
// into a single sheet. No paths give no sheets.
func loadStylesheets(paths []string) ([]cssom.StyleSheet, error) {
	var merged *douceuradapter.CSSStyles
	for _, path := range paths {
		source, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read stylesheet: %w", err)
		}
		sheet, err := douceuradapter.Parse(string(source))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if merged == nil {
			merged = sheet
			continue
		}
		merged.AppendRules(sheet)
	}
	if merged == nil || merged.Empty() {
		return nil, nil
	}
	return []cssom.StyleSheet{merged}, nil
}

func crawlFile(ctx context.Context, cmd *cli.Command, path string, settings crawl.Settings,
	log *zap.Logger) (*variant.Usage, error) {
	//
	sheets, err := loadStylesheets(cmd.StringSlice("css"))
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read input: %w", err)
	}
	defer f.Close()
	doc, err := styledom.Parse(f, sheets...)
	if doc == nil {
		return nil, err
	}
	for _, e := range multierr.Errors(err) {
		log.Warn("Stylesheet error", zap.Error(e))
	}
	log.Debug("Document styled", zap.String("file", path), zap.Int("elements", doc.Len()))
	if cmd.Bool("tree") {
		if err := domdbg.Dump(os.Stderr, doc, nil); err != nil {
			return nil, err
		}
	}
	var frames *frame.Loop
	if cmd.Bool("async") {
		frames = frame.NewLoop(frame.DefaultRate)
	}
	c := fontcrawl.HTMLCrawler(doc, requester(frames), settings, cmd.Bool("visible-only"))
	log.Debug("Crawling", zap.Stringer("budget", c.Budget()), zap.Bool("async", frames != nil))
	return crawlWith(ctx, c, frames, log)
}

func crawlURL(ctx context.Context, cmd *cli.Command, url string, settings crawl.Settings,
	log *zap.Logger) (usage *variant.Usage, err error) {
	//
	if len(cmd.StringSlice("css")) > 0 || cmd.Bool("tree") {
		log.Warn("Options --css and --tree are ignored for URLs")
	}
	browser, err := rodhost.Launch(ctx, cmd.String("browser"))
	if err != nil {
		return nil, err
	}
	defer func() {
		if er := browser.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close browser: %w", er))
		}
	}()
	h, err := browser.Open(ctx, url)
	if err != nil {
		return nil, err
	}
	var frames *frame.Loop
	if cmd.Bool("async") {
		frames = frame.NewLoop(frame.DefaultRate)
	}
	c, err := fontcrawl.BrowserCrawler(h, requester(frames), settings, cmd.Bool("visible-only"))
	if err != nil {
		return nil, err
	}
	log.Debug("Crawling", zap.String("url", url), zap.Stringer("budget", c.Budget()), zap.Bool("async", frames != nil))
	return crawlWith(ctx, c, frames, log)
}

// requester avoids handing a typed nil loop to a crawler.
func requester(loop *frame.Loop) frame.Requester {
	if loop == nil {
		return nil
	}
	return loop
}

// crawlWith runs a crawl synchronously, or asynchronously if a frame loop
// is given. An asynchronous crawl is cleared if ctx is cancelled.
func crawlWith(ctx context.Context, c crawler, frames *frame.Loop, log *zap.Logger) (*variant.Usage, error) {
	if frames == nil {
		return c.Crawl()
	}
	type result struct {
		usage *variant.Usage
		err   error
	}
	done := make(chan result, 1)
	if err := c.CrawlAsync(func(u *variant.Usage, err error) { done <- result{u, err} }); err != nil {
		return nil, err
	}
	frames.Start(ctx)
	defer frames.Stop()
	select {
	case r := <-done:
		log.Debug("Async crawl done", zap.Uint64("frames", frames.Frames()))
		return r.usage, r.err
	case <-ctx.Done():
		c.Clear()
		return nil, ctx.Err()
	}
}

func output(w io.Writer, usage *variant.Usage, format string) error {
	if format == "json" {
		data, err := json.MarshalIndent(usage, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(usage); err != nil {
		return err
	}
	return enc.Close()
}
