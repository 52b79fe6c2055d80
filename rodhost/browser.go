package rodhost

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/multierr"
)

// Browser is a browser session, either launched locally or connected to
// a remote browser.
type Browser struct {
	browser *rod.Browser
	lnch    *launcher.Launcher
}

// Launch starts a local headless browser. If controlURL is not empty, it
// connects to the browser's DevTools websocket instead.
func Launch(ctx context.Context, controlURL string) (*Browser, error) {
	b := &Browser{}
	if controlURL == "" {
		b.lnch = launcher.New().Context(ctx).Headless(true)
		u, err := b.lnch.Launch()
		if err != nil {
			return nil, fmt.Errorf("rodhost: launch: %w", err)
		}
		controlURL = u
		tracer().Infof("rodhost: launched local browser at %s", u)
	}
	b.browser = rod.New().Context(ctx).ControlURL(controlURL)
	if err := b.browser.Connect(); err != nil {
		b.kill()
		return nil, fmt.Errorf("rodhost: connect: %w", err)
	}
	return b, nil
}

// Open loads a URL in a new page and waits for it to be loaded.
func (b *Browser) Open(ctx context.Context, url string) (*Host, error) {
	page, err := b.browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("rodhost: open %s: %w", url, err)
	}
	if err := page.Context(ctx).WaitLoad(); err != nil {
		return nil, multierr.Append(fmt.Errorf("rodhost: load %s: %w", url, err), page.Close())
	}
	tracer().Debugf("rodhost: loaded %s", url)
	return New(ctx, page), nil
}

// Close closes the browser connection and stops a locally launched browser.
func (b *Browser) Close() error {
	err := b.browser.Close()
	b.kill()
	return err
}

func (b *Browser) kill() {
	if b.lnch != nil {
		b.lnch.Kill()
		b.lnch.Cleanup()
	}
}
