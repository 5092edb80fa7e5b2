package browser

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// RodOpener opens links as pages of a Chromium controlled through the
// DevTools protocol.
type RodOpener struct {
	browser *rod.Browser
	pages   []*rod.Page
}

var _ Session = (*RodOpener)(nil)

// NewRodOpener launches a visible browser, or connects to controlURL when it
// is set.
func NewRodOpener(ctx context.Context, controlURL string) (*RodOpener, error) {
	if controlURL == "" {
		u, err := launcher.New().Headless(false).Context(ctx).Launch()
		if err != nil {
			return nil, fmt.Errorf("failed to launch browser: %w", err)
		}
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}
	return &RodOpener{browser: browser}, nil
}

// Open opens link in a new page.
func (o *RodOpener) Open(ctx context.Context, link string) error {
	page, err := o.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: link})
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", link, err)
	}
	o.pages = append(o.pages, page)
	return nil
}

// CloseBatch closes every page opened since the last call.
func (o *RodOpener) CloseBatch() error {
	var firstErr error
	for _, p := range o.pages {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	o.pages = nil
	return firstErr
}

// Close shuts the browser down.
func (o *RodOpener) Close() error {
	return o.browser.Close()
}
