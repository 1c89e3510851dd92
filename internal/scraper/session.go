package scraper

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
)

// BrowserOptions controls how the browser process is launched.
type BrowserOptions struct {
	Headless bool
	Bin      string // Explicit Chromium binary; empty lets the launcher find or fetch one
}

// Session owns one browser process and the single page every category is
// scraped in.
type Session struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	once     sync.Once
	err      error
}

// Open launches the browser and opens a stealth page bound to ctx.
// There is no retry: a launch failure is returned to the caller.
func Open(ctx context.Context, opts BrowserOptions) (*Session, error) {
	l := launcher.New().Context(ctx).Headless(opts.Headless).NoSandbox(true)
	if opts.Bin != "" {
		l = l.Bin(opts.Bin)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().Context(ctx).ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect browser: %w", err)
	}

	page, err := stealth.Page(browser)
	if err != nil {
		_ = browser.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &Session{launcher: l, browser: browser, page: page}, nil
}

// Page returns the shared page.
func (s *Session) Page() *rod.Page {
	return s.page
}

// Close shuts the browser down. Only the first call does any work; later
// calls return the same result.
func (s *Session) Close() error {
	s.once.Do(func() {
		logger.Println("Closing browser...")
		// The run context may already be canceled by an interrupt
		s.err = s.browser.Context(context.Background()).Close()
		if s.err != nil {
			s.launcher.Kill()
		}
		s.launcher.Cleanup()
	})
	return s.err
}
