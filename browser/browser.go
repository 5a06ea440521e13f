// Package browser drives a Chrome instance hosting the backend player page.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/inspector"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/hostplay/hostplay/key"
	"github.com/hostplay/hostplay/log"
	"github.com/hostplay/hostplay/where"
	"github.com/spf13/viper"
)

const startTimeout = 30 * time.Second

// Options select how Chrome is obtained.
type Options struct {
	Headless bool

	// ExecPath overrides the Chrome executable.
	ExecPath string

	// RemoteURL attaches to a running Chrome DevTools endpoint instead of launching one.
	RemoteURL string

	// UserDataDir keeps the profile, so backend logins persist.
	UserDataDir string
}

// OptionsFromViper reads browser options from the loaded config.
func OptionsFromViper() Options {
	opts := Options{
		Headless:    viper.GetBool(key.BrowserHeadless),
		ExecPath:    viper.GetString(key.BrowserExecPath),
		RemoteURL:   viper.GetString(key.BrowserRemoteURL),
		UserDataDir: viper.GetString(key.BrowserUserDataDir),
	}

	if opts.UserDataDir == "" {
		opts.UserDataDir = where.Profile()
	}

	return opts
}

func (o Options) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.UserDataDir(o.UserDataDir),
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,

		chromedp.Flag("exclude-switches", "enable-automation"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("disable-renderer-backgrounding", true),
		chromedp.Flag("disable-background-timer-throttling", true),
		chromedp.Flag("disable-backgrounding-occluded-windows", true),
		chromedp.Flag("disable-session-crashed-bubble", true),
		chromedp.Flag("hide-crash-restore-bubble", true),
		chromedp.Flag("autoplay-policy", "no-user-gesture-required"),

		chromedp.WindowSize(1280, 800),
	}

	if o.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(o.ExecPath))
	}

	if o.Headless {
		opts = append(opts, chromedp.Headless)
	} else {
		opts = append(opts, chromedp.Flag("headless", false))
	}

	return opts
}

// Browser owns a Chrome allocator and its first tab.
type Browser struct {
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc
}

// Launch starts Chrome, or attaches to it when RemoteURL is set.
func Launch(opts Options) (*Browser, error) {
	var (
		allocCtx    context.Context
		allocCancel context.CancelFunc
	)

	if opts.RemoteURL != "" {
		log.Infof("attaching to chrome at %s", opts.RemoteURL)
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(context.Background(), opts.RemoteURL)
	} else {
		log.Infof("launching chrome, profile %s, headless %t", opts.UserDataDir, opts.Headless)
		allocCtx, allocCancel = chromedp.NewExecAllocator(context.Background(), opts.allocatorOptions()...)
	}

	ctx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(log.Debugf), chromedp.WithErrorf(log.Errorf))

	startCtx, startDone := context.WithTimeout(ctx, startTimeout)
	defer startDone()

	// the first Run allocates the browser
	if err := chromedp.Run(startCtx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("start chrome: %w", err)
	}

	return &Browser{
		allocCancel: allocCancel,
		ctx:         ctx,
		cancel:      cancel,
	}, nil
}

// Open navigates the tab to url and waits for the document.
func (b *Browser) Open(ctx context.Context, url string) (*Page, error) {
	log.Infof("opening %s", url)

	runCtx, cancel := bind(b.ctx, ctx)
	defer cancel()

	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", url, err)
	}

	p := &Page{
		ctx:      b.ctx,
		detached: make(chan struct{}),
	}

	chromedp.ListenTarget(b.ctx, func(ev any) {
		switch ev := ev.(type) {
		case *page.EventFrameNavigated:
			if ev.Frame.ParentID == "" {
				p.detach(fmt.Sprintf("navigated to %s", ev.Frame.URL))
			}
		case *inspector.EventDetached:
			p.detach(string(ev.Reason))
		case *inspector.EventTargetCrashed:
			p.detach("target crashed")
		}
	})

	return p, nil
}

// Done is closed when the browser goes away.
func (b *Browser) Done() <-chan struct{} {
	return b.ctx.Done()
}

// Close shuts the tab and the browser. An attached browser is left running.
func (b *Browser) Close() error {
	b.cancel()
	b.allocCancel()
	return nil
}

// bind derives a context carrying the chromedp target of tab that is also cancelled with ctx.
func bind(tab, ctx context.Context) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithCancel(tab)
	stop := context.AfterFunc(ctx, cancel)

	return runCtx, func() {
		stop()
		cancel()
	}
}
