package pdf

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// ChromiumRenderer prints HTML to PDF in a local headless Chromium. The
// browser is launched on first use and reused across renders.
type ChromiumRenderer struct {
	bin    string
	logger *zap.Logger

	mu      sync.Mutex
	browser *rod.Browser
}

// NewChromiumRenderer creates a renderer. An empty bin lets rod locate or
// download a browser.
func NewChromiumRenderer(bin string, logger *zap.Logger) *ChromiumRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChromiumRenderer{bin: bin, logger: logger}
}

func (r *ChromiumRenderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		if _, err := r.browser.Version(); err == nil {
			return r.browser, nil
		}
		r.logger.Warn("chromiumRenderer: stale browser connection, relaunching")
		_ = r.browser.Close()
		r.browser = nil
	}

	l := launcher.New().Headless(true)
	if r.bin != "" {
		l = l.Bin(r.bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	// The browser outlives the request that launched it.
	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chromium: %w", err)
	}
	r.browser = browser
	r.logger.Info("chromiumRenderer: browser started", zap.String("control_url", controlURL))
	return browser, nil
}

// RenderHTML loads html into a fresh page and prints it.
func (r *ChromiumRenderer) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{URL: ""})
	if err != nil {
		return nil, fmt.Errorf("chromium: open page: %w", err)
	}
	defer func() {
		_ = page.Close()
	}()

	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("chromium: set content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("chromium: wait load: %w", err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, fmt.Errorf("chromium: print: %w", err)
	}
	return io.ReadAll(stream)
}

// Ping launches the browser if needed and checks it answers.
func (r *ChromiumRenderer) Ping(ctx context.Context) error {
	browser, err := r.ensureBrowser()
	if err != nil {
		return err
	}
	_, err = browser.Version()
	return err
}

// Close shuts the browser down.
func (r *ChromiumRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil
	return err
}
