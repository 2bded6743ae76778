package airbnb

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"airbnb-listings/config"
	"airbnb-listings/utils"
)

// Ensure BrowserSource implements DocumentSource at compile time.
var _ DocumentSource = (*BrowserSource)(nil)

// blockedURLs stops rendered pages from reaching the network. Only file://
// documents are ever loaded.
var blockedURLs = []string{"http://*", "https://*", "ws://*", "wss://*"}

// BrowserSource renders saved pages in headless Chrome before parsing them,
// for pages whose markup is completed by inline scripts.
type BrowserSource struct {
	browserCtx context.Context
	cancel     context.CancelFunc
	timeout    time.Duration
	logger     *utils.Logger
}

// NewBrowserSource starts a headless browser. Close must be called to stop it.
func NewBrowserSource(cfg *config.Config, logger *utils.Logger) (*BrowserSource, error) {
	chromeBin := cfg.ChromeBin
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	logger.Info("[airbnb] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("allow-file-access-from-files", true),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	cancel := func() {
		cancelBrowser()
		cancelAlloc()
	}

	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("airbnb: start browser: %w", err)
	}

	timeout := time.Duration(cfg.RenderTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &BrowserSource{
		browserCtx: browserCtx,
		cancel:     cancel,
		timeout:    timeout,
		logger:     logger,
	}, nil
}

// Load renders the document at path in a fresh tab and parses the resulting DOM.
func (b *BrowserSource) Load(path string) (*goquery.Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("airbnb: resolve %q: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("airbnb: open %q: %w", path, err)
	}

	ctx, cancel := chromedp.NewContext(b.browserCtx)
	defer cancel()

	ctx, cancelTimeout := context.WithTimeout(ctx, b.timeout)
	defer cancelTimeout()

	var html string
	err = chromedp.Run(ctx,
		network.Enable(),
		network.SetBlockedURLS(blockedURLs),
		chromedp.Navigate(FileURL(abs)),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("airbnb: render %q: %w", path, err)
	}

	b.logger.Debug("[airbnb] Rendered %s (%d bytes)", path, len(html))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("airbnb: parse %q: %w", path, err)
	}
	return doc, nil
}

// Close stops the browser.
func (b *BrowserSource) Close() error {
	b.cancel()
	return nil
}

// FileURL converts an absolute path into a file:// URL.
func FileURL(abs string) string {
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}

// findChromeBinary locates Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
