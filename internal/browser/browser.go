// Package browser drives a headless Chromium session through Playwright
// and adapts its pages and frames to the capability interfaces the
// discovery and scraping packages consume.
package browser

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/afriesen/classdir/internal/discover"
)

// Session owns one browser instance for the lifetime of a run.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	timeout time.Duration
}

// NewSession starts Playwright and launches Chromium. The timeout bounds
// every navigation and load-state wait issued through the session.
func NewSession(headless bool, timeout time.Duration) (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("starting playwright: %w", err)
	}
	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launching browser: %w", err)
	}
	return &Session{pw: pw, browser: b, timeout: timeout}, nil
}

// Close shuts the browser down and stops the Playwright driver.
func (s *Session) Close() error {
	if err := s.browser.Close(); err != nil {
		_ = s.pw.Stop()
		return fmt.Errorf("closing browser: %w", err)
	}
	return s.pw.Stop()
}

// Open navigates a fresh page to rawURL and waits for the load event.
func (s *Session) Open(ctx context.Context, rawURL string) (*Page, error) {
	p, err := s.browser.NewPage()
	if err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}
	if _, err := p.Goto(rawURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(float64(s.timeout.Milliseconds())),
	}); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("navigating to %s: %w", rawURL, err)
	}
	return &Page{page: p, timeout: s.timeout}, nil
}

// Page wraps one Playwright page. It satisfies discover.Page for the
// listing document and carries the extraction helpers detail pages need.
type Page struct {
	page    playwright.Page
	timeout time.Duration
}

// hrefScript collects every hyperlink reference in a document, already
// resolved to absolute form by the browser.
const hrefScript = `() => Array.from(document.querySelectorAll("a[href]")).map(a => a.href)`

// Location returns the page's resolved URL.
func (p *Page) Location() (string, error) {
	u := p.page.URL()
	if u == "" {
		return "", fmt.Errorf("page location not resolved")
	}
	return u, nil
}

// Hrefs evaluates the link predicate in the top document.
func (p *Page) Hrefs(ctx context.Context) ([]string, error) {
	return evalHrefs(p.page)
}

// Fragment returns the page URL's current fragment, without "#".
func (p *Page) Fragment() (string, error) {
	u, err := url.Parse(p.page.URL())
	if err != nil {
		return "", fmt.Errorf("parsing page location: %w", err)
	}
	return u.Fragment, nil
}

// SetFragment applies a hash route without reloading the document, which
// is what triggers client-side rendering on SPA listings.
func (p *Page) SetFragment(ctx context.Context, fragment string) error {
	if _, err := p.page.Evaluate(`(h) => { window.location.hash = h; }`, fragment); err != nil {
		return fmt.Errorf("setting fragment: %w", err)
	}
	return nil
}

// Frames returns the page's nested browsing contexts, excluding the top
// document itself.
func (p *Page) Frames() []discover.Frame {
	main := p.page.MainFrame()
	var frames []discover.Frame
	for _, f := range p.page.Frames() {
		if f == main {
			continue
		}
		frames = append(frames, frame{f})
	}
	return frames
}

// WaitSettled waits for network activity to quiesce, bounded by the
// session timeout. Timing out is not an error worth surfacing: the caller
// reads whatever has rendered.
func (p *Page) WaitSettled(ctx context.Context) error {
	return p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(float64(p.timeout.Milliseconds())),
	})
}

// Title returns the document title.
func (p *Page) Title() (string, error) {
	return p.page.Title()
}

// Content returns the rendered HTML of the page.
func (p *Page) Content() (string, error) {
	return p.page.Content()
}

// Screenshot captures the full page to path.
func (p *Page) Screenshot(path string) error {
	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("capturing screenshot: %w", err)
	}
	return nil
}

// Close closes the page.
func (p *Page) Close() error {
	return p.page.Close()
}

// frame adapts a nested Playwright frame to discover.Frame.
type frame struct {
	f playwright.Frame
}

func (fr frame) Location() (string, error) {
	u := fr.f.URL()
	if u == "" || u == "about:blank" {
		return "", fmt.Errorf("frame location not resolved")
	}
	return u, nil
}

func (fr frame) Hrefs(ctx context.Context) ([]string, error) {
	return evalHrefs(fr.f)
}

// evaluator is the slice of the Playwright page/frame API the link
// predicate needs.
type evaluator interface {
	Evaluate(expression string, options ...interface{}) (interface{}, error)
}

func evalHrefs(e evaluator) ([]string, error) {
	res, err := e.Evaluate(hrefScript)
	if err != nil {
		return nil, fmt.Errorf("evaluating link predicate: %w", err)
	}
	vals, ok := res.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected predicate result type %T", res)
	}
	hrefs := make([]string, 0, len(vals))
	for _, v := range vals {
		if s, ok := v.(string); ok {
			hrefs = append(hrefs, s)
		}
	}
	return hrefs, nil
}
