// Package scraper runs one catalog extraction end to end: discover the
// term's course links, visit each detail page in sequence, normalize its
// first data table, and assemble the output catalog.
//
// Page visits are strictly sequential over a single browser session, with
// a politeness delay between navigations. Per-course failures follow the
// configured policy: recorded as items with an error marker, or fatal.
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/afriesen/classdir/internal/config"
	"github.com/afriesen/classdir/internal/course"
	"github.com/afriesen/classdir/internal/discover"
	"github.com/afriesen/classdir/internal/table"
)

// ListingPage is the loaded listing document handed to discovery.
type ListingPage interface {
	discover.Page
	Close() error
}

// CoursePage is one loaded detail page.
type CoursePage interface {
	Title() (string, error)
	Content() (string, error)
	Screenshot(path string) error
	Close() error
}

// Visitor abstracts the browser session so the run loop can be exercised
// without a live browser.
type Visitor interface {
	OpenListing(ctx context.Context, url string) (ListingPage, error)
	OpenCourse(ctx context.Context, url string) (CoursePage, error)
}

// Fetcher retrieves a static document over plain HTTP. It serves the
// direct-listing discovery fallback.
type Fetcher interface {
	GetHTML(ctx context.Context, url string) ([]byte, error)
}

// Sink receives per-page artifacts (raw HTML, screenshots).
type Sink interface {
	SavePage(pageURL string, html []byte) error
	ScreenshotPath(pageURL string) (string, error)
}

// Scraper owns one extraction run.
type Scraper struct {
	cfg     config.Config
	visitor Visitor
	fetcher Fetcher
	sink    Sink
}

// New assembles a scraper. fetcher may be nil when no fallback URL is
// configured; sink may be nil when no per-page artifacts are wanted.
func New(cfg config.Config, visitor Visitor, fetcher Fetcher, sink Sink) *Scraper {
	return &Scraper{cfg: cfg, visitor: visitor, fetcher: fetcher, sink: sink}
}

// Run performs the extraction and returns the assembled catalog. A run
// that discovers zero links is not an error: it produces an empty catalog.
func (s *Scraper) Run(ctx context.Context) (*course.Catalog, error) {
	d := &discover.Discoverer{
		Term:            s.cfg.Term,
		SubjectMarker:   s.cfg.SubjectMarker,
		ListingFragment: s.cfg.ListingFragment,
		SettleDelay:     s.cfg.SettleDelay,
	}

	links := s.discoverLinks(ctx, d)
	log.Info().Int("links", len(links)).Str("term", s.cfg.Term).Msg("discovery complete")

	cat := course.NewCatalog(s.cfg.Term, s.cfg.Subject, s.cfg.ListingURL)
	for i, link := range links {
		if i > 0 {
			s.pause(ctx)
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run cancelled: %w", err)
		}

		item, err := s.visitCourse(ctx, link)
		if err != nil {
			if !s.cfg.ContinueOnError {
				return nil, fmt.Errorf("scraping %s: %w", link, err)
			}
			log.Warn().Err(err).Str("url", link).Msg("course visit failed")
			item = &course.Course{URL: link, Error: err.Error()}
		}
		cat.Add(item)
		log.Info().Str("url", link).Int("done", i+1).Int("total", len(links)).Msg("course scraped")
	}
	return cat, nil
}

// discoverLinks runs browser discovery and, when it comes back empty,
// retries against the direct listing variant. Both failures are local:
// the worst case is an empty link set.
func (s *Scraper) discoverLinks(ctx context.Context, d *discover.Discoverer) []string {
	links := s.browserPass(ctx, d)
	if len(links) > 0 || s.cfg.FallbackURL == "" || s.fetcher == nil {
		return links
	}
	log.Warn().Str("url", s.cfg.FallbackURL).Msg("no links from browser discovery, trying static listing")
	return s.staticPass(ctx, d)
}

func (s *Scraper) browserPass(ctx context.Context, d *discover.Discoverer) []string {
	page, err := s.visitor.OpenListing(ctx, s.cfg.ListingURL)
	if err != nil {
		log.Error().Err(err).Str("url", s.cfg.ListingURL).Msg("listing navigation failed")
		return nil
	}
	defer page.Close()
	return d.Discover(ctx, page)
}

func (s *Scraper) staticPass(ctx context.Context, d *discover.Discoverer) []string {
	body, err := s.fetcher.GetHTML(ctx, s.cfg.FallbackURL)
	if err != nil {
		log.Error().Err(err).Msg("static listing fetch failed")
		return nil
	}
	hrefs, err := discover.HrefsFromHTML(bytes.NewReader(body))
	if err != nil {
		log.Error().Err(err).Msg("static listing parse failed")
		return nil
	}
	return d.Filter(s.cfg.FallbackURL, hrefs)
}

// visitCourse loads one detail page and turns its first table into field
// records. Artifact persistence failures are logged, never fatal.
func (s *Scraper) visitCourse(ctx context.Context, link string) (*course.Course, error) {
	page, err := s.visitor.OpenCourse(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("loading page: %w", err)
	}
	defer page.Close()

	item := &course.Course{URL: link}
	if title, err := page.Title(); err == nil {
		item.Title = strings.TrimSpace(title)
	}

	html, err := page.Content()
	if err != nil {
		return nil, fmt.Errorf("reading page content: %w", err)
	}

	if s.sink != nil && s.cfg.SaveRawPages {
		if err := s.sink.SavePage(link, []byte(html)); err != nil {
			log.Warn().Err(err).Str("url", link).Msg("saving raw page failed")
		}
	}
	if s.sink != nil && s.cfg.SaveScreenshots {
		if path, err := s.sink.ScreenshotPath(link); err == nil {
			if err := page.Screenshot(path); err != nil {
				log.Warn().Err(err).Str("url", link).Msg("screenshot failed")
			}
		}
	}

	matrix, err := table.FromHTML(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing detail page: %w", err)
	}
	if matrix != nil {
		item.Rows = table.Normalize(matrix)
	}
	return item, nil
}

// pause waits the politeness delay between detail-page visits.
func (s *Scraper) pause(ctx context.Context) {
	if s.cfg.VisitDelay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(s.cfg.VisitDelay):
	}
}
