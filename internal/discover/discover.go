// Package discover finds the per-course detail links for one academic term.
//
// The listing site is a single-page application: course links may live in
// the top document or inside nested frames, and may only render after a
// client-side hash route is applied. Discovery therefore runs an immediate
// pass against the top document, then a recovery pass after settling the
// network and forcing the listing route, and unions what every browsing
// context contributes. A context that fails mid-pass contributes nothing
// instead of aborting discovery.
package discover

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"time"
)

// Frame is one browsing context: the top document or an attached frame.
type Frame interface {
	// Location returns the context's resolved URL. An error means the
	// location cannot be determined yet (mid-navigation); the context is
	// skipped for that pass.
	Location() (string, error)
	// Hrefs returns the hyperlink references present in the context.
	// Values may be relative; they are resolved against Location.
	Hrefs(ctx context.Context) ([]string, error)
}

// Page is the top-level document together with its attached frames.
type Page interface {
	Frame
	// Fragment returns the page URL's current fragment, without "#".
	Fragment() (string, error)
	// SetFragment applies a fragment to trigger client-side routing.
	SetFragment(ctx context.Context, fragment string) error
	// Frames returns the currently attached nested browsing contexts.
	// Frames attach dynamically, so this is re-read after settling.
	Frames() []Frame
	// WaitSettled returns once outstanding network activity has
	// quiesced, or after a bounded time regardless. Best effort.
	WaitSettled(ctx context.Context) error
}

// Discoverer extracts course-detail links for a single term from a loaded
// listing page.
type Discoverer struct {
	// Term is the opaque term code, matched verbatim as a delimited
	// segment of each candidate URL's path.
	Term string
	// SubjectMarker is the path substring that identifies course-subject
	// detail pages, e.g. "/subj/".
	SubjectMarker string
	// ListingFragment is the client-side route that renders the term's
	// listing. It is applied only when the page's fragment does not
	// already reference it.
	ListingFragment string
	// SettleDelay is a fixed pause after each network settle. Network
	// idle alone is unreliable for SPA-rendered content, so the pass
	// waits a little longer before reading the DOM.
	SettleDelay time.Duration
}

// Discover returns the deduplicated, fragment-stripped set of course links
// for the term, sorted for stable output. Every failure inside a single
// context is recovered locally, so there is no error to return: the worst
// case is an empty set, which the caller treats as its own signal.
func (d *Discoverer) Discover(ctx context.Context, page Page) []string {
	found := make(map[string]struct{})

	// Pass 1: the listing may already be present in the top document.
	d.collect(ctx, page, found)

	// Pass 2: let the SPA finish rendering. If the current route does
	// not reference the listing, force it and settle again.
	_ = page.WaitSettled(ctx)
	d.pause(ctx)
	if d.ListingFragment != "" {
		if frag, err := page.Fragment(); err == nil && !strings.Contains(frag, d.ListingFragment) {
			if err := page.SetFragment(ctx, d.ListingFragment); err == nil {
				_ = page.WaitSettled(ctx)
				d.pause(ctx)
			}
		}
	}

	d.collect(ctx, page, found)
	for _, frame := range page.Frames() {
		d.collect(ctx, frame, found)
	}

	links := make([]string, 0, len(found))
	for link := range found {
		links = append(links, link)
	}
	sort.Strings(links)
	return links
}

// collect runs the link extraction against one browsing context. Contexts
// without a resolved location and contexts whose extraction fails are
// skipped silently.
func (d *Discoverer) collect(ctx context.Context, frame Frame, into map[string]struct{}) {
	loc, err := frame.Location()
	if err != nil || loc == "" {
		return
	}
	hrefs, err := frame.Hrefs(ctx)
	if err != nil {
		return
	}
	for _, link := range d.Filter(loc, hrefs) {
		into[link] = struct{}{}
	}
}

// Filter resolves hrefs against base, keeps those whose path carries the
// subject marker and the term code as a delimited segment, strips
// fragments, and deduplicates. Unparseable values are dropped. The same
// predicate serves live browsing contexts and the static listing fallback.
func (d *Discoverer) Filter(base string, hrefs []string) []string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{}, len(hrefs))
	var links []string
	for _, href := range hrefs {
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			continue
		}
		abs := baseURL.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			continue
		}
		abs.Fragment = ""
		if !strings.Contains(abs.Path, d.SubjectMarker) {
			continue
		}
		if !hasSegment(abs.Path, d.Term) {
			continue
		}
		link := abs.String()
		if _, ok := seen[link]; ok {
			continue
		}
		seen[link] = struct{}{}
		links = append(links, link)
	}
	return links
}

// pause sleeps for the settle delay, cut short by context cancellation.
func (d *Discoverer) pause(ctx context.Context) {
	if d.SettleDelay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d.SettleDelay):
	}
}

// hasSegment reports whether path contains code delimited on both sides by
// a non-alphanumeric character or the string boundary, so term 20261 does
// not match inside 202613.
func hasSegment(path, code string) bool {
	if code == "" {
		return false
	}
	for i := 0; ; {
		j := strings.Index(path[i:], code)
		if j < 0 {
			return false
		}
		j += i
		end := j + len(code)
		beforeOK := j == 0 || !isAlphanumeric(path[j-1])
		afterOK := end == len(path) || !isAlphanumeric(path[end])
		if beforeOK && afterOK {
			return true
		}
		i = j + 1
	}
}

func isAlphanumeric(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
