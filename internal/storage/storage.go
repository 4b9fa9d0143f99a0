// Package storage persists run artifacts under one output directory: the
// catalog document, optional raw detail pages, screenshots, and the ICS
// export.
package storage

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/afriesen/classdir/internal/course"
)

const (
	catalogFile = "catalog.json"
	icsFile     = "catalog.ics"
	pagesDir    = "pages"
	shotsDir    = "shots"
)

// Storage handles persistence for one run's output directory.
type Storage struct {
	outDir string
}

// New creates the output directory if needed. A leading ~/ expands to the
// user's home directory.
func New(outDir string) (*Storage, error) {
	if strings.HasPrefix(outDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		outDir = filepath.Join(home, outDir[2:])
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Storage{outDir: outDir}, nil
}

// CatalogPath returns the location of the catalog document.
func (s *Storage) CatalogPath() string {
	return filepath.Join(s.outDir, catalogFile)
}

// SaveCatalog writes the catalog document.
func (s *Storage) SaveCatalog(cat *course.Catalog) error {
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if err := os.WriteFile(s.CatalogPath(), data, 0644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}

// LoadCatalog reads a previously saved catalog document.
func (s *Storage) LoadCatalog() (*course.Catalog, error) {
	data, err := os.ReadFile(s.CatalogPath())
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	var cat course.Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return &cat, nil
}

// SaveICS writes the ICS export next to the catalog.
func (s *Storage) SaveICS(data string) (string, error) {
	path := filepath.Join(s.outDir, icsFile)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return "", fmt.Errorf("writing calendar: %w", err)
	}
	return path, nil
}

// SavePage persists the raw HTML of one visited detail page under
// pages/<slug>.html.
func (s *Storage) SavePage(pageURL string, html []byte) error {
	dir := filepath.Join(s.outDir, pagesDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating pages directory: %w", err)
	}
	path := filepath.Join(dir, Slug(pageURL)+".html")
	if err := os.WriteFile(path, html, 0644); err != nil {
		return fmt.Errorf("writing raw page: %w", err)
	}
	return nil
}

// ScreenshotPath ensures the screenshot directory exists and returns the
// target path for one detail page's capture.
func (s *Storage) ScreenshotPath(pageURL string) (string, error) {
	dir := filepath.Join(s.outDir, shotsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating screenshots directory: %w", err)
	}
	return filepath.Join(dir, Slug(pageURL)+".png"), nil
}

// Slug derives a filesystem-safe name from a URL: the sanitized tail of
// its path plus a short hash of the full URL so distinct pages never
// collide.
func Slug(rawURL string) string {
	sum := sha1.Sum([]byte(rawURL))
	tail := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		tail = u.Path
	}

	var b strings.Builder
	for _, r := range strings.Trim(tail, "/") {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune('-')
		}
	}
	name := strings.Trim(b.String(), "-")
	if len(name) > 80 {
		name = name[:80]
	}
	if name == "" {
		return fmt.Sprintf("%x", sum[:6])
	}
	return fmt.Sprintf("%s-%x", name, sum[:6])
}
