// Package config carries the run configuration. Values come from an
// optional YAML file with flag overrides applied by the CLI; core packages
// receive the resolved Config value and never read ambient state.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is everything one extraction run needs to know.
type Config struct {
	// ListingURL is the term listing page loaded in the browser.
	ListingURL string
	// FallbackURL is a direct, non-hash-routed variant of the listing,
	// fetched over plain HTTP when browser discovery finds nothing.
	// Empty disables the fallback.
	FallbackURL string
	// Term is the opaque term code filtered for in course URLs.
	Term string
	// Subject is a display label recorded in the catalog header.
	Subject string
	// SubjectMarker is the path substring identifying detail pages.
	SubjectMarker string
	// ListingFragment is the hash route that renders the listing.
	ListingFragment string

	// NavTimeout bounds each navigation and load-state wait.
	NavTimeout time.Duration
	// SettleDelay is the fixed pause after each network settle.
	SettleDelay time.Duration
	// VisitDelay is the politeness pause between detail-page visits.
	VisitDelay time.Duration

	// OutputDir receives the catalog and per-page artifacts.
	OutputDir string
	// SaveRawPages persists each detail page's HTML.
	SaveRawPages bool
	// SaveScreenshots captures each detail page.
	SaveScreenshots bool

	// Headless controls the browser mode.
	Headless bool
	// ContinueOnError records failed course visits as items with an
	// error marker instead of aborting the run.
	ContinueOnError bool
}

// Default returns the baseline configuration; site-specific values
// (ListingURL, Term) must still be supplied.
func Default() Config {
	return Config{
		SubjectMarker:   "/subj/",
		NavTimeout:      45 * time.Second,
		SettleDelay:     1500 * time.Millisecond,
		VisitDelay:      2 * time.Second,
		OutputDir:       "out",
		Headless:        true,
		ContinueOnError: true,
	}
}

// Validate checks that the run can actually start.
func (c Config) Validate() error {
	if c.ListingURL == "" {
		return fmt.Errorf("listing_url is required")
	}
	if c.Term == "" {
		return fmt.Errorf("term is required")
	}
	if c.SubjectMarker == "" {
		return fmt.Errorf("subject_marker is required")
	}
	return nil
}

// duration accepts YAML strings like "1500ms" or "45s".
type duration time.Duration

func (d *duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", raw, err)
	}
	*d = duration(v)
	return nil
}

// fileConfig mirrors Config for the YAML file. Pointer fields distinguish
// "absent, keep the default" from an explicit zero value.
type fileConfig struct {
	ListingURL      *string   `yaml:"listing_url"`
	FallbackURL     *string   `yaml:"fallback_url"`
	Term            *string   `yaml:"term"`
	Subject         *string   `yaml:"subject"`
	SubjectMarker   *string   `yaml:"subject_marker"`
	ListingFragment *string   `yaml:"listing_fragment"`
	NavTimeout      *duration `yaml:"nav_timeout"`
	SettleDelay     *duration `yaml:"settle_delay"`
	VisitDelay      *duration `yaml:"visit_delay"`
	OutputDir       *string   `yaml:"output_dir"`
	SaveRawPages    *bool     `yaml:"save_raw_pages"`
	SaveScreenshots *bool     `yaml:"save_screenshots"`
	Headless        *bool     `yaml:"headless"`
	ContinueOnError *bool     `yaml:"continue_on_error"`
}

// Load reads path and overlays its values on the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}

	setString(&cfg.ListingURL, fc.ListingURL)
	setString(&cfg.FallbackURL, fc.FallbackURL)
	setString(&cfg.Term, fc.Term)
	setString(&cfg.Subject, fc.Subject)
	setString(&cfg.SubjectMarker, fc.SubjectMarker)
	setString(&cfg.ListingFragment, fc.ListingFragment)
	setDuration(&cfg.NavTimeout, fc.NavTimeout)
	setDuration(&cfg.SettleDelay, fc.SettleDelay)
	setDuration(&cfg.VisitDelay, fc.VisitDelay)
	setString(&cfg.OutputDir, fc.OutputDir)
	setBool(&cfg.SaveRawPages, fc.SaveRawPages)
	setBool(&cfg.SaveScreenshots, fc.SaveScreenshots)
	setBool(&cfg.Headless, fc.Headless)
	setBool(&cfg.ContinueOnError, fc.ContinueOnError)

	return cfg, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(dst *time.Duration, src *duration) {
	if src != nil {
		*dst = time.Duration(*src)
	}
}
