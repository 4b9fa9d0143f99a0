package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/afriesen/classdir/internal/browser"
	"github.com/afriesen/classdir/internal/calendar"
	"github.com/afriesen/classdir/internal/config"
	"github.com/afriesen/classdir/internal/fetch"
	"github.com/afriesen/classdir/internal/scraper"
	"github.com/afriesen/classdir/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig          string
	flagListingURL      string
	flagFallbackURL     string
	flagTerm            string
	flagSubject         string
	flagSubjectMarker   string
	flagListingFragment string
	flagOutDir          string
	flagFormat          string
	flagICS             bool
	flagHeadless        bool
	flagSavePages       bool
	flagScreenshots     bool
	flagContinue        bool
	flagVerbose         bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	def := config.Default()

	cmd := &cobra.Command{
		Use:   "classdir",
		Short: "Extract a term's course catalog from a university directory site",
		Long: `A CLI tool that drives a headless browser through a course directory,
discovers every detail page for one term, normalizes each page's data
table into field records, and writes the assembled catalog as JSON.`,
		RunE: runScrape,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&flagListingURL, "listing-url", "", "Term listing page URL (required)")
	cmd.Flags().StringVar(&flagFallbackURL, "fallback-url", "", "Direct listing URL fetched when browser discovery finds nothing")
	cmd.Flags().StringVar(&flagTerm, "term", "", "Term code to filter course URLs by (required)")
	cmd.Flags().StringVar(&flagSubject, "subject", "", "Subject label recorded in the catalog")
	cmd.Flags().StringVar(&flagSubjectMarker, "subject-marker", def.SubjectMarker, "Path substring identifying detail pages")
	cmd.Flags().StringVar(&flagListingFragment, "listing-fragment", "", "Hash route that renders the listing")
	cmd.Flags().StringVar(&flagOutDir, "out-dir", def.OutputDir, "Output directory for the catalog and artifacts")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagICS, "ics", false, "Also write an iCalendar export of scheduled courses")
	cmd.Flags().BoolVar(&flagHeadless, "headless", def.Headless, "Run the browser headless")
	cmd.Flags().BoolVar(&flagSavePages, "save-pages", def.SaveRawPages, "Save each detail page's raw HTML")
	cmd.Flags().BoolVar(&flagScreenshots, "screenshots", def.SaveScreenshots, "Capture a screenshot of each detail page")
	cmd.Flags().BoolVar(&flagContinue, "continue-on-error", def.ContinueOnError, "Record failed course visits instead of aborting")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// runScrape is the main command logic
func runScrape(cmd *cobra.Command, args []string) error {
	setupLogging(flagVerbose)

	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := storage.New(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	session, err := browser.NewSession(cfg.Headless, cfg.NavTimeout)
	if err != nil {
		return fmt.Errorf("starting browser: %w", err)
	}
	defer session.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	sc := scraper.New(cfg, sessionVisitor{session}, fetch.New(cfg.NavTimeout), store)
	cat, err := sc.Run(ctx)
	if err != nil {
		return fmt.Errorf("running extraction: %w", err)
	}

	if err := store.SaveCatalog(cat); err != nil {
		return fmt.Errorf("saving catalog: %w", err)
	}
	log.Info().Str("path", store.CatalogPath()).Int("courses", len(cat.Courses)).Msg("catalog saved")

	if flagICS {
		path, err := store.SaveICS(calendar.Generate(cat, time.Now()))
		if err != nil {
			return fmt.Errorf("saving calendar: %w", err)
		}
		log.Info().Str("path", path).Msg("calendar saved")
	}

	if err := WriteOutput(os.Stdout, cat, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// resolveConfig layers the three configuration sources: defaults, then the
// optional YAML file, then any flag the user actually set.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("listing-url") {
		cfg.ListingURL = flagListingURL
	}
	if flags.Changed("fallback-url") {
		cfg.FallbackURL = flagFallbackURL
	}
	if flags.Changed("term") {
		cfg.Term = flagTerm
	}
	if flags.Changed("subject") {
		cfg.Subject = flagSubject
	}
	if flags.Changed("subject-marker") {
		cfg.SubjectMarker = flagSubjectMarker
	}
	if flags.Changed("listing-fragment") {
		cfg.ListingFragment = flagListingFragment
	}
	if flags.Changed("out-dir") {
		cfg.OutputDir = flagOutDir
	}
	if flags.Changed("headless") {
		cfg.Headless = flagHeadless
	}
	if flags.Changed("save-pages") {
		cfg.SaveRawPages = flagSavePages
	}
	if flags.Changed("screenshots") {
		cfg.SaveScreenshots = flagScreenshots
	}
	if flags.Changed("continue-on-error") {
		cfg.ContinueOnError = flagContinue
	}
	return cfg, nil
}

func setupLogging(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// sessionVisitor adapts the browser session to the scraper's page sources.
// Both roles are served by the same Open call; the returned page carries
// the full capability set either consumer needs.
type sessionVisitor struct {
	session *browser.Session
}

func (v sessionVisitor) OpenListing(ctx context.Context, url string) (scraper.ListingPage, error) {
	return v.session.Open(ctx, url)
}

func (v sessionVisitor) OpenCourse(ctx context.Context, url string) (scraper.CoursePage, error) {
	return v.session.Open(ctx, url)
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
