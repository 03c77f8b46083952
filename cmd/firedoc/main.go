package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/fwojciec/firedoc"
	"github.com/fwojciec/firedoc/firecrawl"
	"github.com/fwojciec/firedoc/fs"
	"github.com/fwojciec/firedoc/goquery"
	"github.com/fwojciec/firedoc/htmltomarkdown"
	fdhttp "github.com/fwojciec/firedoc/http"
	"github.com/fwojciec/firedoc/readability"
	fdslog "github.com/fwojciec/firedoc/slog"
	"github.com/fwojciec/firedoc/sqlite"
	"github.com/fwojciec/firedoc/trafilatura"
	"github.com/fwojciec/firedoc/yaml"
)

// Environment variables read only by the CLI.
const (
	EnvConfig = "FIREDOC_CONFIG"
	EnvDB     = "FIREDOC_DB"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Getenv reads the environment. Set before calling Run().
	Getenv func(string) string

	// Database path. Empty selects FIREDOC_DB or ~/.firedoc/history.db.
	DBPath string

	// SQLite database used by the run history.
	DB *sqlite.DB

	// Services for end-to-end testing. Nil fields are built from config.
	Client firedoc.Client
	Tokens firedoc.TokenCounter
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Getenv: os.Getenv}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("firedoc"),
		kong.Description("Turn a documentation website into a single markdown file using Firecrawl."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		fmt.Fprintln(stderr, "error: no command specified. Run 'firedoc --help' to see available commands")
		return firedoc.Errorf(firedoc.EINVALID, "no command specified")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}
	if slices.Contains(args, "--help") || slices.Contains(args, "-h") {
		// Subcommand help; Exit is a no-op so the command must not run.
		_, _ = parser.Parse(args)
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return err
	}

	level := log.InfoLevel
	if cli.Verbose {
		level = log.DebugLevel
	}
	deps.Logger = slog.New(newLogHandler(stderr, level))

	cfg, err := m.loadConfig(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", errorMessage(err))
		return err
	}
	deps.Config = cfg

	isHistory := strings.HasPrefix(kongCtx.Command(), "history")

	// History is optional for crawl and extract: they run without it.
	m.DB = sqlite.NewDB(m.dbPath(cli.DB))
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set %s to use a different database path\n", EnvDB)
		if isHistory {
			fmt.Fprintf(stderr, "error: failed to open history database: %v\n", err)
			return err
		}
		deps.Logger.Warn("run history disabled", "err", err)
		m.DB = nil
	} else {
		defer m.Close()
		deps.Runs = sqlite.NewRunService(m.DB)
	}

	if !isHistory {
		client := m.Client
		if client == nil {
			client = firecrawl.NewClient(cfg.APIKey,
				firecrawl.WithBaseURL(cfg.APIURL),
				firecrawl.WithCrawlPollInterval(cfg.CrawlPollInterval),
			)
		}
		deps.Client = fdslog.NewLoggingClient(client, deps.Logger)
		deps.Writer = fdslog.NewLoggingDocumentWriter(fs.NewWriter(), deps.Logger)
		deps.Sitemaps = fdslog.NewLoggingSitemapService(fdhttp.NewSitemapService(nil), deps.Logger)
		if cli.Crawl.Extractor != "" {
			cfg.Extractor = cli.Crawl.Extractor
		}
		deps.Extractor = newExtractor(cfg.Extractor)
		deps.Converter = htmltomarkdown.NewConverter()
		deps.Titles = goquery.NewTitleFinder()
		deps.Tokens = m.Tokens
		if deps.Tokens == nil {
			deps.Tokens = &lazyTokenCounter{}
		}
	}

	return kongCtx.Run(deps)
}

// loadConfig layers defaults, the optional YAML file, and the environment.
// An explicitly named config file must exist.
func (m *Main) loadConfig(path string) (*firedoc.Config, error) {
	cfg := firedoc.DefaultConfig()
	if path == "" {
		path = m.getenv(EnvConfig)
	}
	if path != "" {
		if err := yaml.LoadConfig(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(m.getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (m *Main) getenv(key string) string {
	if m.Getenv == nil {
		return ""
	}
	return m.Getenv(key)
}

func (m *Main) dbPath(flag string) string {
	if flag != "" {
		return flag
	}
	if m.DBPath != "" {
		return m.DBPath
	}
	if path := m.getenv(EnvDB); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "firedoc.db"
	}
	dir := filepath.Join(home, ".firedoc")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "history.db")
}

// newExtractor returns the main-content extractor named by the config.
func newExtractor(name string) firedoc.Extractor {
	if name == firedoc.ExtractorReadability {
		return readability.NewExtractor()
	}
	return trafilatura.NewExtractor()
}

// newLogHandler returns a timestamped charmbracelet logger usable as an
// slog.Handler.
func newLogHandler(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
