package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/diskreport"
	"github.com/fwojciec/diskreport/batch"
	"github.com/fwojciec/diskreport/charmap"
	"github.com/fwojciec/diskreport/excelize"
	"github.com/fwojciec/diskreport/goquery"
	"github.com/fwojciec/diskreport/ledongthuc"
	"github.com/fwojciec/diskreport/pdf"
	"github.com/fwojciec/diskreport/pdfcpu"
	"github.com/fwojciec/diskreport/plaintext"
	drslog "github.com/fwojciec/diskreport/slog"
	"github.com/fwojciec/diskreport/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database and config file paths. Set before calling Run().
	DBPath     string
	ConfigPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	BatchService diskreport.BatchService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:     defaultDBPath(),
		ConfigPath: defaultConfigPath(),
	}
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
		kong.Name("diskreport"),
		kong.Description("Summarize disk diagnostic reports into a spreadsheet."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'diskreport --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	cfg, err := LoadConfig(m.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set DISKREPORT_CONFIG to use a different config file\n")
		return err
	}
	if cli.Verbose {
		cfg.LogLevel = "debug"
	}
	logger, err := newLogger(stderr, cfg.LogLevel)
	if err != nil {
		return err
	}
	deps.Logger = logger

	needsHistory := cmd == "history" || cmd == "show" || (cmd == "parse" && !cli.Parse.NoHistory)
	if needsHistory && m.BatchService == nil {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set DISKREPORT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()
		m.BatchService = drslog.NewLoggingBatchService(sqlite.NewBatchService(m.DB), logger)
	}
	if needsHistory {
		deps.Batches = m.BatchService
	}

	if cmd == "parse" {
		cfg = cli.Parse.apply(cfg)
		deps.Processor = newProcessor(cfg, deps.Batches, logger)
	}

	return kongCtx.Run(deps)
}

// newProcessor wires the parsers, writer and history into a batch processor.
// Every backend is wrapped in its logging decorator.
func newProcessor(cfg Config, batches diskreport.BatchService, logger *slog.Logger) *batch.Processor {
	decoder := charmap.NewDecoder()
	pdfParser := pdf.NewParser(logger,
		drslog.NewLoggingPDFTextExtractor(ledongthuc.NewExtractor(), logger),
		drslog.NewLoggingPDFTextExtractor(pdfcpu.NewExtractor(), logger),
	)

	return &batch.Processor{
		Parsers: diskreport.ParserSet{
			diskreport.FormatHTML: drslog.NewLoggingParser(goquery.NewParser(decoder, logger), logger),
			diskreport.FormatText: drslog.NewLoggingParser(plaintext.NewParser(decoder, logger), logger),
			diskreport.FormatPDF:  drslog.NewLoggingParser(pdfParser, logger),
		},
		Writer:      drslog.NewLoggingReportWriter(&excelize.Writer{MaxColumnWidth: cfg.MaxColumnWidth}, logger),
		Batches:     batches,
		OutputDir:   cfg.OutputDir,
		Concurrency: cfg.Concurrency,
	}
}

// newLogger builds a text logger on w at the named level.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, diskreport.Errorf(diskreport.EINVALID, "invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

func defaultDBPath() string {
	if path := os.Getenv("DISKREPORT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "diskreport.db"
	}
	dir := filepath.Join(home, ".diskreport")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "diskreport.db")
}

func defaultConfigPath() string {
	if path := os.Getenv("DISKREPORT_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".diskreport", "config.yaml")
}
