package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/tunescrape"
	"github.com/fwojciec/tunescrape/goquery"
	"github.com/fwojciec/tunescrape/harvest"
	tunehttp "github.com/fwojciec/tunescrape/http"
	tuneslog "github.com/fwojciec/tunescrape/slog"
	"github.com/fwojciec/tunescrape/text"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Services for end-to-end testing. Nil fields are built from flags.
	Requester      tunescrape.PageRequester
	Transcriptions tunescrape.TranscriptionFetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
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
		kong.Name("tunescrape"),
		kong.Description("Harvest tunes and ABC transcriptions from the Traditional Tune Archive"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		vars,
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'tunescrape --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Limiter = harvest.NewLimiter(cli.RPS)

	opts := []tunehttp.Option{
		tunehttp.WithTimeout(cli.Timeout),
		tunehttp.WithUserAgent(cli.UserAgent),
	}

	deps.Requester = m.Requester
	if deps.Requester == nil {
		deps.Requester = tuneslog.NewLoggingPageRequester(
			tunehttp.NewPageRequester(cli.BaseURL, opts...), deps.Logger)
	}

	deps.Transcriptions = m.Transcriptions
	if deps.Transcriptions == nil {
		fetcher := tuneslog.NewLoggingFetcher(tunehttp.NewFetcher(opts...), deps.Logger)
		defer fetcher.Close()

		deps.Transcriptions = &harvest.TranscriptionFetcher{
			Fetcher:        fetcher,
			Extractor:      goquery.NewPreExtractor(),
			Transliterator: text.NewTransliterator(),
		}
	}

	return kongCtx.Run(deps)
}
