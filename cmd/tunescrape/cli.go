package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/tunescrape"
	tunehttp "github.com/fwojciec/tunescrape/http"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx            context.Context
	Stdout         io.Writer
	Stderr         io.Writer
	Logger         *slog.Logger
	Limiter        tunescrape.Limiter
	Requester      tunescrape.PageRequester
	Transcriptions tunescrape.TranscriptionFetcher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose   bool          `short:"v" env:"TUNESCRAPE_VERBOSE" help:"Log every request at debug level"`
	BaseURL   string        `name:"base-url" env:"TUNESCRAPE_BASE_URL" default:"${base_url}" help:"Special:Ask endpoint of the archive"`
	RPS       float64       `name:"rps" env:"TUNESCRAPE_RPS" default:"1" help:"Remote calls per second (0 disables the limit)"`
	Timeout   time.Duration `short:"t" env:"TUNESCRAPE_TIMEOUT" default:"30s" help:"Timeout per HTTP request"`
	UserAgent string        `name:"user-agent" env:"TUNESCRAPE_USER_AGENT" default:"${user_agent}" help:"User-Agent header for requests"`

	Harvest HarvestCmd `cmd:"" help:"Harvest tunes into per-partition shard files"`
	Scrape  ScrapeCmd  `cmd:"" help:"Walk the whole index into a single tunes file"`
	Concat  ConcatCmd  `cmd:"" help:"Concatenate cleaned transcriptions into a corpus"`
}

// vars are interpolated into CLI struct tags.
var vars = kong.Vars{
	"base_url":   tunehttp.DefaultBaseURL,
	"user_agent": tunehttp.DefaultUserAgent,
}

// HarvestCmd is the "harvest" subcommand.
type HarvestCmd struct {
	Dir       string `name:"shard-dir" short:"d" env:"TUNESCRAPE_SHARD_DIR" default:"tune-files" help:"Directory for shard files"`
	KeepGoing bool   `short:"k" env:"TUNESCRAPE_KEEP_GOING" help:"Skip failing partitions instead of stopping"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Output   string `short:"o" env:"TUNESCRAPE_TUNES_FILE" default:"tunes.json" help:"Output tunes file"`
	PageSize int    `name:"page-size" default:"20" help:"Index entries per request"`
}

// ConcatCmd is the "concat" subcommand.
type ConcatCmd struct {
	Dir       string `name:"shard-dir" short:"d" env:"TUNESCRAPE_SHARD_DIR" default:"tune-files" help:"Directory of shard files"`
	Output    string `short:"o" env:"TUNESCRAPE_CORPUS" default:"all-abcs.txt" help:"Output corpus file"`
	Condition string `short:"c" enum:"all,common-time,reels" default:"all" help:"Tunes to include (all, common-time, reels)"`
	Append    bool   `short:"a" help:"Append to the corpus instead of replacing it"`
	Dedup     bool   `help:"Drop tunes whose cleaned transcription was already written"`
}
