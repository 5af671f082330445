// Copyright 2026 The rvkc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	rvkc "github.com/fachref/rvkc"
	"github.com/fachref/rvkc/ai"
	"github.com/fachref/rvkc/ai/openai"
	"github.com/fachref/rvkc/batch"
	"github.com/fachref/rvkc/core"
	"github.com/fachref/rvkc/pica"
	"github.com/fachref/rvkc/rvk"
	"github.com/fachref/rvkc/search"
	"github.com/fachref/rvkc/storage/badger"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "rvkc",
		Usage: "RVK classification suggestions for PICA bibliographic records",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "rvk-url",
				Usage: "Base URL of the RVK JSON API",
				Value: rvk.DefaultBaseURL,
			},
			&cli.Float64Flag{
				Name:  "rate",
				Usage: "Maximum requests per second against the RVK API",
				Value: rvk.DefaultRateLimit,
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "classify",
				Usage:  "Classify a single PICA record from a file or stdin",
				Action: classifyCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Path to a PICA record file (defaults to stdin)",
					},
					&cli.StringFlag{
						Name:  "ai-host",
						Usage: "OpenAI-compatible host URL for concept extraction (heuristic extraction if unset)",
					},
					&cli.StringFlag{
						Name:  "ai-model",
						Usage: "Model name for concept extraction",
						Value: "qwen2.5:3b",
					},
					&cli.IntFlag{
						Name:  "max-results",
						Usage: "Maximum number of suggestions to print",
						Value: 10,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Worker pool size for subtree exploration (sequential if 0)",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Overall time limit for the classification",
						Value: 60 * time.Second,
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Persist the run to the database (requires --db)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the run as JSON instead of aligned text",
					},
				},
			},
			{
				Name:   "batch",
				Usage:  "Classify every record in a multi-record PICA file",
				Action: batchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to a multi-record PICA file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "ai-host",
						Usage: "OpenAI-compatible host URL for concept extraction (heuristic extraction if unset)",
					},
					&cli.StringFlag{
						Name:  "ai-model",
						Usage: "Model name for concept extraction",
						Value: "qwen2.5:3b",
					},
					&cli.IntFlag{
						Name:  "max-results",
						Usage: "Maximum number of suggestions per record",
						Value: 10,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of records classified concurrently",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 10,
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Persist each run to the database (requires --db)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Emit one JSON object per record (JSONL)",
					},
				},
			},
			{
				Name:      "lookup",
				Usage:     "Resolve a notation to its node and full ancestor path",
				ArgsUsage: "NOTATION",
				Action:    lookupCommand,
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Time limit for the lookup",
						Value: 30 * time.Second,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the node as JSON",
					},
				},
			},
			{
				Name:   "history",
				Usage:  "List recently stored classification runs",
				Action: historyCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of runs to list",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the runs as JSON",
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Run the classification HTTP service",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address",
						Value: ":8080",
					},
					&cli.StringFlag{
						Name:  "ai-host",
						Usage: "OpenAI-compatible host URL for concept extraction (heuristic extraction if unset)",
					},
					&cli.StringFlag{
						Name:  "ai-model",
						Usage: "Model name for concept extraction",
						Value: "qwen2.5:3b",
					},
					&cli.IntFlag{
						Name:  "max-results",
						Usage: "Maximum number of suggestions per request",
						Value: 10,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Worker pool size for subtree exploration (sequential if 0)",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Per-request time limit",
						Value: 60 * time.Second,
					},
				},
			},
		},
	}
}

func setup(c *cli.Context) error {
	// A missing .env is fine; flags and the process environment still apply.
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	return setupLogger(c)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

// buildClassifier assembles a classifier from the command's flags. The
// returned cleanup releases the classifier and, when persistence was
// requested, the database backend behind it.
func buildClassifier(c *cli.Context, persist bool, extra ...rvkc.Option) (*rvkc.Classifier, func(), error) {
	opts := []rvkc.Option{}
	if n := c.Int("max-results"); n > 0 {
		opts = append(opts, rvkc.WithSearchOptions(search.Options{MaxResults: n}))
	}
	if host := c.String("ai-host"); host != "" {
		config := ai.NewConfig(
			ai.WithHost(host),
			ai.WithModel(c.String("ai-model")),
			ai.WithToken(os.Getenv("RVKC_AI_TOKEN")),
		)
		config.Normalize()
		if err := config.Validate(); err != nil {
			return nil, nil, fmt.Errorf("invalid AI configuration: %w", err)
		}
		extractor, err := openai.NewConceptExtractor(config)
		if err != nil {
			return nil, nil, fmt.Errorf("create concept extractor: %w", err)
		}
		opts = append(opts, rvkc.WithExtractor(extractor))
	}

	var backend *badger.Backend
	if persist {
		dbPath := c.String("db")
		if dbPath == "" {
			return nil, nil, fmt.Errorf("--db is required to save runs")
		}
		b, err := badger.OpenBackend(dbPath, false)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		backend = b
		repo, err := badger.NewRunRepository(backend)
		if err != nil {
			backend.Close()
			return nil, nil, fmt.Errorf("create run repository: %w", err)
		}
		opts = append(opts, rvkc.WithRunRepository(repo))
	}
	opts = append(opts, extra...)

	client := rvk.NewClient(
		rvk.WithBaseURL(c.String("rvk-url")),
		rvk.WithRequestsPerSecond(c.Float64("rate")),
	)

	classifier, err := rvkc.NewClassifier(client, opts...)
	if err != nil {
		if backend != nil {
			backend.Close()
		}
		return nil, nil, fmt.Errorf("create classifier: %w", err)
	}

	cleanup := func() {
		classifier.Close()
		if backend != nil {
			backend.Close()
		}
	}
	return classifier, cleanup, nil
}

func classifyCommand(c *cli.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.Duration("timeout"))
	defer cancel()

	rec, err := readRecord(c.String("file"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("read record: %v", err), 1)
	}

	var extra []rvkc.Option
	if n := c.Int("workers"); n > 0 {
		extra = append(extra, rvkc.WithWorkers(n))
	}
	classifier, cleanup, err := buildClassifier(c, c.Bool("save"), extra...)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer cleanup()

	run, err := classifier.ClassifyRecord(ctx, rec)
	if err != nil {
		return cli.Exit(fmt.Sprintf("classify record: %v", err), 1)
	}

	if c.Bool("json") {
		return writeJSON(os.Stdout, runPayload(run))
	}
	printRun(os.Stdout, run)
	return nil
}

func batchCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	records, err := readRecords(c.String("file"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("read records: %v", err), 1)
	}
	if len(records) == 0 {
		return cli.Exit("no records found", 1)
	}

	classifier, cleanup, err := buildClassifier(c, c.Bool("save"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer cleanup()

	batchOpts := []batch.Option{
		batch.WithProgress(batch.NewProgressTracker(os.Stderr, len(records), c.Int("report-interval"))),
	}
	if n := c.Int("workers"); n > 0 {
		batchOpts = append(batchOpts, batch.WithPoolSize(n))
	}
	processor, err := batch.NewProcessor(classifier, batchOpts...)
	if err != nil {
		return cli.Exit(fmt.Sprintf("create processor: %v", err), 1)
	}
	defer processor.Release()

	outcomes := processor.Run(ctx, records)

	encoder := json.NewEncoder(os.Stdout)
	failures := 0
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failures++
			if c.Bool("json") {
				if err := encoder.Encode(batchLine{Index: outcome.Index, Error: outcome.Err.Error()}); err != nil {
					return cli.Exit(fmt.Sprintf("encode outcome: %v", err), 1)
				}
			} else {
				fmt.Fprintf(os.Stderr, "record %d: %v\n", outcome.Index+1, outcome.Err)
			}
			continue
		}
		if c.Bool("json") {
			run := runPayload(outcome.Run)
			if err := encoder.Encode(batchLine{Index: outcome.Index, Run: &run}); err != nil {
				return cli.Exit(fmt.Sprintf("encode outcome: %v", err), 1)
			}
		} else {
			printRunSummary(os.Stdout, outcome.Run)
		}
	}

	if failures > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d records failed", failures, len(outcomes)), 1)
	}
	return nil
}

func lookupCommand(c *cli.Context) error {
	notation := strings.TrimSpace(c.Args().First())
	if notation == "" {
		return cli.Exit("usage: rvkc lookup NOTATION", 1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.Duration("timeout"))
	defer cancel()

	classifier, cleanup, err := buildClassifier(c, false)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer cleanup()

	node, path, err := classifier.Lookup(ctx, notation)
	if errors.Is(err, core.ErrNotFound) {
		return cli.Exit(fmt.Sprintf("unknown notation %q", notation), 1)
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("lookup %s: %v", notation, err), 1)
	}

	if c.Bool("json") {
		return writeJSON(os.Stdout, nodePayload(node, path))
	}
	fmt.Printf("%s  %s\n", node.Notation, node.Label)
	fmt.Printf("Depth: %d\n", node.Depth)
	fmt.Printf("Path:  %s\n", strings.Join(path, " / "))
	if node.HasChildren {
		fmt.Println("Has children: yes")
	} else {
		fmt.Println("Has children: no")
	}
	return nil
}

func historyCommand(c *cli.Context) error {
	dbPath := c.String("db")
	if dbPath == "" {
		return cli.Exit("--db is required", 1)
	}

	backend, err := badger.OpenBackend(dbPath, false)
	if err != nil {
		return cli.Exit(fmt.Sprintf("open database: %v", err), 1)
	}
	defer backend.Close()

	repo, err := badger.NewRunRepository(backend)
	if err != nil {
		return cli.Exit(fmt.Sprintf("create run repository: %v", err), 1)
	}

	runs, err := repo.RecentRuns(context.Background(), c.Int("limit"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("list runs: %v", err), 1)
	}

	if c.Bool("json") {
		payload := make([]runResponse, 0, len(runs))
		for _, run := range runs {
			payload = append(payload, runPayload(run))
		}
		return writeJSON(os.Stdout, payload)
	}

	for _, run := range runs {
		top := "no match"
		if len(run.Results) > 0 {
			top = fmt.Sprintf("%s (%.2f)", run.Results[0].Notation, run.Results[0].Confidence)
		}
		fmt.Printf("%s  %016x  %-50s  %s\n",
			run.CreatedAt.Local().Format("2006-01-02 15:04:05"), uint64(run.ID), run.Title, top)
	}
	return nil
}

// readRecord parses a single PICA record from the named file, or from
// stdin when path is empty.
func readRecord(path string) (*core.Record, error) {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return pica.Parse(r)
}

// readRecords parses a multi-record PICA file. Unparseable blocks are
// reported on stderr and skipped rather than aborting the whole batch.
func readRecords(path string) ([]*core.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	blocks, err := pica.SplitRecords(f)
	if err != nil {
		return nil, err
	}

	records := make([]*core.Record, 0, len(blocks))
	for i, block := range blocks {
		rec, err := pica.Parse(strings.NewReader(block))
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping record %d: %v\n", i+1, err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func printRun(w io.Writer, run *core.ClassificationRun) {
	fmt.Fprintf(w, "Title: %s\n", run.Title)
	fmt.Fprintln(w, "Concepts:")
	for _, concept := range run.Concepts {
		if concept.Normalized != "" && concept.Normalized != concept.Text {
			fmt.Fprintf(w, "  %s -> %s (%s)\n", concept.Text, concept.Normalized, concept.Kind)
			continue
		}
		fmt.Fprintf(w, "  %s (%s)\n", concept.Text, concept.Kind)
	}
	if len(run.Results) == 0 {
		fmt.Fprintln(w, "No classification found.")
		return
	}
	fmt.Fprintln(w, "Results:")
	for _, res := range run.Results {
		fmt.Fprintf(w, "  %-12s %4.2f  %s\n", res.Notation, res.Confidence, strings.Join(res.Path, " / "))
	}
}

func printRunSummary(w io.Writer, run *core.ClassificationRun) {
	if len(run.Results) == 0 {
		fmt.Fprintf(w, "%s: no classification found\n", run.Title)
		return
	}
	top := run.Results[0]
	fmt.Fprintf(w, "%s: %s (%.2f)\n", run.Title, top.Notation, top.Confidence)
}

func writeJSON(w io.Writer, payload any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return cli.Exit(fmt.Sprintf("encode output: %v", err), 1)
	}
	return nil
}
