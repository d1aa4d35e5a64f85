// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

// Package commands implements the recommend CLI.
package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tomtom215/stylematch/internal/logging"
	"github.com/tomtom215/stylematch/internal/recommend"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// options holds the flags of one invocation.
type options struct {
	catalogPath string
	source      string
	table       string
	queryFile   string
	topN        int
	excludeSelf bool
	withScores  bool
	output      string
	logLevel    string
}

// NewRootCmd creates the recommend command.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "recommend [query-json | -]",
		Short: "Recommend products similar to a query record",
		Long: `Load a product catalog, fit the encoder and print the products most
similar to the query as a JSON array of records.

The query is a JSON object with productDisplayName and any of gender,
masterCategory, subCategory, articleType, season and usage. Pass it as
the argument, with --query-file, or on stdin with "-".

Examples:
  recommend '{"productDisplayName":"Navy Blue Shirt","gender":"Men"}'
  recommend --catalog styles.db --source sqlite --query-file query.json
  cat query.json | recommend - --top-n 10 --with-scores --output yaml`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logging.Init(logging.Config{
				Level:  opts.logLevel,
				Format: "console",
				Output: cmd.ErrOrStderr(),
			})
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecommend(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.catalogPath, "catalog", envOr("CATALOG_PATH", "styles.csv"), "Catalog file")
	f.StringVar(&opts.source, "source", envOr("CATALOG_SOURCE", "csv"), "Catalog source: csv, duckdb or sqlite")
	f.StringVar(&opts.table, "table", envOr("CATALOG_TABLE", "styles"), "Table to read from a database catalog")
	f.StringVar(&opts.queryFile, "query-file", "", "Read the query from a file")
	f.IntVar(&opts.topN, "top-n", recommend.DefaultTopN, "Number of products to return")
	f.BoolVar(&opts.excludeSelf, "exclude-self", false, "Drop catalog rows identical to the query")
	f.BoolVar(&opts.withScores, "with-scores", false, "Include row index and similarity score")
	f.StringVarP(&opts.output, "output", "o", FormatJSON, "Output format: json or yaml")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level written to stderr")

	cmd.AddCommand(NewVersionCmd())
	return cmd
}

// Execute runs the CLI and returns the process exit code. Errors are
// written to stderr as {"error": "..."}.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	// Flag defaults read the environment, so .env goes first.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		writeError(stderr, fmt.Errorf("reading .env: %w", err))
		return 1
	}

	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		writeError(stderr, err)
		return 1
	}
	return 0
}

func writeError(w io.Writer, err error) {
	data, mErr := json.Marshal(map[string]string{"error": err.Error()})
	if mErr != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "%s\n", data)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
