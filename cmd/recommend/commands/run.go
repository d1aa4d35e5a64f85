// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tomtom215/stylematch/internal/catalog"
	"github.com/tomtom215/stylematch/internal/config"
	"github.com/tomtom215/stylematch/internal/logging"
	"github.com/tomtom215/stylematch/internal/recommend"
)

var errNoQuery = errors.New("no query given: pass a JSON argument, --query-file, or - for stdin")

// scoredRecord is one --with-scores result.
type scoredRecord struct {
	Index   int               `json:"index" yaml:"index"`
	Score   float64           `json:"score" yaml:"score"`
	Product map[string]string `json:"product" yaml:"product"`
}

func runRecommend(cmd *cobra.Command, opts *options, args []string) error {
	if opts.output != FormatJSON && opts.output != FormatYAML {
		return fmt.Errorf("unknown output format %q", opts.output)
	}
	if opts.topN < 1 {
		return fmt.Errorf("%w: --top-n must be at least 1, got %d", recommend.ErrInvalidTopN, opts.topN)
	}

	raw, err := readQuery(cmd.InOrStdin(), opts.queryFile, args)
	if err != nil {
		return err
	}
	rec, err := catalog.DecodeRecord(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decoding query: %w", err)
	}

	ctx := cmd.Context()
	source, err := catalog.NewSource(&config.CatalogConfig{
		Source: opts.source,
		Path:   opts.catalogPath,
		Table:  opts.table,
	})
	if err != nil {
		return err
	}
	rows, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading %s: %w", source.Describe(), err)
	}

	cfg := recommend.DefaultConfig()
	cfg.ExcludeSelf = opts.excludeSelf
	cfg.MaxTopN = 0
	cfg.Cache.Enabled = false

	svc := recommend.New(cfg)
	if err := svc.Initialize(ctx, rows); err != nil {
		return err
	}

	res, err := svc.Recommend(ctx, catalog.QueryFromRecord(cfg.Schema, rec), opts.topN)
	if err != nil {
		return err
	}
	logging.Debug().
		Int("results", len(res.Items)).
		Str("fingerprint", res.Fingerprint).
		Msg("Recommendation complete")

	return writeResult(cmd.OutOrStdout(), opts, cfg.Schema, res)
}

// readQuery returns the query document from the argument, the query file
// or stdin ("-"), in that order of precedence.
func readQuery(stdin io.Reader, queryFile string, args []string) ([]byte, error) {
	switch {
	case queryFile != "" && len(args) > 0:
		return nil, errors.New("pass the query either as an argument or with --query-file, not both")
	case queryFile != "":
		data, err := os.ReadFile(queryFile)
		if err != nil {
			return nil, fmt.Errorf("reading query file: %w", err)
		}
		return data, nil
	case len(args) == 0:
		return nil, errNoQuery
	case args[0] == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	default:
		return []byte(args[0]), nil
	}
}

//nolint:gocritic // hugeParam: schema is small and read-only
func writeResult(w io.Writer, opts *options, schema catalog.Schema, res *recommend.Result) error {
	var out any
	if opts.withScores {
		scored := make([]scoredRecord, len(res.Items))
		for i, it := range res.Items {
			scored[i] = scoredRecord{Index: it.Index, Score: it.Score, Product: it.Row.Record(schema)}
		}
		out = scored
	} else {
		records := make([]map[string]string, len(res.Items))
		for i, it := range res.Items {
			records[i] = it.Row.Record(schema)
		}
		out = records
	}

	if opts.output == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	}

	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
