// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/stylematch/internal/cache"
	"github.com/tomtom215/stylematch/internal/catalog"
	"github.com/tomtom215/stylematch/internal/features"
	"github.com/tomtom215/stylematch/internal/logging"
	"github.com/tomtom215/stylematch/internal/metrics"
	"github.com/tomtom215/stylematch/internal/ranking"
)

// snapshot is everything Recommend needs. It is never mutated after
// publication.
type snapshot struct {
	rows        []catalog.Row
	encoder     *features.Encoder
	matrix      features.Matrix
	fingerprint string
	fittedAt    time.Time
	generation  int64
	restored    bool

	// byText maps trimmed row text to catalog indices for ExcludeSelf.
	byText map[string][]int
}

// Service answers recommendation queries against the current catalog
// snapshot. It is safe for concurrent use.
type Service struct {
	cfg Config

	current atomic.Pointer[snapshot]

	// initMu serializes Initialize; readers never take it.
	initMu sync.Mutex

	responses *cache.LRU[*Result]
	snapshots *features.SnapshotStore
}

// New creates a service. Invalid settings fall back to their defaults;
// call cfg.Validate first to reject them instead.
//
//nolint:gocritic // cfg passed by value so the service owns its copy
func New(cfg Config) *Service {
	def := DefaultConfig()
	if !cfg.Schema.HasTextField() {
		cfg.Schema = def.Schema
	}
	if cfg.DefaultTopN < 1 {
		cfg.DefaultTopN = def.DefaultTopN
	}
	if cfg.Snapshot.Name == "" {
		cfg.Snapshot.Name = def.Snapshot.Name
	}

	s := &Service{cfg: cfg}
	if cfg.Cache.Enabled {
		s.responses = cache.NewLRU[*Result](cfg.Cache.Size, cfg.Cache.TTL)
	}
	if cfg.Snapshot.Dir != "" {
		store, err := features.NewSnapshotStore(cfg.Snapshot.Dir)
		if err != nil {
			logging.Warn().
				Str("component", "recommend").
				Str("dir", cfg.Snapshot.Dir).
				Err(err).
				Msg("Encoder snapshots disabled")
		} else {
			s.snapshots = store
		}
	}
	return s
}

// Initialize fits the encoder on rows, encodes the catalog and publishes
// the result. Calls are serialized. On failure the previous snapshot stays
// in place.
//
// The service keeps its own copy of rows. Each stored row's Index is its
// position in rows, whatever the caller set.
func (s *Service) Initialize(ctx context.Context, rows []catalog.Row) error {
	s.initMu.Lock()
	defer s.initMu.Unlock()
	return s.initialize(ctx, rows)
}

// TryInitialize is Initialize without waiting: it returns
// ErrReloadInProgress if another initialize is running.
func (s *Service) TryInitialize(ctx context.Context, rows []catalog.Row) error {
	if !s.initMu.TryLock() {
		return ErrReloadInProgress
	}
	defer s.initMu.Unlock()
	return s.initialize(ctx, rows)
}

func (s *Service) initialize(ctx context.Context, rows []catalog.Row) error {
	start := time.Now()
	logger := logging.Ctx(ctx).With().Str("component", "recommend").Logger()

	if err := ctx.Err(); err != nil {
		return err
	}

	rows = ownRows(rows)
	fingerprint := catalog.Fingerprint(s.cfg.Schema, rows)
	enc, restored := s.restoreEncoder(ctx, fingerprint)
	if enc == nil {
		var err error
		enc, err = features.Fit(rows, s.cfg.Schema)
		if err != nil {
			return fmt.Errorf("fit encoder: %w", err)
		}
	}

	matrix, err := enc.TransformAll(ctx, rows, s.cfg.Workers)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	snap := &snapshot{
		rows:        rows,
		encoder:     enc,
		matrix:      matrix,
		fingerprint: fingerprint,
		fittedAt:    time.Now().UTC(),
		restored:    restored,
		byText:      indexByText(rows),
	}
	if prev := s.current.Load(); prev != nil {
		snap.generation = prev.generation + 1
	} else {
		snap.generation = 1
	}

	if !restored {
		s.persistEncoder(ctx, snap)
	}

	s.current.Store(snap)
	if s.responses != nil {
		s.responses.Purge()
	}

	logger.Info().
		Int("rows", len(rows)).
		Int("dim", enc.Dim()).
		Int("vocabulary", len(enc.Vocabulary())).
		Bool("from_snapshot", restored).
		Int64("generation", snap.generation).
		Dur("duration", time.Since(start)).
		Msg("Catalog initialized")

	return nil
}

// restoreEncoder returns a persisted encoder fitted on the same catalog, or
// nil.
func (s *Service) restoreEncoder(ctx context.Context, fingerprint string) (*features.Encoder, bool) {
	if s.snapshots == nil {
		return nil, false
	}
	enc, meta, err := s.snapshots.Load(ctx, s.cfg.Snapshot.Name, 0)
	if err != nil {
		logging.Ctx(ctx).Debug().
			Str("component", "recommend").
			Err(err).
			Msg("No usable encoder snapshot")
		return nil, false
	}
	if meta.Fingerprint != fingerprint {
		return nil, false
	}
	return enc, true
}

func (s *Service) persistEncoder(ctx context.Context, snap *snapshot) {
	if s.snapshots == nil {
		return
	}
	meta, err := s.snapshots.Save(ctx, s.cfg.Snapshot.Name, snap.encoder, features.SnapshotMeta{
		Fingerprint: snap.fingerprint,
		Rows:        len(snap.rows),
		FittedAt:    snap.fittedAt,
	})
	if err != nil {
		logging.Ctx(ctx).Warn().
			Str("component", "recommend").
			Err(err).
			Msg("Failed to persist encoder snapshot")
		return
	}
	if s.cfg.Snapshot.Keep > 0 {
		if err := s.snapshots.Prune(ctx, s.cfg.Snapshot.Name, s.cfg.Snapshot.Keep); err != nil {
			logging.Ctx(ctx).Warn().Str("component", "recommend").Err(err).Msg("Failed to prune encoder snapshots")
		}
	}
	logging.Ctx(ctx).Debug().
		Str("component", "recommend").
		Int("version", meta.Version).
		Int64("size_bytes", meta.SizeBytes).
		Msg("Encoder snapshot saved")
}

// ownRows copies rows, including their maps, and sets each Index to the
// row's position. The snapshot never shares state with the caller, and
// Index always addresses both rows and the feature matrix.
func ownRows(rows []catalog.Row) []catalog.Row {
	out := make([]catalog.Row, len(rows))
	for i, r := range rows {
		out[i] = catalog.Row{
			Index:      i,
			Text:       r.Text,
			Categories: maps.Clone(r.Categories),
			Extra:      maps.Clone(r.Extra),
		}
	}
	return out
}

func indexByText(rows []catalog.Row) map[string][]int {
	m := make(map[string][]int, len(rows))
	for i, r := range rows {
		key := strings.TrimSpace(r.Text)
		m[key] = append(m[key], i)
	}
	return m
}

// Recommend returns the topN catalog rows most similar to q. A topN of 0
// means the configured default; negative values fail with ErrInvalidTopN.
func (s *Service) Recommend(ctx context.Context, q catalog.Query, topN int) (*Result, error) {
	start := time.Now()

	res, err := s.recommend(ctx, q, topN)
	status := metrics.StatusOK
	switch {
	case err == nil:
	case isInvalid(err):
		status = metrics.StatusInvalid
	case errors.Is(err, ErrServiceNotInitialized):
		status = metrics.StatusNotInitialized
	default:
		status = metrics.StatusError
	}
	metrics.RecordRecommend(status, time.Since(start))
	return res, err
}

func (s *Service) recommend(ctx context.Context, q catalog.Query, topN int) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := s.current.Load()
	if snap == nil {
		return nil, ErrServiceNotInitialized
	}

	n, err := s.effectiveTopN(topN)
	if err != nil {
		return nil, err
	}
	if !q.HasText() {
		return nil, fmt.Errorf("%w: %s is required", ErrInvalidQuery, s.cfg.Schema.TextField)
	}

	key := s.cacheKey(q, n)
	if s.responses != nil {
		cached, ok := s.responses.Get(key)
		metrics.RecordCacheLookup(ok)
		// A purge races with in-flight requests; only trust entries from
		// the snapshot this request would have used.
		if ok && cached.Fingerprint == snap.fingerprint {
			out := *cached
			out.Items = append([]Item(nil), cached.Items...)
			out.CacheHit = true
			return &out, nil
		}
	}

	qv, err := snap.encoder.Transform(q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}

	var opts []ranking.Option
	if s.cfg.ExcludeSelf {
		if self := s.selfMatches(snap, q); len(self) > 0 {
			opts = append(opts, ranking.ExcludeIndex(self...))
		}
	}

	matches, err := ranking.TopN(qv, snap.matrix, n, opts...)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Items:       make([]Item, len(matches)),
		TopN:        n,
		Fingerprint: snap.fingerprint,
	}
	for i, m := range matches {
		res.Items[i] = Item{Index: m.Index, Score: m.Score, Row: snap.rows[m.Index]}
	}

	if s.responses != nil {
		stored := *res
		stored.Items = append([]Item(nil), res.Items...)
		s.responses.Add(key, &stored)
	}

	logging.Ctx(ctx).Debug().
		Str("component", "recommend").
		Int("top_n", n).
		Int("returned", len(res.Items)).
		Msg("Recommendation complete")

	return res, nil
}

func (s *Service) effectiveTopN(topN int) (int, error) {
	switch {
	case topN < 0:
		return 0, fmt.Errorf("%w: got %d", ErrInvalidTopN, topN)
	case topN == 0:
		topN = s.cfg.DefaultTopN
	}
	if s.cfg.MaxTopN > 0 && topN > s.cfg.MaxTopN {
		topN = s.cfg.MaxTopN
	}
	return topN, nil
}

// selfMatches returns catalog rows equal to q on the text field and every
// categorical field.
func (s *Service) selfMatches(snap *snapshot, q catalog.Query) []int {
	var out []int
	for _, idx := range snap.byText[strings.TrimSpace(q.TextValue())] {
		r := snap.rows[idx]
		same := true
		for _, f := range s.cfg.Schema.CategoricalFields {
			if r.Category(f) != q.Category(f) {
				same = false
				break
			}
		}
		if same {
			out = append(out, idx)
		}
	}
	return out
}

// cacheKey is the trimmed text, the schema's categorical values in sorted
// field order, and n. Every part is length-prefixed so distinct queries
// never share a key.
func (s *Service) cacheKey(q catalog.Query, n int) string {
	fields := append([]string(nil), s.cfg.Schema.CategoricalFields...)
	sort.Strings(fields)

	var b strings.Builder
	part := func(v string) {
		b.WriteString(strconv.Itoa(len(v)))
		b.WriteByte(':')
		b.WriteString(v)
	}
	part(strings.TrimSpace(q.TextValue()))
	for _, f := range fields {
		part(f)
		part(q.Category(f))
	}
	part(strconv.Itoa(n))
	return b.String()
}

// Status reports on the published snapshot.
func (s *Service) Status() Status {
	snap := s.current.Load()
	if snap == nil {
		return Status{}
	}
	st := Status{
		Initialized:    true,
		Rows:           len(snap.rows),
		Dim:            snap.encoder.Dim(),
		VocabularySize: len(snap.encoder.Vocabulary()),
		Fingerprint:    snap.fingerprint,
		FittedAt:       snap.fittedAt,
		Generation:     snap.generation,
		FromSnapshot:   snap.restored,
	}
	if s.responses != nil {
		st.CacheEntries = s.responses.Len()
	}
	return st
}

// Ready reports whether a snapshot has been published.
func (s *Service) Ready() bool {
	return s.current.Load() != nil
}

// Encoder returns the encoder of the published snapshot, or nil.
func (s *Service) Encoder() *features.Encoder {
	if snap := s.current.Load(); snap != nil {
		return snap.encoder
	}
	return nil
}

func isInvalid(err error) bool {
	return errors.Is(err, ErrInvalidQuery) || errors.Is(err, ErrInvalidTopN)
}
