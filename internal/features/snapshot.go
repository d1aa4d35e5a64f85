// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package features

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/stylematch/internal/catalog"
)

var (
	// ErrSnapshotNotFound is returned when no snapshot exists for a name.
	ErrSnapshotNotFound = errors.New("encoder snapshot not found")

	// ErrChecksumMismatch is returned when a snapshot's payload is corrupt.
	ErrChecksumMismatch = errors.New("encoder snapshot checksum mismatch")
)

const snapshotExt = ".gob.gz"

// SnapshotMeta describes a persisted encoder.
type SnapshotMeta struct {
	Name    string `json:"name"`
	Version int    `json:"version"`

	// Fingerprint is the catalog fingerprint the encoder was fitted on.
	Fingerprint string `json:"fingerprint"`

	Rows     int       `json:"rows"`
	Dim      int       `json:"dim"`
	FittedAt time.Time `json:"fitted_at"`
	SavedAt  time.Time `json:"saved_at"`

	// Checksum is the SHA-256 of the uncompressed gob payload.
	Checksum  string `json:"checksum"`
	SizeBytes int64  `json:"size_bytes"`
}

// encoderState is the gob form of an Encoder.
type encoderState struct {
	Schema     catalog.Schema
	Vocabulary []string
	IDF        []float64
	Fields     []fieldState
}

type fieldState struct {
	Name   string
	Values []string
}

type snapshotFile struct {
	Meta    SnapshotMeta
	Payload []byte
}

func (e *Encoder) state() encoderState {
	st := encoderState{
		Schema:     cloneSchema(e.schema),
		Vocabulary: e.text.Vocabulary,
		IDF:        e.text.IDF,
	}
	for _, f := range e.fields {
		st.Fields = append(st.Fields, fieldState{Name: f.Name, Values: f.Values})
	}
	return st
}

func encoderFromState(st encoderState) (*Encoder, error) {
	if len(st.Vocabulary) != len(st.IDF) {
		return nil, fmt.Errorf("snapshot: %d terms but %d idf weights", len(st.Vocabulary), len(st.IDF))
	}
	if len(st.Fields) != len(st.Schema.CategoricalFields) {
		return nil, fmt.Errorf("snapshot: %d fields but schema declares %d", len(st.Fields), len(st.Schema.CategoricalFields))
	}

	e := &Encoder{
		schema: st.Schema,
		text:   textModel{Vocabulary: st.Vocabulary, IDF: st.IDF},
	}
	e.text.buildIndex()
	for i, fs := range st.Fields {
		if fs.Name != st.Schema.CategoricalFields[i] {
			return nil, fmt.Errorf("snapshot: field %d is %q, schema says %q", i, fs.Name, st.Schema.CategoricalFields[i])
		}
		f := categoricalField{Name: fs.Name, Values: fs.Values}
		f.buildIndex()
		e.fields = append(e.fields, f)
	}
	e.layout = buildLayout(st.Schema.TextField, &e.text, e.fields)
	return e, nil
}

// SnapshotStore persists fitted encoders as versioned files named
// {name}_v{version}.gob.gz. Payloads are gob encoded, checksummed, then
// gzip compressed. Writes go to a temp file and are renamed into place.
type SnapshotStore struct {
	baseDir string
	mu      sync.RWMutex

	versions map[string]int
}

// NewSnapshotStore opens (creating if needed) a snapshot directory.
func NewSnapshotStore(baseDir string) (*SnapshotStore, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("create snapshot directory: %w", err)
	}

	s := &SnapshotStore{baseDir: baseDir, versions: make(map[string]int)}
	if err := s.scan(); err != nil {
		return nil, fmt.Errorf("scan snapshots: %w", err)
	}
	return s, nil
}

func (s *SnapshotStore) scan() error {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		name, version, ok := parseSnapshotFilename(entry.Name())
		if entry.IsDir() || !ok {
			continue
		}
		if version > s.versions[name] {
			s.versions[name] = version
		}
	}
	return nil
}

// parseSnapshotFilename splits "catalog_v12.gob.gz" into ("catalog", 12).
func parseSnapshotFilename(filename string) (string, int, bool) {
	base, ok := strings.CutSuffix(filename, snapshotExt)
	if !ok {
		return "", 0, false
	}
	i := strings.LastIndex(base, "_v")
	if i <= 0 {
		return "", 0, false
	}
	version, err := strconv.Atoi(base[i+2:])
	if err != nil || version <= 0 {
		return "", 0, false
	}
	return base[:i], version, true
}

func (s *SnapshotStore) path(name string, version int) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("%s_v%d%s", name, version, snapshotExt))
}

// Save writes enc as the next version of name and returns the stored
// metadata.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *SnapshotStore) Save(ctx context.Context, name string, enc *Encoder, meta SnapshotMeta) (SnapshotMeta, error) {
	if !enc.fitted() {
		return SnapshotMeta{}, ErrNotFitted
	}
	if err := ctx.Err(); err != nil {
		return SnapshotMeta{}, err
	}

	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(enc.state()); err != nil {
		return SnapshotMeta{}, fmt.Errorf("encode encoder: %w", err)
	}
	sum := sha256.Sum256(raw.Bytes())

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw.Bytes()); err != nil {
		return SnapshotMeta{}, fmt.Errorf("compress encoder: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return SnapshotMeta{}, fmt.Errorf("finalize compression: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	meta.Name = name
	meta.Version = s.versions[name] + 1
	meta.Dim = enc.Dim()
	meta.Checksum = hex.EncodeToString(sum[:])
	meta.SizeBytes = int64(compressed.Len())
	meta.SavedAt = time.Now().UTC()

	tmp, err := os.CreateTemp(s.baseDir, name+"-*.tmp")
	if err != nil {
		return SnapshotMeta{}, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op after a successful rename

	if err := gob.NewEncoder(tmp).Encode(snapshotFile{Meta: meta, Payload: compressed.Bytes()}); err != nil {
		_ = tmp.Close()
		return SnapshotMeta{}, fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return SnapshotMeta{}, fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, s.path(name, meta.Version)); err != nil {
		return SnapshotMeta{}, fmt.Errorf("install snapshot: %w", err)
	}

	s.versions[name] = meta.Version
	return meta, nil
}

// Load reads a snapshot. Version 0 means the latest.
func (s *SnapshotStore) Load(ctx context.Context, name string, version int) (*Encoder, *SnapshotMeta, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if version == 0 {
		v, ok := s.versions[name]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
		}
		version = v
	}

	sf, err := readSnapshotFile(s.path(name, version))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s v%d", ErrSnapshotNotFound, name, version)
		}
		return nil, nil, err
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.Payload))
	if err != nil {
		return nil, nil, fmt.Errorf("decompress snapshot: %w", err)
	}
	defer func() { _ = gzr.Close() }()

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, nil, fmt.Errorf("read decompressed snapshot: %w", err)
	}

	sum := sha256.Sum256(raw)
	if got := hex.EncodeToString(sum[:]); got != sf.Meta.Checksum {
		return nil, nil, fmt.Errorf("%w: expected %s, got %s", ErrChecksumMismatch, sf.Meta.Checksum, got)
	}

	var st encoderState
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&st); err != nil {
		return nil, nil, fmt.Errorf("decode snapshot: %w", err)
	}
	enc, err := encoderFromState(st)
	if err != nil {
		return nil, nil, err
	}
	return enc, &sf.Meta, nil
}

func readSnapshotFile(path string) (*snapshotFile, error) {
	f, err := os.Open(path) //nolint:gosec // path is built from the store directory and a validated name
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var sf snapshotFile
	if err := gob.NewDecoder(f).Decode(&sf); err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}
	return &sf, nil
}

// Latest returns the newest version number for name.
func (s *SnapshotStore) Latest(name string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.versions[name]
	return v, ok
}

// List returns metadata for every stored snapshot, newest first per name.
func (s *SnapshotStore) List(ctx context.Context) ([]SnapshotMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var out []SnapshotMeta
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, _, ok := parseSnapshotFilename(entry.Name()); entry.IsDir() || !ok {
			continue
		}
		sf, err := readSnapshotFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		out = append(out, sf.Meta)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Version > out[j].Version
	})
	return out, nil
}

// Prune deletes all but the newest keep versions of name.
func (s *SnapshotStore) Prune(ctx context.Context, name string, keep int) error {
	if keep < 1 {
		keep = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return fmt.Errorf("read directory: %w", err)
	}

	var versions []int
	for _, entry := range entries {
		n, v, ok := parseSnapshotFilename(entry.Name())
		if entry.IsDir() || !ok || n != name {
			continue
		}
		versions = append(versions, v)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(versions)))

	for i := keep; i < len(versions); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		_ = os.Remove(s.path(name, versions[i])) //nolint:errcheck // best-effort cleanup of old versions
	}
	return nil
}
