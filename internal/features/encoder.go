// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package features

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/tomtom215/stylematch/internal/catalog"
)

// Encoder is a fitted text plus categorical transformation. It is immutable
// after Fit and safe for concurrent use. Later changes to the catalog are
// not reflected; fit a new encoder instead.
type Encoder struct {
	schema catalog.Schema
	text   textModel
	fields []categoricalField
	layout Layout
}

// Fit learns the vocabulary and category mappings from rows. The result
// depends only on the rows and their order.
func Fit(rows []catalog.Row, schema catalog.Schema) (*Encoder, error) {
	if !schema.HasTextField() {
		return nil, ErrMissingRequiredField
	}
	if len(rows) == 0 {
		return nil, ErrEmptyCatalog
	}

	docs := make([][]string, len(rows))
	for i, r := range rows {
		if strings.TrimSpace(r.Text) == "" {
			return nil, fmt.Errorf("%w: %s is empty in row %d", ErrMissingRequiredField, schema.TextField, r.Index)
		}
		docs[i] = Tokenize(r.Text)
	}

	fields := make([]categoricalField, len(schema.CategoricalFields))
	observed := make([]string, len(rows))
	for fi, name := range schema.CategoricalFields {
		for i, r := range rows {
			observed[i] = r.Category(name)
		}
		fields[fi] = fitCategorical(name, observed)
	}

	e := &Encoder{
		schema: cloneSchema(schema),
		text:   fitText(docs),
		fields: fields,
	}
	e.layout = buildLayout(schema.TextField, &e.text, e.fields)
	return e, nil
}

func cloneSchema(s catalog.Schema) catalog.Schema {
	return catalog.Schema{
		TextField:         s.TextField,
		CategoricalFields: append([]string(nil), s.CategoricalFields...),
	}
}

func (e *Encoder) fitted() bool {
	return e != nil && e.text.index != nil
}

// Schema returns the schema the encoder was fitted with.
func (e *Encoder) Schema() catalog.Schema {
	if e == nil {
		return catalog.Schema{}
	}
	return cloneSchema(e.schema)
}

// Layout returns the vector layout.
func (e *Encoder) Layout() Layout {
	if e == nil {
		return Layout{}
	}
	return e.layout
}

// Dim returns the feature vector length.
func (e *Encoder) Dim() int {
	if e == nil {
		return 0
	}
	return e.layout.Dim
}

// Vocabulary returns a copy of the sorted text vocabulary.
func (e *Encoder) Vocabulary() []string {
	if e == nil {
		return nil
	}
	return append([]string(nil), e.text.Vocabulary...)
}

// Categories returns the sorted observed values of a categorical field.
func (e *Encoder) Categories(field string) ([]string, bool) {
	if e == nil {
		return nil, false
	}
	for i := range e.fields {
		if e.fields[i].Name == field {
			return append([]string(nil), e.fields[i].Values...), true
		}
	}
	return nil, false
}

// Transform encodes a query. Unknown terms contribute nothing and unknown
// or missing categories land in their field's unknown slot. A query whose
// text field is absent fails with ErrMissingRequiredField; text that yields
// no known terms produces an all-zero text segment.
func (e *Encoder) Transform(q catalog.Query) (Vector, error) {
	if !e.fitted() {
		return Vector{}, ErrNotFitted
	}
	if !q.HasText() {
		return Vector{}, fmt.Errorf("%w: %s", ErrMissingRequiredField, e.schema.TextField)
	}
	return e.encode(q.TextValue(), q.Category), nil
}

// TransformRow encodes a catalog row.
func (e *Encoder) TransformRow(r catalog.Row) (Vector, error) {
	if !e.fitted() {
		return Vector{}, ErrNotFitted
	}
	return e.encode(r.Text, r.Category), nil
}

func (e *Encoder) encode(text string, category func(string) string) Vector {
	idx, vals := e.text.weigh(Tokenize(text), e.layout.Text.Offset)

	indices := make([]int, len(idx), len(idx)+len(e.fields))
	values := make([]float64, len(vals), len(vals)+len(e.fields))
	copy(indices, idx)
	copy(values, vals)

	for i := range e.fields {
		f := &e.fields[i]
		indices = append(indices, e.layout.Fields[i].Offset+f.slot(category(f.Name)))
		values = append(values, 1)
	}

	return Vector{Dim: e.layout.Dim, Indices: indices, Values: values}
}

// TransformAll encodes rows in order. Work is split across workers
// goroutines (GOMAXPROCS when workers <= 0); the output does not depend on
// the worker count.
func (e *Encoder) TransformAll(ctx context.Context, rows []catalog.Row, workers int) (Matrix, error) {
	if !e.fitted() {
		return Matrix{}, ErrNotFitted
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(rows) {
		workers = len(rows)
	}

	out := Matrix{Dim: e.layout.Dim, Rows: make([]Vector, len(rows))}
	if len(rows) == 0 {
		return out, nil
	}

	chunk := (len(rows) + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < len(rows); start += chunk {
		end := min(start+chunk, len(rows))
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				if (i-start)%256 == 0 && ctx.Err() != nil {
					return
				}
				out.Rows[i] = e.encode(rows[i].Text, rows[i].Category)
			}
		}(start, end)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Matrix{}, err
	}
	return out, nil
}
