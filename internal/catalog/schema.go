// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package catalog

import (
	"strings"
)

// Field names used by the product catalog.
const (
	FieldProductDisplayName = "productDisplayName"
	FieldGender             = "gender"
	FieldMasterCategory     = "masterCategory"
	FieldSubCategory        = "subCategory"
	FieldArticleType        = "articleType"
	FieldSeason             = "season"
	FieldUsage              = "usage"
)

// Schema declares which column holds the free text and which columns are
// categorical. Categorical order determines feature vector layout.
type Schema struct {
	TextField         string
	CategoricalFields []string
}

// DefaultSchema is the fashion catalog schema.
var DefaultSchema = Schema{
	TextField: FieldProductDisplayName,
	CategoricalFields: []string{
		FieldGender,
		FieldMasterCategory,
		FieldSubCategory,
		FieldArticleType,
		FieldSeason,
		FieldUsage,
	},
}

// HasTextField reports whether the schema names a text column.
func (s Schema) HasTextField() bool {
	return strings.TrimSpace(s.TextField) != ""
}

// IsKnown reports whether name is the text field or one of the categoricals.
func (s Schema) IsKnown(name string) bool {
	if name == s.TextField {
		return true
	}
	for _, f := range s.CategoricalFields {
		if f == name {
			return true
		}
	}
	return false
}

// Row is one cleaned catalog entry. recommend.Service keeps its own deep
// copy, so callers may reuse or mutate rows after Initialize.
type Row struct {
	// Index is the dense position assigned at load time. The service
	// reassigns it to the row's position in the slice it was given.
	Index int

	// Text is the value of the schema's text field.
	Text string

	// Categories maps categorical field name to value. Missing fields are
	// simply absent from the map.
	Categories map[string]string

	// Extra holds every source column not covered by the schema.
	Extra map[string]string
}

// Category returns the trimmed value of a categorical field, or "" when the
// field is missing.
func (r Row) Category(field string) string {
	return strings.TrimSpace(r.Categories[field])
}

// Record flattens the row back into a column map. Schema columns take
// precedence over Extra on name collisions.
func (r Row) Record(schema Schema) map[string]string {
	out := make(map[string]string, len(r.Extra)+len(r.Categories)+1)
	for k, v := range r.Extra {
		out[k] = v
	}
	for _, f := range schema.CategoricalFields {
		if v, ok := r.Categories[f]; ok {
			out[f] = v
		}
	}
	out[schema.TextField] = r.Text
	return out
}

// Query is a recommendation request record. It has the same field names as
// a Row but carries no index. Text is a pointer so that an absent text field
// can be told apart from an empty one.
type Query struct {
	Text       *string
	Categories map[string]string
}

// NewQuery builds a query with the given text and categorical values.
func NewQuery(text string, categories map[string]string) Query {
	return Query{Text: &text, Categories: categories}
}

// Category returns the trimmed value of a categorical field, or "".
func (q Query) Category(field string) string {
	return strings.TrimSpace(q.Categories[field])
}

// HasText reports whether the text field is present at all.
func (q Query) HasText() bool {
	return q.Text != nil
}

// TextValue returns the text or "" when absent.
func (q Query) TextValue() string {
	if q.Text == nil {
		return ""
	}
	return *q.Text
}

// QueryFromRow turns a catalog row into an equivalent query.
func QueryFromRow(r Row) Query {
	cats := make(map[string]string, len(r.Categories))
	for k, v := range r.Categories {
		cats[k] = v
	}
	return NewQuery(r.Text, cats)
}

// QueryFromRecord builds a query from a flat column map using the schema.
// The text field is absent from the query when the key is missing from rec.
func QueryFromRecord(schema Schema, rec map[string]string) Query {
	q := Query{Categories: make(map[string]string, len(schema.CategoricalFields))}
	if v, ok := rec[schema.TextField]; ok {
		text := v
		q.Text = &text
	}
	for _, f := range schema.CategoricalFields {
		if v, ok := rec[f]; ok && strings.TrimSpace(v) != "" {
			q.Categories[f] = v
		}
	}
	return q
}
