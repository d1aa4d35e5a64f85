// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package features

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/tomtom215/stylematch/internal/catalog"
)

const epsilon = 1e-12

func row(i int, text string, cats map[string]string) catalog.Row {
	return catalog.Row{Index: i, Text: text, Categories: cats}
}

func shirtCatalog() []catalog.Row {
	men := func() map[string]string { return map[string]string{catalog.FieldGender: "Men"} }
	return []catalog.Row{
		row(0, "red cotton shirt", men()),
		row(1, "red cotton shirt", men()),
		row(2, "blue jeans", men()),
	}
}

func fashionCatalog() []catalog.Row {
	return []catalog.Row{
		row(0, "Turtle Check Men Navy Blue Shirt", map[string]string{
			catalog.FieldGender: "Men", catalog.FieldMasterCategory: "Apparel", catalog.FieldSubCategory: "Topwear",
			catalog.FieldArticleType: "Shirts", catalog.FieldSeason: "Fall", catalog.FieldUsage: "Casual",
		}),
		row(1, "Peter England Men Party Blue Jeans", map[string]string{
			catalog.FieldGender: "Men", catalog.FieldMasterCategory: "Apparel", catalog.FieldSubCategory: "Bottomwear",
			catalog.FieldArticleType: "Jeans", catalog.FieldSeason: "Summer", catalog.FieldUsage: "Casual",
		}),
		row(2, "Titan Women Silver Watch", map[string]string{
			catalog.FieldGender: "Women", catalog.FieldMasterCategory: "Accessories", catalog.FieldSubCategory: "Watches",
			catalog.FieldArticleType: "Watches", catalog.FieldSeason: "Winter",
		}),
		row(3, "Manchester United Men Solid Black Track Pants", map[string]string{
			catalog.FieldGender: "Men", catalog.FieldMasterCategory: "Apparel", catalog.FieldSubCategory: "Bottomwear",
			catalog.FieldArticleType: "Track Pants", catalog.FieldSeason: "Fall", catalog.FieldUsage: "Casual",
		}),
	}
}

func mustFit(t *testing.T, rows []catalog.Row) *Encoder {
	t.Helper()
	enc, err := Fit(rows, catalog.DefaultSchema)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	return enc
}

func TestFit_Errors(t *testing.T) {
	tests := []struct {
		name    string
		rows    []catalog.Row
		schema  catalog.Schema
		wantErr error
	}{
		{"empty catalog", nil, catalog.DefaultSchema, ErrEmptyCatalog},
		{"schema without text field", shirtCatalog(), catalog.Schema{CategoricalFields: []string{"gender"}}, ErrMissingRequiredField},
		{"row with empty text", []catalog.Row{row(0, "shirt", nil), row(1, "  ", nil)}, catalog.DefaultSchema, ErrMissingRequiredField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := Fit(tt.rows, tt.schema)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Fit() error = %v, want %v", err, tt.wantErr)
			}
			if enc != nil {
				t.Error("Fit() returned an encoder alongside an error")
			}
		})
	}
}

func TestFit_VocabularyAndLayout(t *testing.T) {
	enc := mustFit(t, shirtCatalog())

	wantVocab := []string{"blue", "cotton", "jeans", "red", "shirt"}
	if got := enc.Vocabulary(); !reflect.DeepEqual(got, wantVocab) {
		t.Errorf("Vocabulary() = %v, want %v", got, wantVocab)
	}

	genders, ok := enc.Categories(catalog.FieldGender)
	if !ok || !reflect.DeepEqual(genders, []string{"Men"}) {
		t.Errorf("Categories(gender) = %v, %v", genders, ok)
	}
	if usage, ok := enc.Categories(catalog.FieldUsage); !ok || len(usage) != 0 {
		t.Errorf("Categories(usage) = %v, %v, want empty (only unknown slot)", usage, ok)
	}
	if _, ok := enc.Categories("baseColour"); ok {
		t.Error("Categories(baseColour) should not exist")
	}

	// 5 terms + gender(Men, ?) + five fields with only the unknown slot.
	if enc.Dim() != 5+2+5 {
		t.Errorf("Dim() = %d, want 12", enc.Dim())
	}

	layout := enc.Layout()
	if layout.Text.Offset != 0 || layout.Text.Width != 5 || layout.Text.Unknown != -1 {
		t.Errorf("text segment = %+v", layout.Text)
	}
	gender, ok := layout.Field(catalog.FieldGender)
	if !ok || gender.Offset != 5 || gender.Width != 2 || gender.Unknown != 6 {
		t.Errorf("gender segment = %+v", gender)
	}
	usage, _ := layout.Field(catalog.FieldUsage)
	if usage.End() != layout.Dim {
		t.Errorf("last segment ends at %d, Dim = %d", usage.End(), layout.Dim)
	}
}

func TestTransform_TFIDFWeights(t *testing.T) {
	enc := mustFit(t, shirtCatalog())

	v, err := enc.Transform(catalog.NewQuery("red cotton shirt", map[string]string{catalog.FieldGender: "Men"}))
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}

	// cotton, red and shirt each appear in 2 of 3 docs, so they share one
	// weight and normalize to 1/sqrt(3).
	want := 1 / math.Sqrt(3)
	for _, term := range []int{1, 3, 4} {
		if got := v.At(term); math.Abs(got-want) > epsilon {
			t.Errorf("weight[%d] = %v, want %v", term, got, want)
		}
	}
	if v.At(0) != 0 || v.At(2) != 0 {
		t.Error("absent terms must have zero weight")
	}
	if v.At(5) != 1 {
		t.Errorf("gender=Men slot = %v, want 1", v.At(5))
	}

	// Mixed document frequencies: "blue" (df=1) outweighs "shirt" (df=2).
	mixed, _ := enc.Transform(catalog.NewQuery("blue shirt", nil))
	idfRare := math.Log(4.0/2.0) + 1
	idfCommon := math.Log(4.0/3.0) + 1
	norm := math.Hypot(idfRare, idfCommon)
	if got := mixed.At(0); math.Abs(got-idfRare/norm) > epsilon {
		t.Errorf("blue weight = %v, want %v", got, idfRare/norm)
	}
	if got := mixed.At(4); math.Abs(got-idfCommon/norm) > epsilon {
		t.Errorf("shirt weight = %v, want %v", got, idfCommon/norm)
	}

	// Repeated terms scale raw counts before normalization.
	repeated, _ := enc.Transform(catalog.NewQuery("red red shirt", nil))
	if r, s := repeated.At(3), repeated.At(4); math.Abs(r-2*s) > epsilon {
		t.Errorf("red = %v, shirt = %v, want red = 2*shirt", r, s)
	}
}

func TestTransform_TextSegmentIsUnitLength(t *testing.T) {
	enc := mustFit(t, fashionCatalog())
	layout := enc.Layout()

	for _, r := range fashionCatalog() {
		v, err := enc.TransformRow(r)
		if err != nil {
			t.Fatalf("TransformRow() error = %v", err)
		}
		var sum float64
		for k, i := range v.Indices {
			if layout.Text.Contains(i) {
				sum += v.Values[k] * v.Values[k]
			}
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("row %d text segment squared norm = %v, want 1", r.Index, sum)
		}
	}
}

func TestTransform_Determinism(t *testing.T) {
	a := mustFit(t, fashionCatalog())
	b := mustFit(t, fashionCatalog())

	if !reflect.DeepEqual(a.Layout(), b.Layout()) {
		t.Fatal("two fits of the same catalog produced different layouts")
	}

	queries := []catalog.Query{
		catalog.NewQuery("Men Blue Shirt", map[string]string{catalog.FieldGender: "Men"}),
		catalog.NewQuery("silver watch", map[string]string{catalog.FieldSeason: "Winter", catalog.FieldUsage: "Formal"}),
		catalog.NewQuery("", nil),
	}
	for _, q := range queries {
		va, _ := a.Transform(q)
		vb, _ := b.Transform(q)
		if !reflect.DeepEqual(va.Dense(), vb.Dense()) {
			t.Errorf("query %q: vectors differ between identical fits", q.TextValue())
		}
	}
}

func TestTransform_ShapeInvariant(t *testing.T) {
	enc := mustFit(t, fashionCatalog())

	inputs := []catalog.Query{
		catalog.NewQuery("Turtle Check Men Navy Blue Shirt", nil),
		catalog.NewQuery("completely unseen words here", map[string]string{catalog.FieldGender: "Unisex"}),
		catalog.NewQuery("", map[string]string{}),
		catalog.NewQuery("jeans jeans jeans", map[string]string{catalog.FieldArticleType: "Jeans", catalog.FieldSeason: "Spring"}),
	}
	for _, q := range inputs {
		v, err := enc.Transform(q)
		if err != nil {
			t.Fatalf("Transform(%q) error = %v", q.TextValue(), err)
		}
		if v.Dim != enc.Dim() || len(v.Dense()) != enc.Dim() {
			t.Errorf("Transform(%q) Dim = %d, want %d", q.TextValue(), v.Dim, enc.Dim())
		}
		// Exactly one hot entry per categorical field.
		if got := v.Len() - countText(enc.Layout(), v); got != len(catalog.DefaultSchema.CategoricalFields) {
			t.Errorf("Transform(%q) has %d categorical entries, want %d", q.TextValue(), got, len(catalog.DefaultSchema.CategoricalFields))
		}
	}
}

func countText(l Layout, v Vector) int {
	n := 0
	for _, i := range v.Indices {
		if l.Text.Contains(i) {
			n++
		}
	}
	return n
}

func TestTransform_UnknownCategory(t *testing.T) {
	enc := mustFit(t, fashionCatalog())
	layout := enc.Layout()

	v, err := enc.Transform(catalog.NewQuery("shirt", map[string]string{
		catalog.FieldGender: "Unisex", // never seen
		catalog.FieldSeason: "Fall",   // seen
		// usage missing
	}))
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}

	gender, _ := layout.Field(catalog.FieldGender)
	for i := gender.Offset; i < gender.End(); i++ {
		want := 0.0
		if i == gender.Unknown {
			want = 1
		}
		if v.At(i) != want {
			t.Errorf("gender slot %d = %v, want %v", i, v.At(i), want)
		}
	}

	usage, _ := layout.Field(catalog.FieldUsage)
	if v.At(usage.Unknown) != 1 {
		t.Error("missing usage should set the unknown slot")
	}

	season, _ := layout.Field(catalog.FieldSeason)
	if v.At(season.Unknown) != 0 {
		t.Error("known season must not set the unknown slot")
	}

	// Row 2 has no usage in the catalog; it shares the unknown slot with queries.
	r2, _ := enc.TransformRow(fashionCatalog()[2])
	if r2.At(usage.Unknown) != 1 {
		t.Error("catalog row with missing usage should set the unknown slot")
	}
}

func TestTransform_StopWordOnlyText(t *testing.T) {
	enc := mustFit(t, shirtCatalog())

	v, err := enc.Transform(catalog.NewQuery("the and of", map[string]string{catalog.FieldGender: "Men"}))
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if countText(enc.Layout(), v) != 0 {
		t.Error("stop-word-only text should produce an all-zero text segment")
	}
	if v.IsZero() {
		t.Error("categorical segment should still be populated")
	}
}

func TestTransform_Errors(t *testing.T) {
	t.Run("not fitted", func(t *testing.T) {
		var nilEnc *Encoder
		if _, err := nilEnc.Transform(catalog.NewQuery("shirt", nil)); !errors.Is(err, ErrNotFitted) {
			t.Errorf("nil Transform() error = %v, want ErrNotFitted", err)
		}
		if _, err := (&Encoder{}).TransformRow(row(0, "shirt", nil)); !errors.Is(err, ErrNotFitted) {
			t.Errorf("zero TransformRow() error = %v, want ErrNotFitted", err)
		}
		if _, err := (&Encoder{}).TransformAll(context.Background(), nil, 1); !errors.Is(err, ErrNotFitted) {
			t.Errorf("zero TransformAll() error = %v, want ErrNotFitted", err)
		}
	})

	t.Run("absent text", func(t *testing.T) {
		enc := mustFit(t, shirtCatalog())
		_, err := enc.Transform(catalog.Query{Categories: map[string]string{catalog.FieldGender: "Men"}})
		if !errors.Is(err, ErrMissingRequiredField) {
			t.Errorf("Transform() error = %v, want ErrMissingRequiredField", err)
		}
	})
}

func TestTransformAll(t *testing.T) {
	rows := fashionCatalog()
	enc := mustFit(t, rows)

	sequential, err := enc.TransformAll(context.Background(), rows, 1)
	if err != nil {
		t.Fatalf("TransformAll() error = %v", err)
	}
	if sequential.Len() != len(rows) || sequential.Dim != enc.Dim() {
		t.Fatalf("matrix = %d x %d, want %d x %d", sequential.Len(), sequential.Dim, len(rows), enc.Dim())
	}

	for _, workers := range []int{0, 2, 3, 16} {
		parallel, err := enc.TransformAll(context.Background(), rows, workers)
		if err != nil {
			t.Fatalf("TransformAll(workers=%d) error = %v", workers, err)
		}
		if !reflect.DeepEqual(parallel, sequential) {
			t.Errorf("TransformAll(workers=%d) differs from sequential result", workers)
		}
	}

	for i, r := range rows {
		single, _ := enc.TransformRow(r)
		if !reflect.DeepEqual(single, sequential.Rows[i]) {
			t.Errorf("row %d: TransformAll and TransformRow disagree", i)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := enc.TransformAll(ctx, rows, 2); !errors.Is(err, context.Canceled) {
		t.Errorf("TransformAll(cancelled) error = %v, want context.Canceled", err)
	}
}

func TestEncoder_IgnoresLaterCatalogChanges(t *testing.T) {
	rows := shirtCatalog()
	enc := mustFit(t, rows)
	before, _ := enc.TransformRow(rows[2])

	rows[2].Text = "green silk scarf"
	rows[2].Categories[catalog.FieldGender] = "Women"

	if got := enc.Vocabulary(); len(got) != 5 {
		t.Errorf("vocabulary changed after catalog mutation: %v", got)
	}
	after, _ := enc.TransformRow(catalog.Row{Text: "blue jeans", Categories: map[string]string{catalog.FieldGender: "Men"}})
	if !reflect.DeepEqual(before, after) {
		t.Error("encoder output changed after catalog mutation")
	}
}
