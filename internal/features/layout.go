// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package features

// Segment is a contiguous slice of a feature vector owned by one field.
type Segment struct {
	Field  string
	Offset int
	Width  int

	// Unknown is the absolute index of the unknown slot, or -1 for text.
	Unknown int
}

// End returns the first index past the segment.
func (s Segment) End() int {
	return s.Offset + s.Width
}

// Contains reports whether absolute index i falls inside the segment.
func (s Segment) Contains(i int) bool {
	return i >= s.Offset && i < s.End()
}

// Layout describes how a feature vector is partitioned: the text segment
// first, then one segment per categorical field in schema order.
type Layout struct {
	Text   Segment
	Fields []Segment
	Dim    int
}

// Field returns the segment for a categorical field.
func (l Layout) Field(name string) (Segment, bool) {
	for _, s := range l.Fields {
		if s.Field == name {
			return s, true
		}
	}
	return Segment{}, false
}

func buildLayout(textField string, text *textModel, fields []categoricalField) Layout {
	l := Layout{
		Text: Segment{Field: textField, Offset: 0, Width: len(text.Vocabulary), Unknown: -1},
	}
	offset := l.Text.End()
	for i := range fields {
		f := &fields[i]
		seg := Segment{
			Field:   f.Name,
			Offset:  offset,
			Width:   f.width(),
			Unknown: offset + f.unknownSlot(),
		}
		l.Fields = append(l.Fields, seg)
		offset = seg.End()
	}
	l.Dim = offset
	return l
}
