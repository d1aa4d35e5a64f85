// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package features

import (
	"sort"
	"strings"
)

// categoricalField is the fitted one-hot mapping for one column. Observed
// values occupy slots 0..len(Values)-1 in sorted order; the trailing slot
// is reserved for missing or unseen values.
type categoricalField struct {
	Name   string
	Values []string

	index map[string]int
}

func fitCategorical(name string, observed []string) categoricalField {
	set := make(map[string]struct{})
	for _, v := range observed {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		set[v] = struct{}{}
	}

	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)

	f := categoricalField{Name: name, Values: values}
	f.buildIndex()
	return f
}

func (f *categoricalField) buildIndex() {
	f.index = make(map[string]int, len(f.Values))
	for i, v := range f.Values {
		f.index[v] = i
	}
}

// width is the number of output columns including the unknown slot.
func (f *categoricalField) width() int {
	return len(f.Values) + 1
}

// unknownSlot is the column used for missing or unseen values.
func (f *categoricalField) unknownSlot() int {
	return len(f.Values)
}

// slot returns the column for value, routing unseen values to unknownSlot.
func (f *categoricalField) slot(value string) int {
	if i, ok := f.index[strings.TrimSpace(value)]; ok {
		return i
	}
	return f.unknownSlot()
}
