// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package features

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"basic", "Red Cotton Shirt", []string{"red", "cotton", "shirt"}},
		{"punctuation splits", "T-shirt, slim-fit!", []string{"shirt", "slim", "fit"}},
		{"single characters dropped", "a b cd e", []string{"cd"}},
		{"stop words removed", "The shirt for the men", []string{"shirt", "men"}},
		{"digits kept", "Nike 2012 Air Max 90", []string{"nike", "2012", "air", "max", "90"}},
		{"underscore is a word char", "new_arrival", []string{"new_arrival"}},
		{"full width folded", "ＲＥＤ Shirt", []string{"red", "shirt"}},
		{"repeated terms kept", "red red shirt", []string{"red", "red", "shirt"}},
		{"only stop words", "and the of", nil},
		{"empty", "", nil},
		{"accented letters", "Café Noir", []string{"café", "noir"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsStopWord(t *testing.T) {
	for _, w := range []string{"the", "and", "yourselves", "whereafter", "amoungst"} {
		if !IsStopWord(w) {
			t.Errorf("IsStopWord(%q) = false, want true", w)
		}
	}
	for _, w := range []string{"shirt", "jeans", "men", "women", "red"} {
		if IsStopWord(w) {
			t.Errorf("IsStopWord(%q) = true, want false", w)
		}
	}
}
