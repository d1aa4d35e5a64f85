// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package features

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Tokenize normalizes text and splits it into lowercase terms.
//
// A term is a maximal run of two or more word characters (letters, digits,
// underscore). Single characters are dropped, as are English stop words.
// Text is NFKC normalized first so full-width and compatibility forms fold
// onto their plain equivalents.
func Tokenize(text string) []string {
	text = strings.ToLower(norm.NFKC.String(text))

	var (
		tokens []string
		start  = -1
		runes  int
	)
	flush := func(end int) {
		if start >= 0 && runes >= 2 {
			tok := text[start:end]
			if !IsStopWord(tok) {
				tokens = append(tokens, tok)
			}
		}
		start = -1
		runes = 0
	}

	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			runes++
			continue
		}
		flush(i)
	}
	flush(len(text))

	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}
