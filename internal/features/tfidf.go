// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package features

import (
	"math"
	"sort"
)

// textModel holds the fitted vocabulary and inverse document frequencies.
// Vocabulary is sorted; IDF[i] belongs to Vocabulary[i].
type textModel struct {
	Vocabulary []string
	IDF        []float64

	index map[string]int
}

// fitText learns a vocabulary from tokenized documents.
//
// idf(t) = ln((1 + n) / (1 + df(t))) + 1, where n is the number of documents
// and df(t) the number of documents containing t. The +1 terms keep weights
// finite and strictly positive.
func fitText(docs [][]string) textModel {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, tok := range doc {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	vocab := make([]string, 0, len(df))
	for tok := range df {
		vocab = append(vocab, tok)
	}
	sort.Strings(vocab)

	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for i, tok := range vocab {
		idf[i] = math.Log((1+n)/(1+float64(df[tok]))) + 1
	}

	m := textModel{Vocabulary: vocab, IDF: idf}
	m.buildIndex()
	return m
}

func (m *textModel) buildIndex() {
	m.index = make(map[string]int, len(m.Vocabulary))
	for i, tok := range m.Vocabulary {
		m.index[tok] = i
	}
}

// weigh returns the L2 normalized term weights for tokens, with indices
// shifted by offset. Out-of-vocabulary tokens are ignored. The result is
// empty when no token is known.
func (m *textModel) weigh(tokens []string, offset int) ([]int, []float64) {
	counts := make(map[int]int, len(tokens))
	for _, tok := range tokens {
		if i, ok := m.index[tok]; ok {
			counts[i]++
		}
	}
	if len(counts) == 0 {
		return nil, nil
	}

	idx := make([]int, 0, len(counts))
	for i := range counts {
		idx = append(idx, i)
	}
	sort.Ints(idx)

	vals := make([]float64, len(idx))
	var sum float64
	for k, i := range idx {
		w := float64(counts[i]) * m.IDF[i]
		vals[k] = w
		sum += w * w
	}
	norm := math.Sqrt(sum)
	for k := range vals {
		vals[k] /= norm
		idx[k] += offset
	}
	return idx, vals
}
