// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

/*
Package ranking scores encoded queries against an encoded catalog and selects
the best matches.

Similarity is cosine similarity over sparse feature vectors. Because every
catalog vector carries exactly one hot slot per categorical field, norms are
never zero for catalog rows; a query can still be all-zero in its text
segment, which simply lowers its similarity.

Selection keeps a bounded min-heap of size n while walking the scores, so
ranking R rows costs O(R log n) rather than a full sort. Ordering is by
score descending, with ties broken by the lower catalog index so results are
deterministic:

	matches, err := ranking.TopN(query, matrix, 5, ranking.ExcludeIndex(12))
	if err != nil {
	    return err
	}
	for _, m := range matches {
	    fmt.Println(m.Index, m.Score)
	}
*/
package ranking
