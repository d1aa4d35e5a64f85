// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package ranking

// matchHeap is a bounded min-heap of matches. The root is the worst kept
// match, so a candidate only enters when it beats the root.
//
// Not safe for concurrent use; it lives for one selection.
type matchHeap struct {
	items []Match
	limit int
}

func newMatchHeap(limit int) *matchHeap {
	return &matchHeap{items: make([]Match, 0, limit), limit: limit}
}

// offer adds m if there is room or if it ranks above the current worst.
func (h *matchHeap) offer(m Match) {
	if len(h.items) < h.limit {
		h.items = append(h.items, m)
		h.bubbleUp(len(h.items) - 1)
		return
	}
	if !better(m, h.items[0]) {
		return
	}
	h.items[0] = m
	h.bubbleDown(0)
}

// drain empties the heap and returns its matches best first.
func (h *matchHeap) drain() []Match {
	out := make([]Match, len(h.items))
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = h.pop()
	}
	return out
}

func (h *matchHeap) pop() Match {
	n := len(h.items) - 1
	root := h.items[0]
	h.items[0] = h.items[n]
	h.items = h.items[:n]
	if n > 0 {
		h.bubbleDown(0)
	}
	return root
}

// Internal heap operations

// worse orders the heap: the root is the element every other element beats.
func (h *matchHeap) worse(i, j int) bool {
	return better(h.items[j], h.items[i])
}

func (h *matchHeap) bubbleUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.worse(i, parent) {
			break
		}
		h.swap(i, parent)
		i = parent
	}
}

func (h *matchHeap) bubbleDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2

		if left < n && h.worse(left, smallest) {
			smallest = left
		}
		if right < n && h.worse(right, smallest) {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.swap(i, smallest)
		i = smallest
	}
}

func (h *matchHeap) swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

// better reports whether a ranks above b: higher score first, then the
// lower index.
func better(a, b Match) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Index < b.Index
}
