// Copyright 2025 Verity Labs
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to use,
// copy, modify, merge, publish, distribute, sublicense, and/or sell copies of the
// Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES
// OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
// NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT
// HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY,
// WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.

// Package vector provides an in-memory exact nearest-neighbour index.
//
// An Index is built once per validation request from the embedded chunks of
// a single document and queried a handful of times, so an exhaustive scan
// over tens to low hundreds of vectors is deliberate. Results are ordered by
// ascending squared Euclidean distance with insertion order breaking ties,
// which keeps reports reproducible; do not swap in an approximate structure
// without revisiting that contract.
package vector

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrEmptyIndex          = errors.New("vector: index requires at least one entry")
	ErrDimensionMismatch   = errors.New("vector: embedding dimensions disagree within one batch")
	ErrQueryDimensionWrong = errors.New("vector: query dimension does not match index")
)

// Entry pairs a chunk's source text with its embedding.
type Entry struct {
	Text   string
	Vector []float32
}

// Index holds the embedded chunks of one document. It is read-only after
// Build and must not be shared across validation requests.
type Index struct {
	entries []Entry
	dims    int
}

// Build constructs an Index from embedded chunks. Every vector must share
// the dimension of the first one; a disagreement means the embedding
// provider changed behaviour mid-batch and is fatal.
func Build(entries []Entry) (*Index, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyIndex
	}

	dims := len(entries[0].Vector)
	for i, e := range entries {
		if len(e.Vector) != dims {
			return nil, fmt.Errorf("%w: entry %d has %d dimensions, expected %d",
				ErrDimensionMismatch, i, len(e.Vector), dims)
		}
	}

	idx := &Index{
		entries: make([]Entry, len(entries)),
		dims:    dims,
	}
	copy(idx.entries, entries)
	return idx, nil
}

// Len returns the number of indexed chunks.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Dimensions returns the embedding dimension the index was built with.
func (idx *Index) Dimensions() int {
	return idx.dims
}

// Search returns the texts of the topK entries closest to query, closest
// first. It never returns more texts than the index holds.
func (idx *Index) Search(query []float32, topK int) ([]string, error) {
	if len(query) != idx.dims {
		return nil, fmt.Errorf("%w: got %d, index has %d", ErrQueryDimensionWrong, len(query), idx.dims)
	}
	if topK < 1 {
		return nil, fmt.Errorf("vector: topK must be at least 1, got %d", topK)
	}

	type scored struct {
		pos  int
		dist float64
	}

	ranked := make([]scored, len(idx.entries))
	for i, e := range idx.entries {
		ranked[i] = scored{pos: i, dist: squaredL2(query, e.Vector)}
	}

	// SliceStable keeps insertion order on equal distances.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].dist < ranked[j].dist
	})

	if topK > len(ranked) {
		topK = len(ranked)
	}

	texts := make([]string, topK)
	for i := range topK {
		texts[i] = idx.entries[ranked[i].pos].Text
	}
	return texts, nil
}

func squaredL2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
