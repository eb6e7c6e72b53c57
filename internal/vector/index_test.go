package vector_test

import (
	"errors"
	"testing"

	"github.com/verity-labs/docvet/internal/vector"
)

func TestBuildEmpty(t *testing.T) {
	_, err := vector.Build(nil)
	if !errors.Is(err, vector.ErrEmptyIndex) {
		t.Errorf("got error '%v', expected ErrEmptyIndex", err)
	}
}

func TestBuildDimensionMismatch(t *testing.T) {
	entries := []vector.Entry{
		{Text: "a", Vector: []float32{1, 2, 3}},
		{Text: "b", Vector: []float32{1, 2}},
	}
	_, err := vector.Build(entries)
	if !errors.Is(err, vector.ErrDimensionMismatch) {
		t.Errorf("got error '%v', expected ErrDimensionMismatch", err)
	}
}

func TestSearchOrdering(t *testing.T) {
	entries := []vector.Entry{
		{Text: "far", Vector: []float32{10, 10}},
		{Text: "near", Vector: []float32{1, 1}},
		{Text: "mid", Vector: []float32{4, 4}},
	}
	idx, err := vector.Build(entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := idx.Search([]float32{0, 0}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"near", "mid", "far"}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("result %d: got '%s', expected '%s'", i, got[i], expected[i])
		}
	}
}

func TestSearchTieBreaksByInsertionOrder(t *testing.T) {
	// both entries are equidistant from the query
	entries := []vector.Entry{
		{Text: "first", Vector: []float32{1, 0}},
		{Text: "second", Vector: []float32{-1, 0}},
	}
	idx, err := vector.Build(entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := idx.Search([]float32{0, 0}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got[0] != "first" || got[1] != "second" {
		t.Errorf("tie not broken by insertion order, got %v", got)
	}
}

func TestSearchTopKExceedsLen(t *testing.T) {
	entries := []vector.Entry{
		{Text: "only", Vector: []float32{1}},
	}
	idx, err := vector.Build(entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := idx.Search([]float32{0}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d results, expected 1", len(got))
	}
}

func TestSearchQueryDimensionWrong(t *testing.T) {
	entries := []vector.Entry{
		{Text: "a", Vector: []float32{1, 2, 3}},
	}
	idx, err := vector.Build(entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = idx.Search([]float32{1, 2}, 1)
	if !errors.Is(err, vector.ErrQueryDimensionWrong) {
		t.Errorf("got error '%v', expected ErrQueryDimensionWrong", err)
	}
}

func TestSearchIdempotent(t *testing.T) {
	entries := []vector.Entry{
		{Text: "a", Vector: []float32{0, 1}},
		{Text: "b", Vector: []float32{1, 0}},
		{Text: "c", Vector: []float32{1, 1}},
	}
	idx, err := vector.Build(entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	query := []float32{0.9, 0.1}
	first, err := idx.Search(query, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := idx.Search(query, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("result %d changed between searches: '%s' vs '%s'", i, first[i], second[i])
		}
	}
}
