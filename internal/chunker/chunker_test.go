package chunker_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/verity-labs/docvet/internal/chunker"
)

func TestSplitShortText(t *testing.T) {
	text := "a short document"
	chunks, err := chunker.Split(text, 800, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, expected 1", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("got chunk '%s', expected '%s'", chunks[0], text)
	}
}

func TestSplitWindows(t *testing.T) {
	// 10 chars per repeat, 26 repeats, 260 chars total
	text := strings.Repeat("abcdefghij", 26)
	size, overlap := 100, 20

	chunks, err := chunker.Split(text, size, overlap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// starts at 0, 80, 160, 240
	if len(chunks) != 4 {
		t.Fatalf("got %d chunks, expected 4", len(chunks))
	}

	step := size - overlap
	for i, chunk := range chunks {
		if len(chunk) > size {
			t.Errorf("chunk %d has length %d, exceeds size %d", i, len(chunk), size)
		}

		start := i * step
		end := start + size
		if end > len(text) {
			end = len(text)
		}
		if chunk != text[start:end] {
			t.Errorf("chunk %d does not match source window [%d:%d]", i, start, end)
		}
	}

	// consecutive chunks share the overlap region
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1]
		tail := prev[len(prev)-overlap:]
		if !strings.HasPrefix(chunks[i], tail) {
			t.Errorf("chunk %d does not start with the previous chunk's overlap", i)
		}
	}
}

func TestSplitExactMultiple(t *testing.T) {
	// text length equals one full window, no second chunk
	text := strings.Repeat("x", 100)
	chunks, err := chunker.Split(text, 100, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Errorf("got %d chunks, expected 1", len(chunks))
	}
}

func TestSplitInvalidConfig(t *testing.T) {
	cases := []struct {
		name    string
		size    int
		overlap int
	}{
		{"zero size", 0, 0},
		{"negative size", -1, 0},
		{"negative overlap", 100, -1},
		{"overlap equals size", 100, 100},
		{"overlap exceeds size", 100, 150},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := chunker.Split("some text", tc.size, tc.overlap)
			if !errors.Is(err, chunker.ErrInvalidConfig) {
				t.Errorf("got error '%v', expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestSplitEmptyText(t *testing.T) {
	chunks, err := chunker.Split("", 800, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("got %d chunks for empty text, expected 0", len(chunks))
	}
}
