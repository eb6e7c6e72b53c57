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

// Package chunker splits raw document text into overlapping fixed-size
// windows used as retrieval units.
package chunker

import "errors"

// ErrInvalidConfig is returned for window parameters under which the
// sliding window would never advance.
var ErrInvalidConfig = errors.New("chunker: overlap must be smaller than chunk size")

// Split slides a window of length size over text, starting at offset 0 and
// advancing by size-overlap each step. Windows are emitted verbatim, no
// trimming. The final window may be shorter than size.
//
// size must be positive and overlap must satisfy 0 <= overlap < size;
// anything else fails with ErrInvalidConfig before any work is done.
// Callers are expected to reject empty input themselves, Split simply
// returns no chunks for it.
func Split(text string, size, overlap int) ([]string, error) {
	if size <= 0 || overlap < 0 || overlap >= size {
		return nil, ErrInvalidConfig
	}

	step := size - overlap
	chunks := make([]string, 0, (len(text)+step-1)/step)

	for start := 0; start < len(text); start += step {
		end := start + size
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[start:end])
	}

	return chunks, nil
}
