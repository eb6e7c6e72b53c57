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

// Package extract turns uploaded document bytes into plain text. The
// validation pipeline consumes the result as an opaque string; everything
// format-specific ends here.
package extract

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/verity-labs/docvet/internal/registry"
)

// ErrUnsupportedFormat is returned for file extensions without a
// registered extractor. It is a client error, not a pipeline failure.
var ErrUnsupportedFormat = errors.New("extract: unsupported file format")

// Extractor converts raw document bytes into plain text.
type Extractor func(data []byte) (string, error)

var extractors = registry.New[string, Extractor]()

func init() {
	extractors.RegisterMany(
		registry.Entry[string, Extractor]{Key: ".pdf", Value: extractPDF},
		registry.Entry[string, Extractor]{Key: ".docx", Value: extractDOCX},
		registry.Entry[string, Extractor]{Key: ".txt", Value: extractPlain},
		registry.Entry[string, Extractor]{Key: ".md", Value: extractPlain},
	)
}

// Text extracts plain text from data, picking the extractor by the
// filename's extension.
func Text(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	extractor, ok := extractors.Get(ext)
	if !ok {
		return "", ErrUnsupportedFormat
	}

	return extractor(data)
}

// Supported returns the file extensions an extractor exists for.
func Supported() []string {
	return extractors.List()
}
