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

package registry_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/verity-labs/docvet/internal/registry"
)

// extractorFunc mirrors how the extract package stores extractors keyed by
// file extension.
type extractorFunc func(data []byte) (string, error)

func upper(data []byte) (string, error) { return strings.ToUpper(string(data)), nil }
func lower(data []byte) (string, error) { return strings.ToLower(string(data)), nil }
func raw(data []byte) (string, error)   { return string(data), nil }

func TestRegistryRegister(t *testing.T) {
	r := registry.New[string, extractorFunc]()

	r.Register(".pdf", upper)
	r.Register(".docx", lower)
	r.Register(".txt", raw)

	for _, ext := range []string{".pdf", ".docx", ".txt"} {
		if exists := r.Exists(ext); !exists {
			t.Errorf("extension '%s' not found in registry", ext)
		}
	}
}

func TestRegistryRegisterMany(t *testing.T) {
	r := registry.New[string, extractorFunc]()
	r.RegisterMany(
		registry.Entry[string, extractorFunc]{Key: ".pdf", Value: raw},
		registry.Entry[string, extractorFunc]{Key: ".docx", Value: raw},
		registry.Entry[string, extractorFunc]{Key: ".txt", Value: raw},
		registry.Entry[string, extractorFunc]{Key: ".md", Value: raw},
	)

	for _, ext := range []string{".pdf", ".docx", ".txt", ".md"} {
		if exists := r.Exists(ext); !exists {
			t.Errorf("extension '%s' not found in registry", ext)
		}
	}

	r.RegisterMany(registry.Entry[string, extractorFunc]{Key: ".html", Value: raw})
	if !r.Exists(".html") {
		t.Errorf("extension '%s' not found in registry", ".html")
	}
}

func TestRegistryRegisterOverwrite(t *testing.T) {
	r := registry.New[string, extractorFunc]()
	r.Register(".txt", upper)
	r.Register(".txt", lower)

	got, ok := r.Get(".txt")
	if !ok {
		t.Fatal("extension doesn't exist")
	}

	// the later registration must win
	text, err := got([]byte("MiXeD"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "mixed" {
		t.Errorf("got '%s', expected 'mixed' from the overwriting extractor", text)
	}
}

func TestRegistryGet(t *testing.T) {
	r := registry.New[string, extractorFunc]()
	r.Register(".md", raw)

	got, ok := r.Get(".md")
	if !ok {
		t.Fatal("registered extractor not found")
	}
	text, err := got([]byte("# heading"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "# heading" {
		t.Errorf("got '%s', expected '# heading'", text)
	}

	if _, ok := r.Get(".png"); ok {
		t.Error("got extractor for unregistered extension")
	}
}

func TestRegistryExists(t *testing.T) {
	r := registry.New[string, extractorFunc]()
	r.Register(".pdf", raw)

	if !r.Exists(".pdf") {
		t.Errorf("extension '%s' does not exist", ".pdf")
	}
	if r.Exists(".exe") {
		t.Error("unregistered extension exists")
	}
}

func TestRegistryDelete(t *testing.T) {
	r := registry.New[string, extractorFunc]()
	exts := []string{".pdf", ".docx", ".txt", ".md", ".html"}
	for _, ext := range exts {
		r.Register(ext, raw)
	}

	r.Delete(exts[0], exts[1], exts[2])
	for i := range 3 {
		if r.Exists(exts[i]) {
			t.Errorf("found deleted extension '%s'", exts[i])
		}
	}

	r.Delete(exts[3])
	if r.Exists(exts[3]) {
		t.Errorf("found deleted extension '%s'", exts[3])
	}

	if !r.Exists(exts[4]) {
		t.Errorf("undeleted extension '%s' not found", exts[4])
	}

	// deleting an unknown key is a no-op
	r.Delete(".zip")
	if !r.Exists(exts[4]) {
		t.Errorf("deleting an unknown key removed extension '%s'", exts[4])
	}
}

func TestRegistryList(t *testing.T) {
	r := registry.New[string, extractorFunc]()
	exts := []string{".pdf", ".docx", ".txt", ".md", ".html"}
	for _, ext := range exts {
		r.Register(ext, raw)
	}

	keys := r.List()
	if len(keys) != len(exts) {
		t.Errorf("got %d keys, expected %d", len(keys), len(exts))
	}

	gotMap := make(map[string]bool)
	for _, key := range keys {
		gotMap[key] = true
	}
	for _, ext := range exts {
		if !gotMap[ext] {
			t.Errorf("expected extension '%s' not found", ext)
		}
	}

	r.Delete(keys...)
	if remaining := r.List(); len(remaining) != 0 {
		t.Errorf("got %d keys after deleting everything, expected 0", len(remaining))
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := registry.New[string, extractorFunc]()
	exts := []string{".pdf", ".docx", ".txt", ".md"}

	var wg sync.WaitGroup
	for _, ext := range exts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Register(ext, raw)
			r.Get(ext)
			r.Exists(ext)
			r.List()
		}()
	}
	wg.Wait()

	for _, ext := range exts {
		if !r.Exists(ext) {
			t.Errorf("extension '%s' not found after concurrent registration", ext)
		}
	}
}
