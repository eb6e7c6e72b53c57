package extract_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/verity-labs/docvet/internal/extract"
)

func TestTextPlain(t *testing.T) {
	for _, name := range []string{"notes.txt", "README.md", "REPORT.TXT"} {
		got, err := extract.Text(name, []byte("hello document"))
		if err != nil {
			t.Fatalf("unexpected error for '%s': %v", name, err)
		}
		if got != "hello document" {
			t.Errorf("got '%s', expected 'hello document'", got)
		}
	}
}

func TestTextUnsupportedFormat(t *testing.T) {
	for _, name := range []string{"image.png", "archive.tar.gz", "noextension"} {
		_, err := extract.Text(name, []byte("data"))
		if !errors.Is(err, extract.ErrUnsupportedFormat) {
			t.Errorf("got error '%v' for '%s', expected ErrUnsupportedFormat", err, name)
		}
	}
}

func TestTextDOCX(t *testing.T) {
	documentXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	data := buildDOCX(t, documentXML)

	got, err := extract.Text("contract.docx", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "First paragraph.\nSecond paragraph."
	if got != expected {
		t.Errorf("got '%s', expected '%s'", got, expected)
	}
}

func TestTextDOCXInvalidArchive(t *testing.T) {
	_, err := extract.Text("broken.docx", []byte("this is not a zip file"))
	if err == nil {
		t.Fatal("expected error for invalid docx archive")
	}
}

func TestTextDOCXMissingDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/styles.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte("<styles/>")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	_, err = extract.Text("empty.docx", buf.Bytes())
	if err == nil {
		t.Fatal("expected error for docx without word/document.xml")
	}
}

func TestSupported(t *testing.T) {
	got := extract.Supported()
	for _, ext := range []string{".pdf", ".docx", ".txt", ".md"} {
		if !slices.Contains(got, ext) {
			t.Errorf("extension '%s' missing from supported list %v", ext, got)
		}
	}
}

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte(documentXML)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
