package pipeline_test

import (
	"testing"

	"github.com/verity-labs/docvet/internal/pipeline"
)

func TestParseAnalysisPlainJSON(t *testing.T) {
	raw := `{
		"document_type": "Invoice",
		"missing_fields": ["ABN"],
		"risks": ["no issue date"],
		"summary": "Invoice is missing identifiers."
	}`

	parsed := pipeline.ParseAnalysis(raw)
	if parsed.Degraded {
		t.Fatalf("parse degraded unexpectedly: %s", parsed.Reason)
	}

	a := parsed.Analysis
	if a.DocumentType != "Invoice" {
		t.Errorf("got document type '%s', expected 'Invoice'", a.DocumentType)
	}
	if len(a.MissingFields) != 1 || a.MissingFields[0] != "ABN" {
		t.Errorf("got missing fields %v, expected [ABN]", a.MissingFields)
	}
	if len(a.Risks) != 1 || a.Risks[0] != "no issue date" {
		t.Errorf("got risks %v, expected [no issue date]", a.Risks)
	}
}

func TestParseAnalysisStripsCodeFences(t *testing.T) {
	raw := "```json\n{\"document_type\": \"Contract\", \"summary\": \"ok\"}\n```"

	parsed := pipeline.ParseAnalysis(raw)
	if parsed.Degraded {
		t.Fatalf("parse degraded unexpectedly: %s", parsed.Reason)
	}
	if parsed.Analysis.DocumentType != "Contract" {
		t.Errorf("got document type '%s', expected 'Contract'", parsed.Analysis.DocumentType)
	}
}

func TestParseAnalysisProse(t *testing.T) {
	raw := "I could not find any JSON to return, sorry."

	parsed := pipeline.ParseAnalysis(raw)
	if !parsed.Degraded {
		t.Fatal("expected degraded parse for prose output")
	}
	if parsed.Reason != "Invalid JSON returned by AI" {
		t.Errorf("got reason '%s', expected 'Invalid JSON returned by AI'", parsed.Reason)
	}
	if parsed.Raw != raw {
		t.Errorf("raw output not preserved, got '%s'", parsed.Raw)
	}
}

func TestParseAnalysisEmpty(t *testing.T) {
	parsed := pipeline.ParseAnalysis("")
	if !parsed.Degraded {
		t.Fatal("expected degraded parse for empty output")
	}
}

func TestDegradedParse(t *testing.T) {
	parsed := pipeline.DegradedParse("AI analysis unavailable", "provider timeout")
	if !parsed.Degraded {
		t.Fatal("expected degraded parse")
	}
	if parsed.Reason != "AI analysis unavailable" {
		t.Errorf("got reason '%s', expected 'AI analysis unavailable'", parsed.Reason)
	}
	if parsed.Raw != "provider timeout" {
		t.Errorf("got raw '%s', expected 'provider timeout'", parsed.Raw)
	}
}
