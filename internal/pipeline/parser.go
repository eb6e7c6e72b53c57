package pipeline

import (
	"encoding/json"
	"strings"
)

// Analysis is the JSON shape the document analysis prompt asks the model
// to return. Model output is untrusted; absent keys simply stay zero.
type Analysis struct {
	DocumentType   string         `json:"document_type"`
	DetectedFields map[string]any `json:"detected_fields"`
	MissingFields  []string       `json:"missing_fields"`
	InvalidFields  []string       `json:"invalid_fields"`
	Risks          []string       `json:"risks"`
	Summary        string         `json:"summary"`
}

// Parsed is the tagged outcome of interpreting raw model output. Either
// Analysis carries a structurally valid answer, or Degraded is set and
// Reason/Raw describe what went wrong and what the model actually said.
type Parsed struct {
	Analysis Analysis
	Degraded bool
	Reason   string
	Raw      string
}

// ParseAnalysis extracts an Analysis from raw completion text. It is total:
// any input, including empty strings and non-JSON prose, yields a value.
// Markdown code fences around the JSON are stripped by literal token
// removal, matching what models tend to wrap their output in.
func ParseAnalysis(raw string) Parsed {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var a Analysis
	if err := json.Unmarshal([]byte(cleaned), &a); err != nil {
		return Parsed{
			Degraded: true,
			Reason:   "Invalid JSON returned by AI",
			Raw:      raw,
		}
	}

	return Parsed{Analysis: a}
}

// DegradedParse builds the pass-through value for a failure that happened
// before any model output existed, e.g. a completion provider error.
func DegradedParse(reason, raw string) Parsed {
	return Parsed{
		Degraded: true,
		Reason:   reason,
		Raw:      raw,
	}
}
