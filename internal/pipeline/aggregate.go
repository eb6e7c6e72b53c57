package pipeline

import "github.com/verity-labs/docvet/internal/api"

const (
	defaultDocumentType = "Unknown"
	defaultMessage      = "Document analysis completed."
)

// Aggregate reduces a parsed analysis to the final validation report.
// It is pure and total: absent fields default to empty, the status is
// NEEDS_ATTENTION exactly when any issue list is non-empty, and degraded
// parses keep the raw model output on the report for inspection.
func Aggregate(parsed Parsed) api.ValidationReport {
	a := parsed.Analysis

	issues := api.Issues{
		MissingFields: orEmpty(a.MissingFields),
		InvalidFields: orEmpty(a.InvalidFields),
		Risks:         orEmpty(a.Risks),
	}

	status := api.StatusClear
	if !issues.Empty() {
		status = api.StatusNeedsAttention
	}

	docType := a.DocumentType
	if docType == "" {
		docType = defaultDocumentType
	}

	message := a.Summary
	if message == "" {
		message = defaultMessage
	}

	report := api.ValidationReport{
		DocumentType: docType,
		Status:       status,
		Issues:       issues,
		Message:      message,
	}

	if parsed.Degraded {
		report.Error = parsed.Reason
		report.RawResponse = parsed.Raw
	}

	return report
}

// orEmpty keeps issue lists non-nil so they serialize as [] and callers
// never have to nil-check.
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
