package api

// Status classifies the outcome of a validation run.
type Status string

const (
	StatusClear          Status = "CLEAR"
	StatusNeedsAttention Status = "NEEDS_ATTENTION"
)

// Issues groups everything the analysis flagged on a document.
type Issues struct {
	MissingFields []string `json:"missing_fields"`
	InvalidFields []string `json:"invalid_fields"`
	Risks         []string `json:"risks"`
}

// Empty reports whether no issue of any kind was found.
func (i Issues) Empty() bool {
	return len(i.MissingFields) == 0 && len(i.InvalidFields) == 0 && len(i.Risks) == 0
}

// ValidationReport is the response produced for one validation request.
// It is constructed once by the aggregation step and never mutated.
//
// Error and RawResponse are only set on degraded reports, where the
// completion provider failed or returned output that could not be parsed.
// The raw model output is kept so operators can inspect what came back.
type ValidationReport struct {
	DocumentType string `json:"document_type"`
	Status       Status `json:"status"`
	Issues       Issues `json:"issues"`
	Message      string `json:"message"`

	Error       string `json:"error,omitempty"`
	RawResponse string `json:"raw_response,omitempty"`
}

// RecordReport is the response produced for one record (KYC) validation.
type RecordReport struct {
	MissingFields []string `json:"missing_fields"`
	InvalidFields []string `json:"invalid_fields"`
	RiskFields    []string `json:"risk_fields"`
	Message       string   `json:"message"`
}
