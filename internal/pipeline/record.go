package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/verity-labs/docvet/internal/api"
)

// systemFields are bookkeeping columns that document-management backends
// attach to list items; the model tends to flag them as missing even
// though no operator can fill them in, so they are dropped from reports.
var systemFields = map[string]bool{
	"Attachments":               true,
	"Edit":                      true,
	"_ComplianceFlags":          true,
	"_ComplianceTag":            true,
	"_ComplianceTagWrittenTime": true,
	"_ComplianceTagUserId":      true,
}

// recordAnalysis is the JSON shape the KYC prompt asks the model to return.
type recordAnalysis struct {
	DocumentType string `json:"document_type"`
	Status       string `json:"status"`
	Issues       struct {
		MissingFields []string `json:"missing_fields"`
		InvalidFields []string `json:"invalid_fields"`
		Risks         []string `json:"risks"`
	} `json:"issues"`
	Message string `json:"message"`
}

// ValidateRecord validates a flat onboarding/KYC field map. The fields are
// rendered to a textual context, analysed with the KYC prompt, and reduced
// to a flat issue report. Like the document path, model-side failures
// degrade the report rather than failing the request.
func (v *Validator) ValidateRecord(ctx context.Context, fields map[string]any) (api.RecordReport, error) {
	recordContext := FieldsToText(fields)

	prompt, err := buildRecordPrompt(recordContext)
	if err != nil {
		return api.RecordReport{}, err
	}

	var analysis recordAnalysis
	raw, err := v.completer.Complete(ctx, api.CompletionRequest{
		Prompt:      prompt,
		ModelName:   v.params.CompletionModel,
		Temperature: v.params.Temperature,
		MaxTokens:   v.params.MaxTokens,
	})
	if err != nil {
		slog.Warn("completion provider failed for record validation", "err", err)
		analysis = fallbackRecordAnalysis()
	} else {
		analysis = parseRecordAnalysis(raw)
	}

	missing := make([]string, 0, len(analysis.Issues.MissingFields))
	for _, f := range analysis.Issues.MissingFields {
		if !systemFields[f] {
			missing = append(missing, f)
		}
	}

	invalid := orEmpty(analysis.Issues.InvalidFields)
	risks := orEmpty(analysis.Issues.Risks)

	return api.RecordReport{
		MissingFields: missing,
		InvalidFields: invalid,
		RiskFields:    risks,
		Message:       recordMessage(missing, invalid, risks),
	}, nil
}

// FieldsToText renders a field map as one "Key: Value" line per field,
// sorted by key so the model context is deterministic. Blank values are
// rendered as "Missing" and SharePoint-style character escapes in keys
// are cleaned up.
func FieldsToText(fields map[string]any) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		cleanKey := strings.ReplaceAll(key, "_x0020_", " ")
		cleanKey = strings.ReplaceAll(cleanKey, "_x002f_", "/")

		value := fields[key]
		text := ""
		if value != nil {
			text = strings.TrimSpace(fmt.Sprintf("%v", value))
		}

		if text == "" {
			lines = append(lines, cleanKey+": Missing")
		} else {
			lines = append(lines, cleanKey+": "+text)
		}
	}
	return strings.Join(lines, "\n")
}

func parseRecordAnalysis(raw string) recordAnalysis {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var a recordAnalysis
	if err := json.Unmarshal([]byte(cleaned), &a); err != nil {
		return fallbackRecordAnalysis()
	}
	return a
}

// fallbackRecordAnalysis is reported when no usable model answer exists,
// either because the provider failed or because its output was unparseable.
func fallbackRecordAnalysis() recordAnalysis {
	fallback := recordAnalysis{
		DocumentType: "Client Onboarding / KYC",
		Status:       string(api.StatusNeedsAttention),
		Message:      "Unable to reliably analyze onboarding data.",
	}
	fallback.Issues.Risks = []string{"AI response could not be parsed"}
	return fallback
}

func recordMessage(missing, invalid, risks []string) string {
	var messages []string
	if len(missing) > 0 {
		messages = append(messages, "Missing required fields: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		messages = append(messages, "Invalid fields detected: "+strings.Join(invalid, ", "))
	}
	if len(risks) > 0 {
		messages = append(messages, "Risk indicators found: "+strings.Join(risks, ", "))
	}

	if len(messages) == 0 {
		return "The onboarding record is complete and valid."
	}
	return strings.Join(messages, " | ")
}
