package pipeline

import (
	"bytes"
	"text/template"
)

const promptAnalyzeDocument = `You are an intelligent business document analysis and validation assistant.

Your task is to analyze the provided document context and do the following:

1. Identify what type of document this appears to be
   (e.g., business compliance document, registration certificate, invoice, contract, policy, letter, or other).

2. Based on the identified document type, determine the key expected fields or information
   that such a document should normally contain
   (for example: business name, registration numbers, dates, identifiers, signatures, addresses, etc.).

3. Check which of those expected fields are PRESENT in the document
   and which are MISSING or UNCLEAR.

4. If the document is incomplete or missing important information,
   clearly list the missing fields.

5. If the document is not a standard business/compliance document,
   still analyze it and explain what information is present and what may be missing or unclear.

6. Highlight any potential risks, inconsistencies, or concerns based on the document content.

Document Context:
{{.Context}}

Return STRICT JSON:
{
  "document_type": "string",
  "detected_fields": {
    "field_name": "extracted value or null"
  },
  "missing_fields": ["field_name"],
  "risks": ["string"],
  "summary": "brief, clear explanation of the document status"
}
`

const promptAnalyzeRecord = `You are an intelligent client onboarding and KYC validation assistant.

Analyze the onboarding information below and do the following:

1. Identify whether this data represents a client onboarding / KYC record.
2. Determine which important onboarding or KYC fields are missing.
3. Identify any invalid, unclear, or suspicious information.
4. Highlight any compliance or verification risks.
5. Decide if the onboarding can be considered COMPLETE or NEEDS_ATTENTION.

ONLY report issues. Do NOT repeat fields that are already valid.

Onboarding Data:
{{.Context}}

Return STRICT JSON in this format:

{
  "document_type": "Client Onboarding / KYC",
  "status": "CLEAR or NEEDS_ATTENTION",
  "issues": {
    "missing_fields": ["field name"],
    "invalid_fields": ["field name or issue"],
    "risks": ["risk description"]
  },
  "message": "short plain-English explanation"
}
`

var (
	templateAnalyzeDocument = template.Must(template.New("promptAnalyzeDocument").Parse(promptAnalyzeDocument))
	templateAnalyzeRecord   = template.Must(template.New("promptAnalyzeRecord").Parse(promptAnalyzeRecord))
)

type templatePayload struct {
	Context string
}

func buildAnalysisPrompt(docContext string) (string, error) {
	return renderPrompt(templateAnalyzeDocument, docContext)
}

func buildRecordPrompt(recordContext string) (string, error) {
	return renderPrompt(templateAnalyzeRecord, recordContext)
}

func renderPrompt(t *template.Template, promptContext string) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, templatePayload{Context: promptContext}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
