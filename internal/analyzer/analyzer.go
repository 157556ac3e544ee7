package analyzer

import "context"

// Field is one name/value pair extracted from a document.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Result is the outcome of analyzing one document.
type Result struct {
	DocumentType string  `json:"documentType"`
	Confidence   float64 `json:"confidence"`
	Fields       []Field `json:"fields"`
}

// Analyzer classifies a stored document and extracts structured fields.
// location is the blob location recorded for the document; localPath is the
// copy that always lands on disk during upload.
type Analyzer interface {
	Analyze(ctx context.Context, location, localPath string) (Result, error)
}
