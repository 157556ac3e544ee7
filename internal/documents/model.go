package documents

import "time"

// Document lifecycle statuses. There is no failed state: errors surface in
// the HTTP response only and a row can stay at processing forever.
const (
	StatusProcessing = "processing"
	StatusProcessed  = "processed"
)

// Document is one uploaded file's metadata and processing outcome.
type Document struct {
	ID           string
	Filename     string
	BlobURL      string
	Status       string
	DocumentType *string
	Confidence   *float64
	CreatedAt    time.Time
}

// ExtractedField is one name/value pair produced by analyzing a document.
type ExtractedField struct {
	DocumentID string
	Name       string
	Value      string
}
