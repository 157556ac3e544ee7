package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	BlobURL      string    `json:"blobUrl"`
	Status       string    `json:"status"`
	DocumentType *string   `json:"documentType"`
	Confidence   *float64  `json:"confidence"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FieldResponse is the outward-facing representation of an extracted field.
type FieldResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		ID:           doc.ID,
		Filename:     doc.Filename,
		BlobURL:      doc.BlobURL,
		Status:       doc.Status,
		DocumentType: doc.DocumentType,
		Confidence:   doc.Confidence,
		CreatedAt:    doc.CreatedAt,
	}
}

func toFieldResponses(fields []ExtractedField) []FieldResponse {
	out := make([]FieldResponse, 0, len(fields))
	for _, f := range fields {
		out = append(out, FieldResponse{Name: f.Name, Value: f.Value})
	}
	return out
}
