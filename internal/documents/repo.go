package documents

import "context"

// Repo defines persistence operations for documents and their fields.
type Repo interface {
	Insert(ctx context.Context, doc Document) error
	List(ctx context.Context) ([]Document, error)
	GetByID(ctx context.Context, id string) (Document, error)
	FieldsByDocument(ctx context.Context, id string) ([]ExtractedField, error)
	SaveFields(ctx context.Context, id string, fields []ExtractedField) error
	UpdateStatus(ctx context.Context, id, status string, documentType *string, confidence *float64) error
}
