package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Insert creates one document row.
func (r *PGRepo) Insert(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (id, filename, blob_url, status, document_type, confidence, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	var docType sql.NullString
	if doc.DocumentType != nil {
		docType = sql.NullString{String: *doc.DocumentType, Valid: true}
	}
	var confidence sql.NullFloat64
	if doc.Confidence != nil {
		confidence = sql.NullFloat64{Float64: *doc.Confidence, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.Filename,
		doc.BlobURL,
		doc.Status,
		docType,
		confidence,
		doc.CreatedAt,
	)
	return err
}

// List returns all document rows in insertion order.
func (r *PGRepo) List(ctx context.Context) ([]Document, error) {
	const query = `
SELECT id, filename, blob_url, status, document_type, confidence, created_at
FROM documents
ORDER BY created_at ASC, id ASC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// GetByID returns one document or ErrNotFound.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Document, error) {
	const query = `
SELECT id, filename, blob_url, status, document_type, confidence, created_at
FROM documents
WHERE id = $1`

	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// FieldsByDocument returns all extracted field rows for a document.
func (r *PGRepo) FieldsByDocument(ctx context.Context, id string) ([]ExtractedField, error) {
	const query = `
SELECT document_id, name, value
FROM extracted_fields
WHERE document_id = $1
ORDER BY id ASC`

	rows, err := r.DB.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ExtractedField{}
	for rows.Next() {
		var f ExtractedField
		if err := rows.Scan(&f.DocumentID, &f.Name, &f.Value); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// SaveFields bulk-inserts field rows in one transaction. No-op on empty input.
func (r *PGRepo) SaveFields(ctx context.Context, id string, fields []ExtractedField) error {
	if len(fields) == 0 {
		return nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	const query = `INSERT INTO extracted_fields (document_id, name, value) VALUES ($1, $2, $3)`
	for _, f := range fields {
		if _, err := tx.ExecContext(ctx, query, id, f.Name, f.Value); err != nil {
			return fmt.Errorf("insert field %q: %w", f.Name, err)
		}
	}

	return tx.Commit()
}

// UpdateStatus sets status, type and confidence on an existing row.
// A missing row is a store error, not a silent no-op.
func (r *PGRepo) UpdateStatus(ctx context.Context, id, status string, documentType *string, confidence *float64) error {
	const query = `
UPDATE documents
SET status = $1, document_type = $2, confidence = $3
WHERE id = $4`

	var docType sql.NullString
	if documentType != nil {
		docType = sql.NullString{String: *documentType, Valid: true}
	}
	var conf sql.NullFloat64
	if confidence != nil {
		conf = sql.NullFloat64{Float64: *confidence, Valid: true}
	}

	res, err := r.DB.ExecContext(ctx, query, status, docType, conf, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("update document %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var docType sql.NullString
	var confidence sql.NullFloat64
	if err := row.Scan(
		&doc.ID,
		&doc.Filename,
		&doc.BlobURL,
		&doc.Status,
		&docType,
		&confidence,
		&doc.CreatedAt,
	); err != nil {
		return Document{}, err
	}
	if docType.Valid {
		doc.DocumentType = &docType.String
	}
	if confidence.Valid {
		doc.Confidence = &confidence.Float64
	}
	return doc, nil
}

var _ Repo = (*PGRepo)(nil)
