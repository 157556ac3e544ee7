package documents

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoInsert(t *testing.T) {
	repo, mock := newMockRepo(t)

	doc := Document{
		ID:        "doc-1",
		Filename:  "invoice 123.pdf",
		BlobURL:   "/uploads/20240101T000000_invoice_123.pdf",
		Status:    StatusProcessing,
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(
			doc.ID,
			doc.Filename,
			doc.BlobURL,
			StatusProcessing,
			sql.NullString{},
			sql.NullFloat64{},
			doc.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Insert(context.Background(), doc); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM documents").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoGetByIDScansNullableColumns(t *testing.T) {
	repo, mock := newMockRepo(t)

	created := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "filename", "blob_url", "status", "document_type", "confidence", "created_at"}).
		AddRow("doc-1", "a.pdf", "/uploads/a.pdf", StatusProcessing, nil, nil, created)

	mock.ExpectQuery("SELECT (.+) FROM documents").
		WithArgs("doc-1").
		WillReturnRows(rows)

	doc, err := repo.GetByID(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if doc.DocumentType != nil || doc.Confidence != nil {
		t.Fatalf("expected nil type/confidence on processing row, got %+v", doc)
	}
}

func TestPGRepoListOrdersByInsertion(t *testing.T) {
	repo, mock := newMockRepo(t)

	created := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "filename", "blob_url", "status", "document_type", "confidence", "created_at"}).
		AddRow("doc-1", "a.pdf", "/uploads/a.pdf", StatusProcessed, "invoice", 0.85, created).
		AddRow("doc-2", "b.pdf", "/uploads/b.pdf", StatusProcessing, nil, nil, created.Add(time.Second))

	mock.ExpectQuery("SELECT (.+) FROM documents ORDER BY created_at ASC, id ASC").
		WillReturnRows(rows)

	docs, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len(docs) = %d, want 2", len(docs))
	}
	if docs[0].ID != "doc-1" || docs[1].ID != "doc-2" {
		t.Fatalf("unexpected order: %s, %s", docs[0].ID, docs[1].ID)
	}
	if docs[0].DocumentType == nil || *docs[0].DocumentType != "invoice" {
		t.Fatalf("expected invoice type, got %+v", docs[0].DocumentType)
	}
}

func TestPGRepoSaveFields(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO extracted_fields").
		WithArgs("doc-1", "VendorName", "Acme Corp").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO extracted_fields").
		WithArgs("doc-1", "InvoiceTotal", "118.00").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	fields := []ExtractedField{
		{DocumentID: "doc-1", Name: "VendorName", Value: "Acme Corp"},
		{DocumentID: "doc-1", Name: "InvoiceTotal", Value: "118.00"},
	}
	if err := repo.SaveFields(context.Background(), "doc-1", fields); err != nil {
		t.Fatalf("SaveFields: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSaveFieldsEmptyIsNoop(t *testing.T) {
	repo, mock := newMockRepo(t)

	if err := repo.SaveFields(context.Background(), "doc-1", nil); err != nil {
		t.Fatalf("SaveFields: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expected no database calls: %v", err)
	}
}

func TestPGRepoUpdateStatus(t *testing.T) {
	repo, mock := newMockRepo(t)

	docType := "invoice"
	confidence := 0.85

	mock.ExpectExec("UPDATE documents").
		WithArgs(
			StatusProcessed,
			sql.NullString{String: docType, Valid: true},
			sql.NullFloat64{Float64: confidence, Valid: true},
			"doc-1",
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateStatus(context.Background(), "doc-1", StatusProcessed, &docType, &confidence); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
}

func TestPGRepoUpdateStatusMissingRow(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE documents").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", StatusProcessed, nil, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoFieldsByDocumentEmpty(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"document_id", "name", "value"})
	mock.ExpectQuery("SELECT (.+) FROM extracted_fields").
		WithArgs("doc-1").
		WillReturnRows(rows)

	fields, err := repo.FieldsByDocument(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("FieldsByDocument: %v", err)
	}
	if fields == nil || len(fields) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", fields)
	}
}
