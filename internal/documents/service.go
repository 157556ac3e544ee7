package documents

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"docintake-backend/internal/analyzer"
	"docintake-backend/internal/shared/storage/object"
	"docintake-backend/internal/shared/storage/object/local"
	"docintake-backend/internal/shared/telemetry"
	"docintake-backend/internal/shared/util"
)

// Service orchestrates the intake flow: land the file locally, mirror it to
// cloud storage when configured, record the document, analyze it, and persist
// the outcome. Cloud is nil when no bucket is configured.
type Service struct {
	Local    *local.Store
	Cloud    object.BlobStore
	Repo     Repo
	Analyzer analyzer.Analyzer
}

// Upload runs the full intake sequence for one file. A cloud-storage failure
// is the single recovered error: the local path is kept and the request goes
// on. Every later failure aborts and may leave the row at processing.
func (s *Service) Upload(ctx context.Context, filename string, r io.Reader) (Document, analyzer.Result, error) {
	now := time.Now().UTC()

	storedName, err := util.StorageFileName(now, filename)
	if err != nil {
		return Document{}, analyzer.Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	localPath, _, err := s.Local.Save(ctx, storedName, r)
	if err != nil {
		return Document{}, analyzer.Result{}, fmt.Errorf("store upload: %w", err)
	}

	blobURL := s.mirrorToCloud(ctx, storedName, localPath)

	doc := Document{
		ID:        uuid.NewString(),
		Filename:  filename,
		BlobURL:   blobURL,
		Status:    StatusProcessing,
		CreatedAt: now,
	}
	if err := s.Repo.Insert(ctx, doc); err != nil {
		return Document{}, analyzer.Result{}, fmt.Errorf("insert document: %w", err)
	}

	result, err := s.Analyzer.Analyze(ctx, blobURL, localPath)
	if err != nil {
		return Document{}, analyzer.Result{}, fmt.Errorf("analyze document: %w", err)
	}

	fields := make([]ExtractedField, 0, len(result.Fields))
	for _, f := range result.Fields {
		fields = append(fields, ExtractedField{DocumentID: doc.ID, Name: f.Name, Value: f.Value})
	}
	if err := s.Repo.SaveFields(ctx, doc.ID, fields); err != nil {
		return Document{}, analyzer.Result{}, fmt.Errorf("save fields: %w", err)
	}

	var docType *string
	if result.DocumentType != "" {
		docType = &result.DocumentType
	}
	confidence := result.Confidence
	if err := s.Repo.UpdateStatus(ctx, doc.ID, StatusProcessed, docType, &confidence); err != nil {
		return Document{}, analyzer.Result{}, fmt.Errorf("update status: %w", err)
	}

	doc.Status = StatusProcessed
	doc.DocumentType = docType
	doc.Confidence = &confidence
	return doc, result, nil
}

// mirrorToCloud uploads the landed file to the cloud store when one is
// configured. On failure the local path stays the document's location.
func (s *Service) mirrorToCloud(ctx context.Context, storedName, localPath string) string {
	if s.Cloud == nil {
		return localPath
	}

	f, err := s.Local.Open(ctx, localPath)
	if err != nil {
		telemetry.Warn("upload.cloud_mirror_failed", map[string]any{
			"err":  err.Error(),
			"path": localPath,
		})
		return localPath
	}
	defer f.Close()

	location, _, err := s.Cloud.Save(ctx, storedName, f)
	if err != nil {
		telemetry.Warn("upload.cloud_mirror_failed", map[string]any{
			"err":  err.Error(),
			"path": localPath,
		})
		return localPath
	}
	return location
}

// List returns all documents.
func (s *Service) List(ctx context.Context) ([]Document, error) {
	return s.Repo.List(ctx)
}

// Get returns one document with its extracted fields.
func (s *Service) Get(ctx context.Context, id string) (Document, []ExtractedField, error) {
	doc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Document{}, nil, err
	}
	fields, err := s.Repo.FieldsByDocument(ctx, id)
	if err != nil {
		return Document{}, nil, err
	}
	return doc, fields, nil
}
