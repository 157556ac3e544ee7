package analyzer

import (
	"context"
	"path/filepath"
	"strings"
)

const (
	matchedConfidence = 0.85
	unknownConfidence = 0.5
	unknownType       = "unknown"
)

// Keyword table checked in order so classification stays deterministic when
// a filename contains more than one keyword.
var keywordTypes = []struct {
	keyword string
	docType string
}{
	{keyword: "invoice", docType: "invoice"},
	{keyword: "receipt", docType: "receipt"},
	{keyword: "contract", docType: "contract"},
	{keyword: "statement", docType: "statement"},
	{keyword: "report", docType: "report"},
}

// Mock is the fallback Analyzer used when no analysis service is configured.
// It guesses the document type from the filename alone.
type Mock struct{}

// NewMock constructs the filename-heuristic analyzer.
func NewMock() *Mock {
	return &Mock{}
}

// Analyze classifies by substring match on the file's base name.
func (m *Mock) Analyze(ctx context.Context, location, localPath string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	name := strings.ToLower(filepath.Base(localPath))
	for _, kt := range keywordTypes {
		if strings.Contains(name, kt.keyword) {
			return Result{
				DocumentType: kt.docType,
				Confidence:   matchedConfidence,
				Fields: []Field{
					{Name: "matchedKeyword", Value: kt.keyword},
				},
			}, nil
		}
	}

	return Result{
		DocumentType: unknownType,
		Confidence:   unknownConfidence,
		Fields:       []Field{},
	}, nil
}

var _ Analyzer = (*Mock)(nil)
