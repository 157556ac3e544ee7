package analyzer

import (
	"context"
	"testing"
)

func TestMockClassifiesByFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		wantType   string
		wantConf   float64
		wantFields int
	}{
		{name: "invoice", path: "/uploads/20240101T000000_invoice_123.pdf", wantType: "invoice", wantConf: 0.85, wantFields: 1},
		{name: "receipt uppercase", path: "/uploads/MY_RECEIPT.PDF", wantType: "receipt", wantConf: 0.85, wantFields: 1},
		{name: "contract", path: "contract_final.docx", wantType: "contract", wantConf: 0.85, wantFields: 1},
		{name: "statement", path: "bank_statement_jan.pdf", wantType: "statement", wantConf: 0.85, wantFields: 1},
		{name: "report", path: "annual-report.pdf", wantType: "report", wantConf: 0.85, wantFields: 1},
		{name: "unknown", path: "/uploads/scan0001.tif", wantType: "unknown", wantConf: 0.5, wantFields: 0},
	}

	mock := NewMock()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := mock.Analyze(context.Background(), "", tt.path)
			if err != nil {
				t.Fatalf("Analyze: %v", err)
			}
			if got.DocumentType != tt.wantType {
				t.Fatalf("DocumentType = %q, want %q", got.DocumentType, tt.wantType)
			}
			if got.Confidence != tt.wantConf {
				t.Fatalf("Confidence = %v, want %v", got.Confidence, tt.wantConf)
			}
			if len(got.Fields) != tt.wantFields {
				t.Fatalf("len(Fields) = %d, want %d", len(got.Fields), tt.wantFields)
			}
		})
	}
}

func TestMockIsDeterministic(t *testing.T) {
	t.Parallel()

	mock := NewMock()
	first, err := mock.Analyze(context.Background(), "", "invoice_123.pdf")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	second, err := mock.Analyze(context.Background(), "", "invoice_123.pdf")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if first.DocumentType != second.DocumentType || first.Confidence != second.Confidence {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
	if len(first.Fields) != 1 || first.Fields[0].Name != "matchedKeyword" || first.Fields[0].Value != "invoice" {
		t.Fatalf("unexpected fields: %+v", first.Fields)
	}
}
