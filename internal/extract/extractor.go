package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dexdogs/physaudit/internal/model"
)

// RequiredField is the numeric field every claim record must carry.
// Its absence is an extraction error, never a zero default.
const RequiredField = "extracted_k_value"

// Document describes a submitted project design document. Only presence
// and name are used; content understanding is the extractor's concern.
type Document struct {
	Path string
	Name string
	Size int64
}

// OpenDocument validates that the document exists and is a regular file
func OpenDocument(path string) (Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Document{}, fmt.Errorf("open document: %w", err)
	}
	if info.IsDir() {
		return Document{}, fmt.Errorf("open document: %s is a directory", path)
	}
	return Document{
		Path: path,
		Name: filepath.Base(path),
		Size: info.Size(),
	}, nil
}

// Extractor produces a structured claim record from a document
type Extractor interface {
	// Name identifies the extractor in claim records and diagnostics
	Name() string

	// Extract produces the claim record. It must fail loudly when the
	// audited numeric field cannot be produced.
	Extract(ctx context.Context, doc Document) (*model.ClaimRecord, error)
}

// MissingValueError indicates the extractor could not produce a required
// numeric field
type MissingValueError struct {
	Field    string
	Document string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("extraction of %q produced no %q value", e.Document, e.Field)
}

// New selects an extractor by configured mode
func New(cfg model.ExtractConfig) (Extractor, error) {
	switch strings.ToLower(cfg.Mode) {
	case "", "stub":
		return NewStubExtractor(cfg.SimulatedLatency), nil
	case "llm":
		return NewLLMExtractor(cfg.LLM)
	default:
		return nil, fmt.Errorf("unknown extractor mode: %s (supported: stub, llm)", cfg.Mode)
	}
}

// validateRecord enforces the required-field contract shared by all
// extractors.
func validateRecord(record *model.ClaimRecord, doc Document) error {
	if _, ok := record.Values[RequiredField]; !ok {
		return &MissingValueError{Field: RequiredField, Document: doc.Name}
	}
	return nil
}
