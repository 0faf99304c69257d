package extract

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dexdogs/physaudit/internal/model"
)

func TestOpenDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatalf("write test file: %v", err)
	}

	doc, err := OpenDocument(path)
	if err != nil {
		t.Fatalf("OpenDocument failed: %v", err)
	}
	if doc.Name != "project.pdf" {
		t.Errorf("expected name project.pdf, got %s", doc.Name)
	}
	if doc.Size != 8 {
		t.Errorf("expected size 8, got %d", doc.Size)
	}
}

func TestOpenDocument_Missing(t *testing.T) {
	if _, err := OpenDocument(filepath.Join(t.TempDir(), "absent.pdf")); err == nil {
		t.Fatal("expected error for missing document")
	}
}

func TestOpenDocument_Directory(t *testing.T) {
	if _, err := OpenDocument(t.TempDir()); err == nil {
		t.Fatal("expected error for directory path")
	}
}

func TestNew_SelectsByMode(t *testing.T) {
	cfg := model.ExtractConfig{Mode: "stub"}
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New(stub) failed: %v", err)
	}
	if e.Name() != "stub" {
		t.Errorf("expected stub extractor, got %s", e.Name())
	}

	// Empty mode defaults to stub
	e, err = New(model.ExtractConfig{})
	if err != nil {
		t.Fatalf("New(default) failed: %v", err)
	}
	if e.Name() != "stub" {
		t.Errorf("expected stub extractor for empty mode, got %s", e.Name())
	}
}

func TestNew_UnknownMode(t *testing.T) {
	if _, err := New(model.ExtractConfig{Mode: "psychic"}); err == nil {
		t.Fatal("expected error for unknown extractor mode")
	}
}

func TestNew_LLMRequiresKey(t *testing.T) {
	cfg := model.ExtractConfig{
		Mode: "llm",
		LLM:  model.LLMConfig{Provider: "openai", Model: "gpt-4o-mini"},
	}
	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for llm mode without API key")
	}
}

func TestParseLLMClaim(t *testing.T) {
	doc := Document{Name: "project.pdf"}

	record, err := parseLLMClaim(`{"project_id":"VCS-2491","methodology":"ACM0001","extracted_k_value":0.05,"gas_density":0.717}`, doc)
	if err != nil {
		t.Fatalf("parseLLMClaim failed: %v", err)
	}
	if record.Values["extracted_k_value"] != 0.05 {
		t.Errorf("unexpected k value: %g", record.Values["extracted_k_value"])
	}
	if record.Values["gas_density"] != 0.717 {
		t.Errorf("unexpected density: %g", record.Values["gas_density"])
	}
}

func TestParseLLMClaim_FencedJSON(t *testing.T) {
	doc := Document{Name: "project.pdf"}
	content := "```json\n{\"project_id\":\"VCS-2491\",\"extracted_k_value\":0.05}\n```"

	record, err := parseLLMClaim(content, doc)
	if err != nil {
		t.Fatalf("parseLLMClaim failed on fenced JSON: %v", err)
	}
	if record.ProjectID != "VCS-2491" {
		t.Errorf("unexpected project id: %s", record.ProjectID)
	}
}

func TestParseLLMClaim_MissingRequiredField(t *testing.T) {
	doc := Document{Name: "project.pdf"}

	_, err := parseLLMClaim(`{"project_id":"VCS-2491","gas_density":0.717}`, doc)

	var missing *MissingValueError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingValueError, got %v", err)
	}
	if missing.Field != RequiredField {
		t.Errorf("expected field %s in error, got %s", RequiredField, missing.Field)
	}
}

func TestParseLLMClaim_Garbage(t *testing.T) {
	if _, err := parseLLMClaim("the document does not mention a decay constant", Document{Name: "p.pdf"}); err == nil {
		t.Fatal("expected error for non-JSON response")
	}
}
