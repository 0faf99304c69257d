package extract

import (
	"context"
	"testing"
	"time"
)

func TestStubExtractor_Deterministic(t *testing.T) {
	e := NewStubExtractor(0)
	doc := Document{Path: "/tmp/project.pdf", Name: "project.pdf", Size: 1024}

	first, err := e.Extract(context.Background(), doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	second, err := e.Extract(context.Background(), doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if first.ProjectID != "VCS-2491" || first.Methodology != "ACM0001" {
		t.Errorf("unexpected record: %+v", first)
	}
	if first.Values["extracted_k_value"] != second.Values["extracted_k_value"] {
		t.Error("stub extractor is not deterministic")
	}
	if first.Document != "project.pdf" {
		t.Errorf("expected document name carried through, got %s", first.Document)
	}
	if first.Extractor != "stub" {
		t.Errorf("expected extractor name stub, got %s", first.Extractor)
	}
}

func TestStubExtractor_RequiredFieldPresent(t *testing.T) {
	e := NewStubExtractor(0)
	record, err := e.Extract(context.Background(), Document{Name: "p.pdf"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if _, ok := record.Value(RequiredField); !ok {
		t.Fatalf("stub record missing required field %s", RequiredField)
	}
}

func TestStubExtractor_SimulatedLatency(t *testing.T) {
	var slept time.Duration
	origSleep := stubSleepFunc
	stubSleepFunc = func(ctx context.Context, d time.Duration) error {
		slept = d
		return nil
	}
	defer func() { stubSleepFunc = origSleep }()

	e := NewStubExtractor(1500 * time.Millisecond)
	if _, err := e.Extract(context.Background(), Document{Name: "p.pdf"}); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if slept != 1500*time.Millisecond {
		t.Errorf("expected 1.5s simulated latency, got %v", slept)
	}
}

func TestStubExtractor_CancelledContext(t *testing.T) {
	e := NewStubExtractor(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.Extract(ctx, Document{Name: "p.pdf"}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
