package util

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRobotsChecker_Disallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /private/\n")
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	checker := NewRobotsChecker("physaudit-test", 5*time.Second)

	allowed, err := checker.Allowed(context.Background(), server.URL+"/private/sector_13_waste.yaml")
	if err != nil {
		t.Fatalf("Allowed failed: %v", err)
	}
	if allowed {
		t.Error("disallowed path reported as allowed")
	}

	allowed, err = checker.Allowed(context.Background(), server.URL+"/public/sector_13_waste.yaml")
	if err != nil {
		t.Fatalf("Allowed failed: %v", err)
	}
	if !allowed {
		t.Error("public path reported as disallowed")
	}
}

func TestRobotsChecker_MissingRobotsAllows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	checker := NewRobotsChecker("physaudit-test", 5*time.Second)
	allowed, err := checker.Allowed(context.Background(), server.URL+"/anything.yaml")
	if err != nil {
		t.Fatalf("Allowed failed: %v", err)
	}
	if !allowed {
		t.Error("missing robots.txt should allow fetching")
	}
}

func TestRobotsChecker_CachesPerHost(t *testing.T) {
	var robotsRequests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			robotsRequests.Add(1)
			_, _ = fmt.Fprint(w, "User-agent: *\nAllow: /\n")
		}
	}))
	defer server.Close()

	checker := NewRobotsChecker("physaudit-test", 5*time.Second)
	for i := 0; i < 3; i++ {
		if _, err := checker.Allowed(context.Background(), server.URL+"/doc.yaml"); err != nil {
			t.Fatalf("Allowed failed: %v", err)
		}
	}
	if robotsRequests.Load() != 1 {
		t.Errorf("expected 1 robots.txt fetch, got %d", robotsRequests.Load())
	}

	checker.Clear()
	if _, err := checker.Allowed(context.Background(), server.URL+"/doc.yaml"); err != nil {
		t.Fatalf("Allowed failed: %v", err)
	}
	if robotsRequests.Load() != 2 {
		t.Errorf("expected refetch after Clear, got %d", robotsRequests.Load())
	}
}

func TestRobotsChecker_UnreachableHostAllows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	checker := NewRobotsChecker("physaudit-test", time.Second)
	allowed, err := checker.Allowed(context.Background(), server.URL+"/doc.yaml")
	if err != nil {
		t.Fatalf("Allowed failed: %v", err)
	}
	if !allowed {
		t.Error("unreachable robots.txt should allow by default")
	}
}
