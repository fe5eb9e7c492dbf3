package buildinfo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	info := Get("minuted")

	if info.ServiceName != "minuted" {
		t.Errorf("expected ServiceName='minuted', got %q", info.ServiceName)
	}
	if info.Version != "dev" {
		t.Errorf("expected Version='dev', got %q", info.Version)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("expected GoVersion=%q, got %q", runtime.Version(), info.GoVersion)
	}
}

func TestStringCustomValues(t *testing.T) {
	origVersion := Version
	origCommit := Commit
	origBuildTime := BuildTime
	defer func() {
		Version = origVersion
		Commit = origCommit
		BuildTime = origBuildTime
	}()

	Version = "v0.3.0"
	Commit = "1a2b3c4"
	BuildTime = "2026-08-31T10:00:00Z"

	expected := "v0.3.0 (1a2b3c4, 2026-08-31T10:00:00Z)"
	if result := String(); result != expected {
		t.Errorf("expected String()=%q, got %q", expected, result)
	}
}

func TestHandler(t *testing.T) {
	handler := Handler("minuted")
	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var info Info
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	if info.ServiceName != "minuted" {
		t.Errorf("expected service_name 'minuted', got %q", info.ServiceName)
	}
	if info.GoVersion == "" {
		t.Error("expected go_version to be non-empty")
	}
}
