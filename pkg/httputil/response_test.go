package httputil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := WriteJSON(rec, http.StatusOK, map[string]string{"k": "v"}); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `"k":"v"`) {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestErrorWriters(t *testing.T) {
	tests := []struct {
		name   string
		write  func(http.ResponseWriter)
		status int
	}{
		{"bad request", func(w http.ResponseWriter) { WriteBadRequest(w, "m") }, http.StatusBadRequest},
		{"unauthorized", func(w http.ResponseWriter) { WriteUnauthorized(w, "m") }, http.StatusUnauthorized},
		{"forbidden", func(w http.ResponseWriter) { WriteForbidden(w, "m") }, http.StatusForbidden},
		{"not found", func(w http.ResponseWriter) { WriteNotFound(w, "m") }, http.StatusNotFound},
		{"too many requests", func(w http.ResponseWriter) { WriteTooManyRequests(w, "m") }, http.StatusTooManyRequests},
		{"bad gateway", func(w http.ResponseWriter) { WriteBadGateway(w, "m") }, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if !strings.Contains(rec.Body.String(), `"error":"m"`) {
				t.Errorf("body = %q", rec.Body.String())
			}
		})
	}
}

func TestParseJSONOrError(t *testing.T) {
	type payload struct {
		URL string `json:"url"`
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/tokens", strings.NewReader(`{"url":"https://x.example/"}`))
	var p payload
	if !ParseJSONOrError(rec, req, &p) {
		t.Fatal("valid JSON rejected")
	}
	if p.URL != "https://x.example/" {
		t.Errorf("decoded url = %q", p.URL)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/tokens", strings.NewReader(`{{{`))
	if ParseJSONOrError(rec, req, &p) {
		t.Error("invalid JSON accepted")
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/tokens", strings.NewReader(`{"unknown":1}`))
	if ParseJSONOrError(rec, req, &p) {
		t.Error("unknown field accepted")
	}
}
