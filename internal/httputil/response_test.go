package httputil

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
		wantOK     bool
	}{
		{name: "defaults", query: "", wantLimit: DefaultLimit, wantOffset: 0, wantOK: true},
		{name: "explicit values", query: "limit=5&offset=40", wantLimit: 5, wantOffset: 40, wantOK: true},
		{name: "limit capped", query: "limit=500", wantLimit: MaxLimit, wantOffset: 0, wantOK: true},
		{name: "zero limit rejected", query: "limit=0", wantOK: false},
		{name: "negative offset rejected", query: "offset=-1", wantOK: false},
		{name: "non-numeric limit rejected", query: "limit=abc", wantOK: false},
		{name: "non-numeric offset rejected", query: "offset=ten", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/posts?"+tt.query, nil)

			limit, offset, ok := ParsePagination(r)

			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !tt.wantOK {
				return
			}
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("limit, offset = %d, %d, want %d, %d", limit, offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteNotFound(w, "user not found")

	if w.Code != 404 {
		t.Errorf("status = %d, want 404", w.Code)
	}
	var env Envelope
	if err := json.NewDecoder(w.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Success || env.Error != "user not found" {
		t.Errorf("envelope = %+v", env)
	}
}

func TestWriteInternalError_DetailGatedOnEnvironment(t *testing.T) {
	defer ExposeErrorDetail(false)

	underlying := errors.New("pq: connection refused")

	ExposeErrorDetail(false)
	w := httptest.NewRecorder()
	WriteInternalError(w, underlying, "Failed to get post")

	var env Envelope
	if err := json.NewDecoder(w.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Error != "Failed to get post" {
		t.Errorf("production error = %q, must not leak detail", env.Error)
	}

	ExposeErrorDetail(true)
	w = httptest.NewRecorder()
	WriteInternalError(w, underlying, "Failed to get post")

	if err := json.NewDecoder(w.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Error != "Failed to get post: pq: connection refused" {
		t.Errorf("development error = %q, want underlying detail appended", env.Error)
	}
}

func TestWritePage(t *testing.T) {
	w := httptest.NewRecorder()

	WritePage(w, 200, []string{"a", "b"}, 20, 40)

	var env Envelope
	if err := json.NewDecoder(w.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !env.Success || env.Pagination == nil {
		t.Fatalf("envelope = %+v", env)
	}
	if env.Pagination.Limit != 20 || env.Pagination.Offset != 40 {
		t.Errorf("pagination = %+v", env.Pagination)
	}
}
