package geoapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientRecordsPaginates(t *testing.T) {
	pages := []recordsPage{
		{TotalCount: 3, Results: []map[string]any{
			{"con_name": "cascais"},
			{"con_name": "lisboa"},
		}},
		{TotalCount: 3, Results: []map[string]any{
			{"con_name": "sintra"},
		}},
	}
	var offsets []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/georef-portugal-concelho/records" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("select"); got != "con_name,dis_name" {
			t.Errorf("unexpected select %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "2" {
			t.Errorf("unexpected limit %q", got)
		}
		offset := r.URL.Query().Get("offset")
		offsets = append(offsets, offset)
		page := pages[0]
		if offset != "0" {
			page = pages[1]
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(page)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, 2)
	rows, err := client.Records(context.Background(), "georef-portugal-concelho", "con_name,dis_name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if got := StringField(rows[2], "con_name"); got != "sintra" {
		t.Errorf("expected last row sintra, got %q", got)
	}
	if len(offsets) != 2 || offsets[0] != "0" || offsets[1] != "2" {
		t.Errorf("unexpected offsets %v", offsets)
	}
}

func TestClientRecordsStopsOnShortPage(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(recordsPage{TotalCount: 1, Results: []map[string]any{
			{"fre_name": "estoril"},
		}})
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, 100)
	rows, err := client.Records(context.Background(), "georef-portugal-freguesia", "fre_name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if calls != 1 {
		t.Errorf("expected a single request, got %d", calls)
	}
}

func TestClientRecordsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("rate limited"))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, 100)
	_, err := client.Records(context.Background(), "georef-portugal-concelho", "con_name")
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Status != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", apiErr.Status)
	}
	if apiErr.Body != "rate limited" {
		t.Errorf("unexpected body %q", apiErr.Body)
	}
}

func TestStringField(t *testing.T) {
	row := map[string]any{
		"plain": "cascais",
		"list":  []any{"estoril"},
		"empty": []any{},
		"num":   3,
	}
	if got := StringField(row, "plain"); got != "cascais" {
		t.Errorf("plain: got %q", got)
	}
	if got := StringField(row, "list"); got != "estoril" {
		t.Errorf("list: got %q", got)
	}
	if got := StringField(row, "empty"); got != "" {
		t.Errorf("empty list: got %q", got)
	}
	if got := StringField(row, "num"); got != "" {
		t.Errorf("non-string: got %q", got)
	}
	if got := StringField(row, "missing"); got != "" {
		t.Errorf("missing: got %q", got)
	}
}
