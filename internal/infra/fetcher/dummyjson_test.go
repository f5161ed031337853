package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/makhmudjon-inadullaev/quote-service/internal/domain/entity"
	"github.com/makhmudjon-inadullaev/quote-service/internal/infra/fetcher"
)

func TestDummyJSONFetcher_Fetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/quotes" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "quotes": [
    {"id": 1, "quote": "Life is short", "author": "Somebody"},
    {"id": 2, "quote": "Carpe diem", "author": "Horace"}
  ],
  "total": 2
}`))
	}))
	defer server.Close()

	cfg := fetcher.DefaultConfig()
	cfg.DenyPrivateIPs = false
	cfg.DummyJSONBaseURL = server.URL

	client := &http.Client{Timeout: 10 * time.Second}
	f := fetcher.NewDummyJSONFetcher(client, cfg)

	quotes, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if len(quotes) != 2 {
		t.Fatalf("quotes length = %d, want 2", len(quotes))
	}
	if quotes[1].Text != "Carpe diem" {
		t.Errorf("quotes[1].Text = %q", quotes[1].Text)
	}
	if quotes[1].Author != "Horace" {
		t.Errorf("quotes[1].Author = %q", quotes[1].Author)
	}
	if quotes[0].Source != entity.SourceDummyJSON {
		t.Errorf("quotes[0].Source = %q", quotes[0].Source)
	}
	if len(quotes[0].Tags) != 0 {
		t.Errorf("dummyjson quotes carry no tags, got %v", quotes[0].Tags)
	}
}

func TestDummyJSONFetcher_Fetch_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	cfg := fetcher.DefaultConfig()
	cfg.DenyPrivateIPs = false
	cfg.DummyJSONBaseURL = server.URL

	client := &http.Client{Timeout: 10 * time.Second}
	f := fetcher.NewDummyJSONFetcher(client, cfg)

	if _, err := f.Fetch(context.Background()); err == nil {
		t.Fatal("want error for 403 response")
	}
}

func TestDummyJSONFetcher_Name(t *testing.T) {
	f := fetcher.NewDummyJSONFetcher(http.DefaultClient, fetcher.DefaultConfig())
	if f.Name() != "dummyjson" {
		t.Errorf("Name() = %q, want %q", f.Name(), "dummyjson")
	}
}
