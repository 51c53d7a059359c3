package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"
	"time"

	"outlay/internal/core"
)

// fakeRemote is an in-memory stand-in for the remote expense API.
type fakeRemote struct {
	mu        sync.Mutex
	expenses  []core.Expense
	prefs     core.Preferences
	lastAuth  string
	failNext  bool
}

func (f *fakeRemote) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/expenses", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.lastAuth = r.Header.Get("Authorization")
		if f.failNext {
			f.failNext = false
			http.Error(w, "backend unavailable", http.StatusBadGateway)
			return
		}
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(f.expenses)
		case http.MethodPut:
			var in []core.Expense
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			f.expenses = in
			w.WriteHeader(http.StatusNoContent)
		}
	})
	mux.HandleFunc("/api/prefs", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(f.prefs)
		case http.MethodPut:
			json.NewDecoder(r.Body).Decode(&f.prefs)
			w.WriteHeader(http.StatusNoContent)
		}
	})
	return mux
}

func TestNew_RejectsBadURLs(t *testing.T) {
	for _, bad := range []string{"", "   ", "ftp://example.com", "not a url at all\x7f"} {
		if _, err := New(bad, ""); err == nil {
			t.Errorf("New(%q) should fail", bad)
		}
	}
	if _, err := New("https://example.com/", "tok"); err != nil {
		t.Errorf("New with https URL: %v", err)
	}
}

func TestClient_RoundTrip(t *testing.T) {
	remote := &fakeRemote{}
	srv := httptest.NewServer(remote.handler())
	defer srv.Close()

	client, err := New(srv.URL, "secret-token")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	want := []core.Expense{
		{ID: "a", Title: "Coffee", Amount: 4.5, Category: core.CategoryFood, Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
	}
	if err := client.SaveExpenses(ctx, want); err != nil {
		t.Fatalf("SaveExpenses: %v", err)
	}
	got, err := client.Expenses(ctx)
	if err != nil {
		t.Fatalf("Expenses: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
	if remote.lastAuth != "Bearer secret-token" {
		t.Errorf("Authorization header = %q", remote.lastAuth)
	}

	prefs := core.Preferences{Currency: "JPY", Theme: "neon"}
	if err := client.SavePreferences(ctx, prefs); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}
	gotPrefs, err := client.Preferences(ctx)
	if err != nil {
		t.Fatalf("Preferences: %v", err)
	}
	if gotPrefs != prefs {
		t.Errorf("prefs = %+v, want %+v", gotPrefs, prefs)
	}
}

func TestClient_RemoteErrorSurfaced(t *testing.T) {
	remote := &fakeRemote{failNext: true}
	srv := httptest.NewServer(remote.handler())
	defer srv.Close()

	client, err := New(srv.URL, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := client.Expenses(context.Background()); err == nil {
		t.Fatal("remote 502 should surface as an error")
	}
}
