package sun_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wanderbot/internal/sun"
)

func TestSunriseAt(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("formatted"); got != "0" {
			t.Errorf("formatted = %q, expected 0", got)
		}
		if got := r.URL.Query().Get("lat"); got == "" {
			t.Error("missing lat parameter")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK","results":{"sunrise":"2026-08-26T05:31:12+00:00"}}`))
	}))
	defer server.Close()

	client := sun.NewClientWithBaseURL(5*time.Second, server.URL)
	sunrise, err := client.SunriseAt(context.Background(), 39.9, 116.4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := time.Date(2026, 8, 26, 5, 31, 12, 0, time.UTC)
	if !sunrise.Equal(expected) {
		t.Errorf("sunrise = %v, expected %v", sunrise, expected)
	}
}

func TestSunriseAtBadStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"INVALID_REQUEST","results":{}}`))
	}))
	defer server.Close()

	client := sun.NewClientWithBaseURL(5*time.Second, server.URL)
	if _, err := client.SunriseAt(context.Background(), 91, 0); err == nil {
		t.Fatal("expected error for non-OK status")
	}
}

func TestSunriseAtServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := sun.NewClientWithBaseURL(5*time.Second, server.URL)
	if _, err := client.SunriseAt(context.Background(), 39.9, 116.4); err == nil {
		t.Fatal("expected error for HTTP 500")
	}
}
