package infra

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCalendarClient_Status(t *testing.T) {
	var gotKey, gotAt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		gotAt = r.URL.Query().Get("at")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(calendarStatusResponse{
			Key:            gotKey,
			DayTrading:     true,
			SessionTrading: false,
		})
	}))
	defer server.Close()

	client := NewCalendarClient(server.URL, 5*time.Second)
	at := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	day, session, err := client.Status(context.Background(), "tv.GLBX", at)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if !day {
		t.Error("Expected day trading true")
	}
	if session {
		t.Error("Expected session trading false")
	}
	if gotKey != "tv.GLBX" {
		t.Errorf("Expected key tv.GLBX, got %s", gotKey)
	}
	if gotAt == "" {
		t.Error("Expected the instant to be passed as a query parameter")
	}
}

func TestCalendarClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewCalendarClient(server.URL, 5*time.Second)
	if _, _, err := client.Status(context.Background(), "tv.GLBX", time.Now()); err == nil {
		t.Fatal("Expected error for 500 response")
	}
}

func TestCalendarClient_BadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewCalendarClient(server.URL, 5*time.Second)
	if _, _, err := client.Status(context.Background(), "tv.GLBX", time.Now()); err == nil {
		t.Fatal("Expected error for malformed payload")
	}
}

func TestCalendarClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewCalendarClient(server.URL, 5*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, _, err := client.Status(ctx, "tv.GLBX", time.Now()); err == nil {
		t.Fatal("Expected error for cancelled context")
	}
}
