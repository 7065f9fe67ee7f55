package backend

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		c := NewClient("", nil)
		if c.BaseURL() != "http://localhost:8080" {
			t.Errorf("expected default base URL, got %s", c.BaseURL())
		}
	})

	t.Run("Get", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/login/status" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"spotify": true}`))
		}))
		defer server.Close()

		resp, err := NewClient(server.URL, nil).Get(context.Background(), "/api/login/status")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !resp.OK() {
			t.Errorf("expected 2xx, got %d", resp.StatusCode)
		}
		if !resp.IsJSON {
			t.Error("expected JSON sniff to succeed")
		}
		data, ok := resp.JSONData.(map[string]any)
		if !ok || data["spotify"] != true {
			t.Errorf("unexpected JSON data: %v", resp.JSONData)
		}
	})

	t.Run("PostJSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected JSON content type, got %s", ct)
			}
			body, _ := io.ReadAll(r.Body)
			if string(body) != `{"token":"abc"}` {
				t.Errorf("unexpected body %s", body)
			}
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		resp, err := NewClient(server.URL, nil).PostJSON(context.Background(), "/api/apple/usertoken", map[string]string{"token": "abc"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if resp.StatusCode != http.StatusNoContent {
			t.Errorf("expected 204, got %d", resp.StatusCode)
		}
	})

	t.Run("Non-JSON Body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("plain text"))
		}))
		defer server.Close()

		resp, err := NewClient(server.URL, nil).Get(context.Background(), "/")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if resp.IsJSON {
			t.Error("expected IsJSON false for plain text")
		}
		if string(resp.Body) != "plain text" {
			t.Errorf("unexpected body %s", resp.Body)
		}
	})

	t.Run("Error Status Is Not A Transport Error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		resp, err := NewClient(server.URL, nil).Get(context.Background(), "/boom")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if resp.OK() {
			t.Error("expected OK to report false for 500")
		}
	})
}
