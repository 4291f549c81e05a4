package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientDoGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "book2png" {
			t.Errorf("unexpected User-Agent: %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "application/vnd.adobe.adept+xml")
		w.Write([]byte("<ok/>"))
	}))
	defer srv.Close()

	c := NewFromHTTPClient(srv.Client())
	resp, err := c.Do(context.Background(), Request{
		Method:    MethodGet,
		URL:       srv.URL,
		UserAgent: "book2png",
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if string(resp.Body) != "<ok/>" {
		t.Fatalf("body = %q", resp.Body)
	}
}

func TestClientDoPostSendsBodyAndContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/vnd.adobe.adept+xml" {
			t.Errorf("unexpected Content-Type: %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "<req/>" {
			t.Errorf("unexpected body: %q", body)
		}
		w.Header().Set("Content-Type", "application/vnd.adobe.adept+xml")
		w.Write([]byte("<resp/>"))
	}))
	defer srv.Close()

	c := NewFromHTTPClient(srv.Client())
	resp, err := c.Do(context.Background(), Request{
		Method:    MethodPost,
		URL:       srv.URL,
		UserAgent: "book2png",
		Content: &Content{
			ContentType: "application/vnd.adobe.adept+xml",
			Body:        []byte("<req/>"),
		},
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if string(resp.Body) != "<resp/>" {
		t.Fatalf("body = %q", resp.Body)
	}
}

func TestClientDoNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewFromHTTPClient(srv.Client())
	resp, err := c.Do(context.Background(), Request{Method: MethodGet, URL: srv.URL, UserAgent: "book2png"})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.StatusCode != 500 {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
}
