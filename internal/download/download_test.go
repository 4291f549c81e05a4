package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ntqbit/adobededrmtools/internal/httpclient"
)

func TestSimpleDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ciphertext-bytes"))
	}))
	defer srv.Close()

	client := httpclient.NewFromHTTPClient(srv.Client())
	data, err := Simple(context.Background(), client, srv.URL)
	if err != nil {
		t.Fatalf("Simple: %v", err)
	}
	if string(data) != "ciphertext-bytes" {
		t.Errorf("data = %q", data)
	}
}

func TestSimpleDownloadNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := httpclient.NewFromHTTPClient(srv.Client())
	if _, err := Simple(context.Background(), client, srv.URL); err == nil {
		t.Fatal("expected an error for a 404 response")
	}
}
