// Package download fetches resolved resource URLs over plain HTTPS.
package download

import (
	"context"
	"fmt"

	"github.com/ntqbit/adobededrmtools/internal/adept"
	"github.com/ntqbit/adobededrmtools/internal/httpclient"
)

// Simple fetches url as a plain HTTP GET, failing on any non-200 response.
func Simple(ctx context.Context, client httpclient.HttpClient, url string) ([]byte, error) {
	resp, err := client.Do(ctx, httpclient.Request{
		Method:    httpclient.MethodGet,
		URL:       url,
		UserAgent: adept.UserAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("download: GET %s: %w", url, err)
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("download: GET %s: unexpected status %d", url, resp.StatusCode)
	}
	return resp.Body, nil
}
