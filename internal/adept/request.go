package adept

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/ntqbit/adobededrmtools/internal/httpclient"
)

// MakeURL joins a service base URL with a literal path. No normalization is
// performed: the base must not carry a trailing slash and the path must
// start with one (e.g. "/Activate"), exactly as the protocol expects.
func MakeURL(base, path string) string {
	return base + path
}

func checkResponse(resp httpclient.Response) ([]byte, error) {
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("adept: unexpected HTTP status %d", resp.StatusCode)
	}
	if resp.ContentType != ContentType {
		return nil, fmt.Errorf("adept: unexpected content-type %q", resp.ContentType)
	}
	if !utf8.Valid(resp.Body) {
		return nil, fmt.Errorf("adept: response body is not valid UTF-8")
	}
	return resp.Body, nil
}

func doGet(ctx context.Context, client httpclient.HttpClient, url string) ([]byte, error) {
	resp, err := client.Do(ctx, httpclient.Request{
		Method:    httpclient.MethodGet,
		URL:       url,
		UserAgent: UserAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("adept: GET %s: %w", url, err)
	}
	return checkResponse(resp)
}

func doPost(ctx context.Context, client httpclient.HttpClient, url string, body []byte) ([]byte, error) {
	resp, err := client.Do(ctx, httpclient.Request{
		Method:    httpclient.MethodPost,
		URL:       url,
		UserAgent: UserAgent,
		Content: &httpclient.Content{
			ContentType: ContentType,
			Body:        body,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("adept: POST %s: %w", url, err)
	}
	return checkResponse(resp)
}

// Get issues a GET and parses the response as T, applying the error-priority
// check first.
func Get[T any](ctx context.Context, client httpclient.HttpClient, url string) (*T, error) {
	body, err := doGet(ctx, client, url)
	if err != nil {
		return nil, err
	}
	return ParseResponse[T](body)
}

// PostXML issues a POST with reqBody and parses the response as T.
func PostXML[T any](ctx context.Context, client httpclient.HttpClient, url string, reqBody []byte) (*T, error) {
	body, err := doPost(ctx, client, url, reqBody)
	if err != nil {
		return nil, err
	}
	return ParseResponse[T](body)
}

// PostEmpty issues a POST with reqBody and expects an empty success
// response, still subject to the error-priority check.
func PostEmpty(ctx context.Context, client httpclient.HttpClient, url string, reqBody []byte) error {
	body, err := doPost(ctx, client, url, reqBody)
	if err != nil {
		return err
	}
	return ParseEmptyResponse(body)
}
