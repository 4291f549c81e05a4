package adept

import (
	"encoding/xml"
	"testing"
)

func TestParseAdeptErrorData(t *testing.T) {
	body := []byte(`<error data="E_ADEPT_MISSING_REQUEST_CONTENT_TYPE http://example/endpoint"/>`)

	_, err := ParseResponse[ActivateResponse](body)
	if err == nil {
		t.Fatal("expected an error")
	}
	aerr, ok := err.(*AdeptError)
	if !ok {
		t.Fatalf("error is not *AdeptError: %T", err)
	}
	if aerr.Name != "E_ADEPT_MISSING_REQUEST_CONTENT_TYPE" {
		t.Errorf("name = %q", aerr.Name)
	}
	if len(aerr.Args) != 1 || aerr.Args[0] != "http://example/endpoint" {
		t.Errorf("args = %v", aerr.Args)
	}
}

func TestParseAdeptErrorDataNoArgs(t *testing.T) {
	aerr := parseAdeptErrorData("E_SOMETHING")
	if aerr.Name != "E_SOMETHING" || len(aerr.Args) != 0 {
		t.Errorf("got %+v", aerr)
	}
}

// errorPriorityType happens to also be a valid <error/> parse target: its
// required field is a string attribute, exactly like errorDTO, so it proves
// the error path wins even though the body could also unmarshal into T.
type errorPriorityType struct {
	XMLName xml.Name `xml:"error"`
	Data    string   `xml:"data,attr"`
}

func TestParseResponseErrorPriority(t *testing.T) {
	body := []byte(`<error data="E_SOMETHING arg1"/>`)
	_, err := ParseResponse[errorPriorityType](body)
	if err == nil {
		t.Fatal("expected the error path to be taken even though body also parses as T")
	}
	if _, ok := err.(*AdeptError); !ok {
		t.Fatalf("error is not *AdeptError: %T", err)
	}
}

func TestParseEmptyResponseSuccess(t *testing.T) {
	if err := ParseEmptyResponse([]byte("")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseEmptyResponseError(t *testing.T) {
	err := ParseEmptyResponse([]byte(`<error data="E_FAIL"/>`))
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestParseResponseSuccess(t *testing.T) {
	body := []byte(`<activationToken><device>urn:uuid:abc</device><signature>sig==</signature></activationToken>`)
	resp, err := ParseResponse[ActivateResponse](body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Device != "urn:uuid:abc" {
		t.Errorf("device = %q", resp.Device)
	}
}
