package adept

import (
	"encoding/xml"
	"strings"
	"testing"
)

func TestSubstituteFulfillmentTokenPreservesRawBytes(t *testing.T) {
	raw := []byte(`<fulfillmentToken xmlns="http://ns.adobe.com/adept"><operatorURL>https://operator.example/adept</operatorURL><hmac>abc123==</hmac></fulfillmentToken>`)

	req := &FulfillRequest{
		XMLNSAdept: Namespace,
		User:       "urn:uuid:test-user",
		Device:     "urn:uuid:test-device",
		DeviceType: "standalone",
	}

	serialized, err := xml.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(serialized), FulfillmentTokenPlaceholderTag) {
		t.Fatalf("marshaled request does not contain the placeholder sentinel: %s", serialized)
	}

	out, err := SubstituteFulfillmentToken(serialized, raw)
	if err != nil {
		t.Fatalf("substitute: %v", err)
	}

	if !strings.Contains(string(out), string(raw)) {
		t.Fatalf("output does not contain the raw ACSM bytes verbatim")
	}
	if strings.Contains(string(out), FulfillmentTokenPlaceholderTag) {
		t.Fatalf("output still contains the placeholder sentinel")
	}
}

func TestSubstituteFulfillmentTokenRejectsMissingSentinel(t *testing.T) {
	_, err := SubstituteFulfillmentToken([]byte("<no-placeholder/>"), []byte("<raw/>"))
	if err == nil {
		t.Fatal("expected error for missing sentinel")
	}
}

func TestSubstituteFulfillmentTokenRejectsAmbiguousRaw(t *testing.T) {
	serialized := []byte("<a>" + FulfillmentTokenPlaceholderTag + "</a>")
	raw := []byte("<b>" + FulfillmentTokenPlaceholderTag + "</b>")
	_, err := SubstituteFulfillmentToken(serialized, raw)
	if err == nil {
		t.Fatal("expected error when the raw ACSM text contains the sentinel tag")
	}
}

func TestSubstituteFulfillmentTokenReplacesFirstOccurrenceOnly(t *testing.T) {
	serialized := []byte(FulfillmentTokenPlaceholderTag + FulfillmentTokenPlaceholderTag)
	raw := []byte("<raw/>")

	out, err := SubstituteFulfillmentToken(serialized, raw)
	if err != nil {
		t.Fatalf("substitute: %v", err)
	}
	want := string(raw) + FulfillmentTokenPlaceholderTag
	if string(out) != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}
