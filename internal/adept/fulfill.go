package adept

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// FulfillmentCredentials is the unsigned POST {operatorURL}/Auth body.
type FulfillmentCredentials struct {
	XMLName                   xml.Name `xml:"adept:credentials"`
	XMLNSAdept                string   `xml:"xmlns:adept,attr"`
	User                      string   `xml:"adept:user"`
	Certificate               string   `xml:"adept:certificate"`
	LicenseCertificate        string   `xml:"adept:licenseCertificate"`
	AuthenticationCertificate string   `xml:"adept:authenticationCertificate"`
}

// FulfillmentActivationToken identifies the activated device inside the
// fulfill request's nested target device.
type FulfillmentActivationToken struct {
	User   string `xml:"adept:user"`
	Device string `xml:"adept:device"`
}

// FulfillmentTargetDevice mirrors TargetDevice with an additional
// activationToken child, as the fulfill request requires.
type FulfillmentTargetDevice struct {
	SoftwareVersion string                      `xml:"adept:softwareVersion"`
	ClientOS        string                      `xml:"adept:clientOS"`
	ClientLocale    string                      `xml:"adept:clientLocale"`
	ClientVersion   string                      `xml:"adept:clientVersion"`
	DeviceType      string                      `xml:"adept:deviceType"`
	Fingerprint     string                      `xml:"adept:fingerprint"`
	ActivationToken FulfillmentActivationToken  `xml:"adept:activationToken"`
}

// fulfillmentTokenPlaceholder marshals to an empty element that
// xml.Marshal renders deterministically, used as the substitution sentinel
// for the verbatim ACSM embedding (see SubstituteFulfillmentToken).
type fulfillmentTokenPlaceholder struct{}

// FulfillmentTokenPlaceholderTag is the exact serialized form of the
// sentinel element substituted for the raw ACSM text.
const FulfillmentTokenPlaceholderTag = "<fulfillment_token_placeholder></fulfillment_token_placeholder>"

// FulfillRequest is the signed POST {operatorURL}/Fulfill body. The
// fulfillment token is never held as a typed field: it is embedded via
// string substitution of TokenPlaceholder's serialized form, because
// re-serializing the parsed ACSM would invalidate its internal HMAC (see
// SubstituteFulfillmentToken).
type FulfillRequest struct {
	XMLName          xml.Name                    `xml:"adept:fulfill"`
	XMLNSAdept       string                      `xml:"xmlns:adept,attr"`
	User             string                      `xml:"adept:user"`
	Device           string                      `xml:"adept:device"`
	DeviceType       string                      `xml:"adept:deviceType"`
	TokenPlaceholder fulfillmentTokenPlaceholder `xml:"fulfillment_token_placeholder"`
	TargetDevice     FulfillmentTargetDevice     `xml:"adept:targetDevice"`
	Signature        string                      `xml:"adept:signature,omitempty"`
}

func (r *FulfillRequest) SetSignature(sig string) { r.Signature = sig }

// SubstituteFulfillmentToken replaces the first occurrence of the
// placeholder sentinel in serialized with the raw ACSM text. rawAcsm must
// not itself contain the sentinel tag — that would make the substitution
// ambiguous and is treated as a protocol/format error rather than silently
// replacing the wrong occurrence.
func SubstituteFulfillmentToken(serialized []byte, rawAcsm []byte) ([]byte, error) {
	s := string(serialized)
	raw := string(rawAcsm)
	if strings.Contains(raw, FulfillmentTokenPlaceholderTag) {
		return nil, fmt.Errorf("adept: raw ACSM text contains the placeholder sentinel")
	}
	if !strings.Contains(s, FulfillmentTokenPlaceholderTag) {
		return nil, fmt.Errorf("adept: serialized fulfill body is missing the placeholder sentinel")
	}
	return []byte(strings.Replace(s, FulfillmentTokenPlaceholderTag, raw, 1)), nil
}

// Envelope is the top-level POST /Fulfill response.
type Envelope struct {
	XMLName           xml.Name          `xml:"envelope"`
	FulfillmentResult FulfillmentResult `xml:"fulfillmentResult"`
}

// Notify is an optional post-fulfillment notification callback.
type Notify struct {
	Critical  string `xml:"critical,attr"`
	NotifyURL string `xml:",chardata"`
}

// FulfillmentResult carries the fulfillment flags and one entry per
// purchased resource.
type FulfillmentResult struct {
	Returnable        bool               `xml:"returnable"`
	Initial           bool               `xml:"initial"`
	Notify            []Notify           `xml:"notify"`
	ResourceItemInfos []ResourceItemInfo `xml:"resourceItemInfo"`
}

// EncryptedKey is the RSA-PKCS1v15-encrypted content key, base64-encoded on
// the wire.
type EncryptedKey struct {
	KeyInfo string `xml:"keyInfo,attr"`
	Key     string `xml:",chardata"`
}

// LicenseToken carries the per-resource license material, including the
// wrapped content key.
type LicenseToken struct {
	User             string       `xml:"user"`
	Resource         string       `xml:"resource"`
	ResourceItemType string       `xml:"resourceItemType"`
	DeviceType       string       `xml:"deviceType"`
	Device           string       `xml:"device"`
	Voucher          string       `xml:"voucher"`
	LicenseURL       string       `xml:"licenseURL"`
	OperatorURL      string       `xml:"operatorURL"`
	Fulfillment      string       `xml:"fulfillment"`
	Distributor      string       `xml:"distributor"`
	EncryptedKey     EncryptedKey `xml:"encryptedKey"`
	Model            string       `xml:"model"`
	Signature        string       `xml:"signature"`
}

// ResourceItemInfo describes a single purchased resource within the
// fulfillment result.
type ResourceItemInfo struct {
	Resource     string       `xml:"resource"`
	ResourceItem int          `xml:"resourceItem"`
	Src          string       `xml:"src"`
	DownloadType string       `xml:"downloadType"`
	LicenseToken LicenseToken `xml:"licenseToken"`
}
