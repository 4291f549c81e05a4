package adept

import "encoding/xml"

// ActivationServiceInfo is the response to GET {activationUrl}/ActivationServiceInfo.
type ActivationServiceInfo struct {
	XMLName     xml.Name `xml:"activationServiceInfo"`
	AuthURL     string   `xml:"authURL"`
	UserInfoURL string   `xml:"userInfoURL"`
	Certificate string   `xml:"certificate"`
}

// SignInMethod describes one authentication mechanism the auth service
// advertises.
type SignInMethod struct {
	Method string `xml:"method,attr"`
	Type   string `xml:"type,attr"`
	Name   string `xml:",chardata"`
}

// AuthenticationServiceInfo is the response to GET {authURL}/AuthenticationServiceInfo.
type AuthenticationServiceInfo struct {
	XMLName       xml.Name       `xml:"authenticationServiceInfo"`
	AuthURL       string         `xml:"authURL"`
	Certificate   string         `xml:"certificate"`
	SignInMethods []SignInMethod `xml:"signInMethods>signInMethod"`
}

// HasMethod reports whether method (e.g. "anonymous") is among the
// advertised sign-in methods.
func (a *AuthenticationServiceInfo) HasMethod(method string) bool {
	for _, m := range a.SignInMethods {
		if m.Method == method {
			return true
		}
	}
	return false
}

// SignInRequest is the unsigned SignInDirect request body.
type SignInRequest struct {
	XMLName                    xml.Name `xml:"adept:signIn"`
	XMLNSAdept                 string   `xml:"xmlns:adept,attr"`
	Method                     string   `xml:"method,attr"`
	SignInData                 string   `xml:"adept:signInData"`
	PublicAuthKey              string   `xml:"adept:publicAuthKey"`
	EncryptedPrivateAuthKey    string   `xml:"adept:encryptedPrivateAuthKey"`
	PublicLicenseKey           string   `xml:"adept:publicLicenseKey"`
	EncryptedPrivateLicenseKey string   `xml:"adept:encryptedPrivateLicenseKey"`
}

// NewAnonymousSignInRequest builds the unsigned sign-in body for the
// "anonymous" method.
func NewAnonymousSignInRequest(signInData, pubAuth, encPrivAuth, pubLicense, encPrivLicense string) *SignInRequest {
	return &SignInRequest{
		XMLNSAdept:                 Namespace,
		Method:                     "anonymous",
		SignInData:                 signInData,
		PublicAuthKey:              pubAuth,
		EncryptedPrivateAuthKey:    encPrivAuth,
		PublicLicenseKey:           pubLicense,
		EncryptedPrivateLicenseKey: encPrivLicense,
	}
}

// SignInResponse is the response to SignInDirect: the server-issued identity
// and key material that supersedes what the client generated locally.
type SignInResponse struct {
	XMLName                   xml.Name `xml:"credentials"`
	User                      string   `xml:"user"`
	Pkcs12                    string   `xml:"pkcs12"`
	EncryptedPrivateLicenseKey string  `xml:"encryptedPrivateLicenseKey"`
	LicenseCertificate        string   `xml:"licenseCertificate"`
}

// TargetDevice is the nested device descriptor embedded in Activate
// requests (Fulfill requests use FulfillmentTargetDevice). Its field order (softwareVersion first) differs from
// the top-level Activate device fields and must be preserved exactly: the
// canonical hasher does not reorder child elements, only attributes.
type TargetDevice struct {
	SoftwareVersion string `xml:"adept:softwareVersion"`
	ClientOS        string `xml:"adept:clientOS"`
	ClientLocale    string `xml:"adept:clientLocale"`
	ClientVersion   string `xml:"adept:clientVersion"`
	DeviceType      string `xml:"adept:deviceType"`
	Fingerprint     string `xml:"adept:fingerprint"`
}

// ActivateRequest is the signed POST /Activate body.
type ActivateRequest struct {
	XMLName       xml.Name     `xml:"adept:activate"`
	XMLNSAdept    string       `xml:"xmlns:adept,attr"`
	RequestType   string       `xml:"requestType,attr"`
	Fingerprint   string       `xml:"adept:fingerprint"`
	DeviceType    string       `xml:"adept:deviceType"`
	ClientOS      string       `xml:"adept:clientOS"`
	ClientLocale  string       `xml:"adept:clientLocale"`
	ClientVersion string       `xml:"adept:clientVersion"`
	TargetDevice  TargetDevice `xml:"adept:targetDevice"`
	Nonce         string       `xml:"adept:nonce"`
	Expiration    string       `xml:"adept:expiration"`
	User          string       `xml:"adept:user"`
	Signature     string       `xml:"adept:signature,omitempty"`
}

func (r *ActivateRequest) SetSignature(sig string) { r.Signature = sig }

// ActivateResponse is the response to POST /Activate.
type ActivateResponse struct {
	XMLName   xml.Name `xml:"activationToken"`
	Device    string   `xml:"device"`
	Signature string   `xml:"signature"`
}

// InitLicenseServiceRequest is the signed POST /InitLicenseService body.
type InitLicenseServiceRequest struct {
	XMLName     xml.Name `xml:"adept:licenseServiceRequest"`
	XMLNSAdept  string   `xml:"xmlns:adept,attr"`
	Identity    string   `xml:"identity,attr"`
	OperatorURL string   `xml:"adept:operatorURL"`
	Nonce       string   `xml:"adept:nonce"`
	Expiration  string   `xml:"adept:expiration"`
	User        string   `xml:"adept:user"`
	Signature   string   `xml:"adept:signature,omitempty"`
}

func (r *InitLicenseServiceRequest) SetSignature(sig string) { r.Signature = sig }
