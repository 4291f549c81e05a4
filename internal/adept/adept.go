// Package adept implements the ADEPT wire protocol: the XML request/response
// shapes exchanged with Adobe's activation/authentication services and a
// fulfillment operator, the error-priority response parser, and the signed
// request builder that ties the canonical hasher and RSA signer together.
package adept

// Namespace is the ADEPT XML namespace every element in the protocol lives
// under.
const Namespace = "http://ns.adobe.com/adept"

// ContentType is the Content-Type value required on every request and
// response body.
const ContentType = "application/vnd.adobe.adept+xml"

// UserAgent is sent on every request, matching the reference client's
// identity string exactly.
const UserAgent = "book2png"
