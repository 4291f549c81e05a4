package adept

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/ntqbit/adobededrmtools/internal/adeptcrypto"
	"github.com/ntqbit/adobededrmtools/internal/canonhash"
)

// Signable is implemented by every request body that carries a replaceable
// <adept:signature> element. SetSignature always replaces rather than
// appends: no request type ever needs a pre-existing placeholder in the
// serialization used for hashing, since the hasher skips signature/hmac
// elements regardless of their content.
type Signable interface {
	SetSignature(sig string)
}

// Sign marshals v with its signature field at the zero value, runs the
// canonical hasher over the result, signs the digest, sets the signature,
// and re-marshals. This is the shared builder pattern behind every signed
// ADEPT request.
func Sign(signer *adeptcrypto.Signer, v Signable) ([]byte, error) {
	unsigned, err := xml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("adept: marshal for signing: %w", err)
	}

	digest, err := canonhash.SumSHA1(sha1.New(), unsigned)
	if err != nil {
		return nil, fmt.Errorf("adept: canonical hash: %w", err)
	}

	sig, err := signer.SignDigest(digest)
	if err != nil {
		return nil, fmt.Errorf("adept: sign digest: %w", err)
	}

	v.SetSignature(sig)
	signed, err := xml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("adept: marshal signed body: %w", err)
	}
	return signed, nil
}

// RandomNonce returns base64(8 random bytes), required on every signed
// request.
func RandomNonce() (string, error) {
	buf := make([]byte, 8)
	if _, err := io.ReadFull(adeptcrypto.Rand, buf); err != nil {
		return "", fmt.Errorf("adept: generate nonce: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// MakeExpiration returns now+10 minutes as RFC 3339, seconds precision, UTC
// with a literal "Z" suffix.
func MakeExpiration() string {
	return time.Now().UTC().Add(10 * time.Minute).Format(time.RFC3339)
}
