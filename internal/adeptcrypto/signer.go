package adeptcrypto

import (
	"crypto/rsa"
	"encoding/base64"
)

// Signer signs serialized ADEPT request digests with a user's private auth
// key. It carries no state beyond the key: one Signer is built per
// account/session and reused across every signed request.
type Signer struct {
	key *rsa.PrivateKey
}

// NewSigner wraps priv for use as an ADEPT request signer.
func NewSigner(priv *rsa.PrivateKey) *Signer {
	return &Signer{key: priv}
}

// SignDigest signs an already-computed canonical-hash digest and returns the
// base64-encoded signature ready to drop into an <adept:signature> element.
func (s *Signer) SignDigest(digest []byte) (string, error) {
	sig, err := Sign(s.key, digest)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}
