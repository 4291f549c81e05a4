package adeptcrypto

import (
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"testing"
	"time"
)

// selfSignedCert builds a minimal self-signed X.509 certificate around kp's
// public key, for tests that need a certDER to pass to EncryptWithCert.
func selfSignedCert(t *testing.T, kp *Keypair) []byte {
	t.Helper()
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "adeptcrypto-test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(Rand, tmpl, tmpl, &kp.Private.PublicKey, kp.Private)
	if err != nil {
		t.Fatalf("CreateCertificate: %v", err)
	}
	return der
}
