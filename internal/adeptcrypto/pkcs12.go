package adeptcrypto

import (
	"crypto/rsa"
	"crypto/x509"
	"fmt"

	pkcs12 "software.sslmate.com/src/go-pkcs12"
)

// UnwrapPKCS12 parses a PKCS#12 bundle and returns the DER-encoded private
// key and leaf certificate. Exactly one private-key/certificate pair with a
// certificate chain of length 1 is expected; any deviation fails.
func UnwrapPKCS12(data []byte, password string) (keyDER, certDER []byte, err error) {
	priv, cert, caCerts, err := pkcs12.DecodeChain(data, password)
	if err != nil {
		return nil, nil, fmt.Errorf("adeptcrypto: decode pkcs12: %w", err)
	}
	if len(caCerts) != 0 {
		return nil, nil, fmt.Errorf("adeptcrypto: pkcs12 certificate chain length != 1 (found %d extra certs)", len(caCerts))
	}
	rsaKey, ok := priv.(*rsa.PrivateKey)
	if !ok {
		return nil, nil, fmt.Errorf("adeptcrypto: pkcs12 private key is not RSA")
	}
	keyDER, err = x509.MarshalPKCS8PrivateKey(rsaKey)
	if err != nil {
		return nil, nil, fmt.Errorf("adeptcrypto: marshal unwrapped pkcs12 key: %w", err)
	}
	return keyDER, cert.Raw, nil
}
