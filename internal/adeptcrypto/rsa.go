package adeptcrypto

import (
	"crypto"
	"crypto/rsa"
	"crypto/x509"
	"fmt"
)

// RSAKeyBits is the RSA modulus size ADEPT expects. Adobe's servers reject
// anything else; do not widen it.
const RSAKeyBits = 1024

// Keypair holds a freshly generated RSA key alongside the DER encodings the
// sign-in flow needs to ship over the wire.
type Keypair struct {
	Private    *rsa.PrivateKey
	PublicDER  []byte // PKIX-encoded public key
	PrivateDER []byte // PKCS#8-encoded private key
}

// MakeKeypair generates an RSA-1024 keypair using the process PRNG.
func MakeKeypair() (*Keypair, error) {
	priv, err := rsa.GenerateKey(Rand, RSAKeyBits)
	if err != nil {
		return nil, fmt.Errorf("adeptcrypto: generate rsa key: %w", err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("adeptcrypto: marshal rsa public key: %w", err)
	}
	privDER, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, fmt.Errorf("adeptcrypto: marshal rsa private key: %w", err)
	}
	return &Keypair{Private: priv, PublicDER: pubDER, PrivateDER: privDER}, nil
}

// ParsePKCS8PrivateKey parses a PKCS#8 DER-encoded RSA private key, as
// persisted in the account record and recovered from server-issued PKCS#12
// bundles.
func ParsePKCS8PrivateKey(der []byte) (*rsa.PrivateKey, error) {
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("adeptcrypto: parse pkcs8 private key: %w", err)
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("adeptcrypto: pkcs8 key is not RSA")
	}
	return rsaKey, nil
}

// EncryptWithCert RSA-PKCS1v15-encrypts plaintext under the public key
// embedded in an X.509 certificate (DER-encoded).
func EncryptWithCert(certDER, plaintext []byte) ([]byte, error) {
	cert, err := x509.ParseCertificate(certDER)
	if err != nil {
		return nil, fmt.Errorf("adeptcrypto: parse certificate: %w", err)
	}
	pub, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("adeptcrypto: certificate public key is not RSA")
	}
	ct, err := rsa.EncryptPKCS1v15(Rand, pub, plaintext)
	if err != nil {
		return nil, fmt.Errorf("adeptcrypto: rsa encrypt: %w", err)
	}
	return ct, nil
}

// Sign computes an unprefixed RSA-PKCS1v15 signature over digest — the raw
// SHA-1 output of the canonical hasher, not a DigestInfo structure. Passing
// crypto.Hash(0) to SignPKCS1v15 is what suppresses the DigestInfo ASN.1
// prefix a real hash identifier would otherwise add, matching Adobe's
// "unprefixed" signing scheme exactly.
func Sign(priv *rsa.PrivateKey, digest []byte) ([]byte, error) {
	sig, err := rsa.SignPKCS1v15(Rand, priv, crypto.Hash(0), digest)
	if err != nil {
		return nil, fmt.Errorf("adeptcrypto: rsa sign: %w", err)
	}
	return sig, nil
}

// Decrypt RSA-PKCS1v15-decrypts ciphertext with the given private key.
func Decrypt(priv *rsa.PrivateKey, ciphertext []byte) ([]byte, error) {
	pt, err := rsa.DecryptPKCS1v15(Rand, priv, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("adeptcrypto: rsa decrypt: %w", err)
	}
	return pt, nil
}
