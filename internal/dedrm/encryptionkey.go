package dedrm

import (
	"crypto/rsa"
	"fmt"

	"github.com/ntqbit/adobededrmtools/internal/adeptcrypto"
)

// UnwrapContentKey RSA-PKCS1v15-decrypts the encrypted content key with the
// account's private license key, asserting the AES-128 length invariant.
func UnwrapContentKey(priv *rsa.PrivateKey, encryptedKey []byte) ([]byte, error) {
	key, err := adeptcrypto.Decrypt(priv, encryptedKey)
	if err != nil {
		return nil, fmt.Errorf("dedrm: decrypt content key: %w", err)
	}
	if len(key) != 16 {
		return nil, fmt.Errorf("dedrm: content key has unexpected length %d, want 16", len(key))
	}
	return key, nil
}
