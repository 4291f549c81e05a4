// Package adeptcrypto implements the cryptographic primitives the ADEPT
// protocol relies on: AES-128-CBC, RSA-1024 PKCS1v15 (unprefixed signing),
// PKCS#12 unwrapping, and a deterministic seeded PRNG.
package adeptcrypto

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/chacha20"
)

// ErrRandUnseeded is the panic value used by Rand.Read when it is invoked
// before Seed. A reimplementation must never fall back to fresh OS entropy
// on first use: tests depend on a deterministic stream given a fixed seed.
var ErrRandUnseeded = errors.New("adeptcrypto: rand used before Seed")

var (
	randOnce sync.Once
	randMu   sync.Mutex
	stream   *chacha20.Cipher
	seeded   bool
)

// zeroNonce is held fixed for the process lifetime: entropy comes solely
// from the 32-byte seed passed to Seed, not from the nonce.
var zeroNonce = make([]byte, chacha20.NonceSize)

// Seed initializes the process-wide PRNG from a 32-byte seed drawn from OS
// entropy at startup. Must be called exactly once before any Read; a second
// call is a no-op (sync.Once), matching "seeded once" semantics.
func Seed(seed [32]byte) {
	randOnce.Do(func() {
		c, err := chacha20.NewUnauthenticatedCipher(seed[:], zeroNonce)
		if err != nil {
			panic(fmt.Sprintf("adeptcrypto: init chacha20 stream: %v", err))
		}
		randMu.Lock()
		stream = c
		seeded = true
		randMu.Unlock()
	})
}

// randReader adapts the package-level chacha20 stream to io.Reader so it can
// be passed directly as the rand.Reader argument of crypto/rsa and
// crypto/cipher operations.
type randReader struct{}

// Rand is the process-wide deterministic PRNG described in the concurrency
// model: seeded once at startup, shared mutably, fatal if read before
// seeding.
var Rand io.Reader = randReader{}

func (randReader) Read(p []byte) (int, error) {
	randMu.Lock()
	defer randMu.Unlock()
	if !seeded {
		panic(ErrRandUnseeded)
	}
	for i := range p {
		p[i] = 0
	}
	stream.XORKeyStream(p, p)
	return len(p), nil
}
