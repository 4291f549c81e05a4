package adeptcrypto

import (
	"bytes"
	"testing"
)

func init() {
	var seed [32]byte
	for i := range seed {
		seed[i] = byte(i)
	}
	Seed(seed)
}

// TestAESRoundTrip covers property 3 and scenario S3: for a 16-byte key and
// the plaintext "hello", encrypt/decrypt round-trips and the ciphertext is
// exactly 32 bytes (16-byte IV + one padded block).
func TestAESRoundTrip(t *testing.T) {
	key := make([]byte, 16)
	for i := range key {
		key[i] = byte(i)
	}
	plaintext := []byte("hello")

	ct, err := EncryptAES(key, plaintext)
	if err != nil {
		t.Fatalf("EncryptAES: %v", err)
	}
	if len(ct) != 32 {
		t.Fatalf("ciphertext length = %d, want 32", len(ct))
	}

	pt, err := DecryptAES(key, ct)
	if err != nil {
		t.Fatalf("DecryptAES: %v", err)
	}
	if !bytes.Equal(pt, plaintext) {
		t.Fatalf("round-trip mismatch: got %q, want %q", pt, plaintext)
	}
}

func TestAESRoundTripVariousLengths(t *testing.T) {
	key := make([]byte, 16)
	for i := range key {
		key[i] = byte(i * 3)
	}
	for _, n := range []int{0, 1, 15, 16, 17, 31, 32, 100} {
		p := bytes.Repeat([]byte{0xAB}, n)
		ct, err := EncryptAES(key, p)
		if err != nil {
			t.Fatalf("EncryptAES(len=%d): %v", n, err)
		}
		wantLen := n + (16 - n%16) + 16
		if len(ct) != wantLen {
			t.Fatalf("len=%d: ciphertext length = %d, want %d", n, len(ct), wantLen)
		}
		pt, err := DecryptAES(key, ct)
		if err != nil {
			t.Fatalf("DecryptAES(len=%d): %v", n, err)
		}
		if !bytes.Equal(pt, p) {
			t.Fatalf("len=%d: round-trip mismatch", n)
		}
	}
}

func TestDecryptAESRejectsShortInput(t *testing.T) {
	key := make([]byte, 16)
	if _, err := DecryptAES(key, []byte("short")); err == nil {
		t.Fatal("expected error for input shorter than one IV")
	}
}

func TestDecryptAESRejectsBadKeyLength(t *testing.T) {
	if _, err := DecryptAES([]byte("tooshort"), make([]byte, 32)); err == nil {
		t.Fatal("expected error for non-16-byte key")
	}
}
