package dedrm

import "fmt"

// Dedrm dispatches to the resource-type-specific transform for mime and
// returns the plaintext bytes plus the output file extension to use. Callers
// are expected to fall back to writing the raw ciphertext with a ".raw"
// extension when this returns an error.
func Dedrm(mime string, data []byte, contentKey []byte) ([]byte, string, error) {
	rt, err := ResourceTypeFromMime(mime)
	if err != nil {
		return nil, "", err
	}

	switch rt {
	case Epub:
		out, err := DedrmEpub(data, contentKey)
		if err != nil {
			return nil, "", fmt.Errorf("could not decrypt epub: %w", err)
		}
		return out, rt.FileExtension(), nil
	default:
		return nil, "", fmt.Errorf("dedrm: unsupported resource type")
	}
}
