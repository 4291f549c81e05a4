package dedrm

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/ntqbit/adobededrmtools/internal/adeptcrypto"
)

// DedrmEpub strips ADEPT encryption from an EPUB archive: it reads the
// encryption manifest (if any), decrypts every listed entry with contentKey,
// and rebuilds the archive minus the manifest.
func DedrmEpub(data []byte, contentKey []byte) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("dedrm: open epub archive: %w", err)
	}

	manifest, err := readManifest(r)
	if err != nil {
		return nil, err
	}

	decrypt := func(raw []byte) ([]byte, error) {
		return adeptcrypto.DecryptAES(contentKey, raw)
	}

	var buf bytes.Buffer
	if err := RebuildZip(&buf, r, manifest, decrypt); err != nil {
		return nil, fmt.Errorf("dedrm: rebuild epub: %w", err)
	}
	return buf.Bytes(), nil
}

func readManifest(r *zip.Reader) (Manifest, error) {
	for _, f := range r.File {
		if f.Name != manifestPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("dedrm: open encryption manifest: %w", err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("dedrm: read encryption manifest: %w", err)
		}
		return ParseManifest(data)
	}

	log.Printf("dedrm: no encryption manifest found; treating archive as unencrypted")
	return Manifest{}, nil
}
