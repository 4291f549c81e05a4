package dedrm

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"fmt"
	"io"
)

// RebuildZip streams r through to w: the manifest entry is dropped, entries
// listed in manifest are decrypted (and inflated when their algorithm calls
// for it), and every other entry is copied raw so its original compression
// method, CRC, and metadata survive untouched.
func RebuildZip(w io.Writer, r *zip.Reader, manifest Manifest, decrypt func(data []byte) ([]byte, error)) error {
	zw := zip.NewWriter(w)

	for _, f := range r.File {
		if f.Name == manifestPath {
			continue
		}

		enc, ok := manifest[f.Name]
		if !ok {
			if err := copyRaw(zw, f); err != nil {
				return fmt.Errorf("dedrm: copy %s: %w", f.Name, err)
			}
			continue
		}

		raw, err := readEntry(f)
		if err != nil {
			return fmt.Errorf("dedrm: read %s: %w", f.Name, err)
		}

		plain, err := decrypt(raw)
		if err != nil {
			return fmt.Errorf("dedrm: decrypt %s: %w", f.Name, err)
		}

		if enc.Compression == Deflate {
			plain, err = inflateRaw(plain)
			if err != nil {
				return fmt.Errorf("dedrm: inflate %s: %w", f.Name, err)
			}
		}

		fw, err := zw.Create(f.Name)
		if err != nil {
			return fmt.Errorf("dedrm: create %s: %w", f.Name, err)
		}
		if _, err := fw.Write(plain); err != nil {
			return fmt.Errorf("dedrm: write %s: %w", f.Name, err)
		}
	}

	return zw.Close()
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func copyRaw(zw *zip.Writer, f *zip.File) error {
	fw, err := zw.CreateRaw(&f.FileHeader)
	if err != nil {
		return err
	}
	rc, err := f.OpenRaw()
	if err != nil {
		return err
	}
	_, err = io.Copy(fw, rc)
	return err
}

func inflateRaw(data []byte) ([]byte, error) {
	fr := flate.NewReader(bytes.NewReader(data))
	defer fr.Close()
	return io.ReadAll(fr)
}
