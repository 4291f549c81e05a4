package dedrm

import "testing"

func TestParseManifest(t *testing.T) {
	data := []byte(`<encryption xmlns="urn:oasis:names:tc:opendocument:xmlns:container" xmlns:enc="http://www.w3.org/2001/04/xmlenc#">
  <enc:EncryptedData>
    <enc:EncryptionMethod Algorithm="http://www.w3.org/2001/04/xmlenc#aes128-cbc"/>
    <enc:CipherData><enc:CipherReference URI="OEBPS/a.xhtml"/></enc:CipherData>
  </enc:EncryptedData>
  <enc:EncryptedData>
    <enc:EncryptionMethod Algorithm="http://ns.adobe.com/adept/xmlenc#aes128-cbc-uncompressed"/>
    <enc:CipherData><enc:CipherReference URI="OEBPS/Fonts/x.otf"/></enc:CipherData>
  </enc:EncryptedData>
</encryption>`)

	m, err := ParseManifest(data)
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if len(m) != 2 {
		t.Fatalf("got %d entries, want 2", len(m))
	}

	a, ok := m["OEBPS/a.xhtml"]
	if !ok {
		t.Fatal("missing OEBPS/a.xhtml")
	}
	if a.Compression != Deflate {
		t.Errorf("a.xhtml compression = %v, want Deflate", a.Compression)
	}

	x, ok := m["OEBPS/Fonts/x.otf"]
	if !ok {
		t.Fatal("missing OEBPS/Fonts/x.otf")
	}
	if x.Compression != NoCompression {
		t.Errorf("x.otf compression = %v, want NoCompression", x.Compression)
	}
}

func TestParseManifestUnsupportedAlgorithm(t *testing.T) {
	data := []byte(`<encryption><EncryptedData><EncryptionMethod Algorithm="http://example/unsupported"/><CipherData><CipherReference URI="a"/></CipherData></EncryptedData></encryption>`)
	if _, err := ParseManifest(data); err == nil {
		t.Fatal("expected an error for an unsupported algorithm")
	}
}
