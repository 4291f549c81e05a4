package dedrm

import (
	"encoding/xml"
	"fmt"
)

// manifestPath is the archive entry every encrypted EPUB carries and that
// the rebuilt output must not include.
const manifestPath = "META-INF/encryption.xml"

// Recognized EncryptionMethod/@Algorithm URIs.
const (
	AlgAES128CBC             = "http://www.w3.org/2001/04/xmlenc#aes128-cbc"
	AlgAES128CBCUncompressed = "http://ns.adobe.com/adept/xmlenc#aes128-cbc-uncompressed"
)

// Compression identifies whether an entry needs inflating after decryption.
type Compression int

const (
	Deflate Compression = iota
	NoCompression
)

// EntryEncryption describes how one archive entry was encrypted.
type EntryEncryption struct {
	Algorithm   string
	Compression Compression
}

// Manifest maps an archive entry path to its encryption descriptor.
type Manifest map[string]EntryEncryption

type encryptedDataXML struct {
	XMLName         xml.Name `xml:"EncryptedData"`
	EncryptionMethod struct {
		Algorithm string `xml:"Algorithm,attr"`
	} `xml:"EncryptionMethod"`
	CipherData struct {
		CipherReference struct {
			URI string `xml:"URI,attr"`
		} `xml:"CipherReference"`
	} `xml:"CipherData"`
}

type encryptionXML struct {
	XMLName       xml.Name           `xml:"encryption"`
	EncryptedData []encryptedDataXML `xml:"EncryptedData"`
}

// ParseManifest parses the W3C XML-encryption dialect META-INF/encryption.xml
// uses, mapping each EncryptedData entry's cipher reference URI to its
// encryption/compression descriptor.
func ParseManifest(data []byte) (Manifest, error) {
	var doc encryptionXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("dedrm: parse encryption manifest: %w", err)
	}

	m := make(Manifest, len(doc.EncryptedData))
	for _, ed := range doc.EncryptedData {
		var comp Compression
		switch ed.EncryptionMethod.Algorithm {
		case AlgAES128CBC:
			comp = Deflate
		case AlgAES128CBCUncompressed:
			comp = NoCompression
		default:
			return nil, fmt.Errorf("dedrm: unsupported encryption algorithm %q", ed.EncryptionMethod.Algorithm)
		}
		m[ed.CipherData.CipherReference.URI] = EntryEncryption{
			Algorithm:   ed.EncryptionMethod.Algorithm,
			Compression: comp,
		}
	}
	return m, nil
}
