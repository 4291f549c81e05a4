// Package canonhash implements ADEPT's canonical "ASN-tag" XML hashing
// scheme. The byte stream it emits is fed to SHA-1 and forms the input to
// request signing (see internal/adept). Any divergence from Adobe's
// reference byte stream causes the server to reject the signature, so the
// algorithm below must be treated as a fixed external contract, not a
// general-purpose canonicalization scheme.
package canonhash

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"hash"
	"io"
	"sort"
	"strings"
)

// Tag values for the ASN-tag record stream.
const (
	tagNone      byte = 0x00 // reserved, never emitted
	tagNsTag     byte = 0x01
	tagChild     byte = 0x02
	tagEndTag    byte = 0x03
	tagText      byte = 0x04
	tagAttribute byte = 0x05
)

// skippedNames lists local element names that are excised from the hash
// entirely — tag, attributes, children, everything — so that a signature can
// be embedded into a body and still hash identically to the unsigned body.
var skippedNames = map[string]bool{
	"hmac":      true,
	"signature": true,
}

// Hash runs the ASN-tag canonical hasher over the XML document in data and
// writes the resulting byte stream into w. The caller supplies the hash
// state (sha1.New() in production) or any other io.Writer, such as a
// bytes.Buffer, so the emitted stream itself can be inspected independently
// of the digest.
func Hash(w io.Writer, data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	h := &hasher{dec: dec, w: w}
	return h.run()
}

// SumSHA1 is a convenience wrapper that runs Hash into the given hash.Hash
// (normally sha1.New()) and returns its finalized digest.
func SumSHA1(h hash.Hash, data []byte) ([]byte, error) {
	h.Reset()
	if err := Hash(h, data); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}

type hasher struct {
	dec *xml.Decoder
	w   io.Writer
	err error
}

// run advances past the document prologue (comments, processing
// instructions) to find the root element and hashes it. Tokens after the
// root element's end tag are not read.
func (h *hasher) run() error {
	for {
		tok, err := h.dec.Token()
		if err == io.EOF {
			return fmt.Errorf("canonhash: no root element found")
		}
		if err != nil {
			return fmt.Errorf("canonhash: decode token: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			return h.element(start)
		}
		// ignore xml.ProcInst, xml.Comment, xml.CharData (whitespace) before root
	}
}

// element hashes the element named by start, whose StartElement token has
// already been consumed from the decoder. It consumes tokens up to and
// including the matching EndElement.
func (h *hasher) element(start xml.StartElement) error {
	if skippedNames[start.Name.Local] {
		return h.skipSubtree()
	}

	if start.Name.Space != "" {
		h.writeByte(tagNsTag)
		h.writeString(start.Name.Space)
	}
	h.writeString(start.Name.Local)

	attrs := make([]xml.Attr, 0, len(start.Attr))
	for _, a := range start.Attr {
		if isXmlnsAttr(a.Name) {
			continue
		}
		attrs = append(attrs, a)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].Name.Local < attrs[j].Name.Local
	})
	for _, a := range attrs {
		h.writeByte(tagAttribute)
		h.writeString("")
		h.writeString(a.Name.Local)
		h.writeString(a.Value)
	}

	h.writeByte(tagChild)

	for {
		tok, err := h.dec.Token()
		if err != nil {
			return fmt.Errorf("canonhash: decode token inside <%s>: %w", start.Name.Local, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := h.element(t); err != nil {
				return err
			}
		case xml.CharData:
			text := strings.TrimSpace(string(t))
			if text != "" {
				h.writeByte(tagText)
				h.writeString(text)
			}
		case xml.EndElement:
			h.writeByte(tagEndTag)
			return h.takeErr()
		default:
			// comments, processing instructions, directives: ignored
		}
	}
}

// skipSubtree consumes and discards tokens up to and including the matching
// EndElement for a `hmac`/`signature` element already opened, without
// emitting anything.
func (h *hasher) skipSubtree() error {
	depth := 1
	for depth > 0 {
		tok, err := h.dec.Token()
		if err != nil {
			return fmt.Errorf("canonhash: decode token while skipping subtree: %w", err)
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return nil
}

func isXmlnsAttr(name xml.Name) bool {
	return name.Local == "xmlns" || strings.HasPrefix(name.Local, "xmlns") || name.Space == "xmlns"
}

// writeString emits a 2-byte big-endian length followed by the raw UTF-8
// bytes of s.
func (h *hasher) writeString(s string) {
	if h.err != nil {
		return
	}
	b := []byte(s)
	if len(b) > 0xFFFF {
		h.err = fmt.Errorf("canonhash: string too long to encode (%d bytes)", len(b))
		return
	}
	var lenBuf [2]byte
	lenBuf[0] = byte(len(b) >> 8)
	lenBuf[1] = byte(len(b))
	if _, err := h.w.Write(lenBuf[:]); err != nil {
		h.err = err
		return
	}
	if _, err := h.w.Write(b); err != nil {
		h.err = err
	}
}

func (h *hasher) writeByte(b byte) {
	if h.err != nil {
		return
	}
	if _, err := h.w.Write([]byte{b}); err != nil {
		h.err = err
	}
}

func (h *hasher) takeErr() error {
	return h.err
}
