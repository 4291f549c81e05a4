package adept

import (
	"encoding/xml"
	"fmt"
)

// fulfillmentTokenDTO extracts just the operatorURL from an ACSM; the rest
// of the document is preserved only as raw bytes (see Acsm.Raw) because the
// fulfill request must embed it byte-for-byte, HMAC and all.
type fulfillmentTokenDTO struct {
	XMLName     xml.Name `xml:"fulfillmentToken"`
	OperatorURL string   `xml:"operatorURL"`
}

// Acsm is a parsed fulfillment ticket: the extracted operator URL plus the
// complete original document bytes, preserved verbatim.
type Acsm struct {
	operatorURL string
	raw         []byte
}

// ParseAcsm parses raw ACSM bytes. The raw bytes are retained unmodified for
// later verbatim embedding in the fulfill request.
func ParseAcsm(raw []byte) (*Acsm, error) {
	var dto fulfillmentTokenDTO
	if err := xml.Unmarshal(raw, &dto); err != nil {
		return nil, fmt.Errorf("adept: parse acsm: %w", err)
	}
	if dto.OperatorURL == "" {
		return nil, fmt.Errorf("adept: acsm missing operatorURL")
	}
	return &Acsm{operatorURL: dto.OperatorURL, raw: raw}, nil
}

// OperatorURL returns the fulfillment operator's base URL.
func (a *Acsm) OperatorURL() string { return a.operatorURL }

// Raw returns the original ACSM document bytes, unmodified.
func (a *Acsm) Raw() []byte { return a.raw }
