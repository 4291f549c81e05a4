package adept

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// AdeptError is the structured error the server reports as
// <error data="NAME ARG1 ARG2 ..."/>. It implements error so callers can
// propagate it with normal %w wrapping.
type AdeptError struct {
	Name string
	Args []string
}

func (e *AdeptError) Error() string {
	if len(e.Args) == 0 {
		return fmt.Sprintf("adept error: %s", e.Name)
	}
	return fmt.Sprintf("adept error: %s %s", e.Name, strings.Join(e.Args, " "))
}

type errorDTO struct {
	XMLName xml.Name `xml:"error"`
	Data    string   `xml:"data,attr"`
}

// parseAdeptErrorData splits data on whitespace: the first token is the
// error name, the remainder are its arguments.
func parseAdeptErrorData(data string) *AdeptError {
	fields := strings.Fields(data)
	if len(fields) == 0 {
		return &AdeptError{}
	}
	return &AdeptError{Name: fields[0], Args: fields[1:]}
}

// tryParseAsError attempts to interpret body as <error data="..."/>. A nil
// return means body is not error-shaped; the caller should continue
// trying to parse it as the expected success type.
func tryParseAsError(body []byte) *AdeptError {
	var dto errorDTO
	if err := xml.Unmarshal(body, &dto); err != nil {
		return nil
	}
	if dto.XMLName.Local != "error" {
		return nil
	}
	return parseAdeptErrorData(dto.Data)
}

// ParseResponse deserializes body into T, first checking for an embedded
// <error data="..."/> and returning it as an error if found. This ordering
// is required because an empty-body success type would otherwise silently
// swallow an error response (property 7).
func ParseResponse[T any](body []byte) (*T, error) {
	if aerr := tryParseAsError(body); aerr != nil {
		return nil, aerr
	}
	var v T
	if err := xml.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("adept: parse response: %w", err)
	}
	return &v, nil
}

// ParseEmptyResponse validates a body expected to carry no meaningful
// payload (e.g. Auth, InitLicenseService), applying the same error-priority
// check before accepting it as success.
func ParseEmptyResponse(body []byte) error {
	if aerr := tryParseAsError(body); aerr != nil {
		return aerr
	}
	return nil
}
