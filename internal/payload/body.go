// Package payload parses and validates metadata submission bodies.
package payload

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// ErrMalformedBody is returned when the request body cannot be parsed as a
// JSON object. Its message is safe to return to the caller.
var ErrMalformedBody = &ValidationError{Message: "Request body must be a valid JSON object."}

// ParseBody decodes the raw request body, handling the base64 flag set by
// the API gateway, and parses it as a JSON object. Numbers are kept as
// json.Number so decimal values survive untouched. A missing or blank body
// yields an empty map.
func ParseBody(body string, isBase64 bool) (map[string]any, error) {
	raw, err := rawBody(body, isBase64)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var parsed map[string]any
	if err := dec.Decode(&parsed); err != nil {
		return nil, ErrMalformedBody
	}
	return parsed, nil
}

// DecodeBody decodes the raw request body into dst, handling the base64
// flag. An empty body leaves dst untouched.
func DecodeBody(body string, isBase64 bool, dst any) error {
	raw, err := rawBody(body, isBase64)
	if err != nil {
		return err
	}
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return ErrMalformedBody
	}
	return nil
}

func rawBody(body string, isBase64 bool) (string, error) {
	raw := body
	if isBase64 {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return "", ErrMalformedBody
		}
		raw = string(decoded)
	}
	return strings.TrimSpace(raw), nil
}
