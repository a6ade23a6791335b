// Package auth extracts and checks the shared-secret token on API requests.
package auth

import (
	"crypto/subtle"
	"strings"
)

// Dedicated token header names. Write endpoints use their own header so the
// upload secret can be rotated independently of the read secret.
const (
	APIKeyHeader      = "X-Api-Key"
	UploadTokenHeader = "X-Upload-Token"
)

const bearerPrefix = "Bearer "

// ExtractToken returns the caller-supplied token, checking in order: the
// dedicated token header, an Authorization bearer header (prefix matched
// case-insensitively and stripped), then the "token" query parameter.
// Header names match case-insensitively. Returns "" when no token is
// present. Pure function of its inputs.
func ExtractToken(headers, query map[string]string, tokenHeader string) string {
	folded := make(map[string]string, len(headers))
	for name, value := range headers {
		folded[strings.ToLower(name)] = value
	}

	if token := folded[strings.ToLower(tokenHeader)]; token != "" {
		return token
	}

	if authz := folded["authorization"]; len(authz) >= len(bearerPrefix) &&
		strings.EqualFold(authz[:len(bearerPrefix)], bearerPrefix) {
		if token := strings.TrimSpace(authz[len(bearerPrefix):]); token != "" {
			return token
		}
	}

	return query["token"]
}

// Authorized reports whether the provided token matches the configured one.
func Authorized(provided, want string) bool {
	return subtle.ConstantTimeCompare([]byte(provided), []byte(want)) == 1
}
