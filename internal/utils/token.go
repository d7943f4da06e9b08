package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateOpaqueToken returns a url-safe random token used for email
// verification and password reset. 32 bytes of entropy, 43 characters encoded.
func GenerateOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
