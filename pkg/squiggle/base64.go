package squiggle

import "encoding/base64"

// Base64Encode encodes data with the standard alphabet and '=' padding.
// Empty input yields the empty string.
func Base64Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Base64Decode reverses [Base64Encode].
func Base64Decode(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
