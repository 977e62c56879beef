package vision

import (
	"encoding/base64"
	"strings"
)

// EncodeImage converts raw image bytes into a base64 string suitable for a
// data URI payload. The remote API rejects payloads containing newlines, so
// any line breaks are stripped.
func EncodeImage(data []byte) string {
	encoded := base64.StdEncoding.EncodeToString(data)
	encoded = strings.ReplaceAll(encoded, "\n", "")
	encoded = strings.ReplaceAll(encoded, "\r", "")
	return encoded
}

// DataURI wraps a sanitized base64 payload in the data URI format the vision
// endpoint expects.
func DataURI(imageBase64 string) string {
	return "data:image/jpeg;base64," + imageBase64
}
