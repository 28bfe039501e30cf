package repository

import "net/url"

// Free text is stored percent-encoded. encodeText and decodeText must stay symmetric.
func encodeText(s string) string {
	return url.PathEscape(s)
}

// decodeText keeps the raw value when it is not valid percent-encoding,
// so rows written by other tools still read back.
func decodeText(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
