package models

import "strings"

// Decoding describes how invalid UTF-8 in request bodies is handled.
type Decoding string

const (
	// DecodingIgnore drops undecodable bytes.
	DecodingIgnore Decoding = "ignore"

	// DecodingReplace substitutes U+FFFD for undecodable bytes.
	DecodingReplace Decoding = "replace"
)

func ParseDecoding(s string) (Decoding, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ignore":
		return DecodingIgnore, true
	case "replace":
		return DecodingReplace, true
	}

	return "", false
}
