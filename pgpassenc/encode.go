package main

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Change is a single character of a password and its percent-encoded form.
type Change struct {
	Original string
	Encoded  string
}

// Encode percent-encodes every byte of password outside the unreserved set
// (A-Z a-z 0-9 - _ . ~), so the result can be placed verbatim in the
// password field of a URI.
func Encode(password string) string {
	// QueryEscape leaves only the unreserved set as is, but writes space as
	// '+'. A literal '+' has already become %2B at this point.
	return strings.ReplaceAll(url.QueryEscape(password), "+", "%20")
}

// Decode reverses Encode. A '+' is kept as is.
func Decode(encoded string) (string, error) {
	decoded, err := url.PathUnescape(encoded)
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}

	return decoded, nil
}

// Changes lists the distinct characters of password that Encode rewrites,
// in the order they first appear. An invalid UTF-8 byte counts as a
// character of its own.
func Changes(password string) []Change {
	var changes []Change
	seen := make(map[string]struct{})

	for i := 0; i < len(password); {
		_, size := utf8.DecodeRuneInString(password[i:])
		char := password[i : i+size]
		i += size

		if _, ok := seen[char]; ok {
			continue
		}
		seen[char] = struct{}{}

		if encoded := Encode(char); encoded != char {
			changes = append(changes, Change{Original: char, Encoded: encoded})
		}
	}

	return changes
}
