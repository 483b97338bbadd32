// Package urlutil provides URL scheme predicates shared by the fetcher
// library and the command-line tool.
package urlutil

import (
	"fmt"
	"net/url"
	"strings"
)

// Schemes a schema URL may use.
const (
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"
	SchemeFile  = "file"
)

// absolutePrefixes are the literal scheme prefixes recognized on a
// schemaLocation before relative resolution is attempted.
var absolutePrefixes = []string{"http://", "https://", "file://"}

// HasAbsoluteScheme reports whether s starts with a recognized absolute
// scheme prefix (http://, https:// or file://). Matching is exact and
// case-sensitive; anything else is treated as a relative reference.
func HasAbsoluteScheme(s string) bool {
	for _, p := range absolutePrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// IsNetwork reports whether u is fetched over the network rather than from
// the local filesystem.
func IsNetwork(u *url.URL) bool {
	return u.Scheme == SchemeHTTP || u.Scheme == SchemeHTTPS
}

// SupportedScheme reports whether scheme names a transport the fetcher can
// retrieve schemas through.
func SupportedScheme(scheme string) bool {
	switch scheme {
	case SchemeHTTP, SchemeHTTPS, SchemeFile:
		return true
	}
	return false
}

// ParseRootURL parses a schema URL given as a command-line argument. The
// URL must be absolute and use a supported scheme.
func ParseRootURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid schema URL %q: %w", raw, err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("schema URL %q is not absolute", raw)
	}
	if !SupportedScheme(u.Scheme) {
		return nil, fmt.Errorf("schema URL %q has unsupported scheme %q (want http, https or file)", raw, u.Scheme)
	}
	return u, nil
}
