package fetcher

import (
	"fmt"
	"net/url"

	"github.com/mfalaize/schema-fetcher/internal/urlutil"
	"github.com/mfalaize/schema-fetcher/xsderrors"
)

// resolveReference turns a schemaLocation literal into the absolute URL of
// the schema it references.
//
// A literal carrying a recognized absolute scheme prefix (http://, https://,
// file://) is parsed and returned as written. Anything else resolves against
// the containing directory of the parent schema's URL per RFC 3986: a parent
// path ending in "/" is its own directory, otherwise the final segment is
// dropped, and "." / ".." segments collapse during resolution.
func resolveReference(schemaLocation string, parent *url.URL) (*url.URL, error) {
	if urlutil.HasAbsoluteScheme(schemaLocation) {
		u, err := url.Parse(schemaLocation)
		if err != nil {
			return nil, &xsderrors.MalformedReferenceError{
				SchemaLocation: schemaLocation,
				Parent:         parent.String(),
				Cause:          err,
			}
		}
		return u, nil
	}

	ref, err := url.Parse(schemaLocation)
	if err != nil {
		return nil, &xsderrors.MalformedReferenceError{
			SchemaLocation: schemaLocation,
			Parent:         parent.String(),
			Cause:          err,
		}
	}

	resolved := parent.ResolveReference(ref)
	if !urlutil.SupportedScheme(resolved.Scheme) {
		return nil, &xsderrors.MalformedReferenceError{
			SchemaLocation: schemaLocation,
			Parent:         parent.String(),
			Message:        fmt.Sprintf("resolved to unsupported scheme %q", resolved.Scheme),
		}
	}
	return resolved, nil
}
