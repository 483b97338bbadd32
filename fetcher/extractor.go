package fetcher

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/ianaindex"

	"github.com/mfalaize/schema-fetcher/xsderrors"
)

// XSD element and attribute names matched by local name; namespace prefixes
// vary between documents and are ignored.
const (
	schemaElement      = "schema"
	includeElement     = "include"
	importElement      = "import"
	schemaLocationAttr = "schemaLocation"
)

// RefKind identifies which schema composition element produced a reference.
// Both kinds are traversed identically; the distinction is kept for logging
// and the mirror manifest.
type RefKind string

const (
	// RefInclude is a reference declared by an include element.
	RefInclude RefKind = "include"
	// RefImport is a reference declared by an import element.
	RefImport RefKind = "import"
)

// mention is one schemaLocation occurrence, in document order.
type mention struct {
	schemaLocation string
	kind           RefKind
}

// extractReferences tokenizes content as XML and collects the schemaLocation
// attributes of include and import elements sitting directly under the root
// schema element. Nested occurrences (inside annotation, redefine, and the
// like) are not traversal edges and are skipped. An include or import
// without a schemaLocation is legal XSD and is skipped with a warning.
//
// sourceURL only labels diagnostics and errors; no resolution happens here.
func extractReferences(content []byte, sourceURL string, logger Logger) ([]mention, error) {
	dec := xml.NewDecoder(bytes.NewReader(content))
	dec.CharsetReader = charsetReader

	var (
		mentions []mention
		depth    int
		sawRoot  bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &xsderrors.UnparsableSchemaError{URL: sourceURL, Cause: err}
		}

		switch el := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 1 {
				if el.Name.Local != schemaElement {
					return nil, &xsderrors.UnparsableSchemaError{
						URL:     sourceURL,
						Message: fmt.Sprintf("root element is %q, want %q", el.Name.Local, schemaElement),
					}
				}
				sawRoot = true
				continue
			}
			if depth != 2 {
				continue
			}
			kind, ok := refKindOf(el.Name.Local)
			if !ok {
				continue
			}
			loc, ok := attrByLocalName(el.Attr, schemaLocationAttr)
			if !ok {
				logger.Warn("include/import without schemaLocation",
					"url", sourceURL, "element", el.Name.Local)
				continue
			}
			mentions = append(mentions, mention{schemaLocation: loc, kind: kind})
		case xml.EndElement:
			depth--
		}
	}

	if !sawRoot {
		return nil, &xsderrors.UnparsableSchemaError{URL: sourceURL, Message: "no schema root element"}
	}
	return mentions, nil
}

func refKindOf(local string) (RefKind, bool) {
	switch local {
	case includeElement:
		return RefInclude, true
	case importElement:
		return RefImport, true
	}
	return "", false
}

// attrByLocalName returns the value of the first attribute whose local name
// matches name.
func attrByLocalName(attrs []xml.Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// charsetReader decodes token streams whose XML declaration names a
// non-UTF-8 encoding, via the IANA character set registry. Decoding applies
// to extraction only; mirrored file content is always written as fetched.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", charset, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}
	return enc.NewDecoder().Reader(input), nil
}
