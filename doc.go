// Package schemafetcher is the root of the schema-fetcher module, a tool and
// library for mirroring XML Schema (XSD) files together with everything they
// reference.
//
// Given one or more schema URLs, schema-fetcher downloads each schema and,
// transitively, every schema referenced through xsd include and import
// declarations, then writes the whole set into a single destination
// directory. References between downloaded schemas are rewritten to local
// filenames, so the mirror is self-contained and can validate XML documents
// without network access.
//
// # Installation
//
// Install the command-line tool:
//
//	go install github.com/mfalaize/schema-fetcher/cmd/schema-fetcher@latest
//
// Or add the library to your project:
//
//	go get github.com/mfalaize/schema-fetcher
//
// # Command-line usage
//
// The tool takes an absolute destination directory followed by one or more
// schema URLs:
//
//	schema-fetcher /srv/schemas/mirror https://example.com/schemas/order.xsd
//
// # Library usage
//
// The fetcher package exposes the same pipeline programmatically:
//
//	import "github.com/mfalaize/schema-fetcher/fetcher"
//
//	f := fetcher.New()
//	result, err := f.Fetch("/srv/schemas/mirror", "https://example.com/schemas/order.xsd")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("mirrored %d schemas\n", result.Stats.SchemaCount)
//
// Failures carry typed errors from the xsderrors package, so callers can
// distinguish unreachable schemas from unparsable ones:
//
//	var fetchErr *xsderrors.UnreachableSchemaError
//	if errors.As(err, &fetchErr) {
//		log.Printf("cannot reach %s", fetchErr.URL)
//	}
//
// This root package carries only build metadata (Version, UserAgent); the
// functionality lives in the fetcher and xsderrors packages.
package schemafetcher
