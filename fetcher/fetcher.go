// Package fetcher downloads an XSD schema and, transitively, every schema it
// references through include and import declarations, producing a
// self-contained local mirror.
//
// Each distinct schema URL is fetched exactly once and written to the
// destination directory under a generated unique filename. References to
// schemas fetched over the network are rewritten in the downloaded content
// to point at the local copies; everything else is preserved byte for byte,
// so the mirror can validate documents offline.
//
// Basic usage:
//
//	f := fetcher.New()
//	result, err := f.Fetch("/srv/mirror", "https://example.com/schemas/order.xsd")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("mirrored %d schemas\n", result.Stats.SchemaCount)
//
// Build and Emit expose the two halves of the pipeline separately for
// callers that need the schema graph or a custom write destination.
package fetcher

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	schemafetcher "github.com/mfalaize/schema-fetcher"
	"github.com/mfalaize/schema-fetcher/internal/fileutil"
	"github.com/mfalaize/schema-fetcher/internal/urlutil"
	"github.com/mfalaize/schema-fetcher/xsderrors"
)

// FetchFunc retrieves the raw bytes of one schema document. Implementations
// substitute for the built-in HTTP(S) and file transport, mainly in tests.
type FetchFunc func(u *url.URL) ([]byte, error)

// WriteFunc receives one mirrored file. name is the allocated local
// filename, never a path.
type WriteFunc func(name string, data []byte) error

// Fetcher mirrors XSD schemas. The zero value is usable; fields customize
// transport and logging.
//
// A Fetcher is not safe for concurrent use. The traversal is synchronous and
// depth-first, matching the reference order of the documents it walks.
type Fetcher struct {
	// HTTPClient is used for http(s) URLs. If nil, a shared default
	// client with a 30 second timeout is used.
	HTTPClient *http.Client

	// UserAgent overrides the User-Agent header sent with HTTP requests.
	// Empty means the schemafetcher default.
	UserAgent string

	// FetchFunc replaces the built-in transport entirely when non-nil.
	// Errors it returns surface as unreachable-schema failures.
	FetchFunc FetchFunc

	// Logger receives traversal and emission events. If nil, logging is
	// disabled.
	Logger Logger
}

// New creates a Fetcher with default configuration.
func New() *Fetcher {
	return &Fetcher{}
}

func (f *Fetcher) log() Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return NopLogger{}
}

// defaultHTTPClient is shared by Fetchers that do not bring their own.
var defaultHTTPClient = &http.Client{Timeout: 30 * time.Second}

// FileRecord describes one file written by an emission.
type FileRecord struct {
	// URL is the canonical source URL of the schema.
	URL string
	// LocalName is the filename the schema was written under.
	LocalName string
	// Size is the emitted size in bytes, after rewriting.
	Size int64
	// Rewrites is the number of schemaLocation substitutions applied.
	Rewrites int
}

// Stats summarizes a completed fetch.
type Stats struct {
	// SchemaCount is the number of distinct schemas mirrored.
	SchemaCount int
	// ReferenceCount is the total number of reference edges discovered.
	ReferenceCount int
	// RewrittenRefs is the total number of schemaLocation substitutions.
	RewrittenRefs int
	// TotalBytes is the sum of emitted file sizes.
	TotalBytes int64
}

// Result contains everything produced by a successful Fetch.
type Result struct {
	// DestDir is the directory the mirror was written to.
	DestDir string
	// Roots holds the root URLs in argument order.
	Roots []string
	// Files lists the emitted files in deterministic (canonical URL) order.
	Files []FileRecord
	// Stats summarizes the run.
	Stats Stats
	// FetchTime is the wall time spent building the graph.
	FetchTime time.Duration
	// Graph is the schema graph the mirror was emitted from.
	Graph *Graph
}

// Fetch mirrors every schema reachable from the given root URLs into
// destDir: it builds the schema graph, rewrites network references to local
// filenames and writes one file per distinct schema URL.
//
// destDir must name an existing directory. Nothing is written unless the
// whole graph was fetched successfully.
func (f *Fetcher) Fetch(destDir string, rootURLs ...string) (*Result, error) {
	if err := fileutil.EnsureDir(destDir); err != nil {
		return nil, err
	}

	start := time.Now()
	g, err := f.Build(rootURLs...)
	if err != nil {
		return nil, err
	}
	fetchTime := time.Since(start)

	records, err := f.Emit(g, func(name string, data []byte) error {
		return fileutil.WriteFile(filepath.Join(destDir, name), data)
	})
	if err != nil {
		return nil, err
	}

	result := &Result{
		DestDir:   destDir,
		Roots:     append([]string(nil), rootURLs...),
		Files:     records,
		FetchTime: fetchTime,
		Graph:     g,
	}
	result.Stats.SchemaCount = g.Len()
	for _, rec := range records {
		result.Stats.RewrittenRefs += rec.Rewrites
		result.Stats.TotalBytes += rec.Size
	}
	for _, node := range g.Nodes() {
		result.Stats.ReferenceCount += len(node.Refs)
	}

	f.log().Info("mirror complete",
		"schemas", result.Stats.SchemaCount,
		"bytes", result.Stats.TotalBytes,
		"dir", destDir)
	return result, nil
}

// Build fetches every schema reachable from the given root URLs and returns
// the populated graph. Each distinct canonical URL is fetched exactly once;
// reference cycles terminate through the graph's cache. Any unreachable,
// unparsable or malformed schema aborts the build.
func (f *Fetcher) Build(rootURLs ...string) (*Graph, error) {
	if len(rootURLs) == 0 {
		return nil, errors.New("no schema URLs given")
	}

	g := newGraph()
	for _, raw := range rootURLs {
		u, err := urlutil.ParseRootURL(raw)
		if err != nil {
			return nil, &xsderrors.MalformedReferenceError{SchemaLocation: raw, Cause: err}
		}
		g.roots = append(g.roots, g.ensureNode(u))
	}

	for _, root := range g.roots {
		if !root.populated {
			if err := f.populate(g, root); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// populate fetches node's content, links its references and descends into
// linked schemas not yet populated, depth-first in document order. The
// populated flag is set on entry so reference cycles cannot re-enter a node.
func (f *Fetcher) populate(g *Graph, node *SchemaNode) error {
	node.populated = true
	sourceURL := node.SourceURL.String()

	f.log().Info("fetching schema", "url", sourceURL)
	content, err := f.fetchDocument(node.SourceURL)
	if err != nil {
		return err
	}
	node.RawContent = content

	mentions, err := extractReferences(content, sourceURL, f.log())
	if err != nil {
		return err
	}

	for _, m := range mentions {
		if node.linked(m.schemaLocation) {
			f.log().Debug("schemaLocation repeated in document",
				"url", sourceURL, "schemaLocation", m.schemaLocation)
			continue
		}
		target, err := resolveReference(m.schemaLocation, node.SourceURL)
		if err != nil {
			return err
		}
		node.Refs = append(node.Refs, Reference{
			Literal: m.schemaLocation,
			Kind:    m.kind,
			Target:  g.ensureNode(target),
		})
	}

	for _, ref := range node.Refs {
		if !ref.Target.populated {
			if err := f.populate(g, ref.Target); err != nil {
				return err
			}
		}
	}
	return nil
}

// fetchDocument retrieves the bytes behind u through the configured
// transport. Failures are unreachable-schema errors carrying the URL.
func (f *Fetcher) fetchDocument(u *url.URL) ([]byte, error) {
	if f.FetchFunc != nil {
		data, err := f.FetchFunc(u)
		if err != nil {
			var unreachable *xsderrors.UnreachableSchemaError
			if errors.As(err, &unreachable) {
				return nil, err
			}
			return nil, &xsderrors.UnreachableSchemaError{URL: u.String(), Cause: err}
		}
		return data, nil
	}

	switch u.Scheme {
	case urlutil.SchemeHTTP, urlutil.SchemeHTTPS:
		return f.fetchHTTP(u)
	case urlutil.SchemeFile:
		data, err := os.ReadFile(u.Path)
		if err != nil {
			return nil, &xsderrors.UnreachableSchemaError{URL: u.String(), Cause: err}
		}
		return data, nil
	default:
		return nil, &xsderrors.UnreachableSchemaError{
			URL:   u.String(),
			Cause: fmt.Errorf("unsupported scheme %q", u.Scheme),
		}
	}
}

func (f *Fetcher) fetchHTTP(u *url.URL) ([]byte, error) {
	client := f.HTTPClient
	if client == nil {
		client = defaultHTTPClient
	}

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &xsderrors.UnreachableSchemaError{URL: u.String(), Cause: err}
	}

	userAgent := f.UserAgent
	if userAgent == "" {
		userAgent = schemafetcher.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &xsderrors.UnreachableSchemaError{URL: u.String(), Cause: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &xsderrors.UnreachableSchemaError{URL: u.String(), StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &xsderrors.UnreachableSchemaError{URL: u.String(), Cause: err}
	}
	return data, nil
}
