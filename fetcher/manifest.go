package fetcher

import (
	"fmt"
	"time"

	"go.yaml.in/yaml/v4"

	schemafetcher "github.com/mfalaize/schema-fetcher"
	"github.com/mfalaize/schema-fetcher/internal/fileutil"
)

// Manifest is a durable YAML record of a mirror: which URLs it contains, the
// filenames they landed under, and the reference edges between them. Build
// tooling consuming a mirror reads this instead of re-deriving the mapping
// from the XSD files.
type Manifest struct {
	// GeneratedBy identifies the tool version that produced the mirror.
	GeneratedBy string `yaml:"generatedBy"`
	// GeneratedAt is when the manifest was assembled.
	GeneratedAt time.Time `yaml:"generatedAt"`
	// DestDir is the directory the mirror was written to.
	DestDir string `yaml:"destDir"`
	// Roots holds the root schema URLs in argument order.
	Roots []string `yaml:"roots"`
	// Schemas lists every mirrored schema in canonical URL order.
	Schemas []ManifestEntry `yaml:"schemas"`
}

// ManifestEntry records one mirrored schema file.
type ManifestEntry struct {
	URL        string        `yaml:"url"`
	File       string        `yaml:"file"`
	Size       int64         `yaml:"size"`
	References []ManifestRef `yaml:"references,omitempty"`
}

// ManifestRef records one reference edge of a mirrored schema.
type ManifestRef struct {
	// SchemaLocation is the literal as written in the source document.
	SchemaLocation string `yaml:"schemaLocation"`
	// Kind is include or import.
	Kind string `yaml:"kind"`
	// URL is the resolved target URL.
	URL string `yaml:"url"`
	// File is the target's local filename in the mirror.
	File string `yaml:"file"`
	// Rewritten reports whether the emitted file references the target by
	// its local filename. True for network targets; file targets keep the
	// schemaLocation they were written with.
	Rewritten bool `yaml:"rewritten"`
}

// NewManifest assembles the manifest for a completed fetch.
func NewManifest(result *Result) *Manifest {
	m := &Manifest{
		GeneratedBy: "schema-fetcher/" + schemafetcher.Version(),
		GeneratedAt: time.Now().UTC(),
		DestDir:     result.DestDir,
		Roots:       append([]string(nil), result.Roots...),
	}

	sizes := make(map[string]int64, len(result.Files))
	for _, rec := range result.Files {
		sizes[rec.URL] = rec.Size
	}

	for _, node := range result.Graph.Nodes() {
		entry := ManifestEntry{
			URL:  node.SourceURL.String(),
			File: node.LocalName,
			Size: sizes[node.SourceURL.String()],
		}
		for _, ref := range node.Refs {
			entry.References = append(entry.References, ManifestRef{
				SchemaLocation: ref.Literal,
				Kind:           string(ref.Kind),
				URL:            ref.Target.SourceURL.String(),
				File:           ref.Target.LocalName,
				Rewritten:      ref.Target.IsNetwork(),
			})
		}
		m.Schemas = append(m.Schemas, entry)
	}
	return m
}

// WriteManifest writes the YAML manifest for result to path.
func WriteManifest(result *Result, path string) error {
	data, err := yaml.Marshal(NewManifest(result))
	if err != nil {
		return fmt.Errorf("marshalling manifest: %w", err)
	}
	return fileutil.WriteFile(path, data)
}
