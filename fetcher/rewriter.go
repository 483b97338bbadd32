package fetcher

import (
	"fmt"
	"strings"
)

// rewriteContent returns node's content with every network-target reference
// retargeted at its local filename, plus the number of substitutions made.
//
// The substitution is textual, not XML-aware: every occurrence of
// `schemaLocation="<literal>` becomes `schemaLocation="<local name>`, and no
// other byte changes. References whose target came from a file URL keep
// their original schemaLocation; the path they name stays valid locally.
func rewriteContent(node *SchemaNode) ([]byte, int) {
	content := string(node.RawContent)
	rewrites := 0
	for _, ref := range node.Refs {
		if !ref.Target.IsNetwork() {
			continue
		}
		needle := schemaLocationAttr + `="` + ref.Literal
		replacement := schemaLocationAttr + `="` + ref.Target.LocalName
		if needle == replacement {
			continue
		}
		if n := strings.Count(content, needle); n > 0 {
			content = strings.ReplaceAll(content, needle, replacement)
			rewrites += n
		}
	}
	return []byte(content), rewrites
}

// Emit rewrites and writes every schema in g through write, in canonical URL
// order. write receives the allocated local filename and the rewritten
// bytes; a write failure aborts the emission.
func (f *Fetcher) Emit(g *Graph, write WriteFunc) ([]FileRecord, error) {
	records := make([]FileRecord, 0, g.Len())
	for _, node := range g.Nodes() {
		content, rewrites := rewriteContent(node)
		f.log().Info("writing schema", "file", node.LocalName, "url", node.SourceURL.String())
		if err := write(node.LocalName, content); err != nil {
			return nil, fmt.Errorf("emitting %s (from %s): %w", node.LocalName, node.SourceURL, err)
		}
		records = append(records, FileRecord{
			URL:       node.SourceURL.String(),
			LocalName: node.LocalName,
			Size:      int64(len(content)),
			Rewrites:  rewrites,
		})
	}
	return records, nil
}
