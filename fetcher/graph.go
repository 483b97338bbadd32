package fetcher

import (
	"net/url"
	"sort"

	"github.com/mfalaize/schema-fetcher/internal/urlutil"
)

// Reference is one schemaLocation link from a schema to the node its literal
// resolves to. Literals are kept verbatim; several distinct literals may
// point at the same target node.
type Reference struct {
	// Literal is the schemaLocation attribute text exactly as written.
	Literal string
	// Kind records whether the reference came from an include or an import.
	Kind RefKind
	// Target is the node the literal resolves to.
	Target *SchemaNode
}

// SchemaNode is one schema document in the mirror graph.
type SchemaNode struct {
	// SourceURL is the absolute URL the schema is fetched from. Its
	// canonical string form is the node's identity.
	SourceURL *url.URL
	// RawContent holds the schema bytes exactly as fetched. It is empty
	// until the traversal populates the node and is never mutated after;
	// rewriting happens on a copy at emission.
	RawContent []byte
	// LocalName is the unique filename the schema mirrors to, assigned
	// when the node is created.
	LocalName string
	// Refs lists the schema's references in document order.
	Refs []Reference

	populated bool
}

// IsNetwork reports whether the node's content comes from an HTTP(S) URL.
// Only references targeting network nodes are rewritten on emission.
func (n *SchemaNode) IsNetwork() bool {
	return urlutil.IsNetwork(n.SourceURL)
}

// linked reports whether literal is already linked on this node. A literal
// repeated verbatim within one document resolves identically, so one link
// suffices.
func (n *SchemaNode) linked(literal string) bool {
	for _, ref := range n.Refs {
		if ref.Literal == literal {
			return true
		}
	}
	return false
}

// Graph is the cache of schema nodes, keyed by canonical URL. Nodes are only
// ever added, and exactly one node exists per canonical URL: every Reference
// in the graph points at the node stored here.
type Graph struct {
	nodes map[string]*SchemaNode
	names map[string]string // LocalName -> canonical URL
	roots []*SchemaNode
}

func newGraph() *Graph {
	return &Graph{
		nodes: make(map[string]*SchemaNode),
		names: make(map[string]string),
	}
}

// ensureNode returns the node for u, creating and naming it on first sight.
// Creation is pure bookkeeping: content arrives when the traversal populates
// the node. Inserting at creation time is what lets a schema that references
// itself link back to its own node.
func (g *Graph) ensureNode(u *url.URL) *SchemaNode {
	key := u.String()
	if n, ok := g.nodes[key]; ok {
		return n
	}
	name := allocateName(u, func(candidate string) (string, bool) {
		owner, ok := g.names[candidate]
		return owner, ok
	})
	n := &SchemaNode{SourceURL: u, LocalName: name}
	g.nodes[key] = n
	g.names[name] = key
	return n
}

// Len returns the number of schemas in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Node returns the schema node for the canonical URL, if present.
func (g *Graph) Node(rawURL string) (*SchemaNode, bool) {
	n, ok := g.nodes[rawURL]
	return n, ok
}

// Nodes returns every node sorted by canonical URL, for deterministic
// iteration.
func (g *Graph) Nodes() []*SchemaNode {
	keys := make([]string, 0, len(g.nodes))
	for k := range g.nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]*SchemaNode, len(keys))
	for i, k := range keys {
		out[i] = g.nodes[k]
	}
	return out
}

// Roots returns the nodes created from root URLs, in argument order.
func (g *Graph) Roots() []*SchemaNode {
	return g.roots
}
