package fetcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphEnsureNode(t *testing.T) {
	t.Run("same URL yields the same node", func(t *testing.T) {
		g := newGraph()
		u := mustParseURL(t, "http://example.com/a/c.xsd")

		first := g.ensureNode(u)
		second := g.ensureNode(mustParseURL(t, "http://example.com/a/c.xsd"))

		assert.Same(t, first, second)
		assert.Equal(t, 1, g.Len())
		assert.Equal(t, "c.xsd", first.LocalName)
	})

	t.Run("distinct URLs with same basename get distinct names", func(t *testing.T) {
		g := newGraph()
		a := g.ensureNode(mustParseURL(t, "http://example.com/a/c.xsd"))
		b := g.ensureNode(mustParseURL(t, "http://example.com/b/c.xsd"))

		assert.NotSame(t, a, b)
		assert.Equal(t, "c.xsd", a.LocalName)
		assert.Equal(t, "b_c.xsd", b.LocalName)
		assert.Equal(t, 2, g.Len())
	})

	t.Run("nodes start unpopulated", func(t *testing.T) {
		g := newGraph()
		n := g.ensureNode(mustParseURL(t, "http://example.com/c.xsd"))
		assert.False(t, n.populated)
		assert.Empty(t, n.RawContent)
		assert.Empty(t, n.Refs)
	})
}

func TestGraphLookup(t *testing.T) {
	g := newGraph()
	u := mustParseURL(t, "http://example.com/a/c.xsd")
	created := g.ensureNode(u)

	t.Run("Node finds by canonical URL", func(t *testing.T) {
		n, ok := g.Node("http://example.com/a/c.xsd")
		require.True(t, ok)
		assert.Same(t, created, n)
	})

	t.Run("Node misses unknown URL", func(t *testing.T) {
		_, ok := g.Node("http://example.com/missing.xsd")
		assert.False(t, ok)
	})
}

func TestGraphNodesSorted(t *testing.T) {
	g := newGraph()
	g.ensureNode(mustParseURL(t, "http://example.com/z.xsd"))
	g.ensureNode(mustParseURL(t, "http://example.com/a.xsd"))
	g.ensureNode(mustParseURL(t, "file:///srv/m.xsd"))

	nodes := g.Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, "file:///srv/m.xsd", nodes[0].SourceURL.String())
	assert.Equal(t, "http://example.com/a.xsd", nodes[1].SourceURL.String())
	assert.Equal(t, "http://example.com/z.xsd", nodes[2].SourceURL.String())
}

func TestSchemaNodeLinked(t *testing.T) {
	g := newGraph()
	parent := g.ensureNode(mustParseURL(t, "http://example.com/p.xsd"))
	child := g.ensureNode(mustParseURL(t, "http://example.com/c.xsd"))

	assert.False(t, parent.linked("c.xsd"))
	parent.Refs = append(parent.Refs, Reference{Literal: "c.xsd", Kind: RefInclude, Target: child})
	assert.True(t, parent.linked("c.xsd"))
	assert.False(t, parent.linked("./c.xsd"), "literals are compared verbatim")
}

func TestSchemaNodeIsNetwork(t *testing.T) {
	g := newGraph()
	http := g.ensureNode(mustParseURL(t, "http://example.com/a.xsd"))
	https := g.ensureNode(mustParseURL(t, "https://example.com/b.xsd"))
	file := g.ensureNode(mustParseURL(t, "file:///srv/c.xsd"))

	assert.True(t, http.IsNetwork())
	assert.True(t, https.IsNetwork())
	assert.False(t, file.IsNetwork())
}
