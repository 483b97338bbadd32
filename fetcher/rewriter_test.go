package fetcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nodeWithRefs builds a populated node linked to targets for rewrite tests.
func nodeWithRefs(t *testing.T, sourceURL, content string, refs ...Reference) *SchemaNode {
	t.Helper()
	return &SchemaNode{
		SourceURL:  mustParseURL(t, sourceURL),
		RawContent: []byte(content),
		Refs:       refs,
	}
}

func networkTarget(t *testing.T, rawURL, localName string) *SchemaNode {
	t.Helper()
	return &SchemaNode{SourceURL: mustParseURL(t, rawURL), LocalName: localName}
}

func TestRewriteContent(t *testing.T) {
	t.Run("network target is rewritten to local name", func(t *testing.T) {
		target := networkTarget(t, "http://example.com/common/types.xsd", "types.xsd")
		node := nodeWithRefs(t, "http://example.com/order.xsd",
			`<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:include schemaLocation="common/types.xsd"/>
</xs:schema>`,
			Reference{Literal: "common/types.xsd", Kind: RefInclude, Target: target},
		)

		out, rewrites := rewriteContent(node)
		assert.Equal(t, 1, rewrites)
		assert.Contains(t, string(out), `schemaLocation="types.xsd"`)
		assert.NotContains(t, string(out), `schemaLocation="common/types.xsd"`)
	})

	t.Run("file target keeps its original schemaLocation", func(t *testing.T) {
		target := &SchemaNode{
			SourceURL: mustParseURL(t, "file:///srv/schemas/types.xsd"),
			LocalName: "types.xsd",
		}
		content := `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:include schemaLocation="file:///srv/schemas/types.xsd"/>
</xs:schema>`
		node := nodeWithRefs(t, "http://example.com/order.xsd", content,
			Reference{Literal: "file:///srv/schemas/types.xsd", Kind: RefInclude, Target: target},
		)

		out, rewrites := rewriteContent(node)
		assert.Equal(t, 0, rewrites)
		assert.Equal(t, content, string(out), "file targets must pass through untouched")
	})

	t.Run("every occurrence of the literal is replaced", func(t *testing.T) {
		target := networkTarget(t, "http://example.com/t.xsd", "local_t.xsd")
		node := nodeWithRefs(t, "http://example.com/order.xsd",
			`<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:include schemaLocation="t.xsd"/>
  <xs:import namespace="urn:t" schemaLocation="t.xsd"/>
</xs:schema>`,
			Reference{Literal: "t.xsd", Kind: RefInclude, Target: target},
		)

		out, rewrites := rewriteContent(node)
		assert.Equal(t, 2, rewrites)
		assert.NotContains(t, string(out), `schemaLocation="t.xsd"`)
		assert.Equal(t, 2, strings.Count(string(out), `schemaLocation="local_t.xsd"`))
	})

	t.Run("literal equal to local name is a no-op", func(t *testing.T) {
		target := networkTarget(t, "http://example.com/c.xsd", "c.xsd")
		content := `<xs:schema><xs:include schemaLocation="c.xsd"/></xs:schema>`
		node := nodeWithRefs(t, "http://example.com/order.xsd", content,
			Reference{Literal: "c.xsd", Kind: RefInclude, Target: target},
		)

		out, rewrites := rewriteContent(node)
		assert.Equal(t, 0, rewrites)
		assert.Equal(t, content, string(out))
	})

	t.Run("all other bytes are preserved exactly", func(t *testing.T) {
		target := networkTarget(t, "http://example.com/common/c.xsd", "c.xsd")
		content := "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\r\n" +
			"<!-- keep\ttabs, CRLF and trailing spaces   -->\r\n" +
			"<xs:schema xmlns:xs=\"http://www.w3.org/2001/XMLSchema\">\r\n" +
			"  <xs:include schemaLocation=\"common/c.xsd\"/>\r\n" +
			"</xs:schema>\r\n"
		node := nodeWithRefs(t, "http://example.com/order.xsd", content,
			Reference{Literal: "common/c.xsd", Kind: RefInclude, Target: target},
		)

		out, rewrites := rewriteContent(node)
		require.Equal(t, 1, rewrites)

		want := "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\r\n" +
			"<!-- keep\ttabs, CRLF and trailing spaces   -->\r\n" +
			"<xs:schema xmlns:xs=\"http://www.w3.org/2001/XMLSchema\">\r\n" +
			"  <xs:include schemaLocation=\"c.xsd\"/>\r\n" +
			"</xs:schema>\r\n"
		assert.Equal(t, want, string(out))
	})

	t.Run("node without references passes through", func(t *testing.T) {
		content := `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"/>`
		node := nodeWithRefs(t, "http://example.com/leaf.xsd", content)

		out, rewrites := rewriteContent(node)
		assert.Equal(t, 0, rewrites)
		assert.Equal(t, content, string(out))
	})

	t.Run("raw content is not mutated", func(t *testing.T) {
		target := networkTarget(t, "http://example.com/c.xsd", "local.xsd")
		content := `<xs:schema><xs:include schemaLocation="c.xsd"/></xs:schema>`
		node := nodeWithRefs(t, "http://example.com/order.xsd", content,
			Reference{Literal: "c.xsd", Kind: RefInclude, Target: target},
		)

		_, _ = rewriteContent(node)
		assert.Equal(t, content, string(node.RawContent))
	})
}

func TestEmit(t *testing.T) {
	newPopulatedGraph := func(t *testing.T) *Graph {
		t.Helper()
		g := newGraph()
		z := g.ensureNode(mustParseURL(t, "http://example.com/z.xsd"))
		z.RawContent = []byte(`<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"/>`)
		a := g.ensureNode(mustParseURL(t, "http://example.com/a.xsd"))
		a.RawContent = []byte(`<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"/>`)
		return g
	}

	t.Run("writes every node in canonical URL order", func(t *testing.T) {
		g := newPopulatedGraph(t)

		var written []string
		records, err := New().Emit(g, func(name string, data []byte) error {
			written = append(written, name)
			return nil
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"a.xsd", "z.xsd"}, written)
		require.Len(t, records, 2)
		assert.Equal(t, "http://example.com/a.xsd", records[0].URL)
		assert.Equal(t, int64(len(g.Nodes()[0].RawContent)), records[0].Size)
	})

	t.Run("write failure aborts with file context", func(t *testing.T) {
		g := newPopulatedGraph(t)

		_, err := New().Emit(g, func(name string, data []byte) error {
			return assert.AnError
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "emitting a.xsd")
		assert.Contains(t, err.Error(), "http://example.com/a.xsd")
	})
}
