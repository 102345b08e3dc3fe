//go:build !domxml

package xenon

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/lestrrat-go/xenon/internal/textenc"
)

func TestReaderPositions(t *testing.T) {
	src := "<?xml version=\"1.0\"?>\n" + // line 1
		"<root>\n" + // line 2
		"  <a/>\n" + // line 3
		"</root>" // line 4

	r, err := NewReader(strings.NewReader(src))
	require.NoError(t, err)

	expected := []struct {
		typ  NodeType
		line int
		col  int
	}{
		{XMLDeclarationNode, 1, 22},
		{WhitespaceNode, 2, 1},
		{ElementNode, 2, 7},
		{WhitespaceNode, 3, 3},
		{ElementNode, 3, 7},
		{WhitespaceNode, 4, 1},
		{EndElementNode, 4, 8},
	}
	for i, want := range expected {
		ok, err := r.Read()
		require.NoError(t, err, "read %d", i)
		require.True(t, ok, "read %d", i)
		require.Equal(t, want.typ, r.NodeType(), "node type at step %d", i)
		require.Equal(t, want.line, r.Line(), "line at step %d", i)
		require.Equal(t, want.col, r.Column(), "column at step %d", i)
	}

	ok, err := r.Read()
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 0, r.Line())
	require.Equal(t, 0, r.Column())
}

func TestReaderPositionsMonotonic(t *testing.T) {
	src := "<a>\n<b>text</b>\n<c attr=\"v\">more</c>\n</a>"
	r, err := NewReader(strings.NewReader(src))
	require.NoError(t, err)

	lastLine := 0
	for {
		ok, err := r.Read()
		require.NoError(t, err)
		if !ok {
			break
		}
		require.GreaterOrEqual(t, r.Line(), lastLine, "lines never go backwards")
		require.GreaterOrEqual(t, r.Column(), 1)
		lastLine = r.Line()
	}
}

func TestReaderParseErrorLine(t *testing.T) {
	src := "<root>\n  <a>\n</root>"
	r, err := NewReader(strings.NewReader(src))
	require.NoError(t, err)

	var perr ErrParseError
	for {
		_, err := r.Read()
		if err != nil {
			require.True(t, errors.As(err, &perr))
			break
		}
	}
	require.Equal(t, 3, perr.LineNumber, "the mismatched end tag is on line 3")
}

func TestReaderEmptyElement(t *testing.T) {
	src := `<root><a/><b></b><c attr="x/"/><d attr="/x"></d></root>`
	r, err := NewReader(strings.NewReader(src))
	require.NoError(t, err)

	// Element name -> whether it must read as self-closing. A '/'
	// inside a quoted attribute value must not confuse detection.
	expected := map[string]bool{
		"root": false,
		"a":    true,
		"b":    false,
		"c":    true,
		"d":    false,
	}
	seen := map[string]bool{}
	for {
		ok, err := r.Read()
		require.NoError(t, err)
		if !ok {
			break
		}
		if r.NodeType() != ElementNode {
			require.False(t, r.EmptyElement(), "only element starts can be empty")
			continue
		}
		name, err := r.LocalName()
		require.NoError(t, err)
		seen[name] = r.EmptyElement()
	}
	require.Equal(t, expected, seen)
}

func TestReaderEmptyElementIsSingleNode(t *testing.T) {
	r, err := NewReader(strings.NewReader(`<root><a/></root>`))
	require.NoError(t, err)

	expected := []nodeEvent{
		{typ: ElementNode, name: "root"},
		{typ: ElementNode, name: "a"},
		{typ: EndElementNode, name: "root"},
	}
	require.Equal(t, expected, collectEvents(t, r), "no end node for a self-closing element")
}

func TestReaderEmptyElementAttributes(t *testing.T) {
	r, err := NewReader(strings.NewReader(`<a x="1" y="2"/>`))
	require.NoError(t, err)

	ok, err := r.Read()
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, r.EmptyElement())

	ok, err = r.MoveToFirstAttribute()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, AttributeNode, r.NodeType())
	// EmptyElement stays about the owning element while navigating
	// its attributes.
	require.True(t, r.EmptyElement())

	ok, err = r.Read()
	require.NoError(t, err)
	require.False(t, ok, "a self-closing root is the whole document")
}

func TestReaderQualifiedNames(t *testing.T) {
	src := `<r xmlns="urn:d" xmlns:p="urn:p">` +
		`<p:c xml:lang="en" a="1">t</p:c>` +
		`<q xmlns="urn:d2">u</q>` +
		`</r>`
	r, err := NewReader(strings.NewReader(src))
	require.NoError(t, err)

	expectName := func(local, qualified string) {
		t.Helper()
		name, err := r.LocalName()
		require.NoError(t, err)
		require.Equal(t, local, name)
		require.Equal(t, qualified, r.QualifiedName())
	}
	advance := func(typ NodeType) {
		t.Helper()
		ok, err := r.Read()
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, typ, r.NodeType())
	}

	advance(ElementNode) // r, in the default namespace
	expectName("r", "r")

	advance(ElementNode) // p:c
	expectName("c", "p:c")

	ok, err := r.MoveToFirstAttribute()
	require.NoError(t, err)
	require.True(t, ok)
	expectName("lang", "xml:lang")
	ok, err = r.MoveToNextAttribute()
	require.NoError(t, err)
	require.True(t, ok)
	expectName("a", "a")

	advance(TextNode)
	advance(EndElementNode)
	expectName("c", "p:c")

	advance(ElementNode) // q, rebinding the default namespace
	expectName("q", "q")
	advance(TextNode)
	advance(EndElementNode)
	expectName("q", "q")

	advance(EndElementNode) // r again, inner default out of scope
	expectName("r", "r")
}

func TestReaderNamespaceDeclarationAttributes(t *testing.T) {
	r, err := NewReader(strings.NewReader(`<r xmlns:p="urn:p" xmlns="urn:d"></r>`))
	require.NoError(t, err)

	ok, err := r.Read()
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.MoveToFirstAttribute()
	require.NoError(t, err)
	require.True(t, ok, "namespace declarations navigate as attributes")
	name, err := r.LocalName()
	require.NoError(t, err)
	require.Equal(t, "p", name)
	require.Equal(t, "xmlns:p", r.QualifiedName())
	v, err := r.Value()
	require.NoError(t, err)
	require.Equal(t, "urn:p", v)

	ok, err = r.MoveToNextAttribute()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "xmlns", r.QualifiedName())
	v, err = r.Value()
	require.NoError(t, err)
	require.Equal(t, "urn:d", v)
}

func TestReaderSpecialNodes(t *testing.T) {
	src := `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		`<!DOCTYPE greeting SYSTEM "hello.dtd">` + "\n" +
		`<?php echo?>` + "\n" +
		`<greeting>hi</greeting>`
	r, err := NewReader(strings.NewReader(src))
	require.NoError(t, err)

	advance := func() {
		t.Helper()
		ok, err := r.Read()
		require.NoError(t, err)
		require.True(t, ok)
	}

	advance()
	require.Equal(t, XMLDeclarationNode, r.NodeType())
	name, err := r.LocalName()
	require.NoError(t, err)
	require.Equal(t, "xml", name)
	v, err := r.Value()
	require.NoError(t, err)
	require.Equal(t, `version="1.0" encoding="UTF-8"`, v)

	advance()
	require.Equal(t, WhitespaceNode, r.NodeType())

	advance()
	require.Equal(t, DocumentTypeNode, r.NodeType())
	name, err = r.LocalName()
	require.NoError(t, err)
	require.Equal(t, "greeting", name)

	advance()
	require.Equal(t, WhitespaceNode, r.NodeType())

	advance()
	require.Equal(t, ProcessingInstructionNode, r.NodeType())
	name, err = r.LocalName()
	require.NoError(t, err)
	require.Equal(t, "php", name)
	v, err = r.Value()
	require.NoError(t, err)
	require.Equal(t, "echo", v)

	advance()
	require.Equal(t, WhitespaceNode, r.NodeType())
	v, err = r.Value()
	require.NoError(t, err)
	require.Equal(t, "\n", v)

	advance()
	require.Equal(t, ElementNode, r.NodeType())
}

func TestOpenReaderUTF16WithDeclaration(t *testing.T) {
	// The declaration still names UTF-16 after transcoding; the
	// engine must take the bytes as they are instead of trusting the
	// label.
	const doc = `<?xml version="1.0" encoding="UTF-16"?><root>text</root>`
	raw, err := textenc.EncodeUTF16(doc, textenc.UTF16LE, true)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "doc.xml")
	require.NoError(t, os.WriteFile(path, raw, 0644))

	r, err := OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	expected := []nodeEvent{
		{typ: XMLDeclarationNode, name: "xml", value: `version="1.0" encoding="UTF-16"`},
		{typ: ElementNode, name: "root"},
		{typ: TextNode, value: "text"},
		{typ: EndElementNode, name: "root"},
	}
	require.Equal(t, expected, collectEvents(t, r))
}

func TestReaderParseErrorKeepsPosition(t *testing.T) {
	src := "<root>\n<a>text</a>\n<broken&/>\n</root>"
	r, err := NewReader(strings.NewReader(src))
	require.NoError(t, err)

	var lastGood NodeType
	var lastLine int
	for {
		ok, err := r.Read()
		if err != nil {
			break
		}
		require.True(t, ok)
		lastGood = r.NodeType()
		lastLine = r.Line()
	}
	// The failed read leaves the previous node authoritative.
	require.Equal(t, lastGood, r.NodeType())
	require.Equal(t, lastLine, r.Line())
}
