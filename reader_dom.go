//go:build domxml

package xenon

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/lestrrat-go/xenon/internal/textenc"
)

// readerEngine walks a document tree built by xmlquery. The whole
// input is parsed at construction, so a Reader can be handed out
// even for a malformed document: the parse error is kept and raised
// by the read that would first observe it. The tree keeps no source
// positions, so Line and Column report 0, and it represents <a/> and
// <a></a> identically, so EmptyElement reports false and every
// element is followed by an end node.
type readerEngine struct {
	doc     *xmlquery.Node
	cur     *xmlquery.Node
	leaving bool
	stored  *ErrParseError
	started bool
	done    bool
	attrIdx int
}

func newReaderEngineFile(f *os.File) (*readerEngine, error) {
	// UTF-16 is recognized by BOM up front; anything else passes
	// through for the engine's own label-based charset handling.
	src, err := textenc.AutoUTF8(f)
	if err != nil {
		return nil, err
	}
	return newDomReader(src), nil
}

func newReaderEngineStream(src io.Reader) (*readerEngine, error) {
	return newDomReader(newSourceBridge(src)), nil
}

func newDomReader(src io.Reader) *readerEngine {
	e := &readerEngine{attrIdx: -1}
	doc, err := xmlquery.Parse(src)
	if err != nil {
		if perr, ok := asParseError(err); ok {
			e.stored = &perr
		}
		// A failure outside the parser's own error family means the
		// stream broke, not the document; that reads as an empty
		// document.
		return e
	}
	e.doc = doc
	return e
}

func (e *readerEngine) read() (bool, error) {
	for {
		ok, err := e.step()
		if !ok || err != nil {
			return ok, err
		}
		// Node kinds the cursor contract has no category for are
		// not observable positions; keep walking.
		if e.nodeType() != NoneNode {
			return true, nil
		}
	}
}

func (e *readerEngine) step() (bool, error) {
	if e.done {
		return false, nil
	}
	if e.stored != nil {
		return false, *e.stored
	}

	e.attrIdx = -1

	var next *xmlquery.Node
	var leaving bool
	switch {
	case !e.started:
		e.started = true
		if e.doc != nil {
			next = e.doc.FirstChild
		}
	case e.cur == nil:
	case !e.leaving && e.cur.Type == xmlquery.ElementNode && e.cur.FirstChild != nil:
		next = e.cur.FirstChild
	case !e.leaving && e.cur.Type == xmlquery.ElementNode:
		next, leaving = e.cur, true
	default:
		if e.cur.NextSibling != nil {
			next = e.cur.NextSibling
		} else if p := e.cur.Parent; p != nil && p.Type == xmlquery.ElementNode {
			next, leaving = p, true
		}
	}

	if next == nil {
		e.cur = nil
		e.leaving = false
		e.done = true
		return false, nil
	}
	e.cur = next
	e.leaving = leaving
	return true, nil
}

func (e *readerEngine) nodeType() NodeType {
	if e.attrIdx >= 0 {
		return AttributeNode
	}
	if e.cur == nil {
		return NoneNode
	}
	if e.leaving {
		return EndElementNode
	}
	switch e.cur.Type {
	case xmlquery.ElementNode:
		return ElementNode
	case xmlquery.TextNode:
		if isBlank(e.cur.Data) {
			return WhitespaceNode
		}
		return TextNode
	case xmlquery.CharDataNode:
		return CDATASectionNode
	case xmlquery.CommentNode:
		return CommentNode
	case xmlquery.DeclarationNode:
		return XMLDeclarationNode
	default:
		return NoneNode
	}
}

// The tree carries no source positions.
func (e *readerEngine) line() int   { return 0 }
func (e *readerEngine) column() int { return 0 }

func (e *readerEngine) emptyElement() bool { return false }

func (e *readerEngine) localName() (string, error) {
	if e.attrIdx >= 0 {
		return e.cur.Attr[e.attrIdx].Name.Local, nil
	}
	if e.cur == nil {
		return "", ErrNoName
	}
	switch e.cur.Type {
	case xmlquery.ElementNode, xmlquery.DeclarationNode:
		if e.cur.Data == "" {
			return "", ErrNoName
		}
		return e.cur.Data, nil
	default:
		return "", ErrNoName
	}
}

func (e *readerEngine) qualifiedName() string {
	if e.attrIdx >= 0 {
		a := e.cur.Attr[e.attrIdx]
		if a.Name.Space != "" {
			return a.Name.Space + ":" + a.Name.Local
		}
		return a.Name.Local
	}
	if e.cur == nil {
		return ""
	}
	switch e.cur.Type {
	case xmlquery.ElementNode:
		if e.cur.Prefix != "" {
			return e.cur.Prefix + ":" + e.cur.Data
		}
		return e.cur.Data
	case xmlquery.DeclarationNode:
		return e.cur.Data
	default:
		return ""
	}
}

func (e *readerEngine) value() (string, error) {
	if e.attrIdx >= 0 {
		return e.cur.Attr[e.attrIdx].Value, nil
	}
	if e.cur == nil || e.leaving {
		return "", ErrNoValue
	}
	switch e.cur.Type {
	case xmlquery.TextNode, xmlquery.CharDataNode, xmlquery.CommentNode:
		return e.cur.Data, nil
	case xmlquery.DeclarationNode:
		return declText(e.cur), nil
	default:
		return "", ErrNoValue
	}
}

// declText rebuilds the declaration's pseudo-attribute text, which
// the tree keeps only as parsed attributes.
func declText(n *xmlquery.Node) string {
	var b strings.Builder
	for i, a := range n.Attr {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%q", a.Name.Local, a.Value)
	}
	return b.String()
}

func (e *readerEngine) moveToFirstAttribute() (bool, error) {
	if !e.onAttrOwner() || len(e.cur.Attr) == 0 {
		return false, nil
	}
	e.attrIdx = 0
	return true, nil
}

func (e *readerEngine) moveToNextAttribute() (bool, error) {
	if !e.onAttrOwner() || e.attrIdx < 0 || e.attrIdx+1 >= len(e.cur.Attr) {
		return false, nil
	}
	e.attrIdx++
	return true, nil
}

// onAttrOwner reports whether the cursor is on a node that carries
// attributes: an element's start, or the XML declaration, whose
// version and encoding fields navigate as pseudo-attributes.
func (e *readerEngine) onAttrOwner() bool {
	if e.cur == nil || e.leaving {
		return false
	}
	return e.cur.Type == xmlquery.ElementNode || e.cur.Type == xmlquery.DeclarationNode
}
