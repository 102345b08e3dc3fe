//go:build !domxml

package xenon

import (
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/lestrrat-go/xenon/internal/nsscope"
	"github.com/lestrrat-go/xenon/internal/textenc"
)

// readerEngine drives encoding/xml's token stream. The decoder owns
// grammar and well-formedness; this adapter owns the cursor mapping:
// token to node type, attribute navigation over the token's
// attribute list, line and column from the source bridge, and
// self-closing detection from the raw input bytes, which the decoder
// hides behind a synthetic end token.
type readerEngine struct {
	dec    *xml.Decoder
	bridge *sourceBridge
	scopes nsscope.Stack

	typ     NodeType
	name    xml.Name
	val     string
	attrs   []xml.Attr
	attrIdx int
	empty   bool
	done    bool
	endOff  int64
}

func newReaderEngineFile(f *os.File) (*readerEngine, error) {
	src, err := textenc.AutoUTF8(f)
	if err != nil {
		return nil, err
	}
	return newStdReader(src), nil
}

func newReaderEngineStream(src io.Reader) (*readerEngine, error) {
	forced, err := textenc.ForceUTF8(src)
	if err != nil {
		return nil, err
	}
	return newStdReader(forced), nil
}

func newStdReader(src io.Reader) *readerEngine {
	bridge := newSourceBridge(src)
	dec := xml.NewDecoder(bridge)
	// The bytes handed to the decoder are always UTF-8 by the time
	// they get here, no matter what the document's encoding
	// declaration claims.
	dec.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) {
		return r, nil
	}
	e := &readerEngine{dec: dec, bridge: bridge, attrIdx: -1}
	e.scopes.Bind("xml", xmlNamespaceURI)
	return e
}

func (e *readerEngine) read() (bool, error) {
	if e.done {
		return false, nil
	}

	// A self-closing element still produces a synthetic end token;
	// consume it here so the element reads as a single node. The
	// decoder synthesizes it without reading input, so this cannot
	// eat a real token even on retry after an error.
	if e.typ == ElementNode && e.empty {
		if _, err := e.dec.Token(); err != nil {
			return e.fail(err)
		}
	}

	tok, err := e.dec.Token()
	if err != nil {
		return e.fail(err)
	}

	// Only now that there is a next node does the node being left
	// close its namespace scope. On a failed read the cursor stays
	// put and so does the scope stack.
	if e.typ == EndElementNode || (e.typ == ElementNode && e.empty) {
		e.scopes.Pop()
	}
	e.setCurrent(tok)
	return true, nil
}

// fail maps a decoder failure onto the cursor contract. End of input
// and failures of the underlying stream both read as exhaustion;
// only the decoder's own syntax errors surface, and they leave the
// cursor where it was.
func (e *readerEngine) fail(err error) (bool, error) {
	if err == io.EOF {
		e.done = true
		e.clear()
		return false, nil
	}
	if perr, ok := asParseError(err); ok {
		return false, perr
	}
	e.done = true
	e.clear()
	return false, nil
}

func (e *readerEngine) clear() {
	e.typ = NoneNode
	e.name = xml.Name{}
	e.val = ""
	e.attrs = nil
	e.attrIdx = -1
	e.empty = false
}

func (e *readerEngine) setCurrent(tok xml.Token) {
	e.attrIdx = -1
	e.empty = false
	e.name = xml.Name{}
	e.val = ""
	e.attrs = nil
	e.endOff = e.dec.InputOffset()

	switch t := tok.(type) {
	case xml.StartElement:
		e.typ = ElementNode
		e.name = t.Name
		e.attrs = t.Attr
		e.empty = e.selfClosing()
		e.scopes.Push()
		for _, a := range t.Attr {
			switch {
			case a.Name.Space == "xmlns":
				e.scopes.Bind(a.Name.Local, a.Value)
			case a.Name.Space == "" && a.Name.Local == "xmlns":
				e.scopes.Bind("", a.Value)
			}
		}
	case xml.EndElement:
		e.typ = EndElementNode
		e.name = t.Name
	case xml.CharData:
		e.val = string(t)
		if isBlank(e.val) {
			e.typ = WhitespaceNode
		} else {
			e.typ = TextNode
		}
	case xml.Comment:
		e.typ = CommentNode
		e.val = string(t)
	case xml.ProcInst:
		if t.Target == "xml" {
			e.typ = XMLDeclarationNode
		} else {
			e.typ = ProcessingInstructionNode
		}
		e.name = xml.Name{Local: t.Target}
		e.val = string(t.Inst)
	case xml.Directive:
		e.typ = DocumentTypeNode
		e.val = string(t)
		e.name = xml.Name{Local: directiveName(e.val)}
	}
}

// selfClosing inspects the input bytes because the decoder reports
// <a/> and <a></a> identically. The byte just before the start tag's
// closing '>' is '/' only for a self-closing tag; '/' cannot appear
// unquoted in that position otherwise.
func (e *readerEngine) selfClosing() bool {
	c, ok := e.bridge.byteAt(e.endOff - 2)
	return ok && c == '/'
}

// directiveName extracts the document type name from a directive
// like "DOCTYPE greeting SYSTEM ...".
func directiveName(s string) string {
	fields := strings.Fields(s)
	if len(fields) >= 2 && fields[0] == "DOCTYPE" {
		return fields[1]
	}
	return ""
}

func (e *readerEngine) nodeType() NodeType {
	if e.attrIdx >= 0 {
		return AttributeNode
	}
	return e.typ
}

func (e *readerEngine) line() int {
	if e.typ == NoneNode {
		return 0
	}
	line, _ := e.bridge.position(e.endOff)
	return line
}

func (e *readerEngine) column() int {
	if e.typ == NoneNode {
		return 0
	}
	_, col := e.bridge.position(e.endOff)
	return col
}

func (e *readerEngine) emptyElement() bool {
	return e.typ == ElementNode && e.empty
}

func (e *readerEngine) localName() (string, error) {
	if e.attrIdx >= 0 {
		return e.attrs[e.attrIdx].Name.Local, nil
	}
	switch e.typ {
	case ElementNode, EndElementNode, ProcessingInstructionNode, DocumentTypeNode, XMLDeclarationNode:
		if e.name.Local == "" {
			return "", ErrNoName
		}
		return e.name.Local, nil
	default:
		return "", ErrNoName
	}
}

func (e *readerEngine) qualifiedName() string {
	if e.attrIdx >= 0 {
		return e.attrQName(e.attrs[e.attrIdx].Name)
	}
	switch e.typ {
	case ElementNode, EndElementNode:
		return e.elemQName(e.name)
	case ProcessingInstructionNode, DocumentTypeNode, XMLDeclarationNode:
		return e.name.Local
	default:
		return ""
	}
}

// elemQName reconstructs prefix:local for an element. The decoder
// resolves prefixes into namespace URIs; the scope stack maps them
// back. An element whose URI came from a default namespace
// declaration carries no prefix.
func (e *readerEngine) elemQName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	prefix, ok := e.scopes.PrefixOf(n.Space)
	if !ok || prefix == "" {
		return n.Local
	}
	return prefix + ":" + n.Local
}

// attrQName differs from elemQName in two ways: a namespace
// declaration keeps its literal xmlns form, and an attribute is
// never in the default namespace, so an empty prefix degrades to the
// local name.
func (e *readerEngine) attrQName(n xml.Name) string {
	switch {
	case n.Space == "xmlns":
		return "xmlns:" + n.Local
	case n.Space == "":
		return n.Local
	}
	prefix, ok := e.scopes.PrefixOf(n.Space)
	if !ok || prefix == "" {
		return n.Local
	}
	return prefix + ":" + n.Local
}

func (e *readerEngine) value() (string, error) {
	if e.attrIdx >= 0 {
		return e.attrs[e.attrIdx].Value, nil
	}
	switch e.typ {
	case TextNode, WhitespaceNode, CDATASectionNode, CommentNode,
		ProcessingInstructionNode, DocumentTypeNode, XMLDeclarationNode:
		return e.val, nil
	default:
		return "", ErrNoValue
	}
}

func (e *readerEngine) moveToFirstAttribute() (bool, error) {
	if e.typ != ElementNode || len(e.attrs) == 0 {
		return false, nil
	}
	e.attrIdx = 0
	return true, nil
}

func (e *readerEngine) moveToNextAttribute() (bool, error) {
	if e.typ != ElementNode || e.attrIdx < 0 || e.attrIdx+1 >= len(e.attrs) {
		return false, nil
	}
	e.attrIdx++
	return true, nil
}
