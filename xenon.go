// Package xenon provides a pull-based XML reader and writer that
// behave identically over two interchangeable parsing engines: the
// encoding/xml token stream (default) and a DOM-backed engine built
// on antchfx/xmlquery and shabbyrobe/xmlwriter (selected with the
// domxml build tag). The engine is chosen once per process at compile
// time; callers never see engine types or engine error values.
//
// The public boundary is UTF-8 only. UTF-16 files are accepted and
// transcoded on the way in, but names and values are always UTF-8
// strings, and all output is UTF-8.
package xenon

import "strconv"

// Version reported by command line tools built on this package.
const Version = "0.0.1"

// NodeType is the category of the node the reader cursor is
// positioned on. The numeric values are shared by both engines and
// are stable: code generated against them must keep working, so they
// are spelled out rather than derived.
type NodeType int

const (
	NoneNode                  NodeType = 0
	ElementNode               NodeType = 1
	AttributeNode             NodeType = 2
	TextNode                  NodeType = 3
	CDATASectionNode          NodeType = 4
	ProcessingInstructionNode NodeType = 7
	CommentNode               NodeType = 8
	DocumentTypeNode          NodeType = 10
	WhitespaceNode            NodeType = 13
	EndElementNode            NodeType = 15
	XMLDeclarationNode        NodeType = 17
)

func (n NodeType) String() string {
	switch n {
	case NoneNode:
		return "None"
	case ElementNode:
		return "Element"
	case AttributeNode:
		return "Attribute"
	case TextNode:
		return "Text"
	case CDATASectionNode:
		return "CDATASection"
	case ProcessingInstructionNode:
		return "ProcessingInstruction"
	case CommentNode:
		return "Comment"
	case DocumentTypeNode:
		return "DocumentType"
	case WhitespaceNode:
		return "Whitespace"
	case EndElementNode:
		return "EndElement"
	case XMLDeclarationNode:
		return "XMLDeclaration"
	default:
		return "NodeType(" + strconv.Itoa(int(n)) + ")"
	}
}

// Standalone is the value of the standalone pseudo-attribute in the
// XML declaration. A document is standalone if all entity
// declarations required by the XML document are contained within the
// document.
type Standalone int

const (
	// StandaloneOmit leaves the standalone attribute out of the
	// XML declaration entirely.
	StandaloneOmit Standalone = iota
	StandaloneYes
	StandaloneNo
)

func (s Standalone) String() string {
	switch s {
	case StandaloneYes:
		return "yes"
	case StandaloneNo:
		return "no"
	default:
		return ""
	}
}

const xmlNamespaceURI = "http://www.w3.org/XML/1998/namespace"
