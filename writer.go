package xenon

import (
	"io"
	"os"

	"github.com/lestrrat-go/pdebug"
	"github.com/lestrrat-go/xenon/internal/orderedmap"
	"github.com/pkg/errors"
)

// Writer emits one XML document to a file or a caller-owned stream.
// Output is always UTF-8. Like Reader, a Writer owns its engine
// exclusively and is not safe for concurrent use.
//
// Namespace handling is deliberately stateless across elements:
// every StartElement or Attribute call that names a namespace URI
// gets a matching xmlns declaration on the element being written,
// deduplicated only within that one start tag. Callers that want a
// single declaration for a whole subtree pass the URI once and use
// the bare prefix afterwards.
type Writer struct {
	engine  *writerEngine
	file    *os.File
	tagOpen bool
	closed  bool
	attrs   *orderedmap.Map[string, string]
	decls   *orderedmap.Map[string, string]
}

func newWriter(engine *writerEngine, file *os.File) *Writer {
	return &Writer{
		engine: engine,
		file:   file,
		attrs:  orderedmap.New[string, string](),
		decls:  orderedmap.New[string, string](),
	}
}

// CreateWriter constructs a Writer that writes to the named file,
// truncating it if it exists.
func CreateWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file %q", path)
	}
	engine, err := newWriterEngine(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "failed to create XML writer")
	}
	return newWriter(engine, f), nil
}

// NewWriter constructs a Writer over a caller-owned stream. The
// stream is never closed by the Writer.
func NewWriter(dst io.Writer) (*Writer, error) {
	engine, err := newWriterEngine(newSinkBridge(dst))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create XML writer")
	}
	return newWriter(engine, nil), nil
}

// StartDocument writes the XML declaration. The version is always
// 1.0 and the encoding UTF-8; standalone controls whether a
// standalone pseudo-attribute appears and with which value.
func (w *Writer) StartDocument(standalone Standalone) error {
	w.tagOpen = false
	return wrapWrite("error starting document", w.engine.startDocument(standalone))
}

// EndDocument closes every element still open and flushes the
// engine's buffers.
func (w *Writer) EndDocument() error {
	if pdebug.Enabled {
		pdebug.Printf("xenon.Writer.EndDocument")
	}
	w.tagOpen = false
	return wrapWrite("error ending document", w.engine.endDocument())
}

// StartElement opens an element named prefix:local, or local when
// prefix is empty. A non-empty nsuri is declared on this element:
// xmlns:prefix when a prefix is given, the default namespace
// otherwise. The reserved xml prefix is never declared; it may only
// be paired with the XML namespace.
func (w *Writer) StartElement(prefix, local, nsuri string) error {
	const op = "error starting element"
	if pdebug.Enabled {
		pdebug.Printf("xenon.Writer.StartElement %s", qualify(prefix, local))
	}
	if local == "" {
		return wrapWrite(op, errors.New("element local name is required"))
	}
	if prefix == "xmlns" {
		return wrapWrite(op, errors.New("cannot use the xmlns prefix for an element"))
	}
	if prefix == "xml" && nsuri != "" && nsuri != xmlNamespaceURI {
		return wrapWrite(op, errors.New("the xml prefix cannot be bound to a namespace other than the XML namespace"))
	}

	if err := w.engine.startElement(qualify(prefix, local)); err != nil {
		return wrapWrite(op, err)
	}
	w.tagOpen = true
	w.attrs.Reset()
	w.decls.Reset()

	if nsuri != "" && prefix != "xml" {
		return w.declareNamespace(op, prefix, nsuri)
	}
	return nil
}

// EndElement closes the most recently opened element.
func (w *Writer) EndElement() error {
	w.tagOpen = false
	return wrapWrite("error ending element", w.engine.endElement())
}

// Attribute writes an attribute on the currently open start tag. A
// non-empty nsuri requires a prefix, since attributes never take the
// default namespace, and gets an xmlns:prefix declaration on the
// same element unless one is already present. Writing the same
// attribute name twice on one element fails.
func (w *Writer) Attribute(prefix, local, nsuri, value string) error {
	const op = "error writing attribute"
	if !w.tagOpen {
		return wrapWrite(op, errors.New("no element start tag is open"))
	}
	if local == "" {
		return wrapWrite(op, errors.New("attribute local name is required"))
	}
	switch {
	case prefix == "xmlns" && local == "xmlns":
		return wrapWrite(op, errors.New("cannot redefine the xmlns prefix"))
	case prefix == "xml" && nsuri != "" && nsuri != xmlNamespaceURI:
		return wrapWrite(op, errors.New("the xml prefix cannot be bound to a namespace other than the XML namespace"))
	case prefix == "" && nsuri != "" && local != "xmlns":
		return wrapWrite(op, errors.New("an attribute with a namespace requires a prefix"))
	}

	name := qualify(prefix, local)
	if err := w.attrs.Set(name, value); err != nil {
		return wrapWrite(op, errors.Wrapf(err, "duplicate attribute %q", name))
	}

	if nsuri != "" && prefix != "" && prefix != "xml" && prefix != "xmlns" {
		if err := w.declareNamespace(op, prefix, nsuri); err != nil {
			return err
		}
	}

	if err := w.engine.attribute(name, value); err != nil {
		return wrapWrite(op, err)
	}

	// An explicitly written declaration counts for later
	// deduplication on this element. Set cannot collide here: a
	// colliding declaration would have tripped the attribute name
	// check above.
	switch {
	case prefix == "xmlns":
		_ = w.decls.Set(local, value)
	case prefix == "" && local == "xmlns":
		_ = w.decls.Set("", value)
	}
	return nil
}

// declareNamespace emits an xmlns declaration on the open start tag,
// once per prefix. Redeclaring a prefix with a different URI on the
// same element fails.
func (w *Writer) declareNamespace(op, prefix, uri string) error {
	if existing, ok := w.decls.Get(prefix); ok {
		if existing == uri {
			return nil
		}
		return wrapWrite(op, errors.Errorf("namespace prefix %q is already declared on this element", prefix))
	}
	name := "xmlns"
	if prefix != "" {
		name = "xmlns:" + prefix
	}
	if err := w.attrs.Set(name, uri); err != nil {
		return wrapWrite(op, errors.Wrapf(err, "duplicate attribute %q", name))
	}
	if err := w.engine.attribute(name, uri); err != nil {
		return wrapWrite(op, err)
	}
	_ = w.decls.Set(prefix, uri)
	return nil
}

// Text writes escaped character data inside the current element.
func (w *Writer) Text(s string) error {
	w.tagOpen = false
	return wrapWrite("error writing text", w.engine.text(s))
}

// Comment writes a comment. The engine rejects content a comment
// cannot represent, such as its own closing marker.
func (w *Writer) Comment(s string) error {
	w.tagOpen = false
	return wrapWrite("error writing comment", w.engine.comment(s))
}

// Close flushes whatever the engine has buffered and releases the
// file handle when the Writer was constructed from a path. It does
// not close open elements; call EndDocument first for a complete
// document. Close may be called more than once.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	err := wrapWrite("error flushing writer", w.engine.close())
	if w.file != nil {
		ferr := w.file.Close()
		w.file = nil
		if err == nil && ferr != nil {
			err = wrapWrite("error flushing writer", ferr)
		}
	}
	return err
}

func qualify(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}
