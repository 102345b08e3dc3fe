package xenon

import (
	"io"
	"os"

	"github.com/lestrrat-go/pdebug"
	"github.com/pkg/errors"
)

// Reader is a forward-only cursor over the nodes of one XML
// document. It owns its engine instance exclusively: a Reader must
// not be copied after first use and is not safe for concurrent use.
//
// A Reader starts positioned before the first node. Read moves to
// the next node; MoveToFirstAttribute and MoveToNextAttribute walk
// the current element's attributes without advancing the main node
// stream.
type Reader struct {
	engine *readerEngine
	file   *os.File
}

// OpenReader constructs a Reader over the named file. The file's
// encoding is handled the way the engine handles files: on the
// default build UTF-16 input is recognized by its byte order mark
// and transcoded, on the domxml build the engine sniffs the charset
// itself.
func OpenReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file %q", path)
	}
	engine, err := newReaderEngineFile(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "failed to create XML reader")
	}
	return &Reader{engine: engine, file: f}, nil
}

// NewReader constructs a Reader over a caller-owned stream. The
// stream is never closed by the Reader, and its bytes are consumed
// as UTF-8: stream input has a single supported encoding, whatever
// any embedded declaration claims.
func NewReader(src io.Reader) (*Reader, error) {
	engine, err := newReaderEngineStream(src)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create XML reader")
	}
	return &Reader{engine: engine}, nil
}

// Read advances the cursor to the next node. It reports true when a
// node was read and false once input is exhausted; after exhaustion
// it keeps reporting false. A genuine well-formedness problem is
// returned as an ErrParseError carrying the offending line. Failures
// that do not belong to the document (a broken underlying stream)
// are not document errors and read as exhaustion.
func (r *Reader) Read() (bool, error) {
	if pdebug.Enabled {
		pdebug.Printf("xenon.Reader.Read")
	}
	return r.engine.read()
}

// Line reports the 1-based line of the current parsing position, or
// 0 when no current node defines one.
func (r *Reader) Line() int {
	return r.engine.line()
}

// Column reports the 1-based column of the current parsing position,
// or 0 when no current node defines one.
func (r *Reader) Column() int {
	return r.engine.column()
}

// NodeType reports the type of the current node. Before the first
// Read and after exhaustion it reports NoneNode; while positioned on
// an attribute it reports AttributeNode.
func (r *Reader) NodeType() NodeType {
	return r.engine.nodeType()
}

// EmptyElement reports whether the current element is self-closing.
// It is false outside element context and false when the engine
// cannot determine emptiness for the current node.
func (r *Reader) EmptyElement() bool {
	return r.engine.emptyElement()
}

// LocalName reports the current node's local name. It returns
// ErrNoName when the cursor is not positioned on a named node.
func (r *Reader) LocalName() (string, error) {
	return r.engine.localName()
}

// QualifiedName reports the current node's prefixed name. It never
// fails: when the prefix cannot be resolved it degrades to the best
// text available, ultimately the local name or the empty string.
func (r *Reader) QualifiedName() string {
	return r.engine.qualifiedName()
}

// Value reports the current node's text content. It returns
// ErrNoValue when the current position carries none, as an element
// start or end does.
func (r *Reader) Value() (string, error) {
	return r.engine.value()
}

// MoveToFirstAttribute positions the cursor on the current element's
// first attribute. It reports false, without moving, when the
// current node has no attributes. Calling it again after the
// attribute list is exhausted restarts at the first attribute.
func (r *Reader) MoveToFirstAttribute() (bool, error) {
	return r.engine.moveToFirstAttribute()
}

// MoveToNextAttribute moves to the next attribute of the current
// element, reporting false at the end of the attribute list.
func (r *Reader) MoveToNextAttribute() (bool, error) {
	return r.engine.moveToNextAttribute()
}

// Close releases the file handle when the Reader was constructed
// from a path. A caller-supplied stream is left untouched. Close may
// be called more than once.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	f := r.file
	r.file = nil
	return f.Close()
}

// isBlank reports whether s consists entirely of XML whitespace.
func isBlank(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}
