//go:build domxml

package xenon

import (
	"io"

	"github.com/shabbyrobe/xmlwriter"
)

// writerEngine drives a shabbyrobe/xmlwriter writer, which keeps its
// own element stack and start-tag state. Childless elements come out
// self-closed on this engine.
type writerEngine struct {
	w *xmlwriter.Writer
}

func newWriterEngine(dst io.Writer) (*writerEngine, error) {
	return &writerEngine{w: xmlwriter.Open(dst)}, nil
}

func (e *writerEngine) startDocument(standalone Standalone) error {
	if standalone == StandaloneOmit {
		return e.w.StartDoc(xmlwriter.Doc{})
	}
	// The writer's document node has no standalone knob, so the
	// declaration is written literally.
	decl := `<?xml version="1.0" encoding="UTF-8" standalone="` + standalone.String() + `"?>`
	return e.w.Write(xmlwriter.Raw(decl))
}

func (e *writerEngine) endDocument() error {
	return e.w.EndAllFlush()
}

func (e *writerEngine) startElement(name string) error {
	return e.w.StartElem(xmlwriter.Elem{Name: name})
}

func (e *writerEngine) endElement() error {
	return e.w.EndElem()
}

func (e *writerEngine) attribute(name, value string) error {
	return e.w.WriteAttr(xmlwriter.Attr{Name: name, Value: value})
}

func (e *writerEngine) text(s string) error {
	return e.w.Write(xmlwriter.Text(s))
}

func (e *writerEngine) comment(s string) error {
	return e.w.WriteComment(xmlwriter.Comment{s})
}

func (e *writerEngine) close() error {
	return e.w.Flush()
}
