//go:build !domxml

package xenon

import (
	"encoding/xml"
	"io"

	"github.com/pkg/errors"
)

// writerEngine drives an encoding/xml encoder. The encoder wants a
// start element's attributes inside the start token, so the token is
// buffered until the next structural call decides how it ends. The
// encoder also wants end tags named, so the engine keeps the stack
// of open element names.
type writerEngine struct {
	enc     *xml.Encoder
	pending *xml.StartElement
	stack   []xml.Name
}

func newWriterEngine(dst io.Writer) (*writerEngine, error) {
	return &writerEngine{enc: xml.NewEncoder(dst)}, nil
}

func (e *writerEngine) flushPending() error {
	if e.pending == nil {
		return nil
	}
	tok := *e.pending
	e.pending = nil
	if err := e.enc.EncodeToken(tok); err != nil {
		return err
	}
	e.stack = append(e.stack, tok.Name)
	return nil
}

func (e *writerEngine) startDocument(standalone Standalone) error {
	if err := e.flushPending(); err != nil {
		return err
	}
	inst := `version="1.0" encoding="UTF-8"`
	if s := standalone.String(); s != "" {
		inst += ` standalone="` + s + `"`
	}
	return e.enc.EncodeToken(xml.ProcInst{Target: "xml", Inst: []byte(inst)})
}

func (e *writerEngine) endDocument() error {
	if err := e.flushPending(); err != nil {
		return err
	}
	for len(e.stack) > 0 {
		name := e.stack[len(e.stack)-1]
		if err := e.enc.EncodeToken(xml.EndElement{Name: name}); err != nil {
			return err
		}
		e.stack = e.stack[:len(e.stack)-1]
	}
	return e.enc.Flush()
}

func (e *writerEngine) startElement(name string) error {
	if err := e.flushPending(); err != nil {
		return err
	}
	e.pending = &xml.StartElement{Name: xml.Name{Local: name}}
	return nil
}

func (e *writerEngine) endElement() error {
	if err := e.flushPending(); err != nil {
		return err
	}
	if len(e.stack) == 0 {
		return errors.New("no element is open")
	}
	name := e.stack[len(e.stack)-1]
	if err := e.enc.EncodeToken(xml.EndElement{Name: name}); err != nil {
		return err
	}
	e.stack = e.stack[:len(e.stack)-1]
	return nil
}

func (e *writerEngine) attribute(name, value string) error {
	if e.pending == nil {
		return errors.New("no element start tag is open")
	}
	e.pending.Attr = append(e.pending.Attr, xml.Attr{
		Name:  xml.Name{Local: name},
		Value: value,
	})
	return nil
}

func (e *writerEngine) text(s string) error {
	if err := e.flushPending(); err != nil {
		return err
	}
	return e.enc.EncodeToken(xml.CharData(s))
}

func (e *writerEngine) comment(s string) error {
	if err := e.flushPending(); err != nil {
		return err
	}
	return e.enc.EncodeToken(xml.Comment(s))
}

func (e *writerEngine) close() error {
	if err := e.flushPending(); err != nil {
		return err
	}
	return e.enc.Flush()
}
