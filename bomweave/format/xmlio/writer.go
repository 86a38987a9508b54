package xmlio

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const indentUnit = "  "

// Attr is a single attribute to emit on a start tag. Attributes are written
// in the order given; field order is significant for snapshot stability.
type Attr struct {
	Name  string
	Value string
}

type frame struct {
	name        string
	tagOpen     bool // start tag not yet terminated; End may self-close
	hasChildren bool
	hasText     bool
}

// Writer emits XML events with two-space indentation. Elements that receive
// neither text nor children are written self-closed.
type Writer struct {
	bw    *bufio.Writer
	stack []frame
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

// WriteHeader emits the XML declaration.
func (w *Writer) WriteHeader() error {
	_, err := w.bw.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	return w.wrap(err)
}

// Start opens an element with the given attributes.
func (w *Writer) Start(name string, attrs ...Attr) error {
	if err := w.closePendingTag(); err != nil {
		return err
	}
	if depth := len(w.stack); depth > 0 {
		w.stack[depth-1].hasChildren = true
		if err := w.newlineIndent(depth); err != nil {
			return err
		}
	}
	if _, err := w.bw.WriteString("<" + name); err != nil {
		return w.wrap(err)
	}
	for _, attr := range attrs {
		if _, err := w.bw.WriteString(" " + attr.Name + `="` + escape(attr.Value) + `"`); err != nil {
			return w.wrap(err)
		}
	}
	w.stack = append(w.stack, frame{name: name, tagOpen: true})
	return nil
}

// Text writes escaped character data into the current element.
func (w *Writer) Text(value string) error {
	if len(w.stack) == 0 {
		return fmt.Errorf("write of text outside any element")
	}
	if err := w.closePendingTag(); err != nil {
		return err
	}
	w.stack[len(w.stack)-1].hasText = true
	_, err := w.bw.WriteString(escape(value))
	return w.wrap(err)
}

// End closes the current element, self-closing it if it is still empty.
func (w *Writer) End() error {
	if len(w.stack) == 0 {
		return fmt.Errorf("write of end tag with no open element")
	}
	top := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	if top.tagOpen {
		_, err := w.bw.WriteString("/>")
		return w.wrap(err)
	}
	if top.hasChildren && !top.hasText {
		if err := w.newlineIndent(len(w.stack)); err != nil {
			return err
		}
	}
	_, err := w.bw.WriteString("</" + top.name + ">")
	return w.wrap(err)
}

// SimpleTag writes a text-only leaf element.
func (w *Writer) SimpleTag(name, value string) error {
	if err := w.Start(name); err != nil {
		return err
	}
	if err := w.Text(value); err != nil {
		return err
	}
	return w.End()
}

// Flush terminates the document with a trailing newline and flushes buffers.
func (w *Writer) Flush() error {
	if len(w.stack) > 0 {
		return fmt.Errorf("flush with %d unclosed elements", len(w.stack))
	}
	if _, err := w.bw.WriteString("\n"); err != nil {
		return w.wrap(err)
	}
	return w.wrap(w.bw.Flush())
}

func (w *Writer) closePendingTag() error {
	if len(w.stack) == 0 {
		return nil
	}
	top := &w.stack[len(w.stack)-1]
	if top.tagOpen {
		top.tagOpen = false
		if _, err := w.bw.WriteString(">"); err != nil {
			return w.wrap(err)
		}
	}
	return nil
}

func (w *Writer) newlineIndent(depth int) error {
	_, err := w.bw.WriteString("\n" + strings.Repeat(indentUnit, depth))
	return w.wrap(err)
}

func (w *Writer) wrap(err error) error {
	if err != nil {
		return fmt.Errorf("xml write failed: %w", err)
	}
	return nil
}

func escape(value string) string {
	var buf bytes.Buffer
	// EscapeText cannot fail against a bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(value))
	return buf.String()
}
