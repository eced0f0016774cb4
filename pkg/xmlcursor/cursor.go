// Package xmlcursor provides a namespace-aware streaming reader over XML
// documents. It keeps track of source line numbers so that downstream
// consumers can report findings against the original document.
package xmlcursor

import (
	"encoding/xml"
	"io"
	"sort"
	"strings"

	"golang.org/x/net/html/charset"
)

const NetexNamespace = "http://www.netex.org.uk/netex"

type Cursor struct {
	decoder *xml.Decoder
	lines   *lineIndex
}

func NewCursor(reader io.Reader) *Cursor {
	lines := &lineIndex{}
	d := xml.NewDecoder(lines.wrap(reader))
	d.CharsetReader = charset.NewReaderLabel

	return &Cursor{
		decoder: d,
		lines:   lines,
	}
}

// Token returns the next raw token from the underlying decoder.
func (c *Cursor) Token() (xml.Token, error) {
	return c.decoder.Token()
}

// Line reports the source line of the most recently returned token.
func (c *Cursor) Line() int {
	return c.lines.lineFor(c.decoder.InputOffset())
}

// Decode decodes the element starting at start into a tagged struct, the same
// way DecodeElement would.
func (c *Cursor) Decode(v any, start *xml.StartElement) error {
	return c.decoder.DecodeElement(v, start)
}

// Skip consumes tokens until the element starting at the current position is
// closed.
func (c *Cursor) Skip() error {
	return c.decoder.Skip()
}

// ReadTree consumes the element starting at start and its whole subtree,
// producing a generic node tree with line numbers. Comments, processing
// instructions and insignificant whitespace are discarded.
func (c *Cursor) ReadTree(start xml.StartElement) (*Node, error) {
	root := newNode(start, c.lines.lineFor(c.decoder.InputOffset()))
	stack := []*Node{root}

	for {
		tok, err := c.decoder.Token()
		if err != nil {
			return nil, err
		}

		switch ty := tok.(type) {
		case xml.StartElement:
			node := newNode(ty, c.lines.lineFor(c.decoder.InputOffset()))
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
			stack = append(stack, node)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return root, nil
			}
		case xml.CharData:
			text := strings.TrimSpace(string(ty))
			if text != "" {
				stack[len(stack)-1].Text += text
			}
		default:
			// comments, directives, processing instructions
		}
	}
}

func newNode(start xml.StartElement, line int) *Node {
	attrs := make([]xml.Attr, len(start.Attr))
	copy(attrs, start.Attr)

	return &Node{
		Local: start.Name.Local,
		Space: start.Name.Space,
		Attrs: attrs,
		Line:  line,
	}
}

// lineIndex records the byte offsets of newlines as they stream past, so a
// decoder input offset can be mapped back to a line number.
type lineIndex struct {
	newlines []int64
	consumed int64
}

func (l *lineIndex) wrap(reader io.Reader) io.Reader {
	return &lineCountingReader{reader: reader, index: l}
}

func (l *lineIndex) lineFor(offset int64) int {
	return sort.Search(len(l.newlines), func(i int) bool {
		return l.newlines[i] >= offset
	}) + 1
}

type lineCountingReader struct {
	reader io.Reader
	index  *lineIndex
}

func (r *lineCountingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)

	for i := 0; i < n; i++ {
		if p[i] == '\n' {
			r.index.newlines = append(r.index.newlines, r.index.consumed+int64(i))
		}
	}
	r.index.consumed += int64(n)

	return n, err
}
