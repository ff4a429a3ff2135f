package xmldoc

import (
	"io"

	"github.com/beevik/etree"
)

// Declaration is written before the root element.
const Declaration = `<?xml version="1.0" encoding="utf-8"?>`

// Attr is a single attribute. Attributes render in the order they were added.
type Attr struct {
	Name  string
	Value string
}

// A is shorthand for building an Attr.
func A(name, value string) Attr {
	return Attr{Name: name, Value: value}
}

// Element is a node in the document tree.
type Element struct {
	*etree.Element
}

// NewElement creates a detached element.
func NewElement(name string, attrs ...Attr) *Element {
	e := &Element{etree.NewElement(name)}
	e.setAttrs(attrs)
	return e
}

// Add appends a new child element and returns it.
func (e *Element) Add(name string, attrs ...Attr) *Element {
	child := &Element{e.CreateElement(name)}
	child.setAttrs(attrs)
	return child
}

// AddText appends a child element holding text content and returns the
// receiver, so sibling properties can be chained.
func (e *Element) AddText(name, text string, attrs ...Attr) *Element {
	child := &Element{e.CreateElement(name)}
	child.setAttrs(attrs)
	child.SetText(text)
	return e
}

// Append attaches existing elements as children. Nil elements are dropped.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		if c != nil {
			e.AddChild(c.Element)
		}
	}
	return e
}

// Empty reports whether the element has no children and no text.
func (e *Element) Empty() bool {
	return len(e.ChildElements()) == 0 && e.Text() == ""
}

func (e *Element) setAttrs(attrs []Attr) {
	for _, a := range attrs {
		e.CreateAttr(a.Name, a.Value)
	}
}

// Document is a rooted tree plus serialization settings.
type Document struct {
	Root   *Element
	Indent int // spaces per level, defaults to 2
}

// New wraps root in a Document with default formatting.
func New(root *Element) *Document {
	return &Document{Root: root}
}

// String renders the document.
func (d *Document) String() string {
	s, _ := d.tree().WriteToString()
	return s
}

// Bytes renders the document.
func (d *Document) Bytes() []byte {
	b, _ := d.tree().WriteToBytes()
	return b
}

// WriteTo renders the document into w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return d.tree().WriteTo(w)
}

// tree builds the etree document from a copy of the root, so rendering
// never changes the caller's elements.
func (d *Document) tree() *etree.Document {
	doc := etree.NewDocument()
	// Text keeps quotes readable; attribute values escape quotes and
	// line breaks so they survive a parse unchanged.
	doc.WriteSettings.CanonicalText = true
	doc.WriteSettings.CanonicalAttrVal = true

	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	if d.Root != nil {
		doc.SetRoot(d.Root.Copy())
	}

	indent := d.Indent
	if indent <= 0 {
		indent = 2
	}
	doc.Indent(indent)
	return doc
}
