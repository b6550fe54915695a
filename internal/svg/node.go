// Package svg is a small in-memory SVG document tree.
//
// Templates and the renderer build Node trees; the tree is serialized with
// attributes in insertion order so identical inputs give byte-identical markup.
package svg

import (
	"encoding/xml"
	"math"
	"strconv"
	"strings"
)

// Namespace is the SVG XML namespace.
const Namespace = "http://www.w3.org/2000/svg"

// Attr is a single name/value attribute.
type Attr struct {
	Name  string
	Value string
}

// Node is an SVG element or, when Tag is empty, a text node.
type Node struct {
	Tag      string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// El creates an element with the given attribute pairs (name, value, name, value, ...).
func El(tag string, kv ...string) *Node {
	n := &Node{Tag: tag}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Set(kv[i], kv[i+1])
	}
	return n
}

// TextNode creates a character data node.
func TextNode(s string) *Node { return &Node{Text: s} }

// Root creates an <svg> element with the namespace and a viewBox of w×h.
func Root(w, h float64) *Node {
	return El("svg", "xmlns", Namespace, "viewBox", "0 0 "+Num(w)+" "+Num(h))
}

// Append adds children and returns n.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Get returns the value of the named attribute.
func (n *Node) Get(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Set replaces the named attribute or appends it when absent.
func (n *Node) Set(name, value string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
	return n
}

// Del removes the named attribute.
func (n *Node) Del(name string) *Node {
	out := n.Attrs[:0]
	for _, a := range n.Attrs {
		if a.Name != name {
			out = append(out, a)
		}
	}
	n.Attrs = out
	return n
}

// DelStyle removes the listed properties from the inline style attribute,
// dropping the attribute entirely when nothing is left.
func (n *Node) DelStyle(props ...string) *Node {
	style, ok := n.Get("style")
	if !ok {
		return n
	}
	var kept []string
	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		name, _, _ := strings.Cut(decl, ":")
		name = strings.ToLower(strings.TrimSpace(name))
		drop := false
		for _, p := range props {
			if name == p {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, decl)
		}
	}
	if len(kept) == 0 {
		return n.Del("style")
	}
	return n.Set("style", strings.Join(kept, ";"))
}

// Walk calls fn for n and every descendant in document order. Returning
// false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns every descendant element (including n) with the given tag.
func (n *Node) Find(tag string) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.Tag == tag {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	c := &Node{Tag: n.Tag, Text: n.Text, Attrs: append([]Attr(nil), n.Attrs...)}
	for _, ch := range n.Children {
		c.Children = append(c.Children, ch.Clone())
	}
	return c
}

// String serializes the tree.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	if n.Tag == "" {
		xml.EscapeText(b, []byte(n.Text))
		return
	}
	b.WriteByte('<')
	b.WriteString(n.Tag)
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		xml.EscapeText(b, []byte(a.Value))
		b.WriteByte('"')
	}
	if len(n.Children) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	for _, c := range n.Children {
		c.write(b)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}

// Num formats a coordinate rounded to three decimals without trailing zeros.
func Num(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0 // no "-0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
