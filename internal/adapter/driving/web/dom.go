package web

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ameg/ameg-charts-go/internal/application/lazyload"
)

// el cria um elemento com atributos em pares nome/valor.
func el(tag atom.Atom, attrs []string, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: tag, Data: tag.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	for _, c := range children {
		if c != nil {
			n.AppendChild(c)
		}
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

func hasClass(n *html.Node, class string) bool {
	v, _ := attr(n, "class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func addClass(n *html.Node, class string) {
	if hasClass(n, class) {
		return
	}
	v, _ := attr(n, "class")
	setAttr(n, "class", strings.TrimSpace(v+" "+class))
}

func removeClass(n *html.Node, class string) {
	v, ok := attr(n, "class")
	if !ok {
		return
	}
	var kept []string
	for _, c := range strings.Fields(v) {
		if c != class {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		removeAttr(n, "class")
		return
	}
	setAttr(n, "class", strings.Join(kept, " "))
}

// findAll percorre a árvore e retorna os nós que satisfazem match, em ordem de documento.
func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(root)
	return out
}

func findFirst(root *html.Node, tag atom.Atom) *html.Node {
	nodes := findAll(root, func(n *html.Node) bool { return n.DataAtom == tag })
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// imageNode adapta um <img> ao Element do lazy loader.
type imageNode struct {
	node   *html.Node
	bounds lazyload.Rect
}

var _ lazyload.Positioned = (*imageNode)(nil)

func (i *imageNode) Attr(name string) (string, bool) { return attr(i.node, name) }
func (i *imageNode) SetAttr(name, value string)      { setAttr(i.node, name, value) }
func (i *imageNode) RemoveAttr(name string)          { removeAttr(i.node, name) }
func (i *imageNode) AddClass(class string)           { addClass(i.node, class) }
func (i *imageNode) Bounds() lazyload.Rect           { return i.bounds }
