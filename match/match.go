// Package match compiles parsed selectors into predicates over parsed HTML
// documents and selects matching nodes.
package match

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"cssel/selector"
)

// Matcher reports whether an element node is matched by a selector.
type Matcher interface {
	Match(n *html.Node) bool
}

// Compile turns a parsed complex selector into a Matcher.
//
// Supported: element (including '*'), #id, .class, attribute tests with
// presence, =, ~=, |=, ^=, $= and *= operators, the pseudo-classes
// first-child, last-child, only-child, empty and root, and the four
// combinators. Function-style pseudo-classes and pseudo-elements address
// things a static document does not have and yield a compile error.
func Compile(c *selector.Complex) (Matcher, error) {
	m, err := compileCompound(c.First)
	if err != nil {
		return nil, err
	}
	for _, link := range c.Rest {
		right, err := compileCompound(link.Compound)
		if err != nil {
			return nil, err
		}
		switch link.Combinator {
		case " ":
			m = &combined{left: m, right: right, traverse: ancestors}
		case ">":
			m = &combined{left: m, right: right, traverse: parent}
		case "+":
			m = &combined{left: m, right: right, traverse: adjacentSibling}
		case "~":
			m = &combined{left: m, right: right, traverse: precedingSiblings}
		default:
			return nil, fmt.Errorf("unsupported combinator %q", link.Combinator)
		}
	}
	return m, nil
}

// Select walks the document and returns all element nodes matched by m, in
// document order.
func Select(doc *html.Node, m Matcher) []*html.Node {
	var out []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && m.Match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

type predicate func(n *html.Node) bool

// compound matches when every part predicate holds on the same node.
type compound struct {
	preds []predicate
}

func (c *compound) Match(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, p := range c.preds {
		if !p(n) {
			return false
		}
	}
	return true
}

func compileCompound(cp selector.Compound) (Matcher, error) {
	m := &compound{}
	for _, part := range cp.Parts {
		pred, err := compilePart(part)
		if err != nil {
			return nil, err
		}
		m.preds = append(m.preds, pred)
	}
	return m, nil
}

func compilePart(part selector.Part) (predicate, error) {
	switch part.Category {
	case selector.CategoryElement:
		if part.Value == "*" {
			return func(*html.Node) bool { return true }, nil
		}
		name := strings.ToLower(part.Value)
		return func(n *html.Node) bool { return n.Data == name }, nil

	case selector.CategoryID:
		id := part.Value
		return func(n *html.Node) bool { return attrValue(n, "id") == id }, nil

	case selector.CategoryClass:
		class := part.Value
		return func(n *html.Node) bool {
			for f := range strings.FieldsSeq(attrValue(n, "class")) {
				if f == class {
					return true
				}
			}
			return false
		}, nil

	case selector.CategoryAttribute:
		return compileAttr(part)

	case selector.CategoryPseudoClass:
		return compilePseudoClass(part.Value)

	case selector.CategoryPseudoElement:
		return nil, fmt.Errorf("pseudo-element ::%s selects generated content and cannot match document nodes", part.Value)

	default:
		return nil, fmt.Errorf("cannot match %s part", part.Category)
	}
}

func compileAttr(part selector.Part) (predicate, error) {
	key := strings.ToLower(part.Key)
	val := part.Val

	has := func(n *html.Node) (string, bool) {
		for _, a := range n.Attr {
			if a.Key == key {
				return a.Val, true
			}
		}
		return "", false
	}

	switch part.Op {
	case "":
		return func(n *html.Node) bool { _, ok := has(n); return ok }, nil
	case "=":
		return func(n *html.Node) bool { v, ok := has(n); return ok && v == val }, nil
	case "~=":
		return func(n *html.Node) bool {
			v, ok := has(n)
			if !ok {
				return false
			}
			for f := range strings.FieldsSeq(v) {
				if f == val {
					return true
				}
			}
			return false
		}, nil
	case "|=":
		return func(n *html.Node) bool {
			v, ok := has(n)
			return ok && (v == val || strings.HasPrefix(v, val+"-"))
		}, nil
	case "^=":
		return func(n *html.Node) bool { v, ok := has(n); return ok && val != "" && strings.HasPrefix(v, val) }, nil
	case "$=":
		return func(n *html.Node) bool { v, ok := has(n); return ok && val != "" && strings.HasSuffix(v, val) }, nil
	case "*=":
		return func(n *html.Node) bool { v, ok := has(n); return ok && val != "" && strings.Contains(v, val) }, nil
	default:
		return nil, fmt.Errorf("unsupported attribute operator %q", part.Op)
	}
}

func compilePseudoClass(name string) (predicate, error) {
	if i := strings.IndexByte(name, '('); i >= 0 {
		return nil, fmt.Errorf("unsupported pseudo-class :%s", name)
	}

	switch strings.ToLower(name) {
	case "first-child":
		return func(n *html.Node) bool { return prevElement(n) == nil && n.Parent != nil }, nil
	case "last-child":
		return func(n *html.Node) bool { return nextElement(n) == nil && n.Parent != nil }, nil
	case "only-child":
		return func(n *html.Node) bool {
			return n.Parent != nil && prevElement(n) == nil && nextElement(n) == nil
		}, nil
	case "empty":
		return func(n *html.Node) bool {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode || (c.Type == html.TextNode && strings.TrimSpace(c.Data) != "") {
					return false
				}
			}
			return true
		}, nil
	case "root":
		return func(n *html.Node) bool {
			return n.Parent != nil && n.Parent.Type == html.DocumentNode
		}, nil
	default:
		return nil, fmt.Errorf("unsupported pseudo-class :%s", name)
	}
}

// combined applies the right matcher to the node itself and the left matcher
// to one of the nodes produced by the traversal.
type combined struct {
	left     Matcher
	right    Matcher
	traverse func(n *html.Node) []*html.Node
}

func (c *combined) Match(n *html.Node) bool {
	if !c.right.Match(n) {
		return false
	}
	for _, candidate := range c.traverse(n) {
		if c.left.Match(candidate) {
			return true
		}
	}
	return false
}

func ancestors(n *html.Node) []*html.Node {
	var out []*html.Node
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			out = append(out, p)
		}
	}
	return out
}

func parent(n *html.Node) []*html.Node {
	if n.Parent != nil && n.Parent.Type == html.ElementNode {
		return []*html.Node{n.Parent}
	}
	return nil
}

func adjacentSibling(n *html.Node) []*html.Node {
	if p := prevElement(n); p != nil {
		return []*html.Node{p}
	}
	return nil
}

func precedingSiblings(n *html.Node) []*html.Node {
	var out []*html.Node
	for p := prevElement(n); p != nil; p = prevElement(p) {
		out = append(out, p)
	}
	return out
}

func prevElement(n *html.Node) *html.Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

func nextElement(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
