// Package compose builds selectors from declarative YAML part lists.
package compose

import (
	"bytes"
	"fmt"

	"github.com/gosimple/slug"
	yaml "gopkg.in/yaml.v3"

	"cssel/selector"
)

// Part is a single builder step. Exactly one field must be set.
type Part struct {
	Element       string `yaml:"element,omitempty"`
	ID            string `yaml:"id,omitempty"`
	Class         string `yaml:"class,omitempty"`
	Attr          string `yaml:"attr,omitempty"`
	PseudoClass   string `yaml:"pseudo_class,omitempty"`
	PseudoElement string `yaml:"pseudo_element,omitempty"`
}

// Combine joins two previously defined entries with a combinator.
type Combine struct {
	Left       string `yaml:"left"`
	Combinator string `yaml:"combinator"`
	Right      string `yaml:"right"`
}

// Entry describes one selector to build: either a part list or a combination
// of two earlier entries.
type Entry struct {
	Name    string   `yaml:"name"`
	Parts   []Part   `yaml:"parts,omitempty"`
	Combine *Combine `yaml:"combine,omitempty"`
}

// Document is the top-level structure of a part list file.
type Document struct {
	Selectors []Entry `yaml:"selectors"`
}

// Result pairs an entry name with its rendered selector.
type Result struct {
	Name     string
	Selector string
}

// Load decodes a part list document, rejecting unknown fields.
func Load(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode part list: %w", err)
	}
	if len(doc.Selectors) == 0 {
		return nil, fmt.Errorf("part list defines no selectors")
	}
	return &doc, nil
}

// Build renders every entry in the document. When slugify is set, identifier
// values (id and class parts, entry names) are slugified first, so human
// readable titles can be used directly. Combine entries refer to earlier
// entries by name and consume their builders.
func Build(doc *Document, slugify bool) ([]Result, error) {
	ident := func(s string) string {
		if slugify {
			return slug.Make(s)
		}
		return s
	}

	builders := make(map[string]*selector.Builder, len(doc.Selectors))
	order := make([]string, 0, len(doc.Selectors))

	for i, e := range doc.Selectors {
		name := ident(e.Name)
		if name == "" {
			name = fmt.Sprintf("selector-%d", i+1)
		}
		if _, dup := builders[name]; dup {
			return nil, fmt.Errorf("duplicate entry name %q", name)
		}

		var b *selector.Builder
		switch {
		case e.Combine != nil:
			if len(e.Parts) > 0 {
				return nil, fmt.Errorf("entry %q has both parts and combine", name)
			}
			left, ok := builders[ident(e.Combine.Left)]
			if !ok {
				return nil, fmt.Errorf("entry %q combines unknown entry %q", name, e.Combine.Left)
			}
			right, ok := builders[ident(e.Combine.Right)]
			if !ok {
				return nil, fmt.Errorf("entry %q combines unknown entry %q", name, e.Combine.Right)
			}
			b = selector.Combine(left, e.Combine.Combinator, right)
			// consumed operands are no longer addressable
			delete(builders, ident(e.Combine.Left))
			delete(builders, ident(e.Combine.Right))

		case len(e.Parts) > 0:
			b = selector.New()
			for _, p := range e.Parts {
				if err := applyPart(b, p, ident); err != nil {
					return nil, fmt.Errorf("entry %q: %w", name, err)
				}
			}

		default:
			return nil, fmt.Errorf("entry %q has neither parts nor combine", name)
		}

		if err := b.Err(); err != nil {
			return nil, fmt.Errorf("entry %q: %w", name, err)
		}
		builders[name] = b
		order = append(order, name)
	}

	var results []Result
	for _, name := range order {
		b, ok := builders[name]
		if !ok {
			// consumed by a later combine
			continue
		}
		text, err := b.Render()
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", name, err)
		}
		results = append(results, Result{Name: name, Selector: text})
	}
	return results, nil
}

func applyPart(b *selector.Builder, p Part, ident func(string) string) error {
	set := 0
	for _, v := range []string{p.Element, p.ID, p.Class, p.Attr, p.PseudoClass, p.PseudoElement} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("part must set exactly one of element/id/class/attr/pseudo_class/pseudo_element")
	}

	switch {
	case p.Element != "":
		b.Element(p.Element)
	case p.ID != "":
		b.ID(ident(p.ID))
	case p.Class != "":
		b.Class(ident(p.Class))
	case p.Attr != "":
		b.Attr(p.Attr)
	case p.PseudoClass != "":
		b.PseudoClass(p.PseudoClass)
	case p.PseudoElement != "":
		b.PseudoElement(p.PseudoElement)
	}
	return nil
}
