// Package selector builds, parses and renders CSS compound selectors.
//
// A Builder accumulates selector parts left to right. Parts must arrive in
// category order (element, id, class, attribute, pseudo-class,
// pseudo-element) and element, id and pseudo-element may appear at most once.
// A violating append records a sticky error and mutates nothing; the error
// surfaces from Err and Render.
package selector

import (
	"strings"

	"go.uber.org/multierr"
)

// Builder accumulates parts of a single compound selector. The zero value is
// ready to use. A Builder is not safe for concurrent use.
type Builder struct {
	buf   strings.Builder
	stage Category
	has   [CategoryPseudoElement + 1]bool
	err   error
}

// New returns an empty builder. Usually one of the facade functions below is
// a better entry point.
func New() *Builder { return &Builder{} }

// Element starts a selector with an element part, e.g. "div".
func Element(value string) *Builder { return New().Element(value) }

// ID starts a selector with an id part, e.g. "#main".
func ID(value string) *Builder { return New().ID(value) }

// Class starts a selector with a class part, e.g. ".container".
func Class(value string) *Builder { return New().Class(value) }

// Attr starts a selector with an attribute part, e.g. `[href$=".png"]`.
// The value is the bracket content, brackets are added by the builder.
func Attr(value string) *Builder { return New().Attr(value) }

// PseudoClass starts a selector with a pseudo-class part, e.g. ":focus".
func PseudoClass(value string) *Builder { return New().PseudoClass(value) }

// PseudoElement starts a selector with a pseudo-element part, e.g. "::after".
func PseudoElement(value string) *Builder { return New().PseudoElement(value) }

func (b *Builder) append(c Category, value string) *Builder {
	if b.err != nil {
		// poisoned builder, later appends are no-ops
		return b
	}
	if c.once() && b.has[c] {
		b.err = &DuplicatePartError{Part: c}
		return b
	}
	if c < b.stage {
		b.err = &OrderError{Part: c, Stage: b.stage}
		return b
	}
	b.buf.WriteString(c.decorate(value))
	b.stage = c
	if c.once() {
		b.has[c] = true
	}
	return b
}

func (b *Builder) Element(value string) *Builder       { return b.append(CategoryElement, value) }
func (b *Builder) ID(value string) *Builder            { return b.append(CategoryID, value) }
func (b *Builder) Class(value string) *Builder         { return b.append(CategoryClass, value) }
func (b *Builder) Attr(value string) *Builder          { return b.append(CategoryAttribute, value) }
func (b *Builder) PseudoClass(value string) *Builder   { return b.append(CategoryPseudoClass, value) }
func (b *Builder) PseudoElement(value string) *Builder { return b.append(CategoryPseudoElement, value) }

// Err returns the first recorded usage violation, if any.
func (b *Builder) Err() error { return b.err }

// Render returns the accumulated selector text and empties the accumulator.
// NOTE: only the text is cleared - stage, the uniqueness guards and a
// recorded error deliberately survive, so a builder cannot be reused to
// produce a second selector from scratch. A repeated Render returns "".
func (b *Builder) Render() (string, error) {
	s := b.buf.String()
	b.buf.Reset()
	return s, b.err
}

// Combine joins two selectors with a combinator token, a single space on
// each side: "<left> <combinator> <right>". The combinator is taken as-is
// and is not validated (Parse is strict about combinators, Combine is not).
// Both operands are rendered, i.e. consumed. The result accepts further
// Combine calls, the accumulated text acting as the left operand.
func Combine(left *Builder, combinator string, right *Builder) *Builder {
	ls, lerr := left.Render()
	rs, rerr := right.Render()

	b := New()
	b.buf.WriteString(ls)
	b.buf.WriteString(" ")
	b.buf.WriteString(combinator)
	b.buf.WriteString(" ")
	b.buf.WriteString(rs)
	b.err = multierr.Append(lerr, rerr)
	return b
}
