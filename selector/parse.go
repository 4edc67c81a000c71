package selector

import (
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/multierr"
)

// Part is a single analyzed selector part. Value is the undecorated text the
// builder would be given for this part (attribute bracket content, class name
// without the dot and so on). For attribute parts Key/Op/Val carry the split
// form, Val with quotes removed; Op is empty for bare presence tests.
type Part struct {
	Category Category
	Value    string

	Key string
	Op  string
	Val string
}

// Compound is a sequence of parts with no combinators between them.
type Compound struct {
	Parts []Part
}

// Link attaches a compound to the preceding part of a complex selector.
// Combinator is one of " ", ">", "+", "~".
type Link struct {
	Combinator string
	Compound   Compound
}

// Complex is a parsed complex selector: a first compound plus zero or more
// combinator-joined compounds.
type Complex struct {
	Raw   string
	First Compound
	Rest  []Link
}

type token struct {
	tt   css.TokenType
	data string
}

func tokenize(text string) ([]token, error) {
	l := css.NewLexer(parse.NewInputString(text))

	var toks []token
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			if err := l.Err(); err != nil && err != io.EOF {
				return nil, fmt.Errorf("cannot tokenize selector %q: %w", text, err)
			}
			return toks, nil
		case css.CommentToken:
			// comments are insignificant in selector text
		default:
			toks = append(toks, token{tt: tt, data: string(data)})
		}
	}
}

// Parse analyzes a single complex selector. Selector groups (commas) are
// rejected here - use ParseGroup for rule preludes.
func Parse(text string) (*Complex, error) {
	toks, err := tokenize(text)
	if err != nil {
		return nil, err
	}
	return parseComplex(strings.TrimSpace(text), toks)
}

// ParseGroup analyzes a comma separated selector group, splitting at
// top-level commas only (commas inside brackets or function arguments do not
// split).
func ParseGroup(text string) ([]*Complex, error) {
	toks, err := tokenize(text)
	if err != nil {
		return nil, err
	}

	var (
		group []*Complex
		start int
		depth int
	)
	flush := func(end int) error {
		part := toks[start:end]
		var raw strings.Builder
		for _, t := range part {
			raw.WriteString(t.data)
		}
		c, err := parseComplex(strings.TrimSpace(raw.String()), part)
		if err != nil {
			return err
		}
		group = append(group, c)
		return nil
	}

	for i, t := range toks {
		switch t.tt {
		case css.LeftBracketToken, css.LeftParenthesisToken, css.FunctionToken:
			depth++
		case css.RightBracketToken, css.RightParenthesisToken:
			depth--
		case css.CommaToken:
			if depth == 0 {
				if err := flush(i); err != nil {
					return nil, err
				}
				start = i + 1
			}
		}
	}
	if err := flush(len(toks)); err != nil {
		return nil, err
	}
	return group, nil
}

type parser struct {
	toks []token
	pos  int
	raw  string
}

func parseComplex(raw string, toks []token) (*Complex, error) {
	p := &parser{toks: toks, raw: raw}
	p.skipSpace()
	if p.eof() {
		return nil, fmt.Errorf("empty selector")
	}

	first, err := p.compound()
	if err != nil {
		return nil, err
	}

	c := &Complex{Raw: raw, First: first}
	for {
		comb, ok, err := p.combinator()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		next, err := p.compound()
		if err != nil {
			return nil, err
		}
		c.Rest = append(c.Rest, Link{Combinator: comb, Compound: next})
	}
	return c, nil
}

func (p *parser) eof() bool { return p.pos >= len(p.toks) }

func (p *parser) peek() token {
	if p.eof() {
		return token{tt: css.ErrorToken}
	}
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.peek()
	p.pos++
	return t
}

func (p *parser) skipSpace() {
	for !p.eof() && p.peek().tt == css.WhitespaceToken {
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("selector %q: "+format, append([]any{p.raw}, args...)...)
}

// combinator consumes the token run between two compounds. Reports ok=false
// at the end of input (trailing whitespace is not a combinator).
func (p *parser) combinator() (string, bool, error) {
	hadSpace := false
	for !p.eof() && p.peek().tt == css.WhitespaceToken {
		hadSpace = true
		p.pos++
	}
	if p.eof() {
		return "", false, nil
	}
	if t := p.peek(); t.tt == css.DelimToken {
		switch t.data {
		case ">", "+", "~":
			p.pos++
			p.skipSpace()
			if p.eof() {
				return "", false, p.errorf("dangling combinator %q", t.data)
			}
			return t.data, true, nil
		}
	}
	if !hadSpace {
		return "", false, p.errorf("unexpected token %q", p.peek().data)
	}
	return " ", true, nil
}

func (p *parser) compound() (Compound, error) {
	var cp Compound
	for !p.eof() {
		t := p.peek()
		switch t.tt {
		case css.WhitespaceToken:
			return cp, nil

		case css.IdentToken:
			p.pos++
			cp.Parts = append(cp.Parts, Part{Category: CategoryElement, Value: t.data})

		case css.HashToken:
			p.pos++
			cp.Parts = append(cp.Parts, Part{Category: CategoryID, Value: strings.TrimPrefix(t.data, "#")})

		case css.DelimToken:
			switch t.data {
			case ".":
				p.pos++
				name := p.next()
				if name.tt != css.IdentToken {
					return cp, p.errorf("expected class name after '.', got %q", name.data)
				}
				cp.Parts = append(cp.Parts, Part{Category: CategoryClass, Value: name.data})
			case "*":
				p.pos++
				cp.Parts = append(cp.Parts, Part{Category: CategoryElement, Value: "*"})
			case ">", "+", "~":
				return cp, nil
			default:
				return cp, p.errorf("unexpected %q", t.data)
			}

		case css.LeftBracketToken:
			part, err := p.attribute()
			if err != nil {
				return cp, err
			}
			cp.Parts = append(cp.Parts, part)

		case css.ColonToken:
			part, err := p.pseudo()
			if err != nil {
				return cp, err
			}
			cp.Parts = append(cp.Parts, part)

		default:
			return cp, p.errorf("unexpected token %q", t.data)
		}
	}
	return cp, nil
}

func (p *parser) attribute() (Part, error) {
	p.pos++ // consume '['
	p.skipSpace()

	key := p.next()
	if key.tt != css.IdentToken {
		return Part{}, p.errorf("expected attribute name, got %q", key.data)
	}
	part := Part{Category: CategoryAttribute, Key: key.data}

	p.skipSpace()
	t := p.next()
	switch t.tt {
	case css.RightBracketToken:
		part.Value = part.Key
		return part, nil
	case css.IncludeMatchToken, css.DashMatchToken, css.PrefixMatchToken, css.SuffixMatchToken, css.SubstringMatchToken:
		part.Op = t.data
	case css.DelimToken:
		if t.data != "=" {
			return Part{}, p.errorf("unexpected %q in attribute selector", t.data)
		}
		part.Op = "="
	default:
		return Part{}, p.errorf("unexpected token %q in attribute selector", t.data)
	}

	p.skipSpace()
	val := p.next()
	switch val.tt {
	case css.StringToken:
		part.Val = unquote(val.data)
	case css.IdentToken, css.NumberToken, css.DimensionToken:
		part.Val = val.data
	default:
		return Part{}, p.errorf("expected attribute value, got %q", val.data)
	}

	p.skipSpace()
	if end := p.next(); end.tt != css.RightBracketToken {
		return Part{}, p.errorf("unterminated attribute selector")
	}
	part.Value = part.Key + part.Op + val.data
	return part, nil
}

func (p *parser) pseudo() (Part, error) {
	p.pos++ // consume ':'
	category := CategoryPseudoClass
	if p.peek().tt == css.ColonToken {
		p.pos++
		category = CategoryPseudoElement
	}

	t := p.next()
	switch t.tt {
	case css.IdentToken:
		// legacy single-colon pseudo-element notation
		if category == CategoryPseudoClass {
			switch strings.ToLower(t.data) {
			case "before", "after", "first-line", "first-letter":
				category = CategoryPseudoElement
			}
		}
		return Part{Category: category, Value: t.data}, nil

	case css.FunctionToken:
		args, err := p.functionArgs()
		if err != nil {
			return Part{}, err
		}
		return Part{Category: category, Value: t.data + args + ")"}, nil

	default:
		return Part{}, p.errorf("expected pseudo name, got %q", t.data)
	}
}

// functionArgs collects raw argument text up to the matching right
// parenthesis, preserving inner spacing.
func (p *parser) functionArgs() (string, error) {
	var sb strings.Builder
	depth := 0
	for !p.eof() {
		t := p.next()
		switch t.tt {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			if depth == 0 {
				return strings.TrimSpace(sb.String()), nil
			}
			depth--
		}
		sb.WriteString(t.data)
	}
	return "", p.errorf("unterminated function arguments")
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func buildCompound(cp Compound) *Builder {
	b := New()
	for _, part := range cp.Parts {
		b.append(part.Category, part.Value)
	}
	return b
}

// Build replays the parsed parts through the builder facade, so the result
// carries the builder's ordering and uniqueness diagnostics.
func (c *Complex) Build() *Builder {
	b := buildCompound(c.First)
	for _, link := range c.Rest {
		b = Combine(b, link.Combinator, buildCompound(link.Compound))
	}
	return b
}

// Render produces canonical selector text: each compound rebuilt by the
// builder, descendant compounds joined with a single space and other
// combinators padded with one space on each side. Ordering or uniqueness
// violations in the source selector are reported alongside the text.
func (c *Complex) Render() (string, error) {
	var (
		sb   strings.Builder
		errs error
	)
	s, err := buildCompound(c.First).Render()
	errs = multierr.Append(errs, err)
	sb.WriteString(s)

	for _, link := range c.Rest {
		if link.Combinator == " " {
			sb.WriteString(" ")
		} else {
			sb.WriteString(" " + link.Combinator + " ")
		}
		s, err = buildCompound(link.Compound).Render()
		errs = multierr.Append(errs, err)
		sb.WriteString(s)
	}
	return sb.String(), errs
}

func (c *Complex) String() string {
	s, _ := c.Render()
	return s
}
