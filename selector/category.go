package selector

// Category identifies a compound selector part kind. Ordinal values define
// the only order in which parts may be appended to a builder: element, id,
// class, attribute, pseudo-class, pseudo-element.
type Category int

const (
	CategoryNone Category = iota
	CategoryElement
	CategoryID
	CategoryClass
	CategoryAttribute
	CategoryPseudoClass
	CategoryPseudoElement
)

func (c Category) String() string {
	switch c {
	case CategoryElement:
		return "element"
	case CategoryID:
		return "id"
	case CategoryClass:
		return "class"
	case CategoryAttribute:
		return "attribute"
	case CategoryPseudoClass:
		return "pseudo-class"
	case CategoryPseudoElement:
		return "pseudo-element"
	default:
		return "none"
	}
}

// once reports whether at most a single part of this category may be present
// in a compound selector.
func (c Category) once() bool {
	return c == CategoryElement || c == CategoryID || c == CategoryPseudoElement
}

// decorate formats a raw part value the way it appears in selector text.
func (c Category) decorate(value string) string {
	switch c {
	case CategoryID:
		return "#" + value
	case CategoryClass:
		return "." + value
	case CategoryAttribute:
		return "[" + value + "]"
	case CategoryPseudoClass:
		return ":" + value
	case CategoryPseudoElement:
		return "::" + value
	default:
		return value
	}
}
