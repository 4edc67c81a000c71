package selector_test

import (
	"errors"
	"testing"

	"cssel/selector"
)

func render(t *testing.T, b *selector.Builder) string {
	t.Helper()
	s, err := b.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return s
}

func TestBuilder_SingleParts(t *testing.T) {
	tests := []struct {
		name string
		b    *selector.Builder
		want string
	}{
		{"element", selector.Element("div"), "div"},
		{"id", selector.ID("nav-bar"), "#nav-bar"},
		{"class", selector.Class("warning"), ".warning"},
		{"attribute", selector.Attr("href"), "[href]"},
		{"pseudo-class", selector.PseudoClass("hover"), ":hover"},
		{"pseudo-element", selector.PseudoElement("before"), "::before"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render(t, tt.b); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuilder_ChainedAppends(t *testing.T) {
	got := render(t, selector.Element("a").Attr(`href$=".png"`).PseudoClass("focus"))
	if got != `a[href$=".png"]:focus` {
		t.Errorf("Render() = %q, want %q", got, `a[href$=".png"]:focus`)
	}
}

func TestBuilder_RepeatableCategories(t *testing.T) {
	got := render(t, selector.ID("main").Class("container").Class("editable"))
	if got != "#main.container.editable" {
		t.Errorf("Render() = %q, want %q", got, "#main.container.editable")
	}
}

func TestBuilder_FullOrder(t *testing.T) {
	b := selector.Element("div").
		ID("content").
		Class("wide").
		Class("dark").
		Attr("lang|=en").
		PseudoClass("hover").
		PseudoClass("visited").
		PseudoElement("first-line")

	got := render(t, b)
	want := "div#content.wide.dark[lang|=en]:hover:visited::first-line"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestBuilder_DuplicateElement(t *testing.T) {
	b := selector.Element("table").Element("tr")
	if !errors.Is(b.Err(), selector.ErrDuplicatePart) {
		t.Fatalf("Err() = %v, want ErrDuplicatePart", b.Err())
	}

	var dup *selector.DuplicatePartError
	if !errors.As(b.Err(), &dup) {
		t.Fatalf("Err() = %T, want *DuplicatePartError", b.Err())
	}
	if dup.Part != selector.CategoryElement {
		t.Errorf("Part = %v, want element", dup.Part)
	}
}

func TestBuilder_DuplicateID(t *testing.T) {
	b := selector.ID("one").ID("two")
	if !errors.Is(b.Err(), selector.ErrDuplicatePart) {
		t.Errorf("Err() = %v, want ErrDuplicatePart", b.Err())
	}
}

func TestBuilder_DuplicatePseudoElement(t *testing.T) {
	b := selector.PseudoElement("before").PseudoElement("after")
	if !errors.Is(b.Err(), selector.ErrDuplicatePart) {
		t.Errorf("Err() = %v, want ErrDuplicatePart", b.Err())
	}
}

func TestBuilder_IDAfterClass(t *testing.T) {
	b := selector.Class("container").ID("main")
	if !errors.Is(b.Err(), selector.ErrOutOfOrder) {
		t.Fatalf("Err() = %v, want ErrOutOfOrder", b.Err())
	}

	var ord *selector.OrderError
	if !errors.As(b.Err(), &ord) {
		t.Fatalf("Err() = %T, want *OrderError", b.Err())
	}
	if ord.Part != selector.CategoryID || ord.Stage != selector.CategoryClass {
		t.Errorf("OrderError = %+v, want id after class", ord)
	}
}

func TestBuilder_ElementAfterPseudo(t *testing.T) {
	b := selector.PseudoClass("hover").Element("div")
	if !errors.Is(b.Err(), selector.ErrOutOfOrder) {
		t.Errorf("Err() = %v, want ErrOutOfOrder", b.Err())
	}
}

func TestBuilder_ViolationMutatesNothing(t *testing.T) {
	b := selector.Element("div").Class("a")
	b.ID("late") // order violation, must not touch the accumulator

	s, err := b.Render()
	if !errors.Is(err, selector.ErrOutOfOrder) {
		t.Fatalf("Render() error = %v, want ErrOutOfOrder", err)
	}
	if s != "div.a" {
		t.Errorf("accumulator after violation = %q, want %q", s, "div.a")
	}
}

func TestBuilder_PoisonedBuilderIgnoresAppends(t *testing.T) {
	b := selector.Class("x").Element("div") // order violation
	first := b.Err()
	b.Element("span").Element("p") // would be duplicates, must stay no-ops

	if b.Err() != first {
		t.Errorf("Err() changed after appends on poisoned builder: %v", b.Err())
	}
}

func TestBuilder_UnboundedCategories(t *testing.T) {
	b := selector.Class("a")
	for i := 0; i < 20; i++ {
		b = b.Class("b").Attr("c").PseudoClass("d")
	}
	if b.Err() != nil {
		t.Errorf("repeated class/attribute/pseudo-class appends must not fail: %v", b.Err())
	}
}

func TestBuilder_RenderClearsAccumulatorOnly(t *testing.T) {
	b := selector.Element("div").ID("x")

	if got := render(t, b); got != "div#x" {
		t.Fatalf("first Render() = %q, want %q", got, "div#x")
	}
	// accumulator is cleared...
	if got := render(t, b); got != "" {
		t.Errorf("second Render() = %q, want empty string", got)
	}
	// ...but guard state survives: the builder remembers it already saw an
	// element and an id.
	b.Element("span")
	if !errors.Is(b.Err(), selector.ErrDuplicatePart) {
		t.Errorf("element after Render: Err() = %v, want ErrDuplicatePart", b.Err())
	}
}

func TestBuilder_StageSurvivesRender(t *testing.T) {
	b := selector.PseudoClass("hover")
	render(t, b)

	b.Class("late")
	if !errors.Is(b.Err(), selector.ErrOutOfOrder) {
		t.Errorf("class after rendered pseudo-class: Err() = %v, want ErrOutOfOrder", b.Err())
	}
}

func TestCombine_Simple(t *testing.T) {
	got := render(t, selector.Combine(selector.Element("div"), "+", selector.Element("table")))
	if got != "div + table" {
		t.Errorf("Render() = %q, want %q", got, "div + table")
	}
}

func TestCombine_Nested(t *testing.T) {
	inner := selector.Combine(selector.Element("p"), "+", selector.Element("div"))
	outer := selector.Combine(selector.Element("table"), "~", inner)

	got := render(t, outer)
	if got != "table ~ p + div" {
		t.Errorf("Render() = %q, want %q", got, "table ~ p + div")
	}
}

func TestCombine_CombinatorNotValidated(t *testing.T) {
	got := render(t, selector.Combine(selector.Element("a"), "??", selector.Element("b")))
	if got != "a ?? b" {
		t.Errorf("Render() = %q, want %q", got, "a ?? b")
	}
}

func TestCombine_PropagatesOperandErrors(t *testing.T) {
	bad := selector.Class("x").Element("div") // order violation
	b := selector.Combine(bad, ">", selector.Element("span"))

	if !errors.Is(b.Err(), selector.ErrOutOfOrder) {
		t.Errorf("combined Err() = %v, want ErrOutOfOrder", b.Err())
	}
}

func TestCombine_ConsumesOperands(t *testing.T) {
	left := selector.Element("div")
	right := selector.Element("span")
	selector.Combine(left, ">", right)

	if got := render(t, left); got != "" {
		t.Errorf("left operand accumulator = %q, want empty after Combine", got)
	}
	if got := render(t, right); got != "" {
		t.Errorf("right operand accumulator = %q, want empty after Combine", got)
	}
}
