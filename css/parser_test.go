package css

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

const sampleCSS = `
@import url("fonts.css");

body {
  font-family: serif;
  margin: 0;
}

h1, h2.title {
  font-weight: bold;
  font-size: 1.5em;
}

a[href^="https"]:visited {
  color: #336699;
}

@font-face {
  font-family: "Custom Serif";
  src: url("fonts/custom.ttf");
  font-style: italic;
  font-weight: 700;
}

@media screen and not monochrome {
  p.note {
    font-size: 90%;
  }
}
`

func parseSample(t *testing.T, text string) *Stylesheet {
	t.Helper()
	p := NewParser(zap.NewNop())
	return p.Parse([]byte(text), "test")
}

func TestParseStylesheet(t *testing.T) {
	sheet := parseSample(t, sampleCSS)

	if got := len(sheet.Imports()); got != 1 {
		t.Errorf("imports = %d, want 1", got)
	}
	if urls := sheet.Imports(); len(urls) > 0 && urls[0] != "fonts.css" {
		t.Errorf("import url = %q, want %q", urls[0], "fonts.css")
	}

	rules := sheet.Rules()
	// body, h1, h2.title, a[...]:visited, p.note
	if len(rules) != 5 {
		t.Fatalf("rules = %d, want 5", len(rules))
	}

	if len(sheet.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", sheet.Warnings)
	}
}

func TestParseSelectorGroupSplits(t *testing.T) {
	sheet := parseSample(t, "h1, h2.title { font-weight: bold; }")

	rules := sheet.Rules()
	if len(rules) != 2 {
		t.Fatalf("rules = %d, want 2", len(rules))
	}
	if rules[0].Selector.Raw != "h1" || rules[1].Selector.Raw != "h2.title" {
		t.Errorf("selectors = %q, %q", rules[0].Selector.Raw, rules[1].Selector.Raw)
	}
	for _, r := range rules {
		if r.Selector.Parsed == nil {
			t.Errorf("selector %q not analyzed", r.Selector.Raw)
		}
		if _, ok := r.GetProperty("font-weight"); !ok {
			t.Errorf("selector %q missing shared property", r.Selector.Raw)
		}
	}
}

func TestParsePropertyValues(t *testing.T) {
	sheet := parseSample(t, `div {
  margin-top: 1.5em;
  width: 80%;
  z-index: 3;
  display: block;
  content: "abc";
}`)

	rules := sheet.Rules()
	if len(rules) != 1 {
		t.Fatalf("rules = %d, want 1", len(rules))
	}
	props := rules[0].Properties

	if v := props["margin-top"]; v.Value != 1.5 || v.Unit != "em" {
		t.Errorf("margin-top = %+v", v)
	}
	if v := props["width"]; v.Value != 80 || v.Unit != "%" {
		t.Errorf("width = %+v", v)
	}
	if v := props["z-index"]; v.Value != 3 || v.Unit != "" || !v.IsNumeric() {
		t.Errorf("z-index = %+v", v)
	}
	if v := props["display"]; v.Keyword != "block" || !v.IsKeyword() {
		t.Errorf("display = %+v", v)
	}
	if v := props["content"]; v.Keyword != "abc" {
		t.Errorf("content = %+v", v)
	}
}

func TestParseFontFace(t *testing.T) {
	sheet := parseSample(t, sampleCSS)

	faces := sheet.FontFaces()
	if len(faces) != 1 {
		t.Fatalf("font faces = %d, want 1", len(faces))
	}
	ff := faces[0]
	if ff.Family != "Custom Serif" {
		t.Errorf("family = %q", ff.Family)
	}
	if !strings.Contains(ff.Src, "custom.ttf") {
		t.Errorf("src = %q", ff.Src)
	}
	if ff.Style != "italic" || ff.Weight != "700" {
		t.Errorf("style/weight = %q/%q", ff.Style, ff.Weight)
	}
}

func TestParseMediaBlock(t *testing.T) {
	sheet := parseSample(t, sampleCSS)

	var mb *MediaBlock
	for _, item := range sheet.Items {
		if item.MediaBlock != nil {
			mb = item.MediaBlock
			break
		}
	}
	if mb == nil {
		t.Fatal("no media block parsed")
	}

	if mb.Query.Type != "screen" || mb.Query.Negated {
		t.Errorf("query = %+v", mb.Query)
	}
	if len(mb.Query.Features) != 1 || mb.Query.Features[0].Name != "monochrome" || !mb.Query.Features[0].Negated {
		t.Errorf("features = %+v", mb.Query.Features)
	}
	if len(mb.Rules) != 1 || mb.Rules[0].Selector.Raw != "p.note" {
		t.Errorf("media rules = %+v", mb.Rules)
	}
}

func TestMediaQueryEvaluate(t *testing.T) {
	mq := MediaQuery{Type: "screen", Features: []MediaFeature{{Name: "monochrome", Negated: true}}}

	if !mq.Evaluate("screen", nil) {
		t.Error("screen without monochrome should match")
	}
	if mq.Evaluate("screen", map[string]bool{"monochrome": true}) {
		t.Error("monochrome screen should not match")
	}
	if mq.Evaluate("print", nil) {
		t.Error("print should not match screen query")
	}

	all := MediaQuery{Type: "all"}
	if !all.Evaluate("anything", nil) {
		t.Error("all should match any medium")
	}
}

func TestParseKeepsUnanalyzedSelector(t *testing.T) {
	sheet := parseSample(t, "div > { color: red; }\np { color: blue; }")

	if len(sheet.Warnings) == 0 {
		t.Error("expected warning for dangling combinator")
	}

	// The broken prelude is preserved raw and the following rule still parses.
	rules := sheet.Rules()
	found := false
	for _, r := range rules {
		if r.Selector.Raw == "p" && r.Selector.Parsed != nil {
			found = true
		}
	}
	if !found {
		t.Errorf("rule after unanalyzed selector lost: %+v", rules)
	}
}

func TestStylesheetNormalize(t *testing.T) {
	sheet := parseSample(t, "div   >    p { color: red; }")

	if err := sheet.Normalize(); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	rules := sheet.Rules()
	if len(rules) != 1 || rules[0].Selector.Raw != "div > p" {
		t.Errorf("normalized selector = %q, want %q", rules[0].Selector.Raw, "div > p")
	}
}

func TestStylesheetNormalizeReportsViolations(t *testing.T) {
	sheet := parseSample(t, ".wide#main { color: red; }")

	if err := sheet.Normalize(); err == nil {
		t.Error("Normalize() should report id-after-class ordering")
	}
}

func TestStylesheetRoundTrip(t *testing.T) {
	sheet := parseSample(t, sampleCSS)

	out := sheet.String()
	for _, want := range []string{
		`@import url("fonts.css");`,
		"body {",
		"font-family: serif;",
		"@font-face {",
		`font-family: "Custom Serif";`,
		"@media screen and not monochrome {",
		"p.note {",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("serialized stylesheet missing %q:\n%s", want, out)
		}
	}

	// Serialized output must parse back to the same rule count.
	again := parseSample(t, out)
	if len(again.Rules()) != len(sheet.Rules()) {
		t.Errorf("round-trip rules = %d, want %d", len(again.Rules()), len(sheet.Rules()))
	}
}

func TestRewriteURLs(t *testing.T) {
	sheet := parseSample(t, sampleCSS)

	sheet.RewriteURLs(func(u string) string { return "assets/" + u })

	if urls := sheet.Imports(); len(urls) != 1 || urls[0] != "assets/fonts.css" {
		t.Errorf("imports after rewrite = %v", sheet.Imports())
	}
	faces := sheet.FontFaces()
	if len(faces) != 1 || !strings.Contains(faces[0].Src, "assets/fonts/custom.ttf") {
		t.Errorf("font src after rewrite = %q", faces[0].Src)
	}
}
