package match_test

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"cssel/match"
	"cssel/selector"
)

const page = `<!DOCTYPE html>
<html>
<body>
  <div id="main" class="wide dark">
    <h1>Title</h1>
    <p class="note">first</p>
    <p>second</p>
    <span lang="en-US">hello</span>
  </div>
  <div class="narrow">
    <ul>
      <li><a href="https://example.com/a.png">a</a></li>
      <li><a href="/b.html" title="draft page">b</a></li>
      <li></li>
    </ul>
  </div>
</body>
</html>`

func parsePage(t *testing.T) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		t.Fatalf("html.Parse() error = %v", err)
	}
	return doc
}

func selectAll(t *testing.T, text string) []*html.Node {
	t.Helper()
	c, err := selector.Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", text, err)
	}
	m, err := match.Compile(c)
	if err != nil {
		t.Fatalf("Compile(%q) error = %v", text, err)
	}
	return match.Select(parsePage(t), m)
}

func TestSelect(t *testing.T) {
	tests := []struct {
		selector string
		want     int
	}{
		{"p", 2},
		{"*", 15}, // every element in the page, including the implied head
		{"#main", 1},
		{".note", 1},
		{".wide.dark", 1},
		{"div.narrow", 1},
		{"p.note", 1},
		{"[href]", 2},
		{`[href^="https"]`, 1},
		{`[href$=".png"]`, 1},
		{`[title*="draft"]`, 1},
		{"[lang|=en]", 1},
		{"[class~=dark]", 1},
		{"div p", 2},
		{"div > h1", 1},
		{"ul > li > a", 2},
		{"h1 + p", 1},
		{"h1 ~ p", 2},
		{"li:first-child", 1},
		{"li:last-child", 1},
		{"li:empty", 1},
		{"span:only-child", 0}, // span has element siblings
		{"html:root", 1},
		{"table", 0},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			got := selectAll(t, tt.selector)
			if len(got) != tt.want {
				t.Errorf("Select(%q) matched %d nodes, want %d", tt.selector, len(got), tt.want)
			}
		})
	}
}

func TestSelectDocumentOrder(t *testing.T) {
	nodes := selectAll(t, "p")
	if len(nodes) != 2 {
		t.Fatalf("matched %d, want 2", len(nodes))
	}
	if first := nodes[0]; firstText(first) != "first" {
		t.Errorf("first match text = %q, want %q", firstText(first), "first")
	}
}

func firstText(n *html.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			return strings.TrimSpace(c.Data)
		}
	}
	return ""
}

func TestCompileRejectsUnmatchable(t *testing.T) {
	tests := []string{
		"p::before",
		"tr:nth-child(2n+1)",
		"a:unknown-pseudo",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			c, err := selector.Parse(text)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", text, err)
			}
			if _, err := match.Compile(c); err == nil {
				t.Errorf("Compile(%q) expected error", text)
			}
		})
	}
}
