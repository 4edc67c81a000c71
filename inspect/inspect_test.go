package inspect

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"

	"cssel/common"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestExpand(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.css":        "p {}",
		"sub/b.css":    "div {}",
		"sub/skip.txt": "not css",
	})

	files, err := Expand([]string{dir})
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(files) != 2 {
		t.Errorf("files = %v, want 2 css files", files)
	}

	// a plain file is taken regardless of extension
	files, err = Expand([]string{filepath.Join(dir, "sub", "skip.txt")})
	if err != nil || len(files) != 1 {
		t.Errorf("Expand(file) = %v, %v", files, err)
	}

	if _, err := Expand([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Error("Expand should fail on a missing source")
	}
}

func TestScan(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"one.css": "div { color: red; }\np.note { margin: 0; }\n",
		"two.css": "div { color: blue; }\nitem2 {}\nitem10 {}\n",
	})

	files, err := Expand([]string{dir})
	if err != nil {
		t.Fatal(err)
	}

	inv, err := Scan(context.Background(), zap.NewNop(), Options{Workers: 2}, files)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if inv.Files != 2 {
		t.Errorf("Files = %d, want 2", inv.Files)
	}

	byText := map[string]Entry{}
	for _, e := range inv.Entries {
		byText[e.Selector] = e
	}
	if e := byText["div"]; e.Count != 2 || len(e.Files) != 2 {
		t.Errorf("div entry = %+v, want 2 uses in 2 files", e)
	}
	if e := byText["p.note"]; e.Count != 1 {
		t.Errorf("p.note entry = %+v", e)
	}

	// natural ordering: item2 before item10
	var i2, i10 int
	for i, e := range inv.Entries {
		switch e.Selector {
		case "item2":
			i2 = i
		case "item10":
			i10 = i
		}
	}
	if i2 > i10 {
		t.Errorf("natural order broken: item2 at %d, item10 at %d", i2, i10)
	}
}

func TestScanNormalizes(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.css": "div   >    p { color: red; }",
	})

	inv, err := Scan(context.Background(), zap.NewNop(), Options{Workers: 1, Normalize: true},
		[]string{filepath.Join(dir, "a.css")})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(inv.Entries) != 1 || inv.Entries[0].Selector != "div > p" {
		t.Errorf("entries = %+v, want normalized 'div > p'", inv.Entries)
	}
}

func TestScanDecodesEncoding(t *testing.T) {
	// "п" in KOI8-R
	body := []byte{0xD0, ' ', '{', '}'}
	dir := t.TempDir()
	path := filepath.Join(dir, "k.css")
	if err := os.WriteFile(path, body, 0644); err != nil {
		t.Fatal(err)
	}

	inv, err := Scan(context.Background(), zap.NewNop(),
		Options{Workers: 1, Encoding: charmap.KOI8R}, []string{path})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(inv.Entries) != 1 || inv.Entries[0].Selector != "п" {
		t.Errorf("entries = %+v, want selector %q", inv.Entries, "п")
	}
}

func TestRender(t *testing.T) {
	inv := &Inventory{
		Files: 1,
		Entries: []Entry{
			{Selector: "div", Count: 2, Files: []string{"a.css"}},
			{Selector: "p.note", Count: 1, Files: []string{"a.css"}},
		},
		Warnings: []string{"a.css: cannot analyze selector: div >"},
	}

	text, err := Render(inv, common.OutputFmtText)
	if err != nil {
		t.Fatalf("Render(text) error = %v", err)
	}
	for _, want := range []string{"2 selector(s) in 1 file(s)", "div", "p.note", "warning:"} {
		if !strings.Contains(string(text), want) {
			t.Errorf("text output missing %q:\n%s", want, text)
		}
	}

	raw, err := Render(inv, common.OutputFmtJson)
	if err != nil {
		t.Fatalf("Render(json) error = %v", err)
	}
	var decoded Inventory
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("json output does not decode: %v", err)
	}
	if decoded.Files != 1 || len(decoded.Entries) != 2 {
		t.Errorf("decoded = %+v", decoded)
	}

	cssOut, err := Render(inv, common.OutputFmtCss)
	if err != nil {
		t.Fatalf("Render(css) error = %v", err)
	}
	if !strings.Contains(string(cssOut), "div {\n}") || !strings.Contains(string(cssOut), "p.note {\n}") {
		t.Errorf("css output = %q", cssOut)
	}
}
