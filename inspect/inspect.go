// Package inspect scans stylesheet files and builds a selector inventory.
package inspect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"cssel/common"
	"cssel/css"
	"cssel/utils/future"
)

// Options controls a scan.
type Options struct {
	// Number of files parsed concurrently, at least 1.
	Workers int
	// Input encoding; nil means the files are already UTF-8.
	Encoding encoding.Encoding
	// Re-render analyzable selectors canonically through the builder.
	Normalize bool
}

// Entry is one distinct selector with its usage.
type Entry struct {
	Selector string   `json:"selector"`
	Count    int      `json:"count"`
	Files    []string `json:"files"`
}

// Inventory is the aggregated scan result.
type Inventory struct {
	Files    int      `json:"files"`
	Entries  []Entry  `json:"selectors"`
	Warnings []string `json:"warnings,omitempty"`
}

type fileResult struct {
	path      string
	selectors []string
	warnings  []string
}

// Expand resolves sources into a flat list of stylesheet files. Directories
// are walked recursively, picking up .css files only; plain files are taken
// as-is regardless of extension.
func Expand(sources []string) ([]string, error) {
	var files []string
	for _, src := range sources {
		info, err := os.Stat(src)
		if err != nil {
			return nil, fmt.Errorf("unable to access source '%s': %w", src, err)
		}
		if !info.IsDir() {
			files = append(files, src)
			continue
		}
		err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".css") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("unable to walk source '%s': %w", src, err)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no stylesheet files found")
	}
	return files, nil
}

// Scan parses the given files concurrently and aggregates their selectors.
func Scan(ctx context.Context, log *zap.Logger, opts Options, files []string) (*Inventory, error) {
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	parser := css.NewParser(log)

	fns := make([]func(context.Context) (fileResult, error), len(files))
	for i, path := range files {
		fns[i] = func(context.Context) (fileResult, error) {
			return scanFile(parser, opts, path)
		}
	}

	results, err := future.All(ctx, opts.Workers, fns...)
	if err != nil {
		return nil, err
	}

	inv := &Inventory{Files: len(files)}
	byText := make(map[string]*Entry)
	for _, res := range results {
		for _, w := range res.warnings {
			inv.Warnings = append(inv.Warnings, fmt.Sprintf("%s: %s", res.path, w))
		}
		for _, sel := range res.selectors {
			e, ok := byText[sel]
			if !ok {
				e = &Entry{Selector: sel}
				byText[sel] = e
			}
			e.Count++
			if len(e.Files) == 0 || e.Files[len(e.Files)-1] != res.path {
				e.Files = append(e.Files, res.path)
			}
		}
	}

	inv.Entries = make([]Entry, 0, len(byText))
	for _, e := range byText {
		inv.Entries = append(inv.Entries, *e)
	}
	sort.Slice(inv.Entries, func(i, j int) bool {
		return natural.Less(inv.Entries[i].Selector, inv.Entries[j].Selector)
	})
	return inv, nil
}

func scanFile(parser *css.Parser, opts Options, path string) (fileResult, error) {
	res := fileResult{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("unable to read '%s': %w", path, err)
	}
	if opts.Encoding != nil {
		if data, err = opts.Encoding.NewDecoder().Bytes(data); err != nil {
			return res, fmt.Errorf("unable to decode '%s': %w", path, err)
		}
	}

	sheet := parser.Parse(data, path)
	res.warnings = sheet.Warnings

	for _, rule := range sheet.Rules() {
		text := rule.Selector.Raw
		if opts.Normalize {
			canonical, err := rule.Selector.Canonical()
			if err != nil {
				res.warnings = append(res.warnings, fmt.Sprintf("cannot normalize selector %q: %v", text, err))
			} else {
				text = canonical
			}
		}
		res.selectors = append(res.selectors, text)
	}
	return res, nil
}

// Render serializes the inventory in the requested format.
func Render(inv *Inventory, format common.OutputFmt) ([]byte, error) {
	switch format {
	case common.OutputFmtText:
		var sb strings.Builder
		fmt.Fprintf(&sb, "%d selector(s) in %d file(s)\n", len(inv.Entries), inv.Files)
		for _, e := range inv.Entries {
			fmt.Fprintf(&sb, "%6d  %-40s %s\n", e.Count, e.Selector, strings.Join(e.Files, ", "))
		}
		for _, w := range inv.Warnings {
			fmt.Fprintf(&sb, "warning: %s\n", w)
		}
		return []byte(sb.String()), nil

	case common.OutputFmtJson:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(inv); err != nil {
			return nil, fmt.Errorf("unable to encode inventory: %w", err)
		}
		return buf.Bytes(), nil

	case common.OutputFmtCss:
		var sb strings.Builder
		for _, e := range inv.Entries {
			sb.WriteString(e.Selector)
			sb.WriteString(" {\n}\n\n")
		}
		return []byte(sb.String()), nil

	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
