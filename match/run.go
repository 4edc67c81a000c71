package match

import (
	"context"
	"fmt"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"cssel/selector"
	"cssel/state"
)

// Run implements the "match" command: parses a selector and an HTML file and
// prints matching elements.
func Run(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if cmd.Args().Len() < 2 {
		return fmt.Errorf("selector and HTML file expected")
	}
	if cmd.Args().Len() > 2 {
		env.Log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	text := cmd.Args().Get(0)
	src := cmd.Args().Get(1)

	c, err := selector.Parse(text)
	if err != nil {
		return fmt.Errorf("bad selector '%s': %w", text, err)
	}
	m, err := Compile(c)
	if err != nil {
		return fmt.Errorf("selector '%s' cannot be matched: %w", text, err)
	}

	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("unable to open '%s': %w", src, err)
	}
	defer f.Close()
	env.Rpt.Store("inputs/"+src, src)

	doc, err := html.Parse(f)
	if err != nil {
		return fmt.Errorf("unable to parse '%s': %w", src, err)
	}

	nodes := Select(doc, m)
	limit := env.Cfg.Match.MaxResults
	if limit > 0 && len(nodes) > limit {
		env.Log.Warn("Truncating results", zap.Int("matched", len(nodes)), zap.Int("limit", limit))
		nodes = nodes[:limit]
	}

	for _, n := range nodes {
		fmt.Println(describe(n))
	}

	env.Log.Info("Matching finished", zap.String("selector", text), zap.String("file", src), zap.Int("matched", len(nodes)))
	return nil
}

// describe renders an element as its opening tag, enough to locate it in the
// source.
func describe(n *html.Node) string {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(n.Data)
	for _, a := range n.Attr {
		fmt.Fprintf(&sb, " %s=%q", a.Key, a.Val)
	}
	sb.WriteByte('>')
	return sb.String()
}
