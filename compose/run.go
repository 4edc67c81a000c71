package compose

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"cssel/state"
)

// Run implements the "compose" command: reads a YAML part list and writes the
// rendered selectors to the destination (STDOUT when absent).
func Run(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if cmd.Args().Len() == 0 {
		return fmt.Errorf("no part list specified")
	}
	if cmd.Args().Len() > 2 {
		env.Log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	src := cmd.Args().Get(0)
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("unable to read part list '%s': %w", src, err)
	}
	env.Rpt.StoreData("inputs/"+src, data)

	doc, err := Load(data)
	if err != nil {
		return fmt.Errorf("unable to load part list '%s': %w", src, err)
	}

	slugify := env.Cfg.Compose.SlugifyIdents || cmd.Bool("slugify")
	results, err := Build(doc, slugify)
	if err != nil {
		return fmt.Errorf("unable to build selectors from '%s': %w", src, err)
	}

	out := os.Stdout
	if fname := cmd.Args().Get(1); len(fname) > 0 {
		if _, err := os.Stat(fname); err == nil && !env.Overwrite {
			return fmt.Errorf("destination '%s' already exists", fname)
		}
		if out, err = os.Create(fname); err != nil {
			return fmt.Errorf("unable to create destination '%s': %w", fname, err)
		}
		defer out.Close()
	}

	for _, r := range results {
		if _, err := fmt.Fprintf(out, "%s\t%s\n", r.Name, r.Selector); err != nil {
			return fmt.Errorf("unable to write selector: %w", err)
		}
	}

	env.Log.Info("Composed selectors", zap.String("source", src), zap.Int("count", len(results)), zap.Bool("slugified", slugify))
	return nil
}
