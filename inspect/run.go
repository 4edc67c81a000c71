package inspect

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"

	"cssel/common"
	"cssel/config"
	"cssel/state"
)

// Run implements the "inspect" command: scans stylesheet sources and writes a
// selector inventory to STDOUT or the --output file.
func Run(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if cmd.Args().Len() == 0 {
		return fmt.Errorf("no sources specified")
	}

	fmtName := env.Cfg.Inspect.Format
	if name := cmd.String("format"); len(name) > 0 {
		fmtName = name
	}
	format, err := common.ParseOutputFmt(fmtName)
	if err != nil {
		return fmt.Errorf("bad output format: %w", err)
	}
	env.Output = format

	opts := Options{
		Workers:   env.Cfg.Inspect.Workers,
		Normalize: env.Cfg.Inspect.Normalize || cmd.Bool("normalize"),
	}

	encName := env.Cfg.Inspect.DefaultEncoding
	if name := cmd.String("encoding"); len(name) > 0 {
		encName = name
	}
	if encName != "" && encName != "utf-8" {
		enc, err := htmlindex.Get(encName)
		if err != nil {
			return fmt.Errorf("unknown encoding '%s': %w", encName, err)
		}
		opts.Encoding = enc
		env.CodePage = enc
	}

	files, err := Expand(cmd.Args().Slice())
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := env.Rpt.StoreCopy(filepath.ToSlash(filepath.Join("inputs", filepath.Base(f))), f); err != nil {
			env.Log.Warn("Unable to store input in debug report", zap.String("file", f), zap.Error(err))
		}
	}

	env.Log.Debug("Scanning stylesheets",
		zap.Int("files", len(files)), zap.Int("workers", opts.Workers),
		zap.Bool("normalize", opts.Normalize), zap.String("encoding", encName))

	inv, err := Scan(ctx, env.Log, opts, files)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	data, err := Render(inv, format)
	if err != nil {
		return err
	}

	out := os.Stdout
	if fname := cmd.String("output"); len(fname) > 0 {
		fname = filepath.Join(filepath.Dir(fname), config.CleanFileName(filepath.Base(fname)))
		if _, err := os.Stat(fname); err == nil && !env.Overwrite {
			return fmt.Errorf("destination '%s' already exists", fname)
		}
		if out, err = os.Create(fname); err != nil {
			return fmt.Errorf("unable to create destination '%s': %w", fname, err)
		}
		defer out.Close()
	}

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("unable to write inventory: %w", err)
	}

	env.Log.Info("Inspection finished",
		zap.Int("files", inv.Files), zap.Int("selectors", len(inv.Entries)),
		zap.Int("warnings", len(inv.Warnings)), zap.String("format", format.String()))
	return nil
}
