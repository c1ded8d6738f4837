package check

import (
	"context"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/exsyntax/pkg/config"
	"github.com/walteh/exsyntax/pkg/diagnostic"
	"github.com/walteh/exsyntax/pkg/workspace"
)

type Handler struct {
	fs         afero.Fs
	root       string
	configPath string
	format     string
	maxDepth   int
	tabWidth   int
	color      bool
	colorSet   bool
	patterns   []string
}

func NewCheckCommand() *cobra.Command {
	return newCommand(&Handler{fs: afero.NewOsFs()})
}

func newCommand(me *Handler) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [PATTERN...]",
		Short: "report syntax errors in Elixir files",
		Long: "check parses every file matching the given glob patterns, or the configured\n" +
			"include patterns when none are given, and prints one line per diagnostic.\n" +
			"It fails when any file has errors.",
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&me.root, "root", ".", "directory patterns and config are resolved against")
	cmd.Flags().StringVar(&me.configPath, "config", "", "config file (default: .exsyntax.hcl or .exsyntax.yaml in the root)")
	cmd.Flags().StringVar(&me.format, "format", "", "output format: text or json")
	cmd.Flags().IntVar(&me.maxDepth, "max-depth", 0, "parser recursion limit")
	cmd.Flags().IntVar(&me.tabWidth, "tab-width", 0, "tab width for columns when no .editorconfig sets one")
	cmd.Flags().BoolVar(&me.color, "color", false, "color severities in text output (default: the config's color setting)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.patterns = args
		me.colorSet = cmd.Flags().Changed("color")
		return me.Run(cmd.Context(), cmd.OutOrStdout())
	}

	return cmd
}

func (me *Handler) loadConfig(root string) (*config.Config, error) {
	if me.configPath == "" {
		cfg, path, err := config.Find(me.fs, root)
		if err != nil {
			return nil, err
		}
		if path != "" {
			me.configPath = path
		}
		return cfg, nil
	}
	cfg, err := config.LoadConfig(me.fs, me.configPath)
	if err != nil {
		return nil, err
	}
	return cfg.WithDefaults(), nil
}

func (me *Handler) Run(ctx context.Context, out io.Writer) error {
	root, err := filepath.Abs(me.root)
	if err != nil {
		return errors.Errorf("resolving root: %w", err)
	}

	cfg, err := me.loadConfig(root)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	if me.format != "" {
		cfg.Format = me.format
	}
	if me.maxDepth > 0 {
		cfg.MaxDepth = me.maxDepth
	}
	if me.tabWidth > 0 {
		cfg.TabWidth = me.tabWidth
	}
	if me.colorSet {
		cfg.Color = me.color
	}

	if _, err := diagnostic.NewFormatter(cfg.Format, cfg.TabWidth, cfg.Color); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Debug().Str("root", root).Str("config", me.configPath).Str("format", cfg.Format).Msg("checking")

	patterns := make([]string, 0, len(me.patterns))
	for _, p := range me.patterns {
		if filepath.IsAbs(p) {
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return errors.Errorf("resolving %s: %w", p, err)
			}
			p = rel
		}
		patterns = append(patterns, filepath.ToSlash(p))
	}

	ws := workspace.New(me.fs, root, cfg)

	paths, err := ws.Discover(ctx, patterns)
	if err != nil {
		return errors.Errorf("discovering files: %w", err)
	}

	files, readErr := ws.ParseAll(ctx, paths)

	failed := 0
	for _, f := range files {
		if len(f.Diagnostics) == 0 {
			continue
		}
		formatter, err := diagnostic.NewFormatter(cfg.Format, f.TabWidth, cfg.Color)
		if err != nil {
			return err
		}
		b, err := formatter.Format(f.Path, f.Source, f.Diagnostics)
		if err != nil {
			return errors.Errorf("formatting %s: %w", f.Path, err)
		}
		if _, err := out.Write(b); err != nil {
			return errors.Errorf("writing diagnostics: %w", err)
		}
		if diagnostic.HasErrors(f.Diagnostics) {
			failed++
		}
	}

	if readErr != nil {
		return errors.Errorf("reading files: %w", readErr)
	}
	if failed > 0 {
		return errors.Errorf("%d of %d files have syntax errors", failed, len(files))
	}
	return nil
}
