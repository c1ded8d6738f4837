package tree

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/exsyntax/pkg/parser"
	"github.com/walteh/exsyntax/pkg/syntax"
	"github.com/walteh/exsyntax/pkg/workspace"
)

type Handler struct {
	fs       afero.Fs
	file     string
	dump     bool
	maxDepth int
}

func NewTreeCommand() *cobra.Command {
	return newCommand(&Handler{fs: afero.NewOsFs()})
}

func newCommand(me *Handler) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree FILE",
		Short: "print the syntax tree of an Elixir file, \"-\" reads stdin",
		Args:  cobra.ExactArgs(1),
	}

	cmd.Flags().BoolVar(&me.dump, "dump", false, "print every node and token with its byte range, trivia included")
	cmd.Flags().IntVar(&me.maxDepth, "max-depth", 0, "parser recursion limit (0 uses the default)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.file = args[0]
		return me.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context, stdin io.Reader, out io.Writer) error {
	src, err := workspace.ReadSource(me.fs, me.file, stdin)
	if err != nil {
		return err
	}

	tree := parser.ParseWithOptions(src, parser.Options{MaxDepth: me.maxDepth})
	zerolog.Ctx(ctx).Debug().Str("file", me.file).Int("errors", len(tree.Errors())).Msg("parsed")

	var text string
	if me.dump {
		text = syntax.Dump(tree.Root)
	} else {
		text = syntax.Sexp(tree.Root) + "\n"
	}

	if _, err := io.WriteString(out, text); err != nil {
		return errors.Errorf("writing tree: %w", err)
	}
	return nil
}
