package tokens

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/exsyntax/pkg/lexer"
	"github.com/walteh/exsyntax/pkg/syntax"
	"github.com/walteh/exsyntax/pkg/workspace"
)

type Handler struct {
	fs          afero.Fs
	file        string
	significant bool
}

func NewTokensCommand() *cobra.Command {
	return newCommand(&Handler{fs: afero.NewOsFs()})
}

func newCommand(me *Handler) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens FILE",
		Short: "print the tokens of an Elixir file, \"-\" reads stdin",
		Args:  cobra.ExactArgs(1),
	}

	cmd.Flags().BoolVar(&me.significant, "significant", false, "omit whitespace, comments, and newlines")

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

	toks := lexer.Tokenize(src)
	zerolog.Ctx(ctx).Debug().Str("file", me.file).Int("tokens", len(toks)).Msg("tokenized")

	if me.significant {
		kept := toks[:0:0]
		for _, t := range toks {
			if !t.Kind.IsTrivia() {
				kept = append(kept, t)
			}
		}
		toks = kept
	}

	if _, err := io.WriteString(out, syntax.Tokens(src, toks)); err != nil {
		return errors.Errorf("writing tokens: %w", err)
	}
	return nil
}
