package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/fatih/color"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/exsyntax/cmd/exsyntax/check"
	"github.com/walteh/exsyntax/cmd/exsyntax/tokens"
	"github.com/walteh/exsyntax/cmd/exsyntax/tree"
	exdebug "github.com/walteh/exsyntax/pkg/debug"
)

func main() {
	if err := run(); err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "exsyntax",
		Short: "An error-tolerant Elixir parser",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.WarnLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			logger := exdebug.NewLogger(os.Stderr, exdebug.LoggerOptions{
				Level:   level,
				Console: true,
				Color:   !color.NoColor,
				RunID:   xid.New().String(),
			})
			cmd.SetContext(logger.WithContext(cmd.Context()))
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&verbose, "debug", false, "enable debug logging")

	info, ok := debug.ReadBuildInfo()
	if !ok {
		rootCmd.Version = "unknown"
	} else {
		rootCmd.Version = info.Main.Version
	}

	cmdVersion := &cobra.Command{
		Use: "raw-version",
		Run: func(cmdz *cobra.Command, args []string) {
			cmdz.Println(rootCmd.Version)
		},
		Hidden: true,
	}

	rootCmd.AddCommand(cmdVersion)
	rootCmd.AddCommand(tokens.NewTokensCommand())
	rootCmd.AddCommand(tree.NewTreeCommand())
	rootCmd.AddCommand(check.NewCheckCommand())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		return errors.Errorf("failed to execute command: %w", err)
	}

	return nil
}
