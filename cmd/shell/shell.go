package shell

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kryssord/kryss/internal/config"
	"github.com/kryssord/kryss/internal/shell"
	"github.com/kryssord/kryss/pkg/kryss/board"
	"github.com/kryssord/kryss/pkg/kryss/dictionary"
	"github.com/kryssord/kryss/pkg/kryss/grid"
	"github.com/kryssord/kryss/pkg/kryss/render"
)

func NewShellCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "shell <board>",
		Short: "Fills in a board and opens an interactive session on it",
		Long: `Fills in every word of the board that has a single candidate left, shows
the board and reads commands until "exit" or end of input. Type "help" in
the session for the list of commands.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, cfg, args[0])
		},
	}
}

func run(cmd *cobra.Command, cfg *config.Config, path string) error {
	logger := logrus.NewEntry(logrus.StandardLogger())

	dict, err := dictionary.Load(cfg.Dictionary, dictionary.WithLogger(logger))
	if err != nil {
		return err
	}

	b, err := grid.Load(path, dict, board.WithTracer(board.LoggingTracer{Logger: logger}))
	if err != nil {
		return err
	}

	session := shell.New(b, dict, path,
		shell.WithInput(cmd.InOrStdin()),
		shell.WithOutput(cmd.OutOrStdout()),
		shell.WithRenderer(render.New(cfg.RenderMode())),
		shell.WithLogger(logger),
	)
	return session.Run()
}
