package solve

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kryssord/kryss/internal/config"
	"github.com/kryssord/kryss/pkg/kryss"
	"github.com/kryssord/kryss/pkg/kryss/board"
	"github.com/kryssord/kryss/pkg/kryss/dictionary"
	"github.com/kryssord/kryss/pkg/kryss/grid"
	"github.com/kryssord/kryss/pkg/kryss/render"
)

func NewSolveCommand(cfg *config.Config) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "solve <board>",
		Short: "Fills in every word of a board that has a single candidate left",
		Long: `Fills in every word of a board that has a single candidate left, over and
over until nothing changes, then prints the board, its status and every word
still left open.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return solve(cmd, cfg, args[0], write)
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "store the filled board back into its file")

	return cmd
}

func solve(cmd *cobra.Command, cfg *config.Config, path string, write bool) error {
	logger := logrus.NewEntry(logrus.StandardLogger()).WithField("board", path)

	dict, err := dictionary.Load(cfg.Dictionary, dictionary.WithLogger(logger))
	if err != nil {
		return err
	}
	b, err := grid.Load(path, dict, board.WithTracer(board.LoggingTracer{Logger: logger}))
	if err != nil {
		return err
	}

	r := render.New(cfg.RenderMode())

	status := b.SolveRepeated()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, r.Board(b))
	fmt.Fprintln(out, r.Status(status))
	if status != kryss.Solved {
		for i := 0; i < b.Len(); i++ {
			slot := b.Slot(i)
			if !slot.Placed {
				fmt.Fprintln(out, r.Slot(b, i))
			}
		}
	}

	if !write || !b.Changed() {
		return nil
	}
	if err := grid.Save(path, b); err != nil {
		return err
	}
	logger.Info("board stored")
	return nil
}
