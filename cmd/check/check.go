package check

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kryssord/kryss/internal/config"
	"github.com/kryssord/kryss/pkg/kryss/dictionary"
	"github.com/kryssord/kryss/pkg/kryss/feasibility"
	"github.com/kryssord/kryss/pkg/kryss/grid"
	"github.com/kryssord/kryss/pkg/kryss/render"
)

func NewCheckCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "check <board>",
		Short: "Checks whether a board can still be completed",
		Long: `Fills in every word of the board that has a single candidate left and then
decides whether the remaining candidates admit a fill where all crossing
letters agree. If not, the words taking part in the conflict are listed.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return check(cmd, cfg, args[0])
		},
	}
}

func check(cmd *cobra.Command, cfg *config.Config, path string) error {
	dict, err := dictionary.Load(cfg.Dictionary, dictionary.WithLogger(logrus.NewEntry(logrus.StandardLogger())))
	if err != nil {
		return err
	}
	b, err := grid.Load(path, dict)
	if err != nil {
		return err
	}
	r := render.New(cfg.RenderMode())

	status := b.SolveRepeated()
	report := feasibility.Check(b)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, r.Status(status))
	if report.Satisfiable {
		fmt.Fprintln(out, "The board can still be completed")
		return nil
	}
	fmt.Fprintln(out, "The board cannot be completed, conflicting words:")
	for _, ix := range report.Conflicting {
		fmt.Fprintln(out, r.Slot(b, ix))
	}
	return nil
}
