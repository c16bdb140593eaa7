package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kryssord/kryss/cmd/check"
	"github.com/kryssord/kryss/cmd/lookup"
	"github.com/kryssord/kryss/cmd/shell"
	"github.com/kryssord/kryss/cmd/solve"
	"github.com/kryssord/kryss/internal/config"
)

func NewRootCmd() *cobra.Command {
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		cfg = config.Config{Dictionary: config.DefaultDictionary, Colors: true}
	}

	rootCmd := &cobra.Command{
		Use:   "kryss",
		Short: "Kryss is a crossword construction assistant",
		Long: `Kryss fills in crossword grids by placing every word that the dictionary
and the crossing letters leave a single candidate for, and helps with the rest.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				return cfgErr
			}
			if cfg.Debug {
				logrus.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfg.Dictionary, "dictionary", "d", cfg.Dictionary, "dictionary file (env "+config.EnvDictionary+")")
	flags.BoolVar(&cfg.Colors, "colors", cfg.Colors, "colour output (env "+config.EnvColors+")")
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "log every placed word (env "+config.EnvDebug+")")

	// add sub-commands
	rootCmd.AddCommand(shell.NewShellCommand(&cfg))
	rootCmd.AddCommand(solve.NewSolveCommand(&cfg))
	rootCmd.AddCommand(lookup.NewLookupCommand(&cfg))
	rootCmd.AddCommand(check.NewCheckCommand(&cfg))

	return rootCmd
}
