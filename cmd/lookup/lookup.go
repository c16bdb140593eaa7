package lookup

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kryssord/kryss/internal/config"
	"github.com/kryssord/kryss/pkg/kryss/dictionary"
)

func NewLookupCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <key> <length|hint>",
		Short: "Lists the dictionary words for a key",
		Long: `Lists the dictionary words stored for a key that have the given length, or
that match a hint where '.' stands for any letter. The key "*" searches
every key. For instance:

  kryss lookup dyr .A.
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return lookup(cmd, cfg, args[0], args[1])
		},
	}
}

func lookup(cmd *cobra.Command, cfg *config.Config, key, arg string) error {
	dict, err := dictionary.Load(cfg.Dictionary, dictionary.WithLogger(logrus.NewEntry(logrus.StandardLogger())))
	if err != nil {
		return err
	}

	if key == "*" {
		key = ""
	}
	length, hint := len([]rune(arg)), arg
	if n, err := strconv.Atoi(arg); err == nil {
		length, hint = n, ""
	}
	if length < 1 {
		return fmt.Errorf("invalid length (%s)", arg)
	}

	words := dict.Lookup(key, length, hint)
	if len(words) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no words found")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(words, " "))
	return nil
}
