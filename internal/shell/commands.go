package shell

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kryssord/kryss/pkg/kryss"
	"github.com/kryssord/kryss/pkg/kryss/board"
	"github.com/kryssord/kryss/pkg/kryss/feasibility"
	"github.com/kryssord/kryss/pkg/kryss/render"
)

// allKeys is typed in place of a key to search every key.
const allKeys = "*"

// commands builds the command tree for one line. A fresh tree is built for
// every line so that no parsing state carries over.
func (s *Session) commands() *cobra.Command {
	root := &cobra.Command{
		Use:           "kryss",
		Short:         "Crossword construction shell",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(s.out)
	root.SetErr(s.out)

	listing := func(use, short string, keep filter) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s.showWords(keep)
				return nil
			},
		}
	}

	// withSlot resolves the first argument to a slot index.
	withSlot := func(run func(ix int, args []string) error) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			ix, err := s.find(args[0])
			if err != nil {
				return err
			}
			return run(ix, args[1:])
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "solve",
			Short: "Place every word that has a single candidate",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s.solve()
				if status := s.board.Status(); status != kryss.Solved {
					fmt.Fprintln(s.out, s.renderer.Status(status))
				}
				return nil
			},
		},
		listing("words", "List all words", func(*board.Slot) bool { return true }),
		listing("placed", "List placed words", func(slot *board.Slot) bool {
			return !slot.Missing() && !slot.Ambiguous()
		}),
		listing("unplaced", "List words that are not placed", func(slot *board.Slot) bool {
			return !slot.Placed
		}),
		listing("missing", "List words without candidates", func(slot *board.Slot) bool {
			return !slot.Placed && !slot.Ambiguous()
		}),
		listing("ambiguous", "List words with several candidates", func(slot *board.Slot) bool {
			return !slot.Placed && !slot.Missing()
		}),
		&cobra.Command{
			Use:   "crossing <key>",
			Short: "Show a word and the words crossing it",
			Args:  cobra.ExactArgs(1),
			RunE: withSlot(func(ix int, _ []string) error {
				if len(s.board.Neighbors(ix)) == 0 {
					fmt.Fprintln(s.out, "No crossing words for key")
					return nil
				}
				fmt.Fprintln(s.out, s.renderer.Slot(s.board, ix))
				fmt.Fprint(s.out, s.renderer.Crossing(s.board, ix))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "candidates <key>",
			Short: "List the candidates of a word",
			Args:  cobra.ExactArgs(1),
			RunE: withSlot(func(ix int, _ []string) error {
				for _, candidate := range s.board.Slot(ix).Candidates {
					fmt.Fprintf(s.out, "  %s\n", candidate)
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "solution",
			Short: "Show the solution phrase",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				var words []string
				for i, slot := range s.board.Slots() {
					if slot.Solution() {
						words = append(words, s.board.Hint(i))
					}
				}
				fmt.Fprintln(s.out, strings.Join(words, " "))
				return nil
			},
		},
		&cobra.Command{
			Use:   "board",
			Short: "Show the board",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s.showBoard()
				return nil
			},
		},
		&cobra.Command{
			Use:   "info <key>",
			Short: "Show the definition and candidates of a word",
			Args:  cobra.ExactArgs(1),
			RunE: withSlot(func(ix int, _ []string) error {
				fmt.Fprintln(s.out, s.renderer.Slot(s.board, ix))
				fmt.Fprintln(s.out, s.renderer.Info(s.board, ix))
				fmt.Fprint(s.out, s.renderer.Crossing(s.board, ix))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "place <key> <word>",
			Short: "Place a word and add it to the dictionary",
			Args:  cobra.ExactArgs(2),
			RunE: withSlot(func(ix int, args []string) error {
				return s.place(ix, args[0])
			}),
		},
		&cobra.Command{
			Use:   "unplace <key>",
			Short: "Remove a placed word",
			Args:  cobra.ExactArgs(1),
			RunE: withSlot(func(ix int, _ []string) error {
				return s.board.Rollback(ix)
			}),
		},
		&cobra.Command{
			Use:   "lookup <key> <length|hint>",
			Short: "Look up words in the dictionary, " + allKeys + " searches every key",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				key := args[0]
				if key == allKeys {
					key = ""
				}
				length, hint, err := lengthOrHint(args[1])
				if err != nil {
					return err
				}
				fmt.Fprintln(s.out, strings.Join(s.dict.Lookup(key, length, hint), " "))
				return nil
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "Check whether the candidates still allow a complete fill",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				report := feasibility.Check(s.board)
				if report.Satisfiable {
					fmt.Fprintln(s.out, "The board can still be completed")
					return nil
				}
				fmt.Fprintln(s.out, "The board cannot be completed, conflicting words:")
				for _, ix := range report.Conflicting {
					fmt.Fprintln(s.out, s.renderer.Slot(s.board, ix))
				}
				return nil
			},
		},
		s.setCommand(),
		s.storeCommand(),
		&cobra.Command{
			Use:   "add <key> <word>",
			Short: "Add a word to the dictionary",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return s.dict.AddWord(args[0], args[1])
			},
		},
		&cobra.Command{
			Use:     "exit",
			Aliases: []string{"quit"},
			Short:   "Leave the shell",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return errQuit
			},
		},
	)
	return root
}

func (s *Session) setCommand() *cobra.Command {
	set := &cobra.Command{
		Use:   "set",
		Short: "Change settings",
	}
	set.AddCommand(&cobra.Command{
		Use:       "colors <on|off>",
		Short:     "Switch colours on or off",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := parseBool(args[0])
			if err != nil {
				return err
			}
			if on {
				s.renderer = render.New(render.Color)
			} else {
				s.renderer = render.New(render.Mono)
			}
			return nil
		},
	})
	return set
}

func (s *Session) storeCommand() *cobra.Command {
	store := &cobra.Command{
		Use:   "store",
		Short: "Save the board or the dictionary",
	}
	store.AddCommand(
		&cobra.Command{
			Use:   "board [file]",
			Short: "Save the board",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return s.storeBoard(optional(args))
			},
		},
		&cobra.Command{
			Use:   "dictionary [file]",
			Short: "Save the dictionary",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return s.storeDictionary(optional(args))
			},
		},
	)
	return store
}

func optional(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// lengthOrHint reads a lookup argument that is either a word length or a
// hint pattern.
func lengthOrHint(arg string) (int, string, error) {
	length, hint := len([]rune(arg)), arg
	if n, err := strconv.Atoi(arg); err == nil {
		length, hint = n, ""
	}
	if length < 1 {
		return 0, "", fmt.Errorf("invalid length (%s)", arg)
	}
	return length, hint, nil
}

func parseBool(arg string) (bool, error) {
	switch strings.ToLower(arg) {
	case "on", "yes", "true", "1":
		return true, nil
	case "off", "no", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid value %q, expected on or off", arg)
}
