// Package shell runs an interactive command session over a board and its
// dictionary.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/kryssord/kryss/pkg/kryss"
	"github.com/kryssord/kryss/pkg/kryss/board"
	"github.com/kryssord/kryss/pkg/kryss/dictionary"
	"github.com/kryssord/kryss/pkg/kryss/grid"
	"github.com/kryssord/kryss/pkg/kryss/render"
)

const prompt = "> "

// errQuit ends the session loop.
var errQuit = errors.New("quit")

type Session struct {
	board     *board.Board
	dict      *dictionary.Dictionary
	boardFile string

	renderer *render.Renderer
	in       *bufio.Scanner
	out      io.Writer
	width    int
	logger   *logrus.Entry
}

type Option func(s *Session)

func WithInput(r io.Reader) Option {
	return func(s *Session) {
		s.in = bufio.NewScanner(r)
	}
}

func WithOutput(w io.Writer) Option {
	return func(s *Session) {
		s.out = w
	}
}

func WithRenderer(r *render.Renderer) Option {
	return func(s *Session) {
		s.renderer = r
	}
}

// WithWidth sets the number of columns used for word listings.
func WithWidth(width int) Option {
	return func(s *Session) {
		s.width = width
	}
}

func WithLogger(logger *logrus.Entry) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// New returns a session over b and dict. boardFile is where the board is
// stored unless another file is named.
func New(b *board.Board, dict *dictionary.Dictionary, boardFile string, options ...Option) *Session {
	s := &Session{
		board:     b,
		dict:      dict,
		boardFile: boardFile,
		renderer:  render.New(render.Color),
		in:        bufio.NewScanner(os.Stdin),
		out:       os.Stdout,
		width:     80,
		logger:    logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Run solves the board, shows it and then executes commands until the input
// ends or the user quits. Unsaved changes are offered for saving on the way
// out.
func (s *Session) Run() error {
	s.solve()
	s.showBoard()

	for {
		fmt.Fprint(s.out, prompt)
		line, ok := s.readLine()
		if !ok {
			fmt.Fprintln(s.out)
			break
		}
		err := s.Execute(line)
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			fmt.Fprintln(s.out, err)
		}
	}
	return s.exit()
}

// Execute runs a single command line.
func (s *Session) Execute(line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}
	cmd := s.commands()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func (s *Session) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

// confirm asks a yes/no question. An empty answer means yes.
func (s *Session) confirm(question string) bool {
	fmt.Fprintf(s.out, "%s (Y/n) ", question)
	answer, ok := s.readLine()
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "", "y", "yes":
		return true
	}
	return false
}

func (s *Session) exit() error {
	if s.board.Changed() && s.confirm(fmt.Sprintf("Save changes to %s?", s.boardFile)) {
		if err := s.storeBoard(""); err != nil {
			return err
		}
	}
	if s.dict.Changed() && s.confirm(fmt.Sprintf("Save dictionary to %s?", s.dict.Filename())) {
		if err := s.storeDictionary(""); err != nil {
			return err
		}
	}
	return nil
}

// find resolves a reference to a single slot. If several slots match, they
// are listed and the user picks one by index.
func (s *Session) find(ref string) (int, error) {
	hits := s.board.Find(ref)
	switch len(hits) {
	case 0:
		return 0, fmt.Errorf("%s: %w", ref, kryss.ErrNoSuchSlot)
	case 1:
		return hits[0], nil
	}

	for _, ix := range hits {
		fmt.Fprintln(s.out, s.renderer.Slot(s.board, ix))
	}
	answer, ok := s.readLine()
	if !ok {
		return 0, fmt.Errorf("no word selected")
	}
	ix, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return 0, fmt.Errorf("invalid input: %s", answer)
	}
	for _, hit := range hits {
		if hit == ix {
			return ix, nil
		}
	}
	return 0, fmt.Errorf("invalid word %d", ix)
}

func (s *Session) solve() {
	status := s.board.SolveRepeated()
	s.logger.WithField("status", status).Debug("solved board")
	if status == kryss.Solved {
		fmt.Fprintln(s.out, s.renderer.Status(status))
		fmt.Fprintln(s.out)
		s.showBoard()
	}
}

func (s *Session) showBoard() {
	fmt.Fprintln(s.out, s.renderer.Board(s.board))
	fmt.Fprintln(s.out)
}

type filter func(slot *board.Slot) bool

// showWords lists the slots accepted by keep in as many columns as fit.
func (s *Session) showWords(keep filter) {
	var lines []string
	width := 0
	slots := s.board.Slots()
	for i := range slots {
		if !keep(&slots[i]) {
			continue
		}
		line := s.renderer.Slot(s.board, i)
		width = max(width, lipgloss.Width(line))
		lines = append(lines, line)
	}
	s.printColumns(lines, width)
}

func (s *Session) printColumns(lines []string, width int) {
	if len(lines) == 0 {
		return
	}
	columns := max(1, s.width/(width+2))
	rows := (len(lines) + columns - 1) / columns

	for r := 0; r < rows; r++ {
		var sb strings.Builder
		for c := 0; c < columns; c++ {
			i := c*rows + r
			if i >= len(lines) {
				break
			}
			sb.WriteString(lines[i])
			if c < columns-1 && i+rows < len(lines) {
				sb.WriteString(strings.Repeat(" ", width+2-lipgloss.Width(lines[i])))
			}
		}
		fmt.Fprintln(s.out, sb.String())
	}
}

func (s *Session) place(ix int, word string) error {
	if err := s.board.Place(ix, word); err != nil {
		return err
	}
	slot := s.board.Slot(ix)
	if slot.Solution() {
		return nil
	}
	if err := s.dict.AddWord(slot.Key, word); err != nil {
		s.logger.WithError(err).Warn("word not added to dictionary")
	}
	return nil
}

func (s *Session) storeBoard(path string) error {
	if path == "" {
		path = s.boardFile
	}
	if err := grid.Save(path, s.board); err != nil {
		return err
	}
	s.boardFile = path
	s.logger.WithField("file", path).Info("board saved")
	return nil
}

func (s *Session) storeDictionary(path string) error {
	if err := s.dict.Save(path); err != nil {
		return err
	}
	s.logger.WithField("file", s.dict.Filename()).Info("dictionary saved")
	return nil
}
