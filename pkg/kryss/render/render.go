// Package render turns board state into terminal text.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kryssord/kryss/pkg/kryss"
	"github.com/kryssord/kryss/pkg/kryss/board"
	"github.com/kryssord/kryss/pkg/kryss/geometry"
)

type Renderer struct {
	mode   Mode
	styles styles
}

func New(mode Mode) *Renderer {
	return &Renderer{mode: mode, styles: stylesFor(mode)}
}

func (r *Renderer) Mode() Mode {
	return r.mode
}

func (r *Renderer) apply(style lipgloss.Style, s string) string {
	if r.mode == Plain {
		return s
	}
	return style.Render(s)
}

// canvas is a window of cells starting at origin.
type canvas struct {
	origin geometry.Position
	cells  [][]string
}

func newCanvas(xmin, ymin, xmax, ymax int) *canvas {
	c := &canvas{origin: geometry.Position{X: xmin, Y: ymin}}
	if xmax < xmin || ymax < ymin {
		return c
	}
	c.cells = make([][]string, ymax-ymin+1)
	for y := range c.cells {
		c.cells[y] = make([]string, xmax-xmin+1)
		for x := range c.cells[y] {
			c.cells[y][x] = " "
		}
	}
	return c
}

func (c *canvas) set(p geometry.Position, s string) {
	c.cells[p.Y-c.origin.Y][p.X-c.origin.X] = s
}

func (c *canvas) String() string {
	rows := make([]string, len(c.cells))
	for y, row := range c.cells {
		rows[y] = strings.TrimRight(strings.Join(row, ""), " ")
	}
	return strings.Join(rows, "\n")
}

// Board draws every slot. Unplaced cells show the wildcard, placed letters of
// the solution phrase are highlighted.
func (r *Renderer) Board(b *board.Board) string {
	c := newCanvas(0, 0, b.Width()-1, b.Height()-1)
	slots := b.Slots()

	draw := func(s *board.Slot, style *lipgloss.Style) {
		letters := []rune(s.Value())
		for i := 0; i < s.Length; i++ {
			cell := string(kryss.Wildcard)
			if s.Placed {
				cell = string(letters[i])
				if style != nil {
					cell = r.apply(*style, cell)
				}
			}
			c.set(s.PositionAt(i), cell)
		}
	}

	for i := range slots {
		if !slots[i].Placed {
			draw(&slots[i], nil)
		}
	}
	for i := range slots {
		if slots[i].Placed && !slots[i].Solution() {
			draw(&slots[i], nil)
		}
	}
	for i := range slots {
		if slots[i].Placed && slots[i].Solution() {
			draw(&slots[i], &r.styles.Solution)
		}
	}
	return c.String()
}

// Crossing draws slot ix together with the hints of every crossing slot,
// followed by one line per crossing slot.
func (r *Renderer) Crossing(b *board.Board, ix int) string {
	s := b.Slot(ix)
	neighbors := b.Neighbors(ix)

	xmin, xmax, ymin, ymax := s.XMin(), s.XMax(), s.YMin(), s.YMax()
	for _, n := range neighbors {
		other := b.Slot(n.Slot)
		xmin, xmax = min(xmin, other.XMin()), max(xmax, other.XMax())
		ymin, ymax = min(ymin, other.YMin()), max(ymax, other.YMax())
	}
	c := newCanvas(xmin, ymin, xmax, ymax)

	hint := []rune(b.Hint(ix))
	for i := 0; i < s.Length; i++ {
		c.set(s.PositionAt(i), r.apply(r.styles.Highlight, string(hint[i])))
	}

	lines := make([]string, 0, len(neighbors))
	for _, n := range neighbors {
		other := b.Slot(n.Slot)
		for i, letter := range []rune(b.Hint(n.Slot)) {
			p := other.PositionAt(i)
			switch {
			case !s.Contains(p):
				c.set(p, string(letter))
			case letter != kryss.Wildcard:
				c.set(p, r.apply(r.styles.Highlight, string(letter)))
			}
		}
		lines = append(lines, r.Slot(b, n.Slot))
	}

	out := c.String() + "\n"
	if len(lines) > 0 {
		out += "\n" + strings.Join(lines, "\n") + "\n"
	}
	return out
}

// Slot renders the one line description of slot ix, styled by how many
// candidates are left.
func (r *Renderer) Slot(b *board.Board, ix int) string {
	s := b.Slot(ix)
	text := b.Describe(ix)
	switch {
	case s.Missing():
		return r.apply(r.styles.Missing, text)
	case s.Ambiguous():
		return r.apply(r.styles.Ambiguous, text)
	}
	return r.apply(r.styles.Word, text)
}

// Info lists the definition of slot ix and its value or candidates.
func (r *Renderer) Info(b *board.Board, ix int) string {
	s := b.Slot(ix)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Orientation: %s, X: %d, Y: %d, Length: %d\n", s.Orientation, s.X, s.Y, s.Length)
	if !s.Solution() {
		fmt.Fprintf(&sb, "Key: %s\n", s.Key)
	}
	switch {
	case s.Placed:
		fmt.Fprintf(&sb, "Placed: %s\n", s.Value())
	case s.Missing():
		sb.WriteString("No candidates\n")
	default:
		sb.WriteString("Candidates:\n")
		for _, candidate := range s.Candidates {
			fmt.Fprintf(&sb, "  %s\n", candidate)
		}
	}
	return sb.String()
}

// Status names the classification of a board.
func (r *Renderer) Status(status kryss.Status) string {
	text := strings.ToUpper(status.String()[:1]) + status.String()[1:]
	switch status {
	case kryss.Solved:
		return r.apply(r.styles.Solved, text)
	case kryss.Unsolvable:
		return r.apply(r.styles.Failed, text)
	}
	return r.apply(r.styles.Unsolved, text)
}
