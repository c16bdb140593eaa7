// Package grid reads and writes the text form of a crossword grid.
//
// Every line defines one slot as "O,x,y,length[=VALUE]" for slots without a
// key or "O,x,y,length,key[=VALUE]" for keyed slots, where O is one of R, L,
// D and U. A line starting with "S," lists the unkeyed slots making up the
// solution phrase, four fields per slot. Lines starting with '#' are
// comments and a line ending in ',' continues on the next line.
package grid

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kryssord/kryss/pkg/kryss"
	"github.com/kryssord/kryss/pkg/kryss/board"
	"github.com/kryssord/kryss/pkg/kryss/geometry"
)

const solutionTag = "S"

// Parse reads slot definitions from r.
func Parse(r io.Reader) ([]board.SlotSpec, error) {
	var (
		specs   []board.SlotSpec
		pending strings.Builder
		start   int
	)

	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if pending.Len() == 0 {
			start = n
		}
		pending.WriteString(trimmed)
		if strings.HasSuffix(trimmed, ",") {
			continue
		}

		text := pending.String()
		pending.Reset()

		parsed, err := parseLine(text, start)
		if err != nil {
			return nil, err
		}
		specs = append(specs, parsed...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if pending.Len() > 0 {
		return nil, &kryss.MalformedSlotError{Line: start, Text: pending.String(), Reason: "unterminated continuation"}
	}
	return specs, nil
}

func parseLine(text string, line int) ([]board.SlotSpec, error) {
	parts := strings.Split(text, ",")
	if parts[0] != solutionTag {
		spec, err := parseSlot(parts, line)
		if err != nil {
			return nil, err
		}
		return []board.SlotSpec{spec}, nil
	}

	fields := parts[1:]
	if len(fields)%4 != 0 {
		return nil, &kryss.MalformedSlotError{Line: line, Text: text, Reason: "solution words need four fields each"}
	}
	specs := make([]board.SlotSpec, 0, len(fields)/4)
	for i := 0; i < len(fields); i += 4 {
		spec, err := parseSlot(fields[i:i+4], line)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func parseSlot(parts []string, line int) (board.SlotSpec, error) {
	text := strings.Join(parts, ",")
	malformed := func(reason string, args ...any) error {
		return &kryss.MalformedSlotError{Line: line, Text: text, Reason: fmt.Sprintf(reason, args...)}
	}

	if len(parts) != 4 && len(parts) != 5 {
		return board.SlotSpec{}, malformed("expected 4 or 5 fields, got %d", len(parts))
	}

	o, err := geometry.ParseOrientation(parts[0])
	if err != nil {
		return board.SlotSpec{}, malformed("%v", err)
	}

	// the value follows the last field
	last := len(parts) - 1
	var value string
	if field, v, found := strings.Cut(parts[last], "="); found {
		parts[last], value = field, v
	}

	numbers := [3]int{}
	for i, name := range []string{"x", "y", "length"} {
		numbers[i], err = strconv.Atoi(strings.TrimSpace(parts[i+1]))
		if err != nil {
			return board.SlotSpec{}, malformed("invalid %s %q", name, parts[i+1])
		}
	}

	spec := board.SlotSpec{
		Geometry: geometry.Geometry{Orientation: o, X: numbers[0], Y: numbers[1], Length: numbers[2]},
		Value:    value,
		Line:     line,
	}
	if len(parts) == 5 {
		spec.Key = parts[4]
	}
	return spec, nil
}

// Load parses the grid stored at path and builds a board over dict.
func Load(path string, dict kryss.Dictionary, options ...board.Option) (*board.Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	specs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	b, err := board.New(specs, dict, options...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Write stores every keyed slot on a line of its own followed by a single
// line holding the solution slots. Placed slots carry their value.
func Write(w io.Writer, b *board.Board) error {
	bw := bufio.NewWriter(w)
	slots := b.Slots()

	for i := range slots {
		if !slots[i].Solution() {
			fmt.Fprintln(bw, slots[i].String())
		}
	}

	started := false
	for i := range slots {
		if !slots[i].Solution() {
			continue
		}
		if !started {
			bw.WriteString(solutionTag)
			started = true
		}
		bw.WriteString(",")
		bw.WriteString(slots[i].String())
	}
	if started {
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// Save writes b to path and marks it as saved.
func Save(path string, b *board.Board) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, b); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	b.MarkSaved()
	return nil
}
