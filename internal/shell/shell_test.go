package shell

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kryssord/kryss/pkg/kryss"
	"github.com/kryssord/kryss/pkg/kryss/dictionary"
	"github.com/kryssord/kryss/pkg/kryss/grid"
	"github.com/kryssord/kryss/pkg/kryss/render"
)

const sample = `R,0,0,3,dyr
D,0,0,3,ku=KUA
D,2,0,3,te
S,R,0,2,3
`

type fixture struct {
	session   *Session
	out       *bytes.Buffer
	boardFile string
	dictFile  string
	dict      *dictionary.Dictionary
}

func newFixture(t *testing.T, text, input string) *fixture {
	t.Helper()
	dir := t.TempDir()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	entry := logrus.NewEntry(logger)

	dictFile := filepath.Join(dir, "dict.json")
	dict, err := dictionary.Load(dictFile, dictionary.WithLogger(entry))
	require.NoError(t, err)
	for key, words := range map[string][]string{
		"dyr": {"KAT"},
		"te":  {"TEA", "TOA"},
		"hav": {"AEA"},
	} {
		for _, w := range words {
			require.NoError(t, dict.AddWord(key, w))
		}
	}
	dict.MarkSaved()

	boardFile := filepath.Join(dir, "grid.txt")
	require.NoError(t, os.WriteFile(boardFile, []byte(text), 0o600))
	b, err := grid.Load(boardFile, dict)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	s := New(b, dict, boardFile,
		WithInput(strings.NewReader(input)),
		WithOutput(out),
		WithRenderer(render.New(render.Plain)),
		WithWidth(1),
		WithLogger(entry),
	)
	return &fixture{session: s, out: out, boardFile: boardFile, dictFile: dictFile, dict: dict}
}

// run executes the line and returns what it printed.
func (f *fixture) run(t *testing.T, line string) string {
	t.Helper()
	f.out.Reset()
	require.NoError(t, f.session.Execute(line))
	return f.out.String()
}

func TestListings(t *testing.T) {
	f := newFixture(t, sample, "")
	f.run(t, "solve")

	type tc struct {
		Name string
		Line string
		Want string
	}

	for _, tt := range []tc{
		{Name: "words", Line: "words", Want: "[0] dyr = KAT\n[1] ku = KUA\n[2] te = T.A ?\n[3] AEA\n"},
		{Name: "placed", Line: "placed", Want: "[0] dyr = KAT\n[1] ku = KUA\n[3] AEA\n"},
		{Name: "unplaced", Line: "unplaced", Want: "[2] te = T.A ?\n"},
		{Name: "missing", Line: "missing", Want: ""},
		{Name: "ambiguous", Line: "ambiguous", Want: "[2] te = T.A ?\n"},
		{Name: "candidates", Line: "candidates te", Want: "  TEA\n  TOA\n"},
		{Name: "candidates by index", Line: "candidates 0", Want: "  KAT\n"},
		{Name: "solution", Line: "solution", Want: "AEA\n"},
		{Name: "lookup by length", Line: "lookup te 3", Want: "TEA TOA\n"},
		{Name: "lookup by hint", Line: "lookup te .E.", Want: "TEA\n"},
		{Name: "lookup every key", Line: "lookup * A..", Want: "AEA\n"},
		{Name: "check", Line: "check", Want: "The board can still be completed\n"},
		{Name: "empty line", Line: "   ", Want: ""},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Want, f.run(t, tt.Line))
		})
	}
}

func TestColumns(t *testing.T) {
	f := newFixture(t, sample, "")
	f.session.width = 40

	assert.Equal(t, "[0] dyr = KAT   [2] te = ... ?\n[1] ku = KUA    [3] A.. ?\n", f.run(t, "words"))
}

func TestSolve(t *testing.T) {
	f := newFixture(t, sample, "")
	assert.Equal(t, "Ambiguous\n", f.run(t, "solve"))

	f = newFixture(t, strings.Replace(sample, "te\n", "te=TEA\n", 1), "")
	assert.Equal(t, "Solved\n\nKAT\nU E\nAEA\n\n", f.run(t, "solve"))
}

func TestPlace(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t, sample, "")
	f.run(t, "solve")

	f.run(t, "place te TIA")
	slot := f.session.board.Slot(2)
	assert.True(slot.Placed)
	assert.Equal("TIA", slot.Value())
	assert.True(f.dict.Changed())
	assert.Contains(f.dict.Lookup("te", 3, ""), "TIA")

	f.run(t, "unplace te")
	assert.False(f.session.board.Slot(2).Placed)
	assert.ElementsMatch([]string{"TEA", "TOA", "TIA"}, f.session.board.Slot(2).Candidates)

	f.run(t, "place KAT KIT")
	kit := f.session.board.Slot(0)
	assert.Equal("KIT", kit.Value())
}

func TestUnplaceOpenWord(t *testing.T) {
	f := newFixture(t, sample, "")
	f.run(t, "unplace te")
	assert.False(t, f.session.board.Changed())
}

func TestPlaceSolutionWord(t *testing.T) {
	f := newFixture(t, sample, "")
	f.run(t, "place 3 AHA")
	aha := f.session.board.Slot(3)
	assert.Equal(t, "AHA", aha.Value())
	assert.False(t, f.dict.Changed())
}

func TestErrors(t *testing.T) {
	f := newFixture(t, sample, "")

	type tc struct {
		Name string
		Line string
		Is   error
	}

	for _, tt := range []tc{
		{Name: "unknown command", Line: "fly"},
		{Name: "missing argument", Line: "crossing"},
		{Name: "unknown word", Line: "info hest", Is: kryss.ErrNoSuchSlot},
		{Name: "index out of range", Line: "info 17", Is: kryss.ErrNoSuchSlot},
		{Name: "wrong length", Line: "place te TEAS"},
		{Name: "bad boolean", Line: "set colors kanskje"},
		{Name: "unknown dictionary key", Line: "add xxxx ORD", Is: dictionary.ErrUnknownKey},
		{Name: "zero length lookup", Line: "lookup te 0"},
		{Name: "negative length lookup", Line: "lookup te -- -3"},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			err := f.session.Execute(tt.Line)
			assert.Error(t, err)
			if tt.Is != nil {
				assert.ErrorIs(t, err, tt.Is)
			}
		})
	}

	var invalid *kryss.InvalidCommitError
	assert.ErrorAs(t, f.session.Execute("place te TEAS"), &invalid)
}

func TestAmbiguousReference(t *testing.T) {
	text := "R,0,0,2,x\nR,0,2,2,x\n"

	f := newFixture(t, text, "1\n")
	assert.Equal(t, "[0] x = .. ?\n[1] x = .. ?\n", f.run(t, "candidates x"))

	f = newFixture(t, text, "5\n")
	assert.Error(t, f.session.Execute("candidates x"))

	f = newFixture(t, text, "en\n")
	assert.Error(t, f.session.Execute("candidates x"))
}

func TestSettings(t *testing.T) {
	f := newFixture(t, sample, "")

	f.run(t, "set colors off")
	assert.Equal(t, render.Mono, f.session.renderer.Mode())
	f.run(t, "set colors on")
	assert.Equal(t, render.Color, f.session.renderer.Mode())
}

func TestStore(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t, sample, "")
	f.run(t, "solve")

	other := filepath.Join(filepath.Dir(f.boardFile), "other.txt")
	f.run(t, "store board "+other)
	data, err := os.ReadFile(other)
	require.NoError(t, err)
	assert.Equal("R,0,0,3,dyr=KAT\nD,0,0,3,ku=KUA\nD,2,0,3,te\nS,R,0,2,3=AEA\n", string(data))
	assert.False(f.session.board.Changed())
	assert.Equal(other, f.session.boardFile)

	f.run(t, "add fugl ERLE")
	f.run(t, "store dictionary")
	assert.False(f.dict.Changed())
	reread, err := dictionary.Load(f.dictFile)
	require.NoError(t, err)
	assert.Equal([]string{"ERLE"}, reread.Lookup("fugl", 4, ""))
}

func TestHelp(t *testing.T) {
	out := newFixture(t, sample, "").run(t, "help")
	for _, command := range []string{"solve", "crossing", "lookup", "store", "exit"} {
		assert.Contains(t, out, command)
	}
}

func TestRun(t *testing.T) {
	t.Run("saves on request", func(t *testing.T) {
		assert := assert.New(t)
		f := newFixture(t, sample, "place te TIA\nbogus\nquit\ny\n\n")
		require.NoError(t, f.session.Run())

		out := f.out.String()
		assert.Contains(out, "KAT\nU .\nAEA")
		assert.Contains(out, "unknown command")
		assert.Contains(out, "Save changes to "+f.boardFile+"? (Y/n)")
		assert.Contains(out, "Save dictionary to "+f.dictFile+"? (Y/n)")

		data, err := os.ReadFile(f.boardFile)
		require.NoError(t, err)
		assert.Contains(string(data), "te=TIA")
		assert.False(f.dict.Changed())
	})

	t.Run("keeps files when declined", func(t *testing.T) {
		assert := assert.New(t)
		f := newFixture(t, sample, "exit\nn\n")
		require.NoError(t, f.session.Run())

		data, err := os.ReadFile(f.boardFile)
		require.NoError(t, err)
		assert.Equal(sample, string(data))
		assert.NotContains(f.out.String(), "Save dictionary")
	})

	t.Run("ends at end of input", func(t *testing.T) {
		f := newFixture(t, sample, "board\n")
		require.NoError(t, f.session.Run())

		data, err := os.ReadFile(f.boardFile)
		require.NoError(t, err)
		assert.Equal(t, sample, string(data))
	})
}
