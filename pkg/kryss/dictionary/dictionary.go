package dictionary

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/kryssord/kryss/internal/cache"
	"github.com/kryssord/kryss/pkg/kryss"
)

// unknownKey marks clues that could not be read. Words are never stored
// under such keys.
const unknownKey = "xxxx"

var ErrUnknownKey = errors.New("refusing to add words to an unknown key")

var _ kryss.Dictionary = &Dictionary{}

// Dictionary stores words by key and length. It is not safe for concurrent
// use while words are added.
type Dictionary struct {
	words    map[string]map[int][]string
	filename string
	changed  bool
	memo     *cache.PrefixCache[[]string]
	logger   *logrus.Entry
}

type Option func(d *Dictionary)

func WithLogger(logger *logrus.Entry) Option {
	return func(d *Dictionary) {
		d.logger = logger
	}
}

// New returns an empty dictionary.
func New(options ...Option) *Dictionary {
	d := &Dictionary{
		words:  map[string]map[int][]string{},
		memo:   cache.NewPrefixCache[[]string](),
		logger: logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, option := range options {
		option(d)
	}
	return d
}

type document struct {
	Words map[string]map[int][]string `json:"words"`
}

// Read decodes a dictionary in JSON form:
//
//	{"words": {"<key>": {"<length>": ["WORD", ...]}}}
func Read(r io.Reader, options ...Option) (*Dictionary, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding dictionary: %w", err)
	}

	d := New(options...)
	for key, byLength := range doc.Words {
		for length, words := range byLength {
			for _, word := range words {
				if n := utf8.RuneCountInString(word); n != length {
					return nil, fmt.Errorf("word %q of key %q has %d letters, listed under %d", word, key, n, length)
				}
			}
			if d.words[key] == nil {
				d.words[key] = map[int][]string{}
			}
			d.words[key][length] = words
		}
	}
	return d, nil
}

// Load reads the dictionary stored at path. A missing file yields an empty
// dictionary that will be saved to path.
func Load(path string, options ...Option) (*Dictionary, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		d := New(options...)
		d.filename = path
		d.logger.WithField("file", path).Info("starting with an empty dictionary")
		return d, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := Read(f, options...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d.filename = path
	return d, nil
}

func (d *Dictionary) Write(w io.Writer) error {
	return json.NewEncoder(w).Encode(document{Words: d.words})
}

// Save writes the dictionary to path, or to the file it was loaded from if
// path is empty, and clears the changed flag.
func (d *Dictionary) Save(path string) error {
	if path == "" {
		path = d.filename
	}
	if path == "" {
		return fmt.Errorf("no file name given for dictionary")
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := d.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	d.filename = path
	d.changed = false
	return nil
}

// Lookup returns the words stored under key with length letters that match
// hint. An empty hint matches everything and lengths below one match nothing. An empty key searches every key
// and returns the distinct matches in sorted order.
func (d *Dictionary) Lookup(key string, length int, hint string) []string {
	if length < 1 {
		return nil
	}
	if hint == "" {
		hint = strings.Repeat(string(kryss.Wildcard), length)
	}
	pattern := []rune(hint)
	if len(pattern) != length {
		return nil
	}

	memoize := memoizable(key) && !strings.Contains(hint, cache.Separator)
	memoKey := cache.JoinKey(key, strconv.Itoa(length), hint)
	if memoize {
		if words, ok := d.memo.Get(memoKey); ok {
			return slices.Clone(words)
		}
	}

	var words []string
	if key == "" {
		for k := range d.words {
			words = append(words, filter(d.words[k][length], pattern)...)
		}
		slices.Sort(words)
		words = slices.Compact(words)
	} else {
		words = filter(d.words[key][length], pattern)
	}

	if memoize {
		d.memo.Set(memoKey, words)
	}
	return slices.Clone(words)
}

// AddWord stores word under key. Adding a word that is already present is
// a no-op.
func (d *Dictionary) AddWord(key, word string) error {
	if strings.Contains(key, unknownKey) {
		d.logger.WithField("key", key).Warn("not adding word to unknown key")
		return fmt.Errorf("%s: %w", key, ErrUnknownKey)
	}

	length := utf8.RuneCountInString(word)
	byLength, ok := d.words[key]
	if !ok {
		byLength = map[int][]string{}
		d.words[key] = byLength
	}
	if slices.Contains(byLength[length], word) {
		return nil
	}

	d.logger.WithFields(logrus.Fields{"key": key, "word": word}).Debug("adding word to dictionary")
	byLength[length] = append(byLength[length], word)
	d.changed = true

	n := strconv.Itoa(length)
	if memoizable(key) {
		d.memo.DeleteByPrefix(cache.JoinKey(key, n))
	}
	d.memo.DeleteByPrefix(cache.JoinKey("", n))
	return nil
}

// Keys returns every key in sorted order.
func (d *Dictionary) Keys() []string {
	keys := make([]string, 0, len(d.words))
	for k := range d.words {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Changed returns true if words were added since the dictionary was loaded
// or saved.
func (d *Dictionary) Changed() bool {
	return d.changed
}

func (d *Dictionary) MarkSaved() {
	d.changed = false
}

// Filename returns the file the dictionary was last loaded from or saved to.
func (d *Dictionary) Filename() string {
	return d.filename
}

// memoizable returns false for keys that cannot be used as a memo segment.
func memoizable(key string) bool {
	return !strings.Contains(key, cache.Separator) && key != cache.Wildcard
}

func filter(words []string, pattern []rune) []string {
	var matches []string
	for _, w := range words {
		if match(w, pattern) {
			matches = append(matches, w)
		}
	}
	return matches
}

func match(word string, pattern []rune) bool {
	letters := []rune(word)
	if len(letters) != len(pattern) {
		return false
	}
	for i, p := range pattern {
		if p != kryss.Wildcard && p != letters[i] {
			return false
		}
	}
	return true
}
