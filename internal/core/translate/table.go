package translate

import (
	"fmt"
	"sort"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/tactilehq/dotwin/internal/core/braille"
)

// fallbackCell is rendered for characters the table does not define:
// all six reading dots raised, the conventional "unknown" pattern.
const fallbackCell = braille.Dot1 | braille.Dot2 | braille.Dot3 |
	braille.Dot4 | braille.Dot5 | braille.Dot6

// TableDef is the on-disk YAML shape of a translation table.
type TableDef struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Locale string `yaml:"locale"`
	Grade  int    `yaml:"grade"`

	// Chars maps a single character to its dot numbers (1-8).
	Chars map[string][]int `yaml:"chars"`

	// Contractions maps a character sequence to the dot numbers of
	// each output cell. Only used by contracted (grade > 0) tables.
	Contractions map[string][][]int `yaml:"contractions"`
}

// Table is a compiled translation table. It implements Translator with
// greedy longest-match contraction lookup over a per-character base map.
type Table struct {
	ID     string
	Name   string
	Locale string
	Grade  int

	chars        map[rune]braille.Cell
	contractions map[string]braille.Word
	maxContr     int
}

var _ Translator = (*Table)(nil)

// ParseTable compiles a YAML table definition.
func ParseTable(data []byte) (*Table, error) {
	var def TableDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse table: %w", err)
	}
	return CompileTable(def)
}

// CompileTable validates a definition and compiles its dot lists into
// cell bitmasks.
func CompileTable(def TableDef) (*Table, error) {
	if def.ID == "" {
		return nil, fmt.Errorf("compile table: missing id")
	}

	t := &Table{
		ID:           def.ID,
		Name:         def.Name,
		Locale:       def.Locale,
		Grade:        def.Grade,
		chars:        make(map[rune]braille.Cell, len(def.Chars)),
		contractions: make(map[string]braille.Word, len(def.Contractions)),
	}

	for s, dots := range def.Chars {
		runes := []rune(s)
		if len(runes) != 1 {
			return nil, fmt.Errorf("compile table %s: chars key %q is not a single character", def.ID, s)
		}
		cell, err := cellFromDots(dots)
		if err != nil {
			return nil, fmt.Errorf("compile table %s: char %q: %w", def.ID, s, err)
		}
		t.chars[runes[0]] = cell
	}

	for seq, cells := range def.Contractions {
		if len([]rune(seq)) < 2 {
			return nil, fmt.Errorf("compile table %s: contraction %q is shorter than two characters", def.ID, seq)
		}
		word := make(braille.Word, 0, len(cells))
		for _, dots := range cells {
			cell, err := cellFromDots(dots)
			if err != nil {
				return nil, fmt.Errorf("compile table %s: contraction %q: %w", def.ID, seq, err)
			}
			word = append(word, cell)
		}
		t.contractions[seq] = word
		if n := len([]rune(seq)); n > t.maxContr {
			t.maxContr = n
		}
	}

	return t, nil
}

func cellFromDots(dots []int) (braille.Cell, error) {
	var c braille.Cell
	for _, d := range dots {
		if d < 1 || d > 8 {
			return 0, fmt.Errorf("dot %d out of range 1-8", d)
		}
		c |= 1 << (d - 1)
	}
	return c, nil
}

// Translate renders text using the table. cursor is a rune offset or
// None. With computerBrailleAtCursor set, contractions are suppressed
// inside the word containing the cursor.
func (t *Table) Translate(text string, cursor int, computerBrailleAtCursor bool) (*Result, error) {
	runes := []rune(text)
	n := len(runes)

	noContrLo, noContrHi := None, None
	if computerBrailleAtCursor && cursor >= 0 && cursor <= n {
		noContrLo, noContrHi = wordSpan(runes, cursor)
	}

	textToCell := make([]int, 0, n+1)
	cellToText := make([]int, 0, n+1)
	cells := make(braille.Word, 0, n)

	i := 0
	for i < n {
		if seq, word, ok := t.matchContraction(runes, i, noContrLo, noContrHi); ok {
			for range seq {
				textToCell = append(textToCell, len(cells))
			}
			for range word {
				cellToText = append(cellToText, i)
			}
			cells = append(cells, word...)
			i += len(seq)
			continue
		}

		textToCell = append(textToCell, len(cells))
		cellToText = append(cellToText, i)
		cells = append(cells, t.cellFor(runes[i]))
		i++
	}

	textToCell = append(textToCell, len(cells))
	cellToText = append(cellToText, n)

	cursorCell := None
	if cursor >= 0 && cursor <= n {
		cursorCell = textToCell[cursor]
	}

	return &Result{
		Text:       text,
		Cells:      cells,
		TextToCell: textToCell,
		CellToText: cellToText,
		CursorCell: cursorCell,
	}, nil
}

func (t *Table) cellFor(r rune) braille.Cell {
	if c, ok := t.chars[r]; ok {
		return c
	}
	// Newlines render as blank cells; the wrap layer turns them into
	// forced split points via the index tables.
	if r == '\n' || r == '\r' || unicode.IsSpace(r) {
		return 0
	}
	return fallbackCell
}

// matchContraction finds the longest contraction starting at i, unless
// the match would overlap the uncontracted span [lo, hi).
func (t *Table) matchContraction(runes []rune, i, lo, hi int) ([]rune, braille.Word, bool) {
	if len(t.contractions) == 0 {
		return nil, nil, false
	}
	maxLen := t.maxContr
	if rest := len(runes) - i; rest < maxLen {
		maxLen = rest
	}
	for l := maxLen; l >= 2; l-- {
		if lo != None && i < hi && i+l > lo {
			continue
		}
		if word, ok := t.contractions[string(runes[i:i+l])]; ok {
			return runes[i : i+l], word, true
		}
	}
	return nil, nil, false
}

// wordSpan returns the bounds of the non-space run containing the rune
// offset at, treating the offset just past a word as inside it.
func wordSpan(runes []rune, at int) (int, int) {
	lo := at
	for lo > 0 && !unicode.IsSpace(runes[lo-1]) {
		lo--
	}
	hi := at
	for hi < len(runes) && !unicode.IsSpace(runes[hi]) {
		hi++
	}
	return lo, hi
}

// SortTables orders tables by id for stable listings.
func SortTables(tables []*Table) {
	sort.Slice(tables, func(i, j int) bool { return tables[i].ID < tables[j].ID })
}
