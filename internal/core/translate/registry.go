package translate

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

//go:embed tables/*.yaml
var builtinTables embed.FS

// Registry holds the known translation tables and tracks which one is
// active for output. Callers subscribe to be re-rendered when the
// active table changes.
type Registry struct {
	log    zerolog.Logger
	tables map[string]*Table
	active string
	subs   []func(id string)
}

// NewRegistry creates a registry pre-loaded with the built-in tables.
// The first built-in table (by id) becomes active.
func NewRegistry(log zerolog.Logger) (*Registry, error) {
	r := &Registry{
		log:    log,
		tables: make(map[string]*Table),
	}

	err := fs.WalkDir(builtinTables, "tables", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := builtinTables.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read builtin table %s: %w", path, err)
		}
		t, err := ParseTable(data)
		if err != nil {
			return fmt.Errorf("builtin table %s: %w", path, err)
		}
		r.tables[t.ID] = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	if ts := r.List(); len(ts) > 0 {
		r.active = ts[0].ID
	}
	return r, nil
}

// LoadDir discovers table files under dir whose relative path matches
// the doublestar glob pattern and registers them, overriding built-ins
// with the same id. A missing directory is not an error.
func (r *Registry) LoadDir(dir, pattern string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		ok, err := doublestar.Match(pattern, filepath.ToSlash(rel))
		if err != nil {
			return fmt.Errorf("table glob %q: %w", pattern, err)
		}
		if !ok {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read table %s: %w", path, err)
		}
		t, err := ParseTable(data)
		if err != nil {
			// A malformed user table must not take down startup.
			r.log.Warn().Err(err).Str("path", path).Msg("skipping unparsable table file")
			return nil
		}

		r.tables[t.ID] = t
		r.log.Debug().Str("id", t.ID).Str("path", path).Msg("loaded translation table")
		return nil
	})
}

// Get returns the table with the given id.
func (r *Registry) Get(id string) (*Table, bool) {
	t, ok := r.tables[id]
	return t, ok
}

// List returns all tables sorted by id.
func (r *Registry) List() []*Table {
	out := make([]*Table, 0, len(r.tables))
	for _, t := range r.tables {
		out = append(out, t)
	}
	SortTables(out)
	return out
}

// Active returns the currently active table.
func (r *Registry) Active() (*Table, error) {
	t, ok := r.tables[r.active]
	if !ok {
		return nil, ErrNoTable
	}
	return t, nil
}

// ActiveID returns the id of the active table, or "" when none is set.
func (r *Registry) ActiveID() string {
	return r.active
}

// SetActive switches the output table and notifies subscribers.
// Setting the already-active table is a no-op.
func (r *Registry) SetActive(id string) error {
	if _, ok := r.tables[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNoTable, id)
	}
	if id == r.active {
		return nil
	}
	r.active = id
	r.log.Info().Str("table", id).Msg("active translation table changed")
	for _, fn := range r.subs {
		fn(id)
	}
	return nil
}

// OnChange registers a callback invoked after every active-table change.
func (r *Registry) OnChange(fn func(id string)) {
	r.subs = append(r.subs, fn)
}

// Translate implements Translator using the active table.
func (r *Registry) Translate(text string, cursor int, computerBrailleAtCursor bool) (*Result, error) {
	t, err := r.Active()
	if err != nil {
		return nil, err
	}
	return t.Translate(text, cursor, computerBrailleAtCursor)
}
