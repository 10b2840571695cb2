// Package symtab implements the symbol table of Simple.
//
// The language has no declarations: names are entered on first assignment and
// live for the whole program run. Each entry doubles as the storage of the
// variable it names.
package symtab

import (
	"sort"
	"strings"

	"src.simple-lang.dev/pkg/vals"
)

// Entry is an entry of the symbol table.
type Entry struct {
	// Name is the name as first entered.
	Name  string
	value vals.Value
}

// Value returns the value stored in the entry, and whether it has been
// assigned.
func (e *Entry) Value() (vals.Value, bool) {
	return e.value, e.value.IsValid()
}

// SetValue stores a value in the entry, replacing the old value and its kind.
func (e *Entry) SetValue(v vals.Value) { e.value = v }

// Symtab maps names, compared case-insensitively, to entries.
type Symtab struct {
	entries map[string]*Entry
}

// New creates an empty Symtab.
func New() *Symtab {
	return &Symtab{make(map[string]*Entry)}
}

func key(name string) string { return strings.ToLower(name) }

// Lookup returns the entry for a name, or nil if the name has not been entered.
func (st *Symtab) Lookup(name string) *Entry {
	return st.entries[key(name)]
}

// Enter returns the entry for a name, creating it if it does not exist.
func (st *Symtab) Enter(name string) *Entry {
	k := key(name)
	if e, ok := st.entries[k]; ok {
		return e
	}
	e := &Entry{Name: name}
	st.entries[k] = e
	return e
}

// Entries returns all entries, sorted by lower-cased name.
func (st *Symtab) Entries() []*Entry {
	entries := make([]*Entry, 0, len(st.entries))
	for _, e := range st.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return key(entries[i].Name) < key(entries[j].Name)
	})
	return entries
}
