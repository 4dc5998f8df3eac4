package command

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/armon/go-radix"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxSuggestionDistance bounds the edit distance of "did you mean" hints.
const maxSuggestionDistance = 2

// Table maps command spellings to their Spec.
// Spellings are indexed in a radix tree so the longest registered spelling at
// the start of a command line can be found in one lookup.
type Table struct {
	mu        sync.RWMutex
	byName    map[string]*Spec
	spellings *radix.Tree
	aliases   map[string]string // alias -> canonical name
}

// NewTable creates an empty command table.
func NewTable() *Table {
	return &Table{
		byName:    make(map[string]*Spec),
		spellings: radix.New(),
		aliases:   make(map[string]string),
	}
}

// Register adds a command and all of its spellings.
// A spelling already taken by an earlier command keeps its owner, so
// registration order sets priority among shared prefixes.
func (t *Table) Register(spec Spec) error {
	if err := spec.validate(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.byName[spec.Name]; ok {
		return fmt.Errorf("command %q already registered", spec.Name)
	}

	registered := &spec
	t.byName[spec.Name] = registered

	// Full names always win over abbreviations of other commands.
	t.spellings.Insert(spec.Name, registered)
	for _, spelling := range registered.Spellings()[1:] {
		if _, taken := t.spellings.Get(spelling); taken {
			continue
		}
		t.spellings.Insert(spelling, registered)
	}
	return nil
}

// MustRegister is Register that panics on error. Used for the built-in table.
func (t *Table) MustRegister(spec Spec) {
	if err := t.Register(spec); err != nil {
		panic(err)
	}
}

// RegisterAlias maps an extra spelling to a canonical command name.
func (t *Table) RegisterAlias(alias, canonical string) error {
	if alias == "" || strings.IndexFunc(alias, unicode.IsSpace) >= 0 {
		return fmt.Errorf("invalid alias %q", alias)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	spec, ok := t.byName[canonical]
	if !ok {
		return fmt.Errorf("alias %q: unknown command %q", alias, canonical)
	}
	if existing, ok := t.byName[alias]; ok && existing != spec {
		return fmt.Errorf("alias %q shadows command %q", alias, alias)
	}

	t.aliases[alias] = canonical
	t.spellings.Insert(alias, spec)
	return nil
}

// Get returns the command with the given canonical name, spelling or alias.
func (t *Table) Get(key string) (*Spec, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if spec, ok := t.byName[key]; ok {
		return spec, true
	}
	if v, ok := t.spellings.Get(key); ok {
		return v.(*Spec), true //nolint:forcetypeassert // tree only holds *Spec
	}
	return nil, false
}

// Match finds the longest registered spelling that prefixes text.
func (t *Table) Match(text string) (string, *Spec, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	spelling, v, ok := t.spellings.LongestPrefix(text)
	if !ok || spelling == "" {
		return "", nil, false
	}
	return spelling, v.(*Spec), true //nolint:forcetypeassert // tree only holds *Spec
}

// Specs returns all commands sorted by name.
func (t *Table) Specs() []*Spec {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]*Spec, 0, len(t.byName))
	for _, spec := range t.byName {
		result = append(result, spec)
	}
	slices.SortFunc(result, func(a, b *Spec) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return result
}

// Names returns all canonical names in sorted order.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]string, 0, len(t.byName))
	for name := range t.byName {
		result = append(result, name)
	}
	slices.Sort(result)
	return result
}

// Aliases returns a copy of the alias map.
func (t *Table) Aliases() map[string]string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make(map[string]string, len(t.aliases))
	for alias, canonical := range t.aliases {
		result[alias] = canonical
	}
	return result
}

// Spelled returns every spelling that resolves to name, longest first.
func (t *Table) Spelled(name string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	spec, ok := t.byName[name]
	if !ok {
		return nil
	}

	var result []string
	t.spellings.Walk(func(spelling string, v any) bool {
		if v.(*Spec) == spec { //nolint:forcetypeassert // tree only holds *Spec
			result = append(result, spelling)
		}
		return false
	})
	slices.SortFunc(result, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return result
}

// Suggest returns the canonical name closest to word, or "" when nothing is close.
func (t *Table) Suggest(word string) string {
	if word == "" {
		return ""
	}

	names := suggestable(t.Names())

	ranks := fuzzy.RankFindFold(word, names)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDistance := "", maxSuggestionDistance+1
	for _, name := range names {
		if d := fuzzy.LevenshteinDistance(word, name); d < bestDistance {
			best, bestDistance = name, d
		}
	}
	return best
}

// suggestable drops symbol commands such as "<" and "&", which are never a
// plausible spelling of an unknown word.
func suggestable(names []string) []string {
	words := names[:0]
	for _, name := range names {
		first, _ := utf8.DecodeRuneInString(name)
		if utf8.RuneCountInString(name) > 1 && unicode.IsLetter(first) {
			words = append(words, name)
		}
	}
	return words
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	t.mu.RLock()
	defer t.mu.RUnlock()

	clone := NewTable()
	for name, spec := range t.byName {
		clone.byName[name] = spec
	}
	t.spellings.Walk(func(spelling string, v any) bool {
		clone.spellings.Insert(spelling, v)
		return false
	})
	for alias, canonical := range t.aliases {
		clone.aliases[alias] = canonical
	}
	return clone
}

// WithAliases returns a copy of t with the given user aliases registered.
// The target of an alias may be any spelling of a command. Every invalid alias
// is reported; the valid ones are still registered.
func (t *Table) WithAliases(aliases map[string]string) (*Table, error) {
	clone := t.Clone()
	if len(aliases) == 0 {
		return clone, nil
	}

	names := make([]string, 0, len(aliases))
	for alias := range aliases {
		names = append(names, alias)
	}
	slices.Sort(names)

	var errs []error
	for _, alias := range names {
		target := aliases[alias]
		if spec, ok := clone.Get(target); ok {
			target = spec.Name
		}
		if err := clone.RegisterAlias(alias, target); err != nil {
			errs = append(errs, err)
		}
	}
	return clone, errors.Join(errs...)
}

// DefaultTable is the table of built-in commands.
//
//nolint:gochecknoglobals // Global table is intentional; it is read-only after init.
var DefaultTable = NewTable()

func init() {
	registerBuiltins(DefaultTable)
}
