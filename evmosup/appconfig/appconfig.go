// Package appconfig edits the node's app.toml in place. The file is parsed
// with go-toml to locate keys; an edit rewrites only the value on the line of
// the key it addresses, so comments, ordering and formatting survive.
package appconfig

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml"

	"github.com/evmosup/evmosup/internal/fileutils"
)

// PruningPolicy is the state pruning strategy of the node
type PruningPolicy struct {
	Strategy   string
	KeepRecent uint64
	Interval   uint64
}

// File is a loaded app.toml
type File struct {
	lines []string
	tree  *toml.Tree
}

// Parse decodes app.toml content
func Parse(data []byte) (*File, error) {
	f := &File{lines: strings.Split(string(data), "\n")}
	if err := f.reload(); err != nil {
		return nil, err
	}
	return f, nil
}

// Load reads the app.toml at path
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Bytes returns the current content
func (f *File) Bytes() []byte {
	return []byte(strings.Join(f.lines, "\n"))
}

// Save writes the file back to path
func (f *File) Save(path string) error {
	return fileutils.WriteFileAtomic(path, f.Bytes(), 0644)
}

// Get returns the value at the dotted key
func (f *File) Get(key string) interface{} {
	return f.tree.Get(key)
}

// HasSection reports whether a top-level table exists
func (f *File) HasSection(name string) bool {
	_, ok := f.tree.GetPath([]string{name}).(*toml.Tree)
	return ok
}

// EnableServices turns on every `enable`/`enabled` flag that is currently
// false, in every table. It returns the dotted keys it changed.
func (f *File) EnableServices() ([]string, error) {
	var changed []string
	var lines []int
	walk(f.tree, nil, func(t *toml.Tree, path []string, key string) {
		if key != "enable" && key != "enabled" {
			return
		}
		if v, ok := t.GetPath([]string{key}).(bool); ok && !v {
			lines = append(lines, t.GetPositionPath([]string{key}).Line)
			changed = append(changed, strings.Join(append(path, key), "."))
		}
	})
	for _, line := range lines {
		if err := f.rewriteLine(line, true); err != nil {
			return nil, err
		}
	}
	return changed, f.reload()
}

// DisableSections sets `enable = false` in each named top-level table that
// exists. Missing tables are skipped and left absent.
func (f *File) DisableSections(names ...string) ([]string, error) {
	var changed []string
	for _, name := range names {
		if !f.HasSection(name) {
			continue
		}
		if err := f.set([]string{name, "enable"}, false); err != nil {
			return nil, err
		}
		changed = append(changed, name+".enable")
	}
	return changed, nil
}

// SetPruning applies a pruning policy. Values are written as strings, the
// form the node's own template uses.
func (f *File) SetPruning(p PruningPolicy) error {
	values := []struct {
		key   string
		value string
	}{
		{"pruning", p.Strategy},
		{"pruning-keep-recent", strconv.FormatUint(p.KeepRecent, 10)},
		{"pruning-interval", strconv.FormatUint(p.Interval, 10)},
	}
	for _, v := range values {
		if err := f.set([]string{v.key}, v.value); err != nil {
			return err
		}
	}
	return nil
}

// set assigns a top-level key or a key of a top-level table. An existing
// key has its value rewritten in place; a missing one is inserted after the
// table header, or after the last top-level key.
func (f *File) set(path []string, value interface{}) error {
	if pos := f.tree.GetPositionPath(path); pos.Line > 0 {
		if _, isTable := f.tree.GetPath(path).(*toml.Tree); isTable {
			return fmt.Errorf("%s is a table", strings.Join(path, "."))
		}
		if err := f.rewriteLine(pos.Line, value); err != nil {
			return err
		}
		return f.reload()
	}

	line := path[len(path)-1] + " = " + encode(value)
	switch len(path) {
	case 1:
		f.insertLine(f.lastTopLevelLine(), line)
	case 2:
		table, ok := f.tree.GetPath(path[:1]).(*toml.Tree)
		if !ok {
			return fmt.Errorf("no [%s] table", path[0])
		}
		f.insertLine(table.Position().Line, line)
	default:
		return fmt.Errorf("unsupported key %s", strings.Join(path, "."))
	}
	return f.reload()
}

// rewriteLine replaces the value of the `key = value` assignment on the
// 1-based line n, keeping the key, spacing and any trailing comment
func (f *File) rewriteLine(n int, value interface{}) error {
	if n < 1 || n > len(f.lines) {
		return fmt.Errorf("line %d out of range", n)
	}
	src := f.lines[n-1]
	eq := strings.Index(src, "=")
	if eq < 0 {
		return fmt.Errorf("line %d is not an assignment: %q", n, src)
	}
	rest := src[eq+1:]
	trimmed := strings.TrimLeft(rest, " \t")
	lead := rest[:len(rest)-len(trimmed)]
	f.lines[n-1] = src[:eq+1] + lead + encode(value) + trimmed[valueEnd(trimmed):]
	return nil
}

// insertLine inserts text after the 1-based line n (0 inserts at the top)
func (f *File) insertLine(n int, text string) {
	f.lines = append(f.lines, "")
	copy(f.lines[n+1:], f.lines[n:])
	f.lines[n] = text
}

func (f *File) lastTopLevelLine() int {
	last := 0
	for _, key := range f.tree.Keys() {
		switch f.tree.GetPath([]string{key}).(type) {
		case *toml.Tree, []*toml.Tree:
			continue
		}
		if line := f.tree.GetPositionPath([]string{key}).Line; line > last {
			last = line
		}
	}
	return last
}

func (f *File) reload() error {
	tree, err := toml.LoadBytes(f.Bytes())
	if err != nil {
		return fmt.Errorf("invalid app config: %w", err)
	}
	f.tree = tree
	return nil
}

// valueEnd returns the length of the scalar value at the start of s
func valueEnd(s string) int {
	if s == "" {
		return 0
	}
	switch quote := s[0]; quote {
	case '"', '\'':
		for i := 1; i < len(s); i++ {
			if quote == '"' && s[i] == '\\' {
				i++
				continue
			}
			if s[i] == quote {
				return i + 1
			}
		}
		return len(s)
	}
	if i := strings.IndexAny(s, " \t#\r"); i >= 0 {
		return i
	}
	return len(s)
}

func encode(value interface{}) string {
	switch v := value.(type) {
	case bool:
		return strconv.FormatBool(v)
	case string:
		return strconv.Quote(v)
	}
	return fmt.Sprint(value)
}

func walk(t *toml.Tree, path []string, fn func(t *toml.Tree, path []string, key string)) {
	for _, key := range t.Keys() {
		switch v := t.GetPath([]string{key}).(type) {
		case *toml.Tree:
			walk(v, append(append([]string{}, path...), key), fn)
		case []*toml.Tree:
			for _, sub := range v {
				walk(sub, append(append([]string{}, path...), key), fn)
			}
		default:
			fn(t, path, key)
		}
	}
}
