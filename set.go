package rx

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coregx/rx/charindex"
	"github.com/coregx/rx/engine"
)

// Set is a named collection of compiled patterns, usually loaded from a
// YAML file:
//
//	patterns:
//	  - name: digits
//	    pattern: '\d+'
//	    case_sensitive: true
//	    engine: stdlib
//	    flags: [multiline]
//	  - name: greetings
//	    literals: [hello, hi]
type Set struct {
	names  []string
	byName map[string]*Regex
}

type setFile struct {
	Patterns []setEntry `yaml:"patterns"`
}

type setEntry struct {
	Name          string   `yaml:"name"`
	Pattern       *string  `yaml:"pattern"`
	Literals      []string `yaml:"literals"`
	CaseSensitive *bool    `yaml:"case_sensitive"`
	Engine        string   `yaml:"engine"`
	Flags         []string `yaml:"flags"`
	Granularity   string   `yaml:"granularity"`
}

// LoadSetFile loads a pattern set from a YAML file.
func LoadSetFile(path string, opts ...Option) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pattern set: %w", err)
	}
	defer f.Close()

	set, err := LoadSet(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// LoadSet reads a pattern set in YAML. opts provide the defaults every entry
// starts from; the entry's own fields override them. Unknown fields are
// rejected. An empty document yields an empty set.
func LoadSet(r io.Reader, opts ...Option) (*Set, error) {
	var file setFile

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding pattern set: %w", err)
	}

	base := newConfig(opts)
	set := &Set{byName: make(map[string]*Regex, len(file.Patterns))}
	for i, entry := range file.Patterns {
		if entry.Name == "" {
			return nil, fmt.Errorf("pattern #%d: missing name", i)
		}
		if _, ok := set.byName[entry.Name]; ok {
			return nil, fmt.Errorf("pattern %q: duplicate name", entry.Name)
		}

		re, err := entry.compile(base)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", entry.Name, err)
		}
		set.names = append(set.names, entry.Name)
		set.byName[entry.Name] = re
	}

	base.Logger.Debugf("loaded pattern set with %d patterns", len(set.names))
	return set, nil
}

func (e setEntry) compile(cfg Config) (*Regex, error) {
	if len(e.Flags) > 0 {
		flags, err := engine.ParseFlags(e.Flags)
		if err != nil {
			return nil, err
		}
		// Case sensitivity is carried by case_sensitive only.
		cfg.Flags = flags | cfg.Flags&engine.IgnoreCase
	}
	if e.CaseSensitive != nil {
		WithCaseSensitive(*e.CaseSensitive)(&cfg)
	}
	if e.Engine != "" {
		kind, err := engine.ParseKind(e.Engine)
		if err != nil {
			return nil, err
		}
		cfg.Engine = kind
	}
	if e.Granularity != "" {
		g, err := charindex.ParseGranularity(e.Granularity)
		if err != nil {
			return nil, err
		}
		cfg.Granularity = g
	}

	switch {
	case e.Pattern != nil && len(e.Literals) > 0:
		return nil, errors.New("pattern and literals are mutually exclusive")
	case e.Pattern != nil:
		return compile(*e.Pattern, cfg)
	case len(e.Literals) > 0:
		return CompileLiterals(e.Literals, WithConfig(cfg))
	default:
		return nil, errors.New("one of pattern or literals is required")
	}
}

// Get returns the pattern with the given name.
func (s *Set) Get(name string) (*Regex, bool) {
	re, ok := s.byName[name]
	return re, ok
}

// Names returns the pattern names in declaration order.
func (s *Set) Names() []string {
	return append([]string(nil), s.names...)
}

// Len returns the number of patterns.
func (s *Set) Len() int {
	return len(s.names)
}

// Matching returns, in declaration order, the names of the patterns that
// match text.
func (s *Set) Matching(text string) []string {
	var names []string
	for _, name := range s.names {
		if s.byName[name].IsMatch(text) {
			names = append(names, name)
		}
	}
	return names
}
