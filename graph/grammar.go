package graph

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

// ErrInvalidGrammar is returned for malformed rule or size specifications.
var ErrInvalidGrammar = errors.New("modbench: invalid grammar")

type (
	// Rules maps a predecessor symbol to its successor symbols.
	Rules map[rune]string

	// Sizes maps a symbol to the payload size of its modules in bytes.
	Sizes map[rune]int64
)

// DefaultRules returns the balanced rule set "A:" followed by branches A's.
func DefaultRules(branches int) Rules {
	return Rules{Axiom: strings.Repeat(string(Axiom), branches)}
}

// ParseRules parses a comma separated rule list such as "A:AB,B:BBB".
func ParseRules(s string) (Rules, error) {
	rules := make(Rules)
	for _, rule := range strings.Split(s, ",") {
		pred, succ, ok := strings.Cut(rule, ":")
		if !ok {
			return nil, fmt.Errorf("%w: rule %q: expected PREDECESSOR:SUCCESSORS", ErrInvalidGrammar, rule)
		}
		sym, err := symbol(pred)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %q: %s", ErrInvalidGrammar, rule, err)
		}
		if succ == "" {
			return nil, fmt.Errorf("%w: rule %q: successor not specified", ErrInvalidGrammar, rule)
		}
		if _, ok := rules[sym]; ok {
			return nil, fmt.Errorf("%w: more than one rule for %q", ErrInvalidGrammar, pred)
		}
		rules[sym] = succ
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

// RulesFromMap converts string keyed rules, e.g. decoded from a config file.
func RulesFromMap(m map[string]string) (Rules, error) {
	rules := make(Rules, len(m))
	for pred, succ := range m {
		sym, err := symbol(pred)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %q: %s", ErrInvalidGrammar, pred, err)
		}
		rules[sym] = succ
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

// Validate checks that every successor is non-empty and that the axiom has a rule.
func (r Rules) Validate() error {
	for _, sym := range r.symbols() {
		if !validSymbol(sym) {
			return fmt.Errorf("%w: rule %q: symbols must be ASCII letters or digits", ErrInvalidGrammar, string(sym))
		}
		if r[sym] == "" {
			return fmt.Errorf("%w: rule %q: successor not specified", ErrInvalidGrammar, string(sym))
		}
		for _, succ := range r[sym] {
			if !validSymbol(succ) {
				return fmt.Errorf("%w: rule %q: successor symbol %q must be an ASCII letter or digit", ErrInvalidGrammar, string(sym), string(succ))
			}
		}
	}
	if _, ok := r[Axiom]; !ok {
		return fmt.Errorf("%w: missing rule for initial axiom %q", ErrInvalidGrammar, string(Axiom))
	}
	return nil
}

// String returns the canonical form "A:AB,B:BBB" with predecessors sorted.
func (r Rules) String() string {
	parts := make([]string, 0, len(r))
	for _, sym := range r.symbols() {
		parts = append(parts, string(sym)+":"+r[sym])
	}
	return strings.Join(parts, ",")
}

func (r Rules) symbols() []rune {
	return slices.Sorted(maps.Keys(r))
}

// ParseSizes parses a comma separated size list such as "A:10K,B:1.4M".
// An empty string yields an empty table.
func ParseSizes(s string) (Sizes, error) {
	sizes := make(Sizes)
	if strings.TrimSpace(s) == "" {
		return sizes, nil
	}
	for _, entry := range strings.Split(s, ",") {
		name, value, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, fmt.Errorf("%w: size %q: expected SYMBOL:SIZE", ErrInvalidGrammar, entry)
		}
		sym, err := symbol(name)
		if err != nil {
			return nil, fmt.Errorf("%w: size %q: %s", ErrInvalidGrammar, entry, err)
		}
		if _, ok := sizes[sym]; ok {
			return nil, fmt.Errorf("%w: duplicate size for %q", ErrInvalidGrammar, name)
		}
		n, err := ParseSize(value)
		if err != nil {
			return nil, err
		}
		sizes[sym] = n
	}
	return sizes, nil
}

// SizesFromMap converts string keyed sizes, e.g. decoded from a config file.
func SizesFromMap(m map[string]string) (Sizes, error) {
	sizes := make(Sizes, len(m))
	for name, value := range m {
		sym, err := symbol(name)
		if err != nil {
			return nil, fmt.Errorf("%w: size %q: %s", ErrInvalidGrammar, name, err)
		}
		n, err := ParseSize(value)
		if err != nil {
			return nil, err
		}
		sizes[sym] = n
	}
	return sizes, nil
}

// ParseSize parses a single size. "K" and "M" suffixes are binary units and a
// bare number is read as KiB. Any other unit understood by humanize is
// accepted as well ("512B", "2MiB").
func ParseSize(s string) (int64, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return 0, fmt.Errorf("%w: empty size", ErrInvalidGrammar)
	case strings.HasSuffix(v, "k"), strings.HasSuffix(v, "m"):
		v += "ib"
	case unicode.IsDigit(rune(v[len(v)-1])):
		v += "kib"
	}
	n, err := humanize.ParseBytes(v)
	if err != nil {
		return 0, fmt.Errorf("%w: size %q: %s", ErrInvalidGrammar, s, err)
	}
	return int64(n), nil
}

// Get returns the size for sym, or 0 if none is configured.
func (s Sizes) Get(sym rune) int64 { return s[sym] }

// String returns the canonical form "A:2048,B:10240" in bytes.
func (s Sizes) String() string {
	parts := make([]string, 0, len(s))
	for _, sym := range slices.Sorted(maps.Keys(s)) {
		parts = append(parts, fmt.Sprintf("%c:%d", sym, s[sym]))
	}
	return strings.Join(parts, ",")
}

// Count returns the number of non-root nodes an expansion of rules to depth
// produces, computed from symbol multiplicities per level.
func Count(rules Rules, depth int) int {
	level := map[rune]int{Axiom: 1}
	total := 0
	for d := 0; d < depth && len(level) > 0; d++ {
		next := make(map[rune]int)
		for sym, n := range level {
			for _, succ := range rules[sym] {
				next[succ] += n
				total += n
			}
		}
		level = next
	}
	return total
}

// symbol returns the single rune of s.
func symbol(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, errors.New("only 1 char predecessor allowed")
	}
	r, _ := utf8.DecodeRuneInString(s)
	if !validSymbol(r) {
		return 0, errors.New("symbols must be ASCII letters or digits")
	}
	return r, nil
}

// validSymbol reports whether r can appear in module file names and
// JavaScript identifiers.
func validSymbol(r rune) bool {
	return r <= unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))
}
