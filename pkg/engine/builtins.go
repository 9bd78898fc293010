package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/chazu/weightscan/pkg/overlap"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource rewrites rule source before passing it to zygomys:
//
//  1. Kebab-case to underscore: has-group -> has_group
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator).
//
//  2. Line comments: ; and ;; become //, which is what zygomys understands.
//
// Both transformations respect string literal boundaries, so group names
// such as "Bip01 L-Hand" pass through untouched.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Only when the hyphen sits between identifier characters; a minus
		// operator is always followed by whitespace or a digit.
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Entry facts exposed to rules
// ---------------------------------------------------------------------------

// entryFacts is the read-only view of an entry a rule can inspect.
type entryFacts struct {
	pair     overlap.Pair
	count    int
	selected bool
}

func factsOf(e *overlap.Entry) entryFacts {
	if e == nil {
		return entryFacts{}
	}
	return entryFacts{pair: e.Pair, count: e.Count, selected: e.Selected}
}

// sideOf returns "L" or "R" for group names following the " L " / " R "
// side convention (e.g. "Bip01 L Thigh"), or "" when the name has no side.
func sideOf(name string) string {
	padded := " " + name + " "
	switch {
	case strings.Contains(padded, " L "):
		return "L"
	case strings.Contains(padded, " R "):
		return "R"
	}
	return ""
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

func boolSexp(v bool) zygo.Sexp {
	return &zygo.SexpBool{Val: v}
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the rule vocabulary for one entry.
//
// Source code must be preprocessed with preprocessSource() so that
// kebab-case names resolve to the underscore names registered here.
func registerBuiltins(env *zygo.Zlisp, f entryFacts) {
	noArgs := func(name string, args []zygo.Sexp) error {
		if len(args) != 0 {
			return fmt.Errorf("%s takes no arguments, got %d", name, len(args))
		}
		return nil
	}

	// (verts) -> number of vertices in the overlap
	env.AddFunction("verts", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := noArgs(name, args); err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpInt{Val: int64(f.count)}, nil
	})

	// (group-a) / (group-b) -> the pair's group names in canonical order
	env.AddFunction("group_a", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := noArgs("group-a", args); err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpStr{S: f.pair.A}, nil
	})
	env.AddFunction("group_b", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := noArgs("group-b", args); err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpStr{S: f.pair.B}, nil
	})

	// (pair-label) -> "A + B"
	env.AddFunction("pair_label", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := noArgs("pair-label", args); err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpStr{S: f.pair.Label()}, nil
	})

	// (selected) -> the entry's current flag
	env.AddFunction("selected", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := noArgs(name, args); err != nil {
			return zygo.SexpNull, err
		}
		return boolSexp(f.selected), nil
	})

	// (has-group "Spine" "Pelvis" ...) -> true if either group matches any name
	env.AddFunction("has_group", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			return zygo.SexpNull, fmt.Errorf("has-group requires at least one group name")
		}
		for i, a := range args {
			s, err := toString(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("has-group: argument %d: %w", i+1, err)
			}
			if f.pair.Has(s) {
				return boolSexp(true), nil
			}
		}
		return boolSexp(false), nil
	})

	// (group-matches "^Bip01 L ") -> true if either group name matches the pattern
	env.AddFunction("group_matches", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("group-matches requires exactly 1 argument, got %d", len(args))
		}
		pattern, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("group-matches: %w", err)
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("group-matches: %w", err)
		}
		return boolSexp(re.MatchString(f.pair.A) || re.MatchString(f.pair.B)), nil
	})

	// (cross-side) -> true when one group is a left-side bone and the other
	// a right-side bone, the classic mirrored-weights mistake.
	env.AddFunction("cross_side", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := noArgs("cross-side", args); err != nil {
			return zygo.SexpNull, err
		}
		a, b := sideOf(f.pair.A), sideOf(f.pair.B)
		return boolSexp(a != "" && b != "" && a != b), nil
	})
}
