// Package engine evaluates selection rules: small Lisp predicates that
// decide, per overlap entry, whether the entry should be selected. It wraps
// zygomys in a sandboxed environment; each entry is evaluated in a fresh
// sandbox so rules cannot carry state from one entry to the next.
package engine

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chazu/weightscan/pkg/overlap"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError represents a non-fatal error in a rule, such as a parse error
// or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine evaluates selection rules against overlap tables.
// It is safe for concurrent use; a newer evaluation supersedes an older
// one that has not finished yet.
type Engine struct {
	mu         sync.Mutex
	generation uint64
	timeout    time.Duration
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets the hard limit for one Apply or Match call.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithLogger sets the logger used to report fatal evaluation failures.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates a new Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		timeout: EvalTimeout,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, fn := range opts {
		fn(e)
	}
	return e
}

// Apply evaluates source for every entry of t and sets each entry's
// Selected flag to the rule's result. Flags are only written when every
// entry evaluated cleanly, so a broken rule never leaves a half-applied
// selection behind.
//
// Return semantics:
//   - On success: number of selected entries + nil errors + nil error
//   - On parse/eval failure: 0 + eval errors + nil error
//   - On fatal failure (timeout, panic, superseded): 0 + nil + error
func (e *Engine) Apply(source string, t *overlap.Table) (int, []EvalError, error) {
	if t == nil {
		return 0, nil, nil
	}
	flags, evalErrs, err := e.run(source, t.Entries)
	if err != nil || len(evalErrs) > 0 {
		return 0, evalErrs, err
	}
	matched := 0
	for i, entry := range t.Entries {
		entry.Selected = flags[i]
		if flags[i] {
			matched++
		}
	}
	return matched, nil, nil
}

// Match evaluates source for a single entry without touching its flag.
func (e *Engine) Match(source string, entry *overlap.Entry) (bool, []EvalError, error) {
	flags, evalErrs, err := e.run(source, []*overlap.Entry{entry})
	if err != nil || len(evalErrs) > 0 {
		return false, evalErrs, err
	}
	return flags[0], nil, nil
}

func (e *Engine) run(source string, entries []*overlap.Entry) ([]bool, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	// Copy what the rules may read so a timed-out evaluation never races
	// with the caller mutating the table.
	facts := make([]entryFacts, len(entries))
	for i, entry := range entries {
		facts[i] = factsOf(entry)
	}

	ch := make(chan evalResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during rule evaluation: %v", r)}
			}
		}()
		flags, evalErrs := evaluate(source, facts)
		ch <- evalResult{flags: flags, errors: evalErrs}
	}()

	flags, evalErrs, err := waitWithTimeout(ch, gen, e.timeout, &e.mu, &e.generation)
	if err != nil {
		e.logger.Warn("selection rule failed", "error", err, "entries", len(entries))
	}
	return flags, evalErrs, err
}

// evaluate runs the rule once per entry, each in a fresh sandbox.
func evaluate(source string, facts []entryFacts) ([]bool, []EvalError) {
	if strings.TrimSpace(source) == "" {
		return nil, []EvalError{{Message: "empty selection rule"}}
	}
	src := preprocessSource(source)

	flags := make([]bool, len(facts))
	for i, f := range facts {
		ok, evalErrs := evaluateOne(src, f)
		if len(evalErrs) > 0 {
			for j := range evalErrs {
				evalErrs[j].Message = fmt.Sprintf("entry %d (%s): %s", i, f.pair.Label(), evalErrs[j].Message)
			}
			return nil, evalErrs
		}
		flags[i] = ok
	}
	return flags, nil
}

func evaluateOne(src string, f entryFacts) (bool, []EvalError) {
	// Sandbox mode prevents rules from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, f)

	if err := env.LoadString(src); err != nil {
		return false, parseZygomysError(err)
	}
	res, err := env.Run()
	if err != nil {
		return false, parseZygomysError(err)
	}
	ok, err := truthy(res)
	if err != nil {
		return false, []EvalError{{Message: err.Error()}}
	}
	return ok, nil
}

// truthy interprets a rule result. Only booleans and nil are accepted so
// that a rule returning a count by mistake is reported, not guessed at.
func truthy(s zygo.Sexp) (bool, error) {
	switch v := s.(type) {
	case *zygo.SexpBool:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return false, nil
		}
	}
	if s == nil {
		return false, nil
	}
	return false, fmt.Errorf("rule must evaluate to true or false, got %s", s.SexpString(nil))
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into EvalError values,
// extracting line numbers where the message carries them.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
