// Package script evaluates Lisp scene scripts into world definitions.
// Scripts describe the same scenes as JSON files but can use variables,
// arithmetic and loops to lay out their geometry.
package script

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/CCernusca/2d-rendering/internal/world"
)

// EvalTimeout is the hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

// EvalError is a non-fatal error from user script code, such as a
// parse error or a bad builtin argument.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

type evalResult struct {
	def    *world.Definition
	errors []EvalError
	err    error
}

// Engine evaluates scene scripts. It is safe for concurrent use; every
// evaluation runs in a fresh sandboxed interpreter, so a result depends
// only on the source text.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new script engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate runs a scene script and returns the definition it built.
//
// Return semantics:
//   - on success: definition + nil errors + nil error
//   - on a parse or runtime error in the script: nil + eval errors + nil error
//   - on fatal failure (timeout, panic): nil + nil + error
func (e *Engine) Evaluate(source string) (*world.Definition, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()
		def, evalErrs, err := evaluate(source)
		ch <- evalResult{def: def, errors: evalErrs, err: err}
	}()

	return e.wait(ch, gen)
}

// wait blocks for the evaluation result, enforcing the timeout. On
// timeout the evaluation goroutine may still be running; the generation
// check discards its result if a newer evaluation started meanwhile.
func (e *Engine) wait(ch <-chan evalResult, gen uint64) (*world.Definition, []EvalError, error) {
	timer := time.NewTimer(EvalTimeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		e.mu.Lock()
		current := e.generation
		e.mu.Unlock()
		if gen != current {
			return nil, nil, fmt.Errorf("evaluation superseded by newer request")
		}
		return res.def, res.errors, res.err

	case <-timer.C:
		return nil, nil, fmt.Errorf("evaluation timed out after %s", EvalTimeout)
	}
}

// LoadFile reads and evaluates a scene script from disk, collapsing
// script errors into a single error value.
func (e *Engine) LoadFile(path string) (*world.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene script %s: %w", path, err)
	}

	def, evalErrs, err := e.Evaluate(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate scene script %s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		return nil, fmt.Errorf("scene script %s: %s", path, evalErrs[0])
	}

	return def, nil
}

// evaluate runs the script in a fresh sandbox and validates whatever
// scene it described. Sandbox mode keeps user code away from the
// filesystem and syscalls.
func evaluate(source string) (*world.Definition, []EvalError, error) {
	def := &world.Definition{}
	def.ApplyDefaults()

	// An empty script is a valid scene with nothing in it.
	if strings.TrimSpace(source) == "" {
		return def, nil, nil
	}

	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, def)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}

	def.ApplyDefaults()
	if err := def.Validate(); err != nil {
		return nil, []EvalError{{Message: err.Error()}}, nil
	}

	return def, nil, nil
}

// linePattern matches zygomys messages of the form "Error on line N: ...".
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches plain "line N: ..." messages.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts an interpreter error into EvalError values,
// extracting line information from the message when present.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, pattern := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := pattern.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
