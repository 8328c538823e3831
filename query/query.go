// Package query evaluates expr-lang expressions against decoded TikHub
// responses.
//
// The keys of the response object are top-level variables, so with an
// envelope like {"code":200,"data":{"aweme_detail":{...}}} the expression
//
//	data.aweme_detail.statistics.digg_count > 1000
//
// is valid. The whole document is also available as doc, and get("a.b.0.c")
// walks a dotted path that may include list indices and yields nil when any
// step is missing. Undefined top-level names evaluate to nil.
package query

import (
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/goccy/go-json"
	"github.com/s0up4200/tikhub/models"
)

// DefaultCacheSize is the number of compiled programs NewCompiler keeps.
const DefaultCacheSize = 128

// CompilerOption configures a Compiler
type CompilerOption func(*Compiler)

// WithCache sets the number of compiled programs kept. Zero disables caching.
func WithCache(size int) CompilerOption {
	return func(c *Compiler) {
		if size > 0 {
			c.cache = newLRUCache[*Program](size)
		} else {
			c.cache = nil
		}
	}
}

// WithCustomFunctions adds helper functions available to every expression
func WithCustomFunctions(funcs map[string]any) CompilerOption {
	return func(c *Compiler) {
		maps.Copy(c.helpers, funcs)
	}
}

// Compiler turns expressions into reusable programs. It is safe for
// concurrent use.
type Compiler struct {
	helpers map[string]any
	cache   *lruCache[*Program]
}

// NewCompiler creates a compiler with the standard helpers and a cache
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{
		helpers: helperFunctions(),
		cache:   newLRUCache[*Program](DefaultCacheSize),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Program is a compiled expression
type Program struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
	predicate  bool
}

// Compile compiles an expression that may produce any value
func (c *Compiler) Compile(expression string) (*Program, error) {
	return c.compile(expression, false)
}

// CompilePredicate compiles an expression that must produce a bool
func (c *Compiler) CompilePredicate(expression string) (*Program, error) {
	return c.compile(expression, true)
}

func (c *Compiler) compile(expression string, predicate bool) (*Program, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	key := expression
	if predicate {
		key = "?" + expression
	}
	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			return cached, nil
		}
	}

	opts := []expr.Option{
		expr.Env(c.envTemplate()),
		expr.AllowUndefinedVariables(),
	}
	if predicate {
		opts = append(opts, expr.AsBool())
	}

	program, err := expr.Compile(expression, opts...)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	p := &Program{
		expression: expression,
		program:    program,
		helpers:    c.helpers,
		predicate:  predicate,
	}
	if c.cache != nil {
		c.cache.Put(key, p)
	}
	return p, nil
}

// Clear removes all cached programs
func (c *Compiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached programs
func (c *Compiler) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// envTemplate declares the helper signatures, including get. doc is left
// undeclared so it type-checks as any.
func (c *Compiler) envTemplate() map[string]any {
	env := maps.Clone(c.helpers)
	env["get"] = func(string) any { return nil }
	return env
}

// Expression returns the source text
func (p *Program) Expression() string {
	return p.expression
}

// Eval runs the program against doc, usually the output of Decode.
func (p *Program) Eval(doc any) (any, error) {
	out, err := expr.Run(p.program, p.environment(doc))
	if err != nil {
		return nil, &EvaluationError{
			Expression: p.expression,
			Reason:     "failed to evaluate expression",
			Err:        err,
		}
	}
	return out, nil
}

// Match runs a predicate program against doc.
func (p *Program) Match(doc any) (bool, error) {
	out, err := p.Eval(doc)
	if err != nil {
		return false, err
	}
	b, ok := out.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: p.expression,
			Reason:     "expression did not produce a bool",
		}
	}
	return b, nil
}

func (p *Program) environment(doc any) map[string]any {
	env := make(map[string]any, len(p.helpers)+16)
	if obj, ok := doc.(map[string]any); ok {
		maps.Copy(env, obj)
	}
	maps.Copy(env, p.helpers)
	env["doc"] = doc
	env["get"] = func(path string) any { return Lookup(doc, path) }
	return env
}

// Filter returns the items for which the predicate holds. Items that fail to
// evaluate are skipped.
func Filter(p *Program, items []any) []any {
	var out []any
	for _, item := range items {
		if ok, err := p.Match(item); err == nil && ok {
			out = append(out, item)
		}
	}
	return out
}

// Decode parses a JSON document into generic values for evaluation.
func Decode(data []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Lookup walks a dotted path through maps and lists. Numeric segments index
// lists. It returns nil when any step is missing.
func Lookup(doc any, path string) any {
	if path == "" {
		return doc
	}

	cur := doc
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil
			}
			cur = node[i]
		default:
			return nil
		}
	}
	return cur
}

func helperFunctions() map[string]any {
	return map[string]any{
		// Case-insensitive variants of the contains/startsWith/endsWith operators
		"icontains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"istartsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"iendsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},

		// Time helpers. JSON numbers arrive as float64.
		"now": time.Now,
		"fromUnix": func(sec float64) time.Time {
			return time.Unix(int64(sec), 0).UTC()
		},
		"parseTime": func(s string) time.Time {
			t, _ := models.ParseISOTime(s)
			return t
		},
		"daysSince": func(t time.Time) int {
			return int(time.Since(t).Hours() / 24)
		},
		"daysAgo": func(days int) time.Time {
			return time.Now().AddDate(0, 0, -days)
		},
	}
}
