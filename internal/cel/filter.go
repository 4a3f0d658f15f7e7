// Package cel filters table rows with CEL expressions.
//
// An expression sees three variables:
//
//	row    list(string)        the cells of the row
//	cell   map(string, string) the cells keyed by header, empty without a header
//	index  int                 the 1-based position of the row in the input
//
// and must evaluate to a bool, e.g. `cell["role"] == "admiral"` or
// `row[0].startsWith("g") && index > 1`.
package cel

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/decls"
	"github.com/google/cel-go/common/types"
	celext "github.com/google/cel-go/ext"
)

// ErrInvalidFilter is returned when an expression does not compile to a
// boolean program.
var ErrInvalidFilter = errors.New("invalid row filter")

// Filter is a compiled row predicate.
type Filter struct {
	expr    string
	prg     cel.Program
	columns []string
}

// newEnv creates the row environment with the common extension libraries.
func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("row", cel.ListType(cel.StringType)),
		cel.Variable("cell", cel.MapType(cel.StringType, cel.StringType)),
		cel.Variable("index", cel.IntType),
		celext.Strings(),
		celext.Lists(),
		celext.Math(),
	)
}

// NewFilter compiles expr.
func NewFilter(expr string) (*Filter, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilter, issues.Err())
	}
	if !ast.OutputType().IsExactType(types.BoolType) {
		return nil, fmt.Errorf("%w: %q evaluates to %s, not bool", ErrInvalidFilter, expr, ast.OutputType())
	}
	columns, err := referencedColumns(ast)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	return &Filter{expr: expr, prg: prg, columns: columns}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.expr
}

// Match evaluates the filter for one row. Header cells beyond the row, and
// row cells beyond the header, are left out of cell.
func (f *Filter) Match(header []string, index int, row []string) (bool, error) {
	cells := make(map[string]string, len(header))
	for i, name := range header {
		if i < len(row) {
			cells[name] = row[i]
		}
	}
	out, _, err := f.prg.Eval(map[string]any{
		"row":   row,
		"cell":  cells,
		"index": index,
	})
	if err != nil {
		return false, fmt.Errorf("evaluate %q on row %d: %w", f.expr, index, err)
	}
	b, ok := out.(types.Bool)
	if !ok {
		return false, fmt.Errorf("evaluate %q on row %d: got %s, want bool", f.expr, index, out.Type())
	}
	return bool(b), nil
}

// Apply returns the rows the filter matches, in order.
func (f *Filter) Apply(header []string, rows [][]string) ([][]string, error) {
	kept := make([][]string, 0, len(rows))
	for i, r := range rows {
		ok, err := f.Match(header, i+1, r)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, r)
		}
	}
	return kept, nil
}

// Function is one entry of the filter environment's function list.
type Function struct {
	Name  string
	Usage string
}

// Functions lists the functions and macros available to filter
// expressions, sorted by name then usage.
func Functions() ([]Function, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}

	seen := make(map[Function]bool)
	var out []Function
	add := func(fn Function) {
		if !seen[fn] {
			seen[fn] = true
			out = append(out, fn)
		}
	}
	for _, fn := range env.Functions() {
		if isOperator(fn.Name()) {
			continue
		}
		for _, o := range fn.OverloadDecls() {
			add(Function{Name: fn.Name(), Usage: usage(fn.Name(), o)})
		}
	}
	for _, m := range env.Macros() {
		if isOperator(m.Function()) {
			continue
		}
		add(Function{Name: m.Function(), Usage: "macro"})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Usage < out[j].Usage
	})
	return out, nil
}

// isOperator reports internal operator declarations such as _==_ or @in.
func isOperator(name string) bool {
	if strings.HasPrefix(name, "@") {
		return true
	}
	if strings.HasPrefix(name, "_") || strings.HasSuffix(name, "_") {
		return true
	}
	return strings.HasPrefix(name, "!") || strings.HasPrefix(name, "-")
}

func typeLabel(t *types.Type) string {
	if t == nil {
		return "any"
	}
	if name := t.DeclaredTypeName(); name != "" {
		return name
	}
	return "any"
}

func typeList(params []*types.Type) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = typeLabel(p)
	}
	return strings.Join(parts, ", ")
}

// usage renders an overload as receiver.name(args) -> result, or
// name(args) -> result for global functions.
func usage(name string, o *decls.OverloadDecl) string {
	params := o.ArgTypes()
	call := name + "(" + typeList(params) + ")"
	if o.IsMemberFunction() && len(params) > 0 {
		call = typeLabel(params[0]) + "." + name + "(" + typeList(params[1:]) + ")"
	}
	if o.ResultType() == nil {
		return call
	}
	return call + " -> " + typeLabel(o.ResultType())
}
