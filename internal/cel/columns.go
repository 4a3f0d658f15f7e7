package cel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/cel-go/cel"
	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// ErrUnknownColumn is returned when a filter indexes cell with a name the
// header does not have.
var ErrUnknownColumn = fmt.Errorf("%w: unknown column", ErrInvalidFilter)

// referencedColumns collects the constant keys of cell["..."] lookups, sorted
// and without duplicates. Dynamic keys are ignored.
func referencedColumns(ast *cel.Ast) ([]string, error) {
	parsed, err := cel.AstToParsedExpr(ast)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	walkExpr(parsed.GetExpr(), func(e *exprpb.Expr) {
		call := e.GetCallExpr()
		if call == nil || call.GetFunction() != "_[_]" || len(call.GetArgs()) != 2 {
			return
		}
		if call.GetArgs()[0].GetIdentExpr().GetName() != "cell" {
			return
		}
		if key := call.GetArgs()[1].GetConstExpr(); key != nil {
			if _, ok := key.GetConstantKind().(*exprpb.Constant_StringValue); ok {
				seen[key.GetStringValue()] = true
			}
		}
	})
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// walkExpr visits e and every sub-expression, depth first.
func walkExpr(e *exprpb.Expr, visit func(*exprpb.Expr)) {
	if e == nil {
		return
	}
	visit(e)
	switch k := e.GetExprKind().(type) {
	case *exprpb.Expr_CallExpr:
		walkExpr(k.CallExpr.GetTarget(), visit)
		for _, arg := range k.CallExpr.GetArgs() {
			walkExpr(arg, visit)
		}
	case *exprpb.Expr_SelectExpr:
		walkExpr(k.SelectExpr.GetOperand(), visit)
	case *exprpb.Expr_ListExpr:
		for _, elem := range k.ListExpr.GetElements() {
			walkExpr(elem, visit)
		}
	case *exprpb.Expr_StructExpr:
		for _, entry := range k.StructExpr.GetEntries() {
			walkExpr(entry.GetMapKey(), visit)
			walkExpr(entry.GetValue(), visit)
		}
	case *exprpb.Expr_ComprehensionExpr:
		c := k.ComprehensionExpr
		walkExpr(c.GetIterRange(), visit)
		walkExpr(c.GetAccuInit(), visit)
		walkExpr(c.GetLoopCondition(), visit)
		walkExpr(c.GetLoopStep(), visit)
		walkExpr(c.GetResult(), visit)
	}
}

// Columns returns the header names the filter looks up through cell.
func (f *Filter) Columns() []string {
	return append([]string(nil), f.columns...)
}

// CheckColumns fails when the filter references a column header lacks.
// Without a header every lookup is unknown.
func (f *Filter) CheckColumns(header []string) error {
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[h] = true
	}
	var missing []string
	for _, c := range f.columns {
		if !have[c] {
			missing = append(missing, fmt.Sprintf("%q", c))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w %s (available: %s)", ErrUnknownColumn, strings.Join(missing, ", "), strings.Join(header, ", "))
}
