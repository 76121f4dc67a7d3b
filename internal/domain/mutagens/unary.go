package mutagens

import (
	"go/ast"
	"go/token"
)

// unaryRemoval drops a unary operator, e.g. !ok becomes ok.
type unaryRemoval struct {
	op   token.Token
	name string
}

func (o unaryRemoval) Name() string {
	return "unary/remove_" + o.name
}

func (o unaryRemoval) Sites(fset *token.FileSet, file *ast.File, _ []byte) []Site {
	var sites []Site

	inspect(fset, file, func(n ast.Node) {
		unary, ok := n.(*ast.UnaryExpr)
		if !ok || unary.Op != o.op {
			return
		}

		start, ok := offsetForPos(fset, unary.OpPos)
		if !ok {
			return
		}

		end, ok := offsetForPos(fset, unary.X.Pos())
		if !ok {
			return
		}

		lineStart, lineEnd := nodeLines(fset, unary)
		sites = append(sites, Site{
			Start:     start,
			End:       end,
			LineStart: lineStart,
			LineEnd:   lineEnd,
		})
	})

	return sites
}

// conditionNegation wraps an if condition in a negation.
type conditionNegation struct{}

func (conditionNegation) Name() string {
	return "branch/negate_if"
}

func (conditionNegation) Sites(fset *token.FileSet, file *ast.File, content []byte) []Site {
	var sites []Site

	inspect(fset, file, func(n ast.Node) {
		stmt, ok := n.(*ast.IfStmt)
		if !ok {
			return
		}

		start, ok := offsetForPos(fset, stmt.Cond.Pos())
		if !ok {
			return
		}

		end, ok := offsetForPos(fset, stmt.Cond.End())
		if !ok {
			return
		}

		lineStart, lineEnd := nodeLines(fset, stmt.Cond)
		sites = append(sites, Site{
			Start:       start,
			End:         end,
			Replacement: "!(" + string(content[start:end]) + ")",
			LineStart:   lineStart,
			LineEnd:     lineEnd,
		})
	})

	return sites
}

func unaryOperators() []Operator {
	return []Operator{
		unaryRemoval{op: token.NOT, name: "not"},
		unaryRemoval{op: token.SUB, name: "neg"},
		conditionNegation{},
	}
}
