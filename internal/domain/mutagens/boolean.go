package mutagens

import (
	"go/ast"
	"go/token"
)

const (
	trueStr  = "true"
	falseStr = "false"
)

// booleanOperator flips one boolean literal.
type booleanOperator struct {
	from string
}

func (o booleanOperator) Name() string {
	return "boolean/" + o.from + "_" + flipBoolean(o.from)
}

func (o booleanOperator) Sites(fset *token.FileSet, file *ast.File, _ []byte) []Site {
	var sites []Site

	inspect(fset, file, func(n ast.Node) {
		ident, ok := n.(*ast.Ident)
		if !ok || ident.Name != o.from {
			return
		}

		start, ok := offsetForPos(fset, ident.Pos())
		if !ok {
			return
		}

		line := fset.Position(ident.Pos()).Line
		sites = append(sites, Site{
			Start:       start,
			End:         start + len(ident.Name),
			Replacement: flipBoolean(ident.Name),
			LineStart:   line,
			LineEnd:     line,
		})
	})

	return sites
}

func flipBoolean(original string) string {
	if original == trueStr {
		return falseStr
	}

	return trueStr
}

func booleanOperators() []Operator {
	return []Operator{booleanOperator{from: trueStr}, booleanOperator{from: falseStr}}
}
