package mutagens

import (
	"fmt"
	"go/ast"
	"go/token"
)

var tokenNames = map[token.Token]string{
	token.ADD:  "add",
	token.SUB:  "sub",
	token.MUL:  "mul",
	token.QUO:  "quo",
	token.REM:  "rem",
	token.LSS:  "lss",
	token.GTR:  "gtr",
	token.LEQ:  "leq",
	token.GEQ:  "geq",
	token.EQL:  "eql",
	token.NEQ:  "neq",
	token.LAND: "land",
	token.LOR:  "lor",
}

// binaryOperator replaces one binary operator token with another.
type binaryOperator struct {
	family string
	from   token.Token
	to     token.Token
}

func (o binaryOperator) Name() string {
	return fmt.Sprintf("%s/%s_%s", o.family, tokenNames[o.from], tokenNames[o.to])
}

func (o binaryOperator) Sites(fset *token.FileSet, file *ast.File, _ []byte) []Site {
	var sites []Site

	inspect(fset, file, func(n ast.Node) {
		binExpr, ok := n.(*ast.BinaryExpr)
		if !ok || binExpr.Op != o.from {
			return
		}

		if o.family == familyArithmetic && (isStringLiteral(binExpr.X) || isStringLiteral(binExpr.Y)) {
			return
		}

		start, ok := offsetForPos(fset, binExpr.OpPos)
		if !ok {
			return
		}

		lineStart, lineEnd := nodeLines(fset, binExpr)
		sites = append(sites, Site{
			Start:       start,
			End:         start + len(o.from.String()),
			Replacement: o.to.String(),
			LineStart:   lineStart,
			LineEnd:     lineEnd,
		})
	})

	return sites
}

func isStringLiteral(expr ast.Expr) bool {
	lit, ok := expr.(*ast.BasicLit)
	return ok && lit.Kind == token.STRING
}

const (
	familyArithmetic = "arithmetic"
	familyComparison = "comparison"
	familyLogical    = "logical"
)

func arithmeticOperators() []Operator {
	return pairwise(familyArithmetic, []token.Token{token.ADD, token.SUB, token.MUL, token.QUO, token.REM}, nil)
}

func comparisonOperators() []Operator {
	ordered := []token.Token{token.LSS, token.GTR, token.LEQ, token.GEQ}
	// Ordered operators may become equality checks; equality checks only
	// swap with each other since their operands need not be ordered.
	extra := map[token.Token][]token.Token{
		token.LSS: {token.EQL, token.NEQ},
		token.GTR: {token.EQL, token.NEQ},
		token.LEQ: {token.EQL, token.NEQ},
		token.GEQ: {token.EQL, token.NEQ},
	}

	ops := pairwise(familyComparison, ordered, extra)
	ops = append(ops,
		binaryOperator{family: familyComparison, from: token.EQL, to: token.NEQ},
		binaryOperator{family: familyComparison, from: token.NEQ, to: token.EQL},
	)

	return ops
}

func logicalOperators() []Operator {
	return pairwise(familyLogical, []token.Token{token.LAND, token.LOR}, nil)
}

func pairwise(family string, tokens []token.Token, extra map[token.Token][]token.Token) []Operator {
	var ops []Operator

	for _, from := range tokens {
		for _, to := range tokens {
			if from != to {
				ops = append(ops, binaryOperator{family: family, from: from, to: to})
			}
		}

		for _, to := range extra[from] {
			ops = append(ops, binaryOperator{family: family, from: from, to: to})
		}
	}

	return ops
}
