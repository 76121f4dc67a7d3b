package mutagens

import "sync"

var registry = sync.OnceValues(func() ([]Operator, map[string]Operator) {
	var all []Operator

	all = append(all, arithmeticOperators()...)
	all = append(all, comparisonOperators()...)
	all = append(all, logicalOperators()...)
	all = append(all, booleanOperators()...)
	all = append(all, unaryOperators()...)

	byName := make(map[string]Operator, len(all))
	for _, op := range all {
		byName[op.Name()] = op
	}

	return all, byName
})

// All returns every registered operator in a stable order.
func All() []Operator {
	all, _ := registry()
	return all
}

// Lookup returns the operator registered under name.
func Lookup(name string) (Operator, bool) {
	_, byName := registry()
	op, ok := byName[name]

	return op, ok
}
