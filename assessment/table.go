package assessment

import "cmp"

// step is one row of a stepTable: inputs matching bound map to value.
type step[T cmp.Ordered, V any] struct {
	bound T
	value V
}

// stepTable is an ordered step function.  Rows are tried in order and the first row whose bound matches the
// input wins; inputs that match no row get the otherwise value.
type stepTable[T cmp.Ordered, V any] struct {
	match     func(x, bound T) bool
	steps     []step[T, V]
	otherwise V
}

func (t stepTable[T, V]) lookup(x T) V {
	for _, s := range t.steps {
		if t.match(x, s.bound) {
			return s.value
		}
	}
	return t.otherwise
}

// below builds a table whose rows match x < bound.  Rows must be in ascending bound order.
func below[T cmp.Ordered, V any](otherwise V, steps ...step[T, V]) stepTable[T, V] {
	return stepTable[T, V]{match: func(x, bound T) bool { return x < bound }, steps: steps, otherwise: otherwise}
}

// atMost builds a table whose rows match x <= bound.  Rows must be in ascending bound order.
func atMost[T cmp.Ordered, V any](otherwise V, steps ...step[T, V]) stepTable[T, V] {
	return stepTable[T, V]{match: func(x, bound T) bool { return x <= bound }, steps: steps, otherwise: otherwise}
}

// atLeast builds a table whose rows match x >= bound.  Rows must be in descending bound order.
func atLeast[T cmp.Ordered, V any](otherwise V, steps ...step[T, V]) stepTable[T, V] {
	return stepTable[T, V]{match: func(x, bound T) bool { return x >= bound }, steps: steps, otherwise: otherwise}
}

// bpBand is one row of a blood pressure table.  A reading matches when the systolic value is below
// systolicBelow and/or the diastolic value is below diastolicBelow, depending on requireBoth.
type bpBand struct {
	systolicBelow  int
	diastolicBelow int
	requireBoth    bool
	points         int
}

func (b bpBand) matches(systolic, diastolic int) bool {
	if b.requireBoth {
		return systolic < b.systolicBelow && diastolic < b.diastolicBelow
	}
	return systolic < b.systolicBelow || diastolic < b.diastolicBelow
}

// bpTable is an ordered, first-match-wins list of bands.
type bpTable struct {
	bands     []bpBand
	otherwise int
}

func (t bpTable) lookup(systolic, diastolic int) int {
	for _, b := range t.bands {
		if b.matches(systolic, diastolic) {
			return b.points
		}
	}
	return t.otherwise
}
