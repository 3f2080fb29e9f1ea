package flexihtml

//Comparison operator codes carried in the {name}_sb0 query parameter.
const (
	OpIsEqual            = "is_equal"
	OpIsNotEqual         = "is_not_equal"
	OpIsLessThan         = "is_less_than"
	OpIsLessEqualThan    = "is_less_equal_than"
	OpIsGreaterThan      = "is_greater_than"
	OpIsGreaterEqualThan = "is_greater_equal_than"
	OpIsLike             = "is_like"
	OpIsNotLike          = "is_not_like"
	OpIsNull             = "is_null"
	OpIsNotNull          = "is_not_null"
	OpIsBetween          = "is_between"
	OpIsNotBetween       = "is_not_between"
	OpIsIn               = "is_in"
	OpIsNotIn            = "is_not_in"
)

//Layout describes how the two value inputs of a searchbox are arranged for
//one operator: the grid spans of both containers and whether the second
//input takes part at all.
type Layout struct {
	FirstSpan     int
	SecondSpan    int
	SecondEnabled bool
}

func IsRangeOperator(code string) bool {
	return code == OpIsBetween || code == OpIsNotBetween
}

//LayoutFor is the one place the operator-to-layout rule lives. The server
//renderer and the client operator controller both call it, so the initial
//markup and any later client recomputation cannot disagree.
func LayoutFor(code string) Layout {
	if IsRangeOperator(code) {
		return Layout{FirstSpan: 6, SecondSpan: 6, SecondEnabled: true}
	}
	return Layout{FirstSpan: 12, SecondSpan: 0, SecondEnabled: false}
}
