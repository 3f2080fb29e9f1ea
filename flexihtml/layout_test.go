package flexihtml

import "testing"

func TestLayoutFor(t *testing.T) {
	rangeOps := []string{OpIsBetween, OpIsNotBetween}
	for _, op := range rangeOps {
		layout := LayoutFor(op)
		if layout.FirstSpan != 6 || layout.SecondSpan != 6 || !layout.SecondEnabled {
			t.Errorf("LayoutFor(%s) = %+v, want both halves enabled", op, layout)
		}
	}

	singleOps := []string{
		"", OpIsEqual, OpIsNotEqual, OpIsLessThan, OpIsLessEqualThan,
		OpIsGreaterThan, OpIsGreaterEqualThan, OpIsLike, OpIsNotLike,
		OpIsNull, OpIsNotNull, OpIsIn, OpIsNotIn, "bogus",
	}
	for _, op := range singleOps {
		layout := LayoutFor(op)
		if layout.FirstSpan != 12 || layout.SecondEnabled {
			t.Errorf("LayoutFor(%q) = %+v, want full width and second input off", op, layout)
		}
	}
}

func TestIsRangeOperator(t *testing.T) {
	if !IsRangeOperator(OpIsBetween) || !IsRangeOperator(OpIsNotBetween) {
		t.Error("between operators not recognized as range operators")
	}
	if IsRangeOperator(OpIsEqual) || IsRangeOperator("") {
		t.Error("non-range operator recognized as range operator")
	}
}
