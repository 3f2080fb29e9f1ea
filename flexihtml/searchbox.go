package flexihtml

import (
	"net/url"
	"strings"

	"github.com/flexihtml/flexihtml/database"
)

//Input kinds a searchbox can be built for. They mirror the storage column
//kinds and decide both the html input and the operator set.
const (
	InputTypeText    = "text"
	InputTypeNumber  = "number"
	InputTypeDate    = "date"
	InputTypeBoolean = "boolean"
	InputTypeEnum    = "enum"
	InputTypeList    = "list"
)

//Option is one entry of an ordered value->label mapping.
type Option struct {
	Value string
	Label string
}

type Options []Option

func (o Options) Get(value string) (string, bool) {
	for idx := range o {
		if o[idx].Value == value {
			return o[idx].Label, true
		}
	}
	return "", false
}

//FilterFunc lets a caller replace the built-in operator handling for one
//searchbox. Returning false falls back to the default handling.
type FilterFunc func(qu *database.Query, column string, exp string, value1 string, value2 string) bool

type Searchbox struct {
	InputName     string
	Label         string
	HelpText      string
	HTMLInputTag  string
	HTMLInputType string
	ExpOptions    Options
	ExpSelected   string
	ValueOptions  Options
	InputValue1   string
	InputValue2   string
	Callback      FilterFunc
}

type SearchboxSet struct {
	items []*Searchbox
}

func NewSearchboxSet() *SearchboxSet {
	return &SearchboxSet{}
}

func (s *SearchboxSet) Items() []*Searchbox { return s.items }

func (s *SearchboxSet) Get(name string) *Searchbox {
	for idx := range s.items {
		if s.items[idx].InputName == name {
			return s.items[idx]
		}
	}
	return nil
}

func textOperators() Options {
	return Options{
		{"", "---"},
		{OpIsEqual, "is equal"},
		{OpIsNotEqual, "is not equal"},
		{OpIsLike, "is like"},
		{OpIsNotLike, "is not like"},
		{OpIsNull, "is null"},
		{OpIsNotNull, "is not null"},
	}
}

func numericOperators() Options {
	return Options{
		{"", "---"},
		{OpIsEqual, "is equal"},
		{OpIsNotEqual, "is not equal"},
		{OpIsLessThan, "is less than"},
		{OpIsLessEqualThan, "is less equal than"},
		{OpIsGreaterThan, "is greater than"},
		{OpIsGreaterEqualThan, "is greater equal than"},
		{OpIsBetween, "is between .. and .."},
		{OpIsNotBetween, "is not between .. and .."},
		{OpIsNull, "is null"},
		{OpIsNotNull, "is not null"},
	}
}

func selectOperators() Options {
	return Options{
		{"", "---"},
		{OpIsEqual, "is"},
		{OpIsNotEqual, "is not"},
	}
}

func listOperators() Options {
	return Options{
		{"", "---"},
		{OpIsIn, "is in"},
		{OpIsNotIn, "is not in"},
	}
}

//Add registers a searchbox for a column of the given kind. Unknown kinds
//are ignored, matching how the original skips unsupported column types.
func (s *SearchboxSet) Add(column string, kind string, label string, helptext string) *Searchbox {
	box := &Searchbox{
		InputName: column,
		Label:     label,
		HelpText:  helptext,
	}
	switch kind {
	case InputTypeText:
		box.HTMLInputTag = "textarea"
		box.ExpOptions = textOperators()
	case InputTypeNumber:
		box.HTMLInputTag = "input"
		box.HTMLInputType = "number"
		box.ExpOptions = numericOperators()
	case InputTypeDate:
		box.HTMLInputTag = "input"
		box.HTMLInputType = "date"
		box.ExpOptions = numericOperators()
	case InputTypeBoolean:
		box.HTMLInputTag = "select"
		box.ExpOptions = selectOperators()
		box.ValueOptions = Options{{"0", "False"}, {"1", "True"}}
	case InputTypeEnum:
		box.HTMLInputTag = "select"
		box.ExpOptions = selectOperators()
	case InputTypeList:
		box.HTMLInputTag = "textarea"
		box.ExpOptions = listOperators()
	default:
		return nil
	}
	s.items = append(s.items, box)
	return box
}

//Apply reads the three derived query parameters of every searchbox from
//params and appends the matching WHERE fragments to qu. Boxes whose first
//value is blank are skipped entirely.
func (s *SearchboxSet) Apply(qu *database.Query, params url.Values) {
	for _, box := range s.items {
		value1 := strings.TrimSpace(params.Get(box.InputName + "_sb1"))
		if value1 == "" {
			continue
		}
		value2 := strings.TrimSpace(params.Get(box.InputName + "_sb2"))
		exp := strings.TrimSpace(params.Get(box.InputName + "_sb0"))
		box.InputValue1 = value1
		box.InputValue2 = value2
		box.ExpSelected = exp

		if box.Callback != nil {
			if box.Callback(qu, box.InputName, exp, value1, value2) {
				continue
			}
		}
		applyOperator(qu, box.InputName, exp, value1, value2)
	}
}

func andWhere(qu *database.Query, where string, args ...interface{}) {
	if qu.Where != "" {
		qu.Where += " and "
	}
	qu.Where += where
	qu.WhereArgs = append(qu.WhereArgs, args...)
}

func applyOperator(qu *database.Query, column string, exp string, value1 string, value2 string) {
	switch exp {
	case OpIsEqual:
		andWhere(qu, column+" = ?", value1)
	case OpIsNotEqual:
		andWhere(qu, column+" != ?", value1)
	case OpIsLessThan:
		andWhere(qu, column+" < ?", value1)
	case OpIsLessEqualThan:
		andWhere(qu, column+" <= ?", value1)
	case OpIsGreaterThan:
		andWhere(qu, column+" > ?", value1)
	case OpIsGreaterEqualThan:
		andWhere(qu, column+" >= ?", value1)
	case OpIsLike:
		andWhere(qu, column+" like ?", "%"+value1+"%")
	case OpIsNotLike:
		andWhere(qu, column+" not like ?", "%"+value1+"%")
	case OpIsNull:
		andWhere(qu, column+" is null")
	case OpIsNotNull:
		andWhere(qu, column+" is not null")
	case OpIsBetween, OpIsNotBetween:
		if value2 == "" {
			return
		}
		if exp == OpIsBetween {
			andWhere(qu, column+" between ? and ?", value1, value2)
		} else {
			andWhere(qu, column+" not between ? and ?", value1, value2)
		}
	case OpIsIn, OpIsNotIn:
		values := strings.Split(value1, ",")
		marks := strings.TrimSuffix(strings.Repeat("?,", len(values)), ",")
		args := make([]interface{}, 0, len(values))
		for _, value := range values {
			args = append(args, strings.TrimSpace(value))
		}
		if exp == OpIsIn {
			andWhere(qu, column+" in ("+marks+")", args...)
		} else {
			andWhere(qu, column+" not in ("+marks+")", args...)
		}
	}
}
