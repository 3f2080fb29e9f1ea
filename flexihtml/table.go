package flexihtml

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

const MaxItemsPerPage int = 15
const PaginationPageQName string = "pg"
const PaginationMaxButtons int = 11

//Row is one record as it comes back from the storage layer.
type Row map[string]interface{}

//CellFunc renders one cell from a row.
type CellFunc func(row Row) string

//Column is one grid column. Hidden is a tri-state: negative columns always
//render and get no toggle switch, zero is toggleable and visible, positive
//is toggleable and currently hidden.
type Column struct {
	Name      string
	Label     string
	Hidden    int
	Sortable  bool
	Classname string
	Field     string
	Callback  CellFunc
}

type ColumnEntry struct {
	UUID   string
	Column Column
}

type LineEntry struct {
	UUID  string
	Cells map[string]string
}

type Pagination struct {
	Page   int
	Text   string
	Active bool
}

type Table struct {
	labels      []ColumnEntry
	items       []LineEntry
	offset      int
	offsetLimit int
	totalItems  int
	pageQName   string
	paginations []Pagination
}

func NewTable() *Table {
	return &Table{pageQName: PaginationPageQName}
}

func (t *Table) SetPageQName(qname string) {
	if qname != "" {
		t.pageQName = qname
	}
}

func (t *Table) PageQName() string { return t.pageQName }
func (t *Table) Offset() int       { return t.offset }
func (t *Table) OffsetLimit() int  { return t.offsetLimit }
func (t *Table) TotalItems() int   { return t.totalItems }

//Add registers a column. The cell value comes from the named row field; a
//callback wins over the field when both are set. An empty label is derived
//from the column name.
func (t *Table) Add(name string, field string, callback CellFunc, label string, hidden int, sortable bool, classname string) {
	if label == "" {
		label = titleCase(name)
	}
	if field == "" {
		field = name
	}
	t.labels = append(t.labels, ColumnEntry{
		UUID: columnUUID(name),
		Column: Column{
			Name:      name,
			Label:     label,
			Hidden:    hidden,
			Sortable:  sortable,
			Classname: classname,
			Field:     field,
			Callback:  callback,
		},
	})
}

func (t *Table) Labels() []ColumnEntry { return t.labels }
func (t *Table) Items() []LineEntry    { return t.items }
func (t *Table) Paginations() []Pagination {
	return t.paginations
}

//CellString formats a storage value for display. sqlite rows come back as
//int64/float64/[]byte/time.Time/nil through MapScan.
func CellString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

//Fill ingests one page of rows plus the total count and recomputes the row
//map and pagination entries.
func (t *Table) Fill(items []Row, totalItems int, offset int, itemsPerPage int, nbButtons int) *Table {
	if itemsPerPage <= 0 {
		itemsPerPage = MaxItemsPerPage
	}
	if nbButtons <= 0 {
		nbButtons = PaginationMaxButtons
	}
	t.totalItems = totalItems
	t.offset = offset + 1
	t.offsetLimit = offset + itemsPerPage
	t.items = make([]LineEntry, 0, len(items))
	t.paginations = nil

	if totalItems == 0 {
		t.offset = 0
	}
	if t.offsetLimit > totalItems {
		t.offsetLimit = totalItems
	}

	for _, item := range items {
		line := LineEntry{UUID: lineUUID(), Cells: make(map[string]string, len(t.labels))}
		for _, entry := range t.labels {
			if entry.Column.Callback != nil {
				line.Cells[entry.UUID] = entry.Column.Callback(item)
				continue
			}
			if value, ok := item[entry.Column.Field]; ok {
				line.Cells[entry.UUID] = CellString(value)
				continue
			}
			line.Cells[entry.UUID] = entry.Column.Field
		}
		t.items = append(t.items, line)
	}

	if totalItems <= 0 {
		return t
	}

	current := int(math.Ceil(float64(offset)/float64(itemsPerPage))) + 1
	maxButton := int(math.Ceil(float64(totalItems) / float64(itemsPerPage)))
	if current > maxButton {
		current = maxButton
	}
	if current < 1 {
		current = 1
	}
	if nbButtons >= maxButton {
		nbButtons = maxButton
	}

	var pages []int
	switch {
	case float64(current) <= float64(nbButtons)/2:
		for i := 0; i < nbButtons; i++ {
			pages = append(pages, i+1)
		}
	case float64(current) > float64(maxButton)-float64(nbButtons)/2:
		for i := maxButton - nbButtons; i < maxButton; i++ {
			pages = append(pages, i+1)
		}
	default:
		first := current - int(math.Ceil(float64(nbButtons)/2))
		last := current + int(math.Floor(float64(nbButtons)/2))
		for i := first; i < last; i++ {
			pages = append(pages, i+1)
		}
	}

	if len(pages) == 0 {
		return t
	}

	for _, n := range pages {
		t.paginations = append(t.paginations, Pagination{Page: n, Text: strconv.Itoa(n), Active: n == current})
	}
	if t.paginations[0].Page > 1 {
		t.paginations = append([]Pagination{{Page: 1, Text: "1 ... "}}, t.paginations...)
	}
	if t.paginations[len(t.paginations)-1].Page < maxButton {
		t.paginations = append(t.paginations, Pagination{Page: maxButton, Text: " ... " + strconv.Itoa(maxButton)})
	}

	return t
}
