package flexihtml

//Flexihtml bundles everything one admin page needs: chrome lists (tabs,
//breadcrumb), the grid table and its searchboxes.
type Flexihtml struct {
	logoImage   string
	title       string
	description string

	tabs       *Tabs
	breadcrumb *Breadcrumb
	table      *Table
	searchbox  *SearchboxSet
}

func New(title string, description string) *Flexihtml {
	return &Flexihtml{
		logoImage:   "/public/images/logo.svg",
		title:       title,
		description: description,
		tabs:        &Tabs{},
		breadcrumb:  &Breadcrumb{},
		table:       NewTable(),
		searchbox:   NewSearchboxSet(),
	}
}

func (f *Flexihtml) LogoImage() string        { return f.logoImage }
func (f *Flexihtml) Title() string            { return f.title }
func (f *Flexihtml) Description() string      { return f.description }
func (f *Flexihtml) Tabs() *Tabs              { return f.tabs }
func (f *Flexihtml) Breadcrumb() *Breadcrumb  { return f.breadcrumb }
func (f *Flexihtml) Table() *Table            { return f.table }
func (f *Flexihtml) Searchbox() *SearchboxSet { return f.searchbox }

func (f *Flexihtml) SetLogoImage(logoImage string)     { f.logoImage = logoImage }
func (f *Flexihtml) SetTitle(title string)             { f.title = title }
func (f *Flexihtml) SetDescription(description string) { f.description = description }

type Tab struct {
	Path  string
	Label string
	Icon  string
}

type Tabs struct {
	items []Tab
}

func (t *Tabs) Add(path string, label string, icon string) {
	if icon == "" {
		icon = `<i class="fa-solid fa-desktop"></i>`
	}
	t.items = append(t.items, Tab{Path: path, Label: label, Icon: icon})
}

func (t *Tabs) Items() []Tab { return t.items }

type Crumb struct {
	Path  string
	Label string
}

type Breadcrumb struct {
	items []Crumb
}

func (b *Breadcrumb) Add(label string, path string) {
	b.items = append(b.items, Crumb{Path: path, Label: label})
}

func (b *Breadcrumb) Items() []Crumb { return b.items }
