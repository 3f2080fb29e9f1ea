package api

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/flexihtml/flexihtml/config"
	"github.com/flexihtml/flexihtml/database"
	"github.com/flexihtml/flexihtml/flexihtml"
	"github.com/flexihtml/flexihtml/logger"
	gin "github.com/gin-gonic/gin"
)

//GridColumn declares one column of a registered grid: how it renders in
//the table and, when Kind is set, which searchbox it gets. Suggest opts
//the column into the suggestion endpoint's whitelist.
type GridColumn struct {
	Name     string
	Label    string
	Kind     string
	Hidden   int
	Sortable bool
	Suggest  bool
	Callback flexihtml.CellFunc
}

//Grid is one registered admin grid. Only registered grids are reachable
//through the api, and only their declared columns can be sorted, searched
//or suggested on.
type Grid struct {
	Name        string
	Table       string
	Title       string
	Description string
	Columns     []GridColumn
}

var gridlock = sync.RWMutex{}
var grids = map[string]*Grid{}

//RegisterGrid makes a grid reachable through the api. Table and paging
//settings from the configuration win over the registered defaults.
func RegisterGrid(grid *Grid) {
	gridlock.Lock()
	grids[grid.Name] = grid
	gridlock.Unlock()
}

func getGrid(name string) *Grid {
	gridlock.RLock()
	defer gridlock.RUnlock()
	return grids[name]
}

func (g *Grid) column(name string) *GridColumn {
	for idx := range g.Columns {
		if g.Columns[idx].Name == name {
			return &g.Columns[idx]
		}
	}
	return nil
}

func AddGridRoutes(rg *gin.RouterGroup) {
	rg.GET("/grid/:name", apiGridPage)
	rg.POST("/grid/:name/state", apiGridStateSave)
	rg.GET("/grid/:name/state", apiGridStateGet)
	rg.POST("/suggest", apiGridSuggest)
	rg.POST("/detail", apiGridDetail)
}

func ApiAuth(c *gin.Context) int {
	cfg := config.ConfigGetGeneral()
	if cfg.WebApiKey == "" {
		return http.StatusOK
	}
	if queryParam, ok := c.GetQuery("apikey"); ok {
		if queryParam == cfg.WebApiKey {
			return http.StatusOK
		}
	}
	c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	c.AbortWithStatus(http.StatusUnauthorized)
	return http.StatusUnauthorized
}

//buildGridPage assembles the page object and runs the query for one grid
//request. Sort and search parameters only take effect for declared
//columns.
func buildGridPage(grid *Grid, gridcfg config.GridConfig, params url.Values) (*flexihtml.Flexihtml, error) {
	page := flexihtml.New(grid.Title, grid.Description)
	page.Breadcrumb().Add("Home", "/")
	page.Breadcrumb().Add(grid.Title, "/api/grid/"+grid.Name)

	table := page.Table()
	if gridcfg.PaginationQName != "" {
		table.SetPageQName(gridcfg.PaginationQName)
	} else {
		table.SetPageQName(logger.StringToSlug(grid.Name) + "_pg")
	}
	for _, column := range grid.Columns {
		table.Add(column.Name, "", column.Callback, column.Label, column.Hidden, column.Sortable, "")
		if column.Kind != "" {
			page.Searchbox().Add(column.Name, column.Kind, columnLabel(column), "")
		}
	}

	var qu database.Query
	page.Searchbox().Apply(&qu, params)

	sort := firstParam(params, "sort")
	if column := grid.column(sort); column != nil && column.Sortable {
		order := "asc"
		if firstParam(params, "order") == "desc" {
			order = "desc"
		}
		qu.OrderBy = sort + " " + order
	}

	itemsPerPage := gridcfg.ItemsPerPage
	if itemsPerPage <= 0 {
		itemsPerPage = flexihtml.MaxItemsPerPage
	}
	currentPage, _ := strconv.Atoi(firstParam(params, table.PageQName()))
	if currentPage < 1 {
		currentPage = 1
	}
	offset := (currentPage - 1) * itemsPerPage

	totalItems, err := database.CountRows(grid.Table, qu)
	if err != nil {
		return nil, err
	}
	if offset >= totalItems {
		offset = 0
	}
	qu.Limit = uint64(itemsPerPage)
	qu.Offset = uint64(offset)
	items, err := database.QueryRowsMap(grid.Table, qu)
	if err != nil {
		return nil, err
	}
	rows := make([]flexihtml.Row, 0, len(items))
	for idx := range items {
		rows = append(rows, flexihtml.Row(items[idx]))
	}
	table.Fill(rows, totalItems, offset, itemsPerPage, gridcfg.PaginationButtons)
	return page, nil
}

func columnLabel(column GridColumn) string {
	if column.Label != "" {
		return column.Label
	}
	return strings.Title(strings.ReplaceAll(column.Name, "_", " "))
}

func firstParam(params url.Values, name string) string {
	return strings.TrimSpace(params.Get(name))
}

// @Summary Show a grid
// @Description Renders one registered grid with its search form, table and pagination
// @Tags grid
// @Produce html
// @Param name path string true "grid name"
// @Success 200 {object} string
// @Failure 404 {object} string
// @Router /api/grid/{name} [get]
func apiGridPage(c *gin.Context) {
	if ApiAuth(c) == http.StatusUnauthorized {
		return
	}
	grid := getGrid(c.Param("name"))
	if grid == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "grid not found"})
		return
	}
	gridcfg, _ := config.ConfigGetGrid(grid.Name)

	params := c.Request.URL.Query()
	page, err := buildGridPage(grid, gridcfg, params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	table := page.Table()
	c.HTML(http.StatusOK, "grid", gin.H{
		"title":       page.Title(),
		"description": page.Description(),
		"logo":        page.LogoImage(),
		"breadcrumb":  page.Breadcrumb().Items(),
		"tabs":        page.Tabs().Items(),
		"searchboxes": template.HTML(page.Searchbox().RenderSearchboxes(grid.Name, "/api/grid/"+grid.Name)),
		"switches":    template.HTML(table.RenderSwitches()),
		"table":       template.HTML(table.RenderTable(c.Request.URL.Query())),
		"pagination":  template.HTML(table.RenderPaginations(c.Request.URL.Query())),
		"detailpane":  template.HTML(flexihtml.RenderDetailPane()),
		"offset":      table.Offset(),
		"offsetlimit": table.OffsetLimit(),
		"totalitems":  table.TotalItems(),
	})
}
