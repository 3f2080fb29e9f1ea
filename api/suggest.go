package api

import (
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/flexihtml/flexihtml/config"
	"github.com/flexihtml/flexihtml/database"
	"github.com/flexihtml/flexihtml/flexihtml"
	gin "github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

//SuggestMinLength mirrors the client side gate. Shorter input gets a
//refusal instead of a table scan.
const SuggestMinLength = 3

const defaultSuggestMaxItems = 10

type apisuggest struct {
	Model  string `json:"model"`
	Column string `json:"column"`
	Value  string `json:"value"`
}

type apidetail struct {
	Model string `json:"model"`
	ID    int64  `json:"id"`
}

var suggestlock = sync.Mutex{}
var suggestLimiter *rate.Limiter
var suggestLimiterSeconds int
var suggestLimiterCalls int

//getSuggestLimiter returns the shared lookup limiter, rebuilt whenever a
//config reload changed the limiter settings.
func getSuggestLimiter() *rate.Limiter {
	suggestlock.Lock()
	defer suggestlock.Unlock()
	cfg := config.ConfigGetGeneral()
	seconds := cfg.Suggestlimiterseconds
	if seconds <= 0 {
		seconds = 1
	}
	calls := cfg.Suggestlimitercalls
	if calls <= 0 {
		calls = 10
	}
	if suggestLimiter == nil || seconds != suggestLimiterSeconds || calls != suggestLimiterCalls {
		suggestLimiterSeconds = seconds
		suggestLimiterCalls = calls
		suggestLimiter = rate.NewLimiter(rate.Every(time.Duration(seconds)*time.Second/time.Duration(calls)), calls)
	}
	return suggestLimiter
}

// @Summary Suggest column values
// @Description Returns distinct values of a registered column matching the typed text
// @Tags grid
// @Accept json
// @Produce json
// @Param request body apisuggest true "lookup"
// @Success 200 {object} string
// @Failure 429 {object} string
// @Router /api/suggest [post]
func apiGridSuggest(c *gin.Context) {
	if ApiAuth(c) == http.StatusUnauthorized {
		return
	}
	var req apisuggest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": err.Error()})
		return
	}
	if !getSuggestLimiter().Allow() {
		c.JSON(http.StatusTooManyRequests, gin.H{"status": false, "message": "too many requests"})
		return
	}

	grid := getGrid(req.Model)
	if grid == nil {
		c.JSON(http.StatusOK, gin.H{"status": false, "message": "model not allowed"})
		return
	}
	column := grid.column(req.Column)
	if column == nil || !column.Suggest {
		c.JSON(http.StatusOK, gin.H{"status": false, "message": "column not allowed"})
		return
	}
	value := strings.TrimSpace(req.Value)
	if len([]rune(value)) < SuggestMinLength {
		c.JSON(http.StatusOK, gin.H{"status": false, "message": "value too short"})
		return
	}

	cfg := config.ConfigGetGeneral()
	maxitems := cfg.SuggestMaxItems
	if maxitems <= 0 {
		maxitems = defaultSuggestMaxItems
	}
	values, err := database.QueryColumnValues(grid.Table, req.Column, database.Query{
		Where:     req.Column + " like ?",
		WhereArgs: []interface{}{"%" + value + "%"},
		OrderBy:   req.Column + " asc",
		Limit:     uint64(maxitems),
	})
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": false, "message": "lookup failed"})
		return
	}
	items := make([]map[string]interface{}, 0, len(values))
	for idx := range values {
		items = append(items, map[string]interface{}{req.Column: values[idx]})
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "items": items})
}

// @Summary Load record details
// @Description Returns the detail pane content for one record of a registered grid
// @Tags grid
// @Accept json
// @Produce json
// @Param request body apidetail true "record"
// @Success 200 {object} string
// @Failure 404 {object} string
// @Router /api/detail [post]
func apiGridDetail(c *gin.Context) {
	if ApiAuth(c) == http.StatusUnauthorized {
		return
	}
	var req apidetail
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	grid := getGrid(req.Model)
	if grid == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "grid not found"})
		return
	}
	items, err := database.QueryRowsMap(grid.Table, database.Query{
		Where:     "id = ?",
		WhereArgs: []interface{}{req.ID},
		Limit:     1,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"title":   grid.Title + " #" + flexihtml.CellString(req.ID),
		"content": renderDetail(grid, items[0]),
	})
}

//renderDetail renders one record as a definition list, declared columns
//first, leftover fields after.
func renderDetail(grid *Grid, item map[string]interface{}) string {
	var html strings.Builder
	html.WriteString(`<dl class="flexipane-record">`)
	seen := make(map[string]bool, len(grid.Columns))
	for _, column := range grid.Columns {
		value, ok := item[column.Name]
		if !ok {
			continue
		}
		seen[column.Name] = true
		html.WriteString("<dt>" + flexihtml.HTMLEncode(columnLabel(column)) + "</dt>")
		html.WriteString("<dd>" + flexihtml.HTMLEncode(flexihtml.CellString(value)) + "</dd>")
	}
	leftover := make([]string, 0, len(item))
	for name := range item {
		if !seen[name] {
			leftover = append(leftover, name)
		}
	}
	sort.Strings(leftover)
	for _, name := range leftover {
		html.WriteString("<dt>" + flexihtml.HTMLEncode(name) + "</dt>")
		html.WriteString("<dd>" + flexihtml.HTMLEncode(flexihtml.CellString(item[name])) + "</dd>")
	}
	html.WriteString("</dl>")
	return html.String()
}
