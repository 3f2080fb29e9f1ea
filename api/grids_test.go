package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/flexihtml/flexihtml/config"
	"github.com/flexihtml/flexihtml/database"
	"github.com/flexihtml/flexihtml/flexihtml"
	gin "github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	dir, err := os.MkdirTemp("", "flexihtml")
	if err != nil {
		os.Exit(1)
	}
	defer os.RemoveAll(dir)
	if err := os.Chdir(dir); err != nil {
		os.Exit(1)
	}
	if err := os.MkdirAll("databases", 0o777); err != nil {
		os.Exit(1)
	}

	config.UpdateCfg(config.Cfg{
		General: config.GeneralConfig{
			Suggestlimiterseconds: 1,
			Suggestlimitercalls:   1000,
			SuggestMaxItems:       5,
		},
		Grid: map[string]config.GridConfig{
			"products": {Name: "products", Table: "products", ItemsPerPage: 5, PaginationQName: "pg", PaginationButtons: 5},
		},
	})
	config.StateDB, _ = config.OpenStateDB("state.db")

	database.InitDb("info")
	database.DB.MustExec(`CREATE TABLE products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		category TEXT NOT NULL,
		price REAL NOT NULL DEFAULT 0,
		stock INTEGER NOT NULL DEFAULT 0,
		active INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP)`)
	for i := 1; i <= 12; i++ {
		title := "Widget " + flexihtml.CellString(int64(i))
		category := "tools"
		if i%2 == 0 {
			category = "parts"
		}
		database.DB.MustExec(`INSERT INTO products (title, category, price, stock, active) VALUES (?, ?, ?, ?, ?)`,
			title, category, float64(i)*2.5, i*10, i%2)
	}

	RegisterGrid(&Grid{
		Name:        "products",
		Table:       "products",
		Title:       "Products",
		Description: "All products",
		Columns: []GridColumn{
			{Name: "id", Sortable: true},
			{Name: "title", Kind: flexihtml.InputTypeText, Sortable: true, Suggest: true},
			{Name: "category", Kind: flexihtml.InputTypeList, Suggest: true},
			{Name: "price", Kind: flexihtml.InputTypeNumber, Sortable: true},
			{Name: "stock", Kind: flexihtml.InputTypeNumber, Hidden: 1},
			{Name: "active", Kind: flexihtml.InputTypeBoolean},
		},
	})

	os.Exit(m.Run())
}

func testRouter() *gin.Engine {
	router := gin.New()
	AddGridRoutes(router.Group("/api"))
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("encode payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestBuildGridPage(t *testing.T) {
	grid := getGrid("products")
	gridcfg, _ := config.ConfigGetGrid("products")

	page, err := buildGridPage(grid, gridcfg, url.Values{})
	if err != nil {
		t.Fatalf("buildGridPage = %v", err)
	}
	if page.Table().TotalItems() != 12 {
		t.Errorf("total items = %d, want 12", page.Table().TotalItems())
	}
	if len(page.Table().Items()) != 5 {
		t.Errorf("page size = %d, want 5", len(page.Table().Items()))
	}
	if len(page.Searchbox().Items()) != 5 {
		t.Errorf("searchboxes = %d, want 5", len(page.Searchbox().Items()))
	}
}

func TestBuildGridPageSearch(t *testing.T) {
	grid := getGrid("products")
	gridcfg, _ := config.ConfigGetGrid("products")

	page, err := buildGridPage(grid, gridcfg, url.Values{
		"category_sb0": {flexihtml.OpIsIn},
		"category_sb1": {"parts"},
	})
	if err != nil {
		t.Fatalf("buildGridPage = %v", err)
	}
	if page.Table().TotalItems() != 6 {
		t.Errorf("filtered total = %d, want 6", page.Table().TotalItems())
	}

	page, err = buildGridPage(grid, gridcfg, url.Values{
		"price_sb0": {flexihtml.OpIsBetween},
		"price_sb1": {"5"},
		"price_sb2": {"10"},
	})
	if err != nil {
		t.Fatalf("buildGridPage = %v", err)
	}
	if page.Table().TotalItems() != 3 {
		t.Errorf("range total = %d, want 3", page.Table().TotalItems())
	}
}

func TestBuildGridPageSortWhitelist(t *testing.T) {
	grid := getGrid("products")
	gridcfg, _ := config.ConfigGetGrid("products")

	// sorting by an undeclared or unsortable column must not reach the db
	for _, sort := range []string{"category", "nope", "id; drop table products"} {
		if _, err := buildGridPage(grid, gridcfg, url.Values{"sort": {sort}, "order": {"asc"}}); err != nil {
			t.Errorf("sort=%q: %v", sort, err)
		}
	}

	page, err := buildGridPage(grid, gridcfg, url.Values{"sort": {"price"}, "order": {"desc"}})
	if err != nil {
		t.Fatalf("buildGridPage = %v", err)
	}
	labels := page.Table().Labels()
	first := page.Table().Items()[0]
	if first.Cells[labels[3].UUID] != "30" {
		t.Errorf("first price = %q, want the highest", first.Cells[labels[3].UUID])
	}
}

func TestApiGridSuggest(t *testing.T) {
	router := testRouter()

	recorder := postJSON(t, router, "/api/suggest", apisuggest{Model: "products", Column: "category", Value: "par"})
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	var answer struct {
		Status bool                     `json:"status"`
		Items  []map[string]interface{} `json:"items"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &answer); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !answer.Status || len(answer.Items) != 1 || answer.Items[0]["category"] != "parts" {
		t.Errorf("answer = %+v", answer)
	}
}

func TestApiGridSuggestLimit(t *testing.T) {
	router := testRouter()

	recorder := postJSON(t, router, "/api/suggest", apisuggest{Model: "products", Column: "title", Value: "Widget"})
	var answer struct {
		Status bool                     `json:"status"`
		Items  []map[string]interface{} `json:"items"`
	}
	json.Unmarshal(recorder.Body.Bytes(), &answer)
	if !answer.Status || len(answer.Items) != 5 {
		t.Errorf("got %d items, want the configured maximum of 5", len(answer.Items))
	}
}

func TestApiGridSuggestRefusals(t *testing.T) {
	router := testRouter()

	tests := []struct {
		name string
		req  apisuggest
	}{
		{"unknown model", apisuggest{Model: "users", Column: "title", Value: "abc"}},
		{"undeclared column", apisuggest{Model: "products", Column: "nope", Value: "abc"}},
		{"column without suggest", apisuggest{Model: "products", Column: "price", Value: "abc"}},
		{"value too short", apisuggest{Model: "products", Column: "title", Value: "ab"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := postJSON(t, router, "/api/suggest", tt.req)
			if recorder.Code != http.StatusOK {
				t.Fatalf("status = %d", recorder.Code)
			}
			var answer struct {
				Status  bool   `json:"status"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(recorder.Body.Bytes(), &answer); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if answer.Status || answer.Message == "" {
				t.Errorf("answer = %+v, want a refusal with a message", answer)
			}
		})
	}
}

func TestApiGridDetail(t *testing.T) {
	router := testRouter()

	recorder := postJSON(t, router, "/api/detail", apidetail{Model: "products", ID: 3})
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	var answer struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &answer); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if answer.Title != "Products #3" {
		t.Errorf("title = %q", answer.Title)
	}
	if !strings.Contains(answer.Content, "Widget 3") {
		t.Errorf("content = %q, want the record values", answer.Content)
	}
}

func TestRenderDetailLeftoverOrder(t *testing.T) {
	grid := getGrid("products")
	item := map[string]interface{}{
		"title":      "Widget 3",
		"updated_at": "2024-05-17 09:30:00",
		"created_at": "2024-05-01 08:00:00",
	}
	content := renderDetail(grid, item)
	created := strings.Index(content, "created_at")
	updated := strings.Index(content, "updated_at")
	if created == -1 || updated == -1 {
		t.Fatalf("undeclared fields missing from %q", content)
	}
	if created > updated {
		t.Error("undeclared fields not emitted in sorted order")
	}
	if strings.Index(content, "Title") > created {
		t.Error("declared columns not emitted before the undeclared fields")
	}
}

func TestSuggestLimiterFollowsConfig(t *testing.T) {
	general := config.ConfigGetGeneral()
	defer config.UpdateCfg(config.Cfg{General: general, Grid: config.ConfigGetGrids()})

	first := getSuggestLimiter()
	if getSuggestLimiter() != first {
		t.Error("limiter rebuilt without a config change")
	}

	general.Suggestlimitercalls++
	config.UpdateCfg(config.Cfg{General: general, Grid: config.ConfigGetGrids()})
	if getSuggestLimiter() == first {
		t.Error("limiter kept after a config reload changed the settings")
	}
}

func TestApiGridDetailMissing(t *testing.T) {
	router := testRouter()

	recorder := postJSON(t, router, "/api/detail", apidetail{Model: "products", ID: 9999})
	if recorder.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", recorder.Code)
	}
	recorder = postJSON(t, router, "/api/detail", apidetail{Model: "users", ID: 1})
	if recorder.Code != http.StatusNotFound {
		t.Errorf("unknown grid status = %d, want 404", recorder.Code)
	}
}

func TestApiGridState(t *testing.T) {
	router := testRouter()

	state := config.GridState{HiddenColumns: []string{"stock"}, Page: 2, SearchParams: map[string]string{"title_sb1": "Widget"}}
	recorder := postJSON(t, router, "/api/grid/products/state", state)
	if recorder.Code != http.StatusOK {
		t.Fatalf("save status = %d", recorder.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/grid/products/state", nil)
	getrec := httptest.NewRecorder()
	router.ServeHTTP(getrec, req)
	if getrec.Code != http.StatusOK {
		t.Fatalf("load status = %d", getrec.Code)
	}
	var loaded config.GridState
	if err := json.Unmarshal(getrec.Body.Bytes(), &loaded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if loaded.Page != 2 || len(loaded.HiddenColumns) != 1 || loaded.SearchParams["title_sb1"] != "Widget" {
		t.Errorf("loaded = %+v", loaded)
	}
}
