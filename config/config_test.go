package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testToml = `
[general]
LogLevel = "debug"
webport = "9090"
MaxDatabaseBackups = 3
suggestlimiterseconds = 10
suggestlimitercalls = 20
SuggestMaxItems = 7

[[grids]]
name = "products"
table = "products"
title = "Products"
items_per_page = 10
pagination_qname = "products_pg"
pagination_buttons = 7

[[grids]]
name = "orders"
table = "orders"
title = "Orders"
`

func TestLoadCfg(t *testing.T) {
	dir := t.TempDir()
	configfile := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(configfile, []byte(testToml), 0o666); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, err := LoadCfg(configfile)
	if err != nil {
		t.Fatalf("LoadCfg = %v", err)
	}
	if cfg.General.LogLevel != "debug" || cfg.General.WebPort != "9090" {
		t.Errorf("general = %+v", cfg.General)
	}
	if cfg.General.SuggestMaxItems != 7 {
		t.Errorf("SuggestMaxItems = %d, want 7", cfg.General.SuggestMaxItems)
	}
	if len(cfg.Grid) != 2 {
		t.Fatalf("got %d grids, want 2", len(cfg.Grid))
	}
	grid := cfg.Grid["products"]
	if grid.Table != "products" || grid.ItemsPerPage != 10 || grid.PaginationQName != "products_pg" {
		t.Errorf("products grid = %+v", grid)
	}
}

func TestLoadCfgMissing(t *testing.T) {
	if _, _, err := LoadCfg(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("LoadCfg on a missing file returned nil")
	}
}

func TestConfigAccessors(t *testing.T) {
	UpdateCfg(Cfg{
		General: GeneralConfig{WebPort: "8080"},
		Grid:    map[string]GridConfig{"products": {Name: "products", Table: "products"}},
	})
	if ConfigGetGeneral().WebPort != "8080" {
		t.Error("general accessor did not return the updated config")
	}
	if _, ok := ConfigGetGrid("products"); !ok {
		t.Error("grid accessor missed a configured grid")
	}
	if _, ok := ConfigGetGrid("nope"); ok {
		t.Error("grid accessor returned an unconfigured grid")
	}
	if len(ConfigGetGrids()) != 1 {
		t.Error("grids accessor wrong size")
	}
}

func TestGridStateStore(t *testing.T) {
	db, err := OpenStateDB(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("OpenStateDB = %v", err)
	}
	old := StateDB
	StateDB = db
	defer func() {
		StateDB = old
		db.Close()
	}()

	state := GridState{HiddenColumns: []string{"stock"}, Page: 3, SearchParams: map[string]string{"title_sb1": "abc"}}
	if err := SaveGridState("products", state); err != nil {
		t.Fatalf("SaveGridState = %v", err)
	}
	loaded, ok := GetGridState("products")
	if !ok {
		t.Fatal("saved state not found")
	}
	if loaded.Page != 3 || len(loaded.HiddenColumns) != 1 || loaded.SearchParams["title_sb1"] != "abc" {
		t.Errorf("loaded = %+v", loaded)
	}
	if _, ok := GetGridState("nope"); ok {
		t.Error("unknown key returned a state")
	}
}
