package config

import (
	"sync"

	"github.com/recoilme/pudge"
)

//StateDB holds saved grid state snapshots (column visibility, last search
//parameters) keyed by "{grid}_{user}". Column preferences are not part of
//the grid core; this store is the external home for them.
var StateDB *pudge.Db

var cfglock = sync.RWMutex{}
var configEntries Cfg

func OpenStateDB(file string) (db *pudge.Db, err error) {
	cfg := &pudge.Config{
		SyncInterval: 1} // every second fsync
	mydb, err := pudge.Open(file, cfg)
	return mydb, err
}

//GridState is what the state store remembers between sessions.
type GridState struct {
	HiddenColumns []string
	SearchParams  map[string]string
	Page          int
}

func SaveGridState(key string, state GridState) error {
	if StateDB == nil {
		return nil
	}
	return StateDB.Set(key, state)
}

func GetGridState(key string) (GridState, bool) {
	var state GridState
	if StateDB == nil {
		return state, false
	}
	has, _ := StateDB.Has(key)
	if !has {
		return state, false
	}
	if err := StateDB.Get(key, &state); err != nil {
		return GridState{}, false
	}
	return state, true
}

func UpdateCfg(cfg Cfg) {
	cfglock.Lock()
	configEntries = cfg
	cfglock.Unlock()
}

func ConfigGetGeneral() GeneralConfig {
	cfglock.RLock()
	defer cfglock.RUnlock()
	return configEntries.General
}

func ConfigGetGrid(name string) (GridConfig, bool) {
	cfglock.RLock()
	defer cfglock.RUnlock()
	grid, ok := configEntries.Grid[name]
	return grid, ok
}

func ConfigGetGrids() map[string]GridConfig {
	cfglock.RLock()
	defer cfglock.RUnlock()
	b := make(map[string]GridConfig, len(configEntries.Grid))
	for name, grid := range configEntries.Grid {
		b[name] = grid
	}
	return b
}
