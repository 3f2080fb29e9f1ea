// koanf_api
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
)

//Main Config

type MainConfig struct {
	General GeneralConfig `koanf:"general"`
	Grids   []GridConfig  `koanf:"grids"`
}

type GeneralConfig struct {
	LogLevel              string `koanf:"LogLevel"`
	DBLogLevel            string `koanf:"DBLogLevel"`
	LogFileSize           int    `koanf:"LogFileSize"`
	LogFileCount          int    `koanf:"LogFileCount"`
	LogCompress           bool   `koanf:"LogCompress"`
	WebPort               string `koanf:"webport"`
	WebApiKey             string `koanf:"webapikey"`
	EnableFileWatcher     bool   `koanf:"EnableFileWatcher"`
	MaxDatabaseBackups    int    `koanf:"MaxDatabaseBackups"`
	BackupInterval        string `koanf:"BackupInterval"`
	Suggestlimiterseconds int    `koanf:"suggestlimiterseconds"`
	Suggestlimitercalls   int    `koanf:"suggestlimitercalls"`
	SuggestMaxItems       int    `koanf:"SuggestMaxItems"`
	SchedulerDisabled     bool   `koanf:"SchedulerDisabled"`
}

//GridConfig describes one admin grid instance: the table it reads and how
//its pagination is addressed in the query string.
type GridConfig struct {
	Name              string `koanf:"name"`
	Table             string `koanf:"table"`
	Title             string `koanf:"title"`
	Description       string `koanf:"description"`
	ItemsPerPage      int    `koanf:"items_per_page"`
	PaginationQName   string `koanf:"pagination_qname"`
	PaginationButtons int    `koanf:"pagination_buttons"`
}

type Cfg struct {
	General GeneralConfig
	Grid    map[string]GridConfig
}

const Configfile string = "config.toml"

func LoadCfg(configfile string) (Cfg, *file.File, error) {
	var k = koanf.New(".")

	f := file.Provider(configfile)
	if strings.Contains(configfile, "toml") {
		err := k.Load(f, toml.Parser())
		if err != nil {
			fmt.Println("Error loading config. ", err)
			return Cfg{}, nil, err
		}
	}

	if k.Sprint() == "" {
		fmt.Println("Error loading config. Config Empty")
		return Cfg{}, nil, errors.New("error loading config")
	}
	cfg := LoadCfgData(f, configfile)
	return cfg, f, nil
}

func Watch(f *file.File, parser string) {
	f.Watch(func(event interface{}, err error) {
		if err != nil {
			log.Printf("watch error: %v", err)
			return
		}

		log.Println("cfg reloaded")
		time.Sleep(time.Duration(2) * time.Second)
		UpdateCfg(LoadCfgData(f, parser))
	})
}

func LoadCfgData(f *file.File, parser string) Cfg {
	var k = koanf.New(".")

	if strings.Contains(parser, "toml") {
		err := k.Load(f, toml.Parser())
		if err != nil {
			fmt.Println("Error loading config. ", err)
			return Cfg{}
		}
	}

	if k.Sprint() == "" {
		fmt.Println("Error loading config. Config Empty")
		return Cfg{}
	}
	cfg := Cfg{}
	var out MainConfig
	if err := k.Unmarshal("", &out); err != nil {
		fmt.Println("Error loading config. ", err)
		return Cfg{}
	}
	cfg.General = out.General
	structout := make(map[string]GridConfig, len(out.Grids))
	for idx := range out.Grids {
		structout[out.Grids[idx].Name] = out.Grids[idx]
	}
	cfg.Grid = structout
	return cfg
}
