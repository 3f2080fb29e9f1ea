package main

import (
	"context"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/flexihtml/flexihtml/api"
	"github.com/flexihtml/flexihtml/config"
	"github.com/flexihtml/flexihtml/database"
	"github.com/flexihtml/flexihtml/flexihtml"
	"github.com/flexihtml/flexihtml/logger"
	"github.com/flexihtml/flexihtml/scheduler"
	"github.com/recoilme/pudge"

	"github.com/DeanThompson/ginpprof"
	"github.com/foolin/goview"
	"github.com/foolin/goview/supports/ginview"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginlog "github.com/toorop/gin-logrus"
)

// @title flexihtml admin grids

func main() {
	statedb, _ := config.OpenStateDB("state.db")
	config.StateDB = statedb
	pudge.BackupAll("")
	os.Mkdir("./backup", 0777)
	os.Mkdir("./databases", 0777)

	cfg, f, errcfg := config.LoadCfg(config.Configfile)
	config.UpdateCfg(cfg)
	cfg_general := config.ConfigGetGeneral()

	if cfg_general.WebPort == "" {
		log.Println("Checked for general - config is missing", cfg_general)
		os.Exit(0)
	}
	if errcfg == nil && cfg_general.EnableFileWatcher {
		go config.Watch(f, config.Configfile)
	}

	logger.InitLogger(logger.LoggerConfig{
		LogLevel:     cfg_general.LogLevel,
		LogFileSize:  cfg_general.LogFileSize,
		LogFileCount: cfg_general.LogFileCount,
		LogCompress:  cfg_general.LogCompress,
	})
	logger.Log.Infoln("Starting flexihtml")
	logger.Log.Infoln("------------------------------")
	logger.Log.Infoln("")

	logger.Log.Infoln("Initialize Database")
	database.InitDb(cfg_general.DBLogLevel)

	logger.Log.Infoln("Check Database for Upgrades")
	database.UpgradeDB()

	logger.Log.Infoln("Check Database for Errors")
	str := database.DbQuickCheck()
	if str != "ok" {
		logger.Log.Errorln("integrity check failed", str)
		config.StateDB.Close()
		database.DB.Close()
		os.Exit(100)
	}

	logger.Log.Infoln("Remove Old DB Backups")
	database.RemoveOldDbBackups(cfg_general.MaxDatabaseBackups)

	counter, _ := database.CountRows("products", database.Query{})
	if counter == 0 {
		logger.Log.Infoln("Starting initial DB fill for products")
		seedProducts()
	}

	registerGrids()

	logger.Log.Infoln("Starting Scheduler")
	scheduler.InitScheduler()

	logger.Log.Infoln("Starting API")
	if !strings.EqualFold(cfg_general.LogLevel, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}
	router := newRouter(cfg_general)

	logger.Log.Infoln("Starting API Webserver on port", cfg_general.WebPort)
	server := &http.Server{
		Addr:    ":" + cfg_general.WebPort,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			config.StateDB.Close()
			database.DB.Close()
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("receive interrupt signal")

	scheduler.StopScheduler()

	database.DB.Close()
	config.StateDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	if err := pudge.CloseAll(); err != nil {
		log.Fatal("Database Shutdown:", err)
	}

	log.Println("Server exiting")
}

func newRouter(cfg_general config.GeneralConfig) *gin.Engine {
	router := gin.New()
	logger.Log.Infoln("Starting API Logger")
	router.Use(ginlog.Logger(logger.Log), gin.Recovery(), cors.Default())

	if _, err := os.Stat("./views"); !os.IsNotExist(err) {
		logger.Log.Infoln("Starting API Websites")
		router.HTMLRender = ginview.New(goview.Config{
			Root:      "views",
			Extension: ".html",
			Master:    "layouts/master",
			Funcs: template.FuncMap{"copy": func() string {
				return time.Now().Format("2006")
			}},
			DisableCache: false,
			Delims:       goview.Delims{},
		})
		router.Static("/public", "./views/public")
		router.GET("/", func(ctx *gin.Context) {
			grids := make([]string, 0, len(config.ConfigGetGrids()))
			for name := range config.ConfigGetGrids() {
				grids = append(grids, name)
			}
			ctx.HTML(http.StatusOK, "index", gin.H{
				"title": "Grids",
				"grids": grids,
			})
		})
	}

	logger.Log.Infoln("Starting API Endpoints")
	routerapi := router.Group("/api")
	api.AddGeneralRoutes(routerapi)
	api.AddGridRoutes(routerapi)

	if strings.EqualFold(cfg_general.LogLevel, "Debug") {
		ginpprof.Wrap(router)
	}
	return router
}

func registerGrids() {
	api.RegisterGrid(&api.Grid{
		Name:        "products",
		Table:       "products",
		Title:       "Products",
		Description: "All products with stock and pricing",
		Columns: []api.GridColumn{
			{Name: "id", Sortable: true, Hidden: -1},
			{Name: "title", Kind: flexihtml.InputTypeText, Sortable: true, Suggest: true},
			{Name: "category", Kind: flexihtml.InputTypeList, Sortable: true, Suggest: true},
			{Name: "price", Kind: flexihtml.InputTypeNumber, Sortable: true},
			{Name: "stock", Kind: flexihtml.InputTypeNumber, Sortable: true, Hidden: 1},
			{Name: "active", Kind: flexihtml.InputTypeBoolean},
			{Name: "created_at", Kind: flexihtml.InputTypeDate, Sortable: true, Hidden: 1},
		},
	})
}

func seedProducts() {
	categories := []string{"tools", "parts", "supplies"}
	for i := 1; i <= 60; i++ {
		database.InsertRowMap("products", map[string]interface{}{
			"title":    "Product " + flexihtml.CellString(int64(i)),
			"category": categories[i%len(categories)],
			"price":    float64(i) * 1.25,
			"stock":    i * 3,
			"active":   i%2 == 0,
		})
	}
}
