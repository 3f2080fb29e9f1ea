package main

import (
	"testing"

	"github.com/flexihtml/flexihtml/config"
	gin "github.com/gin-gonic/gin"
)

func hasRoute(router *gin.Engine, path string) bool {
	for _, route := range router.Routes() {
		if route.Path == path {
			return true
		}
	}
	return false
}

func TestNewRouterProfiling(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := newRouter(config.GeneralConfig{LogLevel: "debug"})
	if !hasRoute(router, "/debug/pprof/") {
		t.Error("debug log level did not expose the pprof routes")
	}
	if !hasRoute(router, "/api/grid/:name") {
		t.Error("grid routes missing")
	}

	router = newRouter(config.GeneralConfig{LogLevel: "info"})
	if hasRoute(router, "/debug/pprof/") {
		t.Error("pprof routes exposed without the debug log level")
	}
}
