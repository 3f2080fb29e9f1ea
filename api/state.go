package api

import (
	"net/http"

	"github.com/flexihtml/flexihtml/config"
	gin "github.com/gin-gonic/gin"
)

// @Summary Save grid state
// @Description Persists column visibility, search parameters and page of a grid
// @Tags grid
// @Accept json
// @Produce json
// @Param name path string true "grid name"
// @Param state body config.GridState true "state"
// @Success 200 {object} string
// @Failure 404 {object} string
// @Router /api/grid/{name}/state [post]
func apiGridStateSave(c *gin.Context) {
	if ApiAuth(c) == http.StatusUnauthorized {
		return
	}
	grid := getGrid(c.Param("name"))
	if grid == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "grid not found"})
		return
	}
	var state config.GridState
	if err := c.ShouldBindJSON(&state); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := config.SaveGridState(grid.Name, state); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, "ok")
}

// @Summary Load grid state
// @Description Returns the last saved state of a grid
// @Tags grid
// @Produce json
// @Param name path string true "grid name"
// @Success 200 {object} config.GridState
// @Failure 404 {object} string
// @Router /api/grid/{name}/state [get]
func apiGridStateGet(c *gin.Context) {
	if ApiAuth(c) == http.StatusUnauthorized {
		return
	}
	grid := getGrid(c.Param("name"))
	if grid == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "grid not found"})
		return
	}
	state, ok := config.GetGridState(grid.Name)
	if !ok {
		c.JSON(http.StatusOK, config.GridState{})
		return
	}
	c.JSON(http.StatusOK, state)
}
