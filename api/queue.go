package api

import (
	"net/http"
	"time"

	"github.com/flexihtml/flexihtml/database"
	"github.com/flexihtml/flexihtml/tasks"
	gin "github.com/gin-gonic/gin"
)

func timestamp() string {
	return time.Now().Format("20060102_150405")
}

func AddGeneralRoutes(rg *gin.RouterGroup) {
	rg.GET("/queue", apiQueueList)
	rg.GET("/db/backup", apiDbBackup)
}

// @Summary List queued jobs
// @Description Lists maintenance jobs currently queued or running
// @Tags general
// @Produce json
// @Success 200 {object} string
// @Failure 401 {object} string
// @Router /api/queue [get]
func apiQueueList(c *gin.Context) {
	if ApiAuth(c) == http.StatusUnauthorized {
		return
	}
	c.JSON(http.StatusOK, tasks.GetQueue())
}

// @Summary Backup the database
// @Description Creates a backup of the grid database right away
// @Tags general
// @Produce json
// @Success 200 {object} string
// @Failure 401 {object} string
// @Router /api/db/backup [get]
func apiDbBackup(c *gin.Context) {
	if ApiAuth(c) == http.StatusUnauthorized {
		return
	}
	if err := database.Backup(database.DB, "./backup/data.db."+database.DBVersion+"."+timestamp(), 10); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, "ok")
}
