package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHome godoc
// @Summary Service information
// @Description Returns the service name and status.
// @Tags home
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func GetHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "finbooks-backend",
		"status":  "ok",
	})
}
