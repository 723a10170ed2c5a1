package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck простая проверка живости процесса.
func HealthCheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
