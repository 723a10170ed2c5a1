package controllers

import (
	"github.com/fsdevblog/tinylink/internal/config"
	"github.com/fsdevblog/tinylink/internal/controllers/middlewares"
	"github.com/gin-gonic/gin"
)

type RouterParams struct {
	LinkService LinkManager
	AppConf     *config.Config
}

func SetupRouter(params RouterParams) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware(params.AppConf.Logger))
	r.Use(middlewares.GzipMiddleware())

	linkController := NewLinkController(params.LinkService, params.AppConf.BaseURL)
	redirectController := NewRedirectController(params.LinkService)

	r.GET("/:shortID", redirectController.Redirect)
	r.HEAD("/:shortID", redirectController.Redirect)

	api := r.Group("/api")
	api.GET("/health", HealthCheck)
	api.POST("/links", linkController.CreateLink)
	api.PATCH("/links/:shortID", linkController.UpdateLink)
	api.DELETE("/links/:shortID", linkController.DeleteLink)

	return r
}
