package controllers

import (
	"net/http"
	"time"

	"github.com/fsdevblog/tinylink/internal/services"

	"github.com/gin-gonic/gin"
)

// RedirectController обслуживает переходы по коротким ссылкам.
type RedirectController struct {
	linkService LinkManager
}

func NewRedirectController(linkService LinkManager) *RedirectController {
	return &RedirectController{linkService: linkService}
}

// Redirect разрешает идентификатор по политике редиректа: 404 если
// идентификатор никогда не существовал, 410 если запись деактивирована или
// истекла, иначе редирект с кодом записи и директивой кеширования.
func (c *RedirectController) Redirect(ctx *gin.Context) {
	decision, err := c.linkService.ResolveForRedirect(
		ctx.Request.Context(),
		ctx.Param("shortID"),
		time.Now().UTC(),
	)
	if err != nil {
		_ = ctx.Error(err)
		ctx.String(http.StatusInternalServerError, ErrInternal.Error())
		return
	}

	switch decision.Outcome {
	case services.OutcomeMissing:
		ctx.String(http.StatusNotFound, ErrNotFound.Error())
	case services.OutcomeGone:
		ctx.String(http.StatusGone, ErrGone.Error())
	case services.OutcomeRedirect:
		ctx.Header("Cache-Control", decision.CacheControl)
		ctx.Redirect(decision.Code, decision.TargetURL)
	}
}
