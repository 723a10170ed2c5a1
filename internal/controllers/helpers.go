package controllers

import (
	"net/http"

	"github.com/fsdevblog/tinylink/internal/services"
	"github.com/fsdevblog/tinylink/internal/validate"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// EditTokenHeader заголовок, в котором клиент передает токен редактирования.
const EditTokenHeader = "X-Edit-Token"

// renderError переводит типизированные ошибки сервисного слоя и валидации
// в HTTP статус. Сырые ошибки наружу не отдаются.
func renderError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, validate.ErrInvalidFormat),
		errors.Is(err, validate.ErrReserved),
		errors.Is(err, validate.ErrInvalidScheme),
		errors.Is(err, validate.ErrInvalidHost),
		errors.Is(err, validate.ErrTooLong),
		errors.Is(err, validate.ErrInvalidRedirectCode):
		ctx.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"detail": ErrNotFound.Error()})
	case errors.Is(err, services.ErrConflict):
		ctx.JSON(http.StatusConflict, gin.H{"detail": "short identifier already taken"})
	case errors.Is(err, services.ErrUnauthorized):
		ctx.JSON(http.StatusForbidden, gin.H{"detail": "invalid edit token"})
	case errors.Is(err, services.ErrExhausted):
		// Временная нехватка свободных идентификаторов, клиент может повторить.
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"detail": "failed to allocate short identifier"})
	default:
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": ErrInternal.Error()})
	}
}
