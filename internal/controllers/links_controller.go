package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/fsdevblog/tinylink/internal/models"
	"github.com/fsdevblog/tinylink/internal/services"

	"github.com/gin-gonic/gin"
)

// LinkManager операции движка жизненного цикла ссылок, потребляемые HTTP-слоем.
type LinkManager interface {
	Create(ctx context.Context, params services.CreateLinkParams) (*models.Link, string, error)
	Update(ctx context.Context, shortID, editToken string, params services.UpdateLinkParams) (*models.Link, error)
	ChangeAlias(ctx context.Context, shortID, editToken, newShortID string) (*models.Link, error)
	Retire(ctx context.Context, shortID, editToken string) (*models.Link, error)
	ResolveForRedirect(ctx context.Context, shortID string, now time.Time) (services.RedirectDecision, error)
}

type createLinkRequest struct {
	TargetURL    string     `json:"target_url"`
	LinkID       string     `json:"link_id"`
	RedirectCode int        `json:"redirect_code"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

type createLinkResponse struct {
	LinkID       string    `json:"link_id"`
	ShortURL     string    `json:"short_url"`
	EditToken    string    `json:"edit_token"`
	RedirectCode int       `json:"redirect_code"`
	CreatedAt    time.Time `json:"created_at"`
}

type updateLinkRequest struct {
	TargetURL    *string    `json:"target_url"`
	RedirectCode *int       `json:"redirect_code"`
	NewLinkID    *string    `json:"new_link_id"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

type linkResponse struct {
	LinkID       string     `json:"link_id"`
	TargetURL    string     `json:"target_url"`
	RedirectCode int        `json:"redirect_code"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Active       bool       `json:"active"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

func newLinkResponse(link *models.Link) linkResponse {
	return linkResponse{
		LinkID:       link.ShortIdentifier,
		TargetURL:    link.TargetURL,
		RedirectCode: link.RedirectCode,
		CreatedAt:    link.CreatedAt,
		UpdatedAt:    link.UpdatedAt,
		Active:       link.Active,
		ExpiresAt:    link.ExpiresAt,
	}
}

// LinkController управляющее API ссылок (/api/links).
type LinkController struct {
	linkService LinkManager
	baseURL     *url.URL
}

func NewLinkController(linkService LinkManager, baseURL *url.URL) *LinkController {
	return &LinkController{
		linkService: linkService,
		baseURL:     baseURL,
	}
}

// CreateLink создает короткую ссылку. Токен редактирования возвращается
// в ответе ровно один раз и больше нигде не фигурирует.
func (c *LinkController) CreateLink(ctx *gin.Context) {
	var req createLinkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"detail": ErrBadPayload.Error()})
		return
	}

	link, token, err := c.linkService.Create(ctx.Request.Context(), services.CreateLinkParams{
		TargetURL:     req.TargetURL,
		CustomShortID: req.LinkID,
		RedirectCode:  req.RedirectCode,
		ExpiresAt:     req.ExpiresAt,
	})
	if err != nil {
		renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, createLinkResponse{
		LinkID:       link.ShortIdentifier,
		ShortURL:     c.shortURL(ctx.Request, link.ShortIdentifier),
		EditToken:    token,
		RedirectCode: link.RedirectCode,
		CreatedAt:    link.CreatedAt,
	})
}

// UpdateLink изменяет цель, код редиректа, срок жизни и/или алиас ссылки.
// Требует действительный токен в заголовке X-Edit-Token.
func (c *LinkController) UpdateLink(ctx *gin.Context) {
	editToken := ctx.GetHeader(EditTokenHeader)
	if editToken == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"detail": ErrMissingToken.Error()})
		return
	}

	var req updateLinkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"detail": ErrBadPayload.Error()})
		return
	}

	shortID := ctx.Param("shortID")

	// Смена алиаса выполняется первой: последующие изменения полей
	// применяются уже к новой записи.
	if req.NewLinkID != nil {
		renamed, aliasErr := c.linkService.ChangeAlias(ctx.Request.Context(), shortID, editToken, *req.NewLinkID)
		if aliasErr != nil {
			renderError(ctx, aliasErr)
			return
		}
		shortID = renamed.ShortIdentifier
	}

	updated, updErr := c.linkService.Update(ctx.Request.Context(), shortID, editToken, services.UpdateLinkParams{
		TargetURL:    req.TargetURL,
		RedirectCode: req.RedirectCode,
		ExpiresAt:    req.ExpiresAt,
	})
	if updErr != nil {
		renderError(ctx, updErr)
		return
	}

	ctx.JSON(http.StatusOK, newLinkResponse(updated))
}

// DeleteLink деактивирует ссылку (soft delete). Запись остается tombstone:
// редирект по этому идентификатору дальше отвечает 410.
func (c *LinkController) DeleteLink(ctx *gin.Context) {
	editToken := ctx.GetHeader(EditTokenHeader)
	if editToken == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"detail": ErrMissingToken.Error()})
		return
	}

	retired, err := c.linkService.Retire(ctx.Request.Context(), ctx.Param("shortID"), editToken)
	if err != nil {
		renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "deleted", "link_id": retired.ShortIdentifier})
}

// shortURL вспомогательный метод который собирает короткую ссылку.
func (c *LinkController) shortURL(r *http.Request, shortID string) string {
	var scheme = "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if c.baseURL == nil {
		return fmt.Sprintf("%s://%s/%s", scheme, r.Host, shortID)
	}
	return fmt.Sprintf("%s/%s", c.baseURL, shortID)
}
