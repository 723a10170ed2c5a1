package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fsdevblog/tinylink/internal/models"

	"github.com/pkg/errors"
)

// RedirectOutcome исход разрешения идентификатора для редиректа.
type RedirectOutcome int

const (
	// OutcomeRedirect активная ссылка, редирект на целевой URL.
	OutcomeRedirect RedirectOutcome = iota
	// OutcomeGone идентификатор существовал, но деактивирован или истек.
	OutcomeGone
	// OutcomeMissing идентификатор никогда не существовал.
	OutcomeMissing
)

// cacheControlNoStore директива для временных редиректов (302/307): их цель
// может измениться следующей мутацией, промежуточные кеши хранить ответ
// не должны.
const cacheControlNoStore = "no-store"

// RedirectDecision решение политики редиректа для HTTP-слоя.
type RedirectDecision struct {
	Outcome      RedirectOutcome
	TargetURL    string
	Code         int
	CacheControl string
}

// EvaluateRedirect чистая функция политики редиректа: (запись, момент
// времени) -> исход. Просроченность вычисляется на чтении и не мутирует
// запись: ExpiresAt <= now ведет себя как tombstone.
func EvaluateRedirect(link *models.Link, now time.Time, permanentCacheSeconds int) RedirectDecision {
	if link == nil {
		return RedirectDecision{Outcome: OutcomeMissing}
	}
	if !link.Active {
		return RedirectDecision{Outcome: OutcomeGone}
	}
	if link.ExpiresAt != nil && !link.ExpiresAt.After(now) {
		return RedirectDecision{Outcome: OutcomeGone}
	}

	cacheControl := cacheControlNoStore
	if link.RedirectCode == http.StatusMovedPermanently ||
		link.RedirectCode == http.StatusPermanentRedirect {
		// Постоянный редирект семантически финален, его можно кешировать
		// агрессивно.
		cacheControl = fmt.Sprintf("public, max-age=%d, immutable", permanentCacheSeconds)
	}

	return RedirectDecision{
		Outcome:      OutcomeRedirect,
		TargetURL:    link.TargetURL,
		Code:         link.RedirectCode,
		CacheControl: cacheControl,
	}
}

// ResolveForRedirect находит запись и применяет политику редиректа.
// Ошибкой завершается только сбой хранилища; NotFound выражается исходом
// OutcomeMissing.
func (s *LinkService) ResolveForRedirect(
	ctx context.Context,
	shortID string,
	now time.Time,
) (RedirectDecision, error) {
	link, err := s.Resolve(ctx, shortID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RedirectDecision{Outcome: OutcomeMissing}, nil
		}
		return RedirectDecision{}, err
	}
	return EvaluateRedirect(link, now, s.permanentCacheSeconds), nil
}
