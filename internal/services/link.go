package services

import (
	"context"
	"net/http"
	"time"

	"github.com/fsdevblog/tinylink/internal/models"
	"github.com/fsdevblog/tinylink/internal/repositories"
	"github.com/fsdevblog/tinylink/internal/tokens"
	"github.com/fsdevblog/tinylink/internal/validate"

	"github.com/pkg/errors"
)

// DefaultRedirectCode код редиректа по умолчанию при создании ссылки.
const DefaultRedirectCode = http.StatusMovedPermanently

// DefaultPermanentCacheSeconds срок кеширования постоянных редиректов (301/308)
// по умолчанию.
const DefaultPermanentCacheSeconds = 86400

// LinkServiceConfig конфигурация сервиса, передается при конструировании.
// Сервис ничего не читает из окружения самостоятельно.
type LinkServiceConfig struct {
	// TokenPepper серверный секрет, подмешиваемый в дайджест токена.
	// Пустая строка — допустимый режим без pepper.
	TokenPepper string
	// PermanentCacheSeconds срок кеширования постоянных редиректов.
	PermanentCacheSeconds int
}

// LinkService ядро жизненного цикла ссылок: создание, чтение, изменение,
// деактивация и смена алиаса. Не хранит изменяемого состояния, вся работа
// уходит в транзакции хранилища, поэтому сервис безопасен для конкурентных
// вызовов из обработчиков запросов.
type LinkService struct {
	linkRepo              LinkRepository
	pepper                string
	permanentCacheSeconds int
}

// NewLinkService создает сервис поверх репозитория ссылок.
func NewLinkService(linkRepo LinkRepository, conf LinkServiceConfig) *LinkService {
	cacheSeconds := conf.PermanentCacheSeconds
	if cacheSeconds <= 0 {
		cacheSeconds = DefaultPermanentCacheSeconds
	}
	return &LinkService{
		linkRepo:              linkRepo,
		pepper:                conf.TokenPepper,
		permanentCacheSeconds: cacheSeconds,
	}
}

// CreateLinkParams параметры создания ссылки.
type CreateLinkParams struct {
	TargetURL string
	// CustomShortID необязательный пользовательский идентификатор.
	// Пустая строка — сгенерировать автоматически.
	CustomShortID string
	// RedirectCode 0 означает DefaultRedirectCode.
	RedirectCode int
	ExpiresAt    *time.Time
}

// UpdateLinkParams частичное изменение ссылки; nil-поля не трогаются.
type UpdateLinkParams struct {
	TargetURL    *string
	RedirectCode *int
	ExpiresAt    *time.Time
}

// Create создает ссылку и возвращает ее вместе с токеном редактирования.
// Токен отдается ровно один раз и нигде не сохраняется в открытом виде.
//
// Вся валидация выполняется до единственного мутирующего обращения к
// хранилищу. Проверка занятости идентификатора рекомендательная: финальное
// слово за ограничением уникальности при вставке, его нарушение — штатный
// исход гонки, а не сбой (ErrConflict).
func (s *LinkService) Create(ctx context.Context, params CreateLinkParams) (*models.Link, string, error) {
	target, targetErr := validate.NormalizeTargetURL(params.TargetURL)
	if targetErr != nil {
		return nil, "", targetErr
	}

	code := params.RedirectCode
	if code == 0 {
		code = DefaultRedirectCode
	}
	if codeErr := validate.ValidateRedirectCode(code); codeErr != nil {
		return nil, "", codeErr
	}

	shortID, idErr := s.resolveShortID(ctx, params.CustomShortID)
	if idErr != nil {
		return nil, "", idErr
	}

	token, tokenErr := tokens.GenerateEditToken()
	if tokenErr != nil {
		return nil, "", ErrUnknown
	}

	link := &models.Link{
		ShortIdentifier: shortID,
		TargetURL:       target,
		RedirectCode:    code,
		EditTokenDigest: tokens.DigestEditToken(token, s.pepper),
		Active:          true,
		ExpiresAt:       params.ExpiresAt,
	}

	created, createErr := s.linkRepo.Create(ctx, link)
	if createErr != nil {
		if errors.Is(createErr, repositories.ErrDuplicateKey) {
			return nil, "", errors.Wrapf(ErrConflict, "identifier `%s`", shortID)
		}
		return nil, "", ErrUnknown
	}
	return created, token, nil
}

// resolveShortID нормализует и проверяет пользовательский идентификатор либо
// выделяет сгенерированный.
func (s *LinkService) resolveShortID(ctx context.Context, customID string) (string, error) {
	if customID == "" {
		shortID, allocErr := AllocateShortIdentifier(ctx, s.linkRepo.Exists, MaxAllocationAttempts)
		if allocErr != nil {
			if errors.Is(allocErr, ErrExhausted) {
				return "", allocErr
			}
			return "", ErrUnknown
		}
		return shortID, nil
	}

	shortID := validate.NormalizeShortIdentifier(customID)
	if valErr := validate.ValidateShortIdentifier(shortID); valErr != nil {
		return "", valErr
	}
	taken, exErr := s.linkRepo.Exists(ctx, shortID)
	if exErr != nil {
		return "", ErrUnknown
	}
	if taken {
		return "", errors.Wrapf(ErrConflict, "identifier `%s`", shortID)
	}
	return shortID, nil
}

// Resolve возвращает запись по идентификатору, включая tombstone-записи.
// ErrNotFound означает, что идентификатор никогда не существовал.
func (s *LinkService) Resolve(ctx context.Context, shortID string) (*models.Link, error) {
	normalized := validate.NormalizeShortIdentifier(shortID)
	link, err := s.linkRepo.Get(ctx, normalized)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "identifier `%s`", normalized)
		}
		return nil, ErrUnknown
	}
	return link, nil
}

// Update изменяет указанные поля ссылки. Требует действительный токен
// редактирования; авторизация и валидация выполняются до мутирующего
// обращения к хранилищу. UpdatedAt продвигается при любом принятом изменении.
func (s *LinkService) Update(
	ctx context.Context,
	shortID string,
	editToken string,
	params UpdateLinkParams,
) (*models.Link, error) {
	link, authErr := s.authorize(ctx, shortID, editToken)
	if authErr != nil {
		return nil, authErr
	}

	fields := repositories.LinkUpdate{ExpiresAt: params.ExpiresAt}
	if params.TargetURL != nil {
		target, targetErr := validate.NormalizeTargetURL(*params.TargetURL)
		if targetErr != nil {
			return nil, targetErr
		}
		fields.TargetURL = &target
	}
	if params.RedirectCode != nil {
		if codeErr := validate.ValidateRedirectCode(*params.RedirectCode); codeErr != nil {
			return nil, codeErr
		}
		fields.RedirectCode = params.RedirectCode
	}

	updated, updErr := s.linkRepo.UpdateFields(ctx, link.ShortIdentifier, fields)
	if updErr != nil {
		return nil, s.convertRepoError(updErr)
	}
	return updated, nil
}

// ChangeAlias переносит ссылку на новый идентификатор. Старый идентификатор
// навсегда становится tombstone (дальше отвечает Gone), новый получает
// активный клон с исходным CreatedAt и тем же дайджестом токена; токен при
// смене алиаса не ротируется. Операция атомарна на стороне хранилища.
func (s *LinkService) ChangeAlias(
	ctx context.Context,
	shortID string,
	editToken string,
	newShortID string,
) (*models.Link, error) {
	link, authErr := s.authorize(ctx, shortID, editToken)
	if authErr != nil {
		return nil, authErr
	}

	normalized := validate.NormalizeShortIdentifier(newShortID)
	if valErr := validate.ValidateShortIdentifier(normalized); valErr != nil {
		return nil, valErr
	}

	// Рекомендательная предпроверка; авторитетное слово за транзакцией.
	taken, exErr := s.linkRepo.Exists(ctx, normalized)
	if exErr != nil {
		return nil, ErrUnknown
	}
	if taken {
		return nil, errors.Wrapf(ErrConflict, "identifier `%s`", normalized)
	}

	renamed, renameErr := s.linkRepo.RenameWithTombstone(ctx, link.ShortIdentifier, normalized)
	if renameErr != nil {
		return nil, s.convertRepoError(renameErr)
	}
	return renamed, nil
}

// Retire деактивирует ссылку (soft delete). Запись остается в хранилище как
// tombstone, идентификатор повторно занять нельзя.
func (s *LinkService) Retire(ctx context.Context, shortID string, editToken string) (*models.Link, error) {
	link, authErr := s.authorize(ctx, shortID, editToken)
	if authErr != nil {
		return nil, authErr
	}

	inactive := false
	retired, updErr := s.linkRepo.UpdateFields(ctx, link.ShortIdentifier, repositories.LinkUpdate{
		Active: &inactive,
	})
	if updErr != nil {
		return nil, s.convertRepoError(updErr)
	}
	return retired, nil
}

// authorize находит запись и сверяет токен с сохраненным дайджестом.
func (s *LinkService) authorize(ctx context.Context, shortID string, editToken string) (*models.Link, error) {
	link, err := s.Resolve(ctx, shortID)
	if err != nil {
		return nil, err
	}
	if !tokens.VerifyEditToken(editToken, link.EditTokenDigest, s.pepper) {
		return nil, errors.Wrapf(ErrUnauthorized, "identifier `%s`", link.ShortIdentifier)
	}
	return link, nil
}

func (s *LinkService) convertRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repositories.ErrDuplicateKey):
		return ErrConflict
	default:
		return ErrUnknown
	}
}
