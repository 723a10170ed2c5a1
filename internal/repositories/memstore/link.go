package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/fsdevblog/tinylink/internal/db/memory"
	"github.com/fsdevblog/tinylink/internal/models"
	"github.com/fsdevblog/tinylink/internal/repositories"

	"github.com/sirupsen/logrus"
)

// LinkRepo репозиторий ссылок поверх memory.MStorage.
type LinkRepo struct {
	s      *memory.MStorage
	mu     sync.Mutex
	logger *logrus.Entry
}

// NewLinkRepo создает новый экземпляр репозитория.
//
// Параметры:
//   - store: экземпляр хранилища в памяти
//   - logger: логгер приложения
//
// Возвращает:
//   - *LinkRepo: инициализированный репозиторий
func NewLinkRepo(store *memory.MStorage, logger *logrus.Logger) *LinkRepo {
	return &LinkRepo{
		s:      store,
		logger: logger.WithField("module", "repository/memstore/link"),
	}
}

// Get возвращает запись по короткому идентификатору, включая tombstone-записи.
func (r *LinkRepo) Get(_ context.Context, shortID string) (*models.Link, error) {
	link, err := memory.Get[models.Link](shortID, r.s)
	if err != nil {
		return nil, convertErrorType(err)
	}
	return link, nil
}

// Exists сообщает, занят ли идентификатор (активной или tombstone-записью).
func (r *LinkRepo) Exists(_ context.Context, shortID string) (bool, error) {
	return r.s.IsExist(shortID), nil
}

// Create вставляет новую запись; занятый идентификатор дает ErrDuplicateKey.
func (r *LinkRepo) Create(_ context.Context, link *models.Link) (*models.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if link.CreatedAt.IsZero() {
		link.CreatedAt = now
	}
	link.UpdatedAt = now

	if err := memory.Set(link.ShortIdentifier, link, r.s); err != nil {
		return nil, convertErrorType(err)
	}
	return link, nil
}

// UpdateFields применяет частичное обновление под мьютексом репозитория.
func (r *LinkRepo) UpdateFields(
	ctx context.Context,
	shortID string,
	fields repositories.LinkUpdate,
) (*models.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.applyUpdate(ctx, shortID, fields, time.Now().UTC())
}

// RenameWithTombstone атомарно (под мьютексом) помечает старую запись
// неактивной и создает активный клон под новым идентификатором, сохраняя
// исходный CreatedAt и дайджест токена.
func (r *LinkRepo) RenameWithTombstone(
	ctx context.Context,
	oldID string,
	newID string,
) (*models.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, getErr := memory.Get[models.Link](oldID, r.s)
	if getErr != nil {
		return nil, convertErrorType(getErr)
	}
	if r.s.IsExist(newID) {
		return nil, repositories.ErrDuplicateKey
	}

	now := time.Now().UTC()
	inactive := false
	if _, err := r.applyUpdate(ctx, oldID, repositories.LinkUpdate{Active: &inactive}, now); err != nil {
		return nil, err
	}

	created := models.Link{
		ShortIdentifier: newID,
		TargetURL:       old.TargetURL,
		RedirectCode:    old.RedirectCode,
		CreatedAt:       old.CreatedAt,
		UpdatedAt:       now,
		EditTokenDigest: old.EditTokenDigest,
		Active:          true,
		ExpiresAt:       old.ExpiresAt,
	}
	if err := memory.Set(newID, &created, r.s); err != nil {
		// Занятость newID проверена выше под тем же мьютексом, сюда попадать
		// не должны; откатываем tombstone чтобы не оставить полуприменение.
		r.logger.WithError(err).Errorf("failed to clone record %s -> %s", oldID, newID)
		if rollbackErr := memory.Replace(oldID, old, r.s); rollbackErr != nil {
			r.logger.WithError(rollbackErr).Errorf("failed to rollback tombstone of %s", oldID)
		}
		return nil, convertErrorType(err)
	}
	return &created, nil
}

// applyUpdate общая часть UpdateFields и RenameWithTombstone.
// Вызывается только под r.mu.
func (r *LinkRepo) applyUpdate(
	_ context.Context,
	shortID string,
	fields repositories.LinkUpdate,
	now time.Time,
) (*models.Link, error) {
	link, getErr := memory.Get[models.Link](shortID, r.s)
	if getErr != nil {
		return nil, convertErrorType(getErr)
	}

	if fields.TargetURL != nil {
		link.TargetURL = *fields.TargetURL
	}
	if fields.RedirectCode != nil {
		link.RedirectCode = *fields.RedirectCode
	}
	if fields.Active != nil {
		link.Active = *fields.Active
	}
	if fields.ExpiresAt != nil {
		link.ExpiresAt = fields.ExpiresAt
	}
	link.UpdatedAt = now

	if err := memory.Replace(shortID, link, r.s); err != nil {
		r.logger.WithError(err).Errorf("failed to update record %s", shortID)
		return nil, convertErrorType(err)
	}
	return link, nil
}
