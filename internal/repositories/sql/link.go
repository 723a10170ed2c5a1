package sql

import (
	"context"
	"time"

	"github.com/fsdevblog/tinylink/internal/models"
	"github.com/fsdevblog/tinylink/internal/repositories"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// LinkRepo репозиторий ссылок поверх gorm (sqlite).
type LinkRepo struct {
	db     *gorm.DB
	logger *logrus.Entry
}

// NewLinkRepo создает новый экземпляр репозитория ссылок.
//
// Параметры:
//   - db: соединение gorm (открытое с TranslateError, иначе дубликаты не
//     распознаются как gorm.ErrDuplicatedKey)
//   - logger: логгер приложения
//
// Возвращает:
//   - *LinkRepo: инициализированный репозиторий
func NewLinkRepo(db *gorm.DB, logger *logrus.Logger) *LinkRepo {
	return &LinkRepo{
		db:     db,
		logger: logger.WithField("module", "repository/sql/link"),
	}
}

// Get возвращает запись по короткому идентификатору, включая tombstone-записи.
func (r *LinkRepo) Get(ctx context.Context, shortID string) (*models.Link, error) {
	var link models.Link
	if err := r.db.WithContext(ctx).
		Where("short_identifier = ?", shortID).
		First(&link).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.WithError(err).Errorf("failed to get record by short identifier %s", shortID)
		}
		return nil, convertErrorType(err)
	}
	return &link, nil
}

// Exists сообщает, занят ли идентификатор. Учитываются и активные,
// и tombstone-записи: деактивированный идентификатор занять нельзя.
func (r *LinkRepo) Exists(ctx context.Context, shortID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Link{}).
		Where("short_identifier = ?", shortID).
		Count(&count).Error; err != nil {
		r.logger.WithError(err).Errorf("failed to check existence of %s", shortID)
		return false, convertErrorType(err)
	}
	return count > 0, nil
}

// Create вставляет новую запись. Уникальность идентификатора обеспечивается
// первичным ключом: гонка двух вставок возвращает ErrDuplicateKey.
func (r *LinkRepo) Create(ctx context.Context, link *models.Link) (*models.Link, error) {
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			r.logger.WithError(err).Errorf("failed to create record %+v", *link)
		}
		return nil, convertErrorType(err)
	}
	return link, nil
}

// UpdateFields применяет частичное обновление внутри транзакции и возвращает
// обновленную запись. UpdatedAt продвигается при любом принятом обновлении,
// в том числе пустом.
func (r *LinkRepo) UpdateFields(
	ctx context.Context,
	shortID string,
	fields repositories.LinkUpdate,
) (*models.Link, error) {
	var link models.Link
	txErr := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("short_identifier = ?", shortID).First(&link).Error; err != nil {
			return convertErrorType(err)
		}

		updates := map[string]any{"updated_at": time.Now().UTC()}
		if fields.TargetURL != nil {
			updates["target_url"] = *fields.TargetURL
		}
		if fields.RedirectCode != nil {
			updates["redirect_code"] = *fields.RedirectCode
		}
		if fields.Active != nil {
			updates["active"] = *fields.Active
		}
		if fields.ExpiresAt != nil {
			updates["expires_at"] = *fields.ExpiresAt
		}

		if err := tx.Model(&link).Updates(updates).Error; err != nil {
			r.logger.WithError(err).Errorf("failed to update record %s", shortID)
			return convertErrorType(err)
		}

		// Updates с map не переносит значения в структуру, перечитываем строку.
		if err := tx.Where("short_identifier = ?", shortID).First(&link).Error; err != nil {
			return convertErrorType(err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &link, nil
}

// RenameWithTombstone переносит запись на новый идентификатор одной
// транзакцией: старая строка помечается неактивной (tombstone), под новым
// идентификатором создается активный клон с исходным CreatedAt и тем же
// дайджестом токена. Либо фиксируются обе записи, либо ни одной.
func (r *LinkRepo) RenameWithTombstone(
	ctx context.Context,
	oldID string,
	newID string,
) (*models.Link, error) {
	var created models.Link
	txErr := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var old models.Link
		if err := tx.Where("short_identifier = ?", oldID).First(&old).Error; err != nil {
			return convertErrorType(err)
		}

		now := time.Now().UTC()
		tombstone := map[string]any{"active": false, "updated_at": now}
		if err := tx.Model(&old).Updates(tombstone).Error; err != nil {
			r.logger.WithError(err).Errorf("failed to tombstone record %s", oldID)
			return convertErrorType(err)
		}

		created = models.Link{
			ShortIdentifier: newID,
			TargetURL:       old.TargetURL,
			RedirectCode:    old.RedirectCode,
			CreatedAt:       old.CreatedAt,
			UpdatedAt:       now,
			EditTokenDigest: old.EditTokenDigest,
			Active:          true,
			ExpiresAt:       old.ExpiresAt,
		}
		if err := tx.Create(&created).Error; err != nil {
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				r.logger.WithError(err).Errorf("failed to clone record %s -> %s", oldID, newID)
			}
			return convertErrorType(err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &created, nil
}
