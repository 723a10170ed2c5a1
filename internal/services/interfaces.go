package services

import (
	"context"

	"github.com/fsdevblog/tinylink/internal/models"
	"github.com/fsdevblog/tinylink/internal/repositories"
)

// LinkRepository контракт хранилища, потребляемый сервисным слоем.
type LinkRepository interface {
	// Get находит запись по короткому идентификатору, включая tombstone-записи.
	Get(ctx context.Context, shortID string) (*models.Link, error)
	// Exists сообщает, занят ли идентификатор активной или tombstone-записью.
	Exists(ctx context.Context, shortID string) (bool, error)
	// Create вставляет запись; занятый идентификатор дает ErrDuplicateKey.
	// Уникальность обеспечивается ограничением хранилища, а не предпроверкой.
	Create(ctx context.Context, link *models.Link) (*models.Link, error)
	// UpdateFields применяет частичное обновление одной транзакцией.
	UpdateFields(ctx context.Context, shortID string, fields repositories.LinkUpdate) (*models.Link, error)
	// RenameWithTombstone одной транзакцией помечает старую запись tombstone
	// и создает активный клон под новым идентификатором.
	RenameWithTombstone(ctx context.Context, oldID, newID string) (*models.Link, error)
}
