package memstore

import (
	"github.com/fsdevblog/tinylink/internal/db/memory"
	"github.com/fsdevblog/tinylink/internal/repositories"
	"github.com/pkg/errors"
)

// convertErrorType преобразует ошибки хранилища в ошибки уровня репозитория.
func convertErrorType(err error) error {
	switch {
	case errors.Is(err, memory.ErrDuplicateKey):
		return repositories.ErrDuplicateKey
	case errors.Is(err, memory.ErrNotFound):
		return repositories.ErrNotFound
	default:
		return repositories.ErrUnknown
	}
}
