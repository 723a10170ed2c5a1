package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/fsdevblog/tinylink/internal/models"

	"github.com/pkg/errors"
)

// MaxAllocationAttempts бюджет попыток генерации свободного идентификатора.
const MaxAllocationAttempts = 5

// ExistsFunc оракул занятости идентификатора. Обязан учитывать и активные,
// и tombstone-записи.
type ExistsFunc func(ctx context.Context, shortID string) (bool, error)

// AllocateShortIdentifier подбирает свободный случайный идентификатор из
// 6 hex символов (24 бита энтропии). Схема вероятностная: проверка занятости
// носит рекомендательный характер, коллизия на вставке все равно возможна и
// обрабатывается вызывающей стороной. После maxAttempts подряд занятых
// кандидатов возвращается ErrExhausted.
func AllocateShortIdentifier(ctx context.Context, exists ExistsFunc, maxAttempts int) (string, error) {
	for range maxAttempts {
		candidate, candErr := randomHexIdentifier()
		if candErr != nil {
			return "", candErr
		}
		taken, exErr := exists(ctx, candidate)
		if exErr != nil {
			return "", errors.Wrap(exErr, "probing short identifier")
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", errors.Wrapf(ErrExhausted, "after %d attempts", maxAttempts)
}

func randomHexIdentifier() (string, error) {
	buf := make([]byte, models.GeneratedIdentifierLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "reading random bytes")
	}
	return hex.EncodeToString(buf), nil
}
