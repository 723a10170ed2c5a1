// Package tokens отвечает за токены редактирования ссылок.
//
// Аккаунтов в системе нет: право на изменение ссылки подтверждается только
// владением токеном, выданным при ее создании. В хранилище попадает
// исключительно дайджест токена, сам токен показывается ровно один раз.
package tokens

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"math/big"

	"github.com/pkg/errors"
)

// EditTokenLength длина токена редактирования.
const EditTokenLength = 24

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateEditToken создает криптографически случайный токен из алфавита
// [A-Za-z0-9]. Каждый символ выбирается равномерно через crypto/rand,
// без смещения по модулю.
//
// Возвращает:
//   - string: токен длиной EditTokenLength
//   - error: ошибка источника случайности
func GenerateEditToken() (string, error) {
	alphabetLen := big.NewInt(int64(len(tokenAlphabet)))
	buf := make([]byte, EditTokenLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", errors.Wrap(err, "generating edit token")
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// DigestEditToken вычисляет sha256 от конкатенации pepper и токена и
// возвращает 64 hex символа в нижнем регистре. Pepper — серверный секрет из
// конфигурации; пустая строка означает режим без pepper.
func DigestEditToken(token string, pepper string) string {
	h := sha256.New()
	if pepper != "" {
		h.Write([]byte(pepper))
	}
	h.Write([]byte(token))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyEditToken сверяет токен с сохраненным дайджестом. Сравнение
// выполняется за константное время, чтобы несовпадение нельзя было
// обнаружить по таймингу.
func VerifyEditToken(token string, digest string, pepper string) bool {
	expected := DigestEditToken(token, pepper)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(digest)) == 1
}
