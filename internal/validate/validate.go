// Package validate содержит нормализацию и валидацию пользовательского ввода:
// короткие идентификаторы, целевые URL и коды редиректа.
//
// Нормализация и валидация намеренно разделены: нормализация никогда не
// возвращает ошибку формата, проверка формата выполняется отдельным вызовом.
package validate

import (
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/idna"
)

// MaxTargetURLLength максимальная длина целевого URL (до и после нормализации).
const MaxTargetURLLength = 2048

// Ошибки валидации. Проверяются через errors.Is на границах слоев.
var (
	ErrInvalidFormat       = errors.New("[validate]: invalid short identifier format")
	ErrReserved            = errors.New("[validate]: short identifier is reserved")
	ErrInvalidScheme       = errors.New("[validate]: url scheme must be http or https")
	ErrInvalidHost         = errors.New("[validate]: invalid url hostname")
	ErrTooLong             = errors.New("[validate]: url is too long")
	ErrInvalidRedirectCode = errors.New("[validate]: invalid redirect code")
)

var shortIdentifierRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,32}$`)

// NormalizeShortIdentifier приводит идентификатор к нижнему регистру.
// Формат здесь не проверяется, для этого есть ValidateShortIdentifier.
func NormalizeShortIdentifier(raw string) string {
	return strings.ToLower(raw)
}

// ValidateShortIdentifier проверяет идентификатор на соответствие паттерну
// ^[A-Za-z0-9_-]{1,32}$ и на вхождение в список зарезервированных слов.
func ValidateShortIdentifier(shortID string) error {
	if !shortIdentifierRegex.MatchString(shortID) {
		return errors.Wrapf(ErrInvalidFormat, "identifier `%s`", shortID)
	}
	if IsReserved(shortID) {
		return errors.Wrapf(ErrReserved, "identifier `%s`", shortID)
	}
	return nil
}

// NormalizeTargetURL нормализует целевой URL: схема приводится к нижнему
// регистру и ограничивается http/https, хост транскодируется в punycode.
// Userinfo, порт, путь, query и fragment сохраняются как есть.
func NormalizeTargetURL(raw string) (string, error) {
	if len(raw) > MaxTargetURLLength {
		return "", errors.Wrapf(ErrTooLong, "%d bytes", len(raw))
	}

	parsed, parseErr := url.Parse(raw)
	if parseErr != nil {
		return "", errors.Wrapf(ErrInvalidScheme, "unparsable url `%s`", raw)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", errors.Wrapf(ErrInvalidScheme, "scheme `%s`", parsed.Scheme)
	}
	parsed.Scheme = scheme

	if hostname := parsed.Hostname(); hostname != "" {
		asciiHost, idnaErr := idna.Lookup.ToASCII(hostname)
		if idnaErr != nil {
			return "", errors.Wrapf(ErrInvalidHost, "hostname `%s`", hostname)
		}
		if port := parsed.Port(); port != "" {
			parsed.Host = asciiHost + ":" + port
		} else {
			parsed.Host = asciiHost
		}
	}

	normalized := parsed.String()
	if len(normalized) > MaxTargetURLLength {
		return "", errors.Wrapf(ErrTooLong, "%d bytes after normalization", len(normalized))
	}
	return normalized, nil
}

// ValidateRedirectCode проверяет, что код редиректа входит в допустимое множество.
func ValidateRedirectCode(code int) error {
	switch code {
	case http.StatusMovedPermanently,
		http.StatusFound,
		http.StatusTemporaryRedirect,
		http.StatusPermanentRedirect:
		return nil
	default:
		return errors.Wrapf(ErrInvalidRedirectCode, "code %d", code)
	}
}
