package controllers

import "errors"

// Ошибки.
var (
	ErrInternal     = errors.New("internal error")      // Прочая ошибка
	ErrMissingToken = errors.New("missing edit token")  // Нет заголовка X-Edit-Token
	ErrBadPayload   = errors.New("malformed request")   // Некорректное тело запроса
	ErrNotFound     = errors.New("link not found")      // Идентификатор никогда не существовал
	ErrGone         = errors.New("link gone")           // Запись деактивирована или истекла
)
