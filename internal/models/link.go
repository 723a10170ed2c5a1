package models

import "time"

// ShortIdentifierMaxLength максимально допустимая длина короткого идентификатора.
const ShortIdentifierMaxLength = 32

// GeneratedIdentifierLength длина автоматически сгенерированного идентификатора (hex).
const GeneratedIdentifierLength = 6

// Link структура модели хранения короткой ссылки.
//
// Запись никогда не удаляется физически: при деактивации или смене алиаса
// строка остается в хранилище с Active = false (tombstone), чтобы идентификатор
// нельзя было занять повторно.
type Link struct {
	ShortIdentifier string     `gorm:"primaryKey;size:32" json:"shortIdentifier"`
	TargetURL       string     `gorm:"size:2048;not null" json:"targetURL"`
	RedirectCode    int        `gorm:"not null" json:"redirectCode"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	EditTokenDigest string     `gorm:"size:64;not null" json:"editTokenDigest"`
	Active          bool       `json:"active"`
	ExpiresAt       *time.Time `json:"expiresAt"`
}
