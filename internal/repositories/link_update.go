package repositories

import "time"

// LinkUpdate частичное обновление записи. nil-поля остаются без изменений.
// UpdatedAt выставляется репозиторием при любом принятом обновлении.
type LinkUpdate struct {
	TargetURL    *string
	RedirectCode *int
	Active       *bool
	ExpiresAt    *time.Time
}

// IsEmpty сообщает, что обновлять нечего. Пустое обновление тем не менее
// продвигает UpdatedAt.
func (u LinkUpdate) IsEmpty() bool {
	return u.TargetURL == nil && u.RedirectCode == nil && u.Active == nil && u.ExpiresAt == nil
}
