package validate

// reservedShortIdentifiers идентификаторы, занятые служебными маршрутами
// сервера. Список сверяется после нормализации, поэтому все слова в нижнем
// регистре.
var reservedShortIdentifiers = map[string]struct{}{
	"api":     {},
	"admin":   {},
	"robots":  {},
	"favicon": {},
	"health":  {},
	"metrics": {},
	"static":  {},
}

// IsReserved сообщает, занят ли идентификатор служебным маршрутом.
func IsReserved(shortID string) bool {
	_, ok := reservedShortIdentifiers[shortID]
	return ok
}
