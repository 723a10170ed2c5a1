package services

import (
	"errors"
	"fmt"

	"github.com/fsdevblog/tinylink/internal/db/memory"
	"github.com/fsdevblog/tinylink/internal/repositories/memstore"
	"github.com/fsdevblog/tinylink/internal/repositories/sql"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ServiceType string

const (
	ServiceTypeSQLite   ServiceType = "sqlite"
	ServiceTypeInMemory ServiceType = "inMemory"
)

type Services struct {
	LinkService *LinkService
}

// Factory собирает сервисный слой поверх подключения, созданного
// db.NewConnectionFactory.
func Factory(conn any, sType ServiceType, conf LinkServiceConfig, logger *logrus.Logger) (*Services, error) {
	switch sType {
	case ServiceTypeSQLite:
		gormDB, ok := conn.(*gorm.DB)
		if !ok {
			return nil, errors.New("invalid connection type. expected *gorm.DB")
		}
		return &Services{
			LinkService: NewLinkService(sql.NewLinkRepo(gormDB, logger), conf),
		}, nil
	case ServiceTypeInMemory:
		store, ok := conn.(*memory.MStorage)
		if !ok {
			return nil, errors.New("invalid connection type. expected *memory.MStorage")
		}
		return &Services{
			LinkService: NewLinkService(memstore.NewLinkRepo(store, logger), conf),
		}, nil
	default:
		return nil, fmt.Errorf("unknown service type: %s", sType)
	}
}
