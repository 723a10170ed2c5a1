package db

import (
	"errors"
	"fmt"

	"github.com/fsdevblog/tinylink/internal/db/memory"
)

type StorageType string

const (
	StorageTypeSQLite   StorageType = "sqlite"
	StorageTypeInMemory StorageType = "inMemory"
)

type FactoryConfig struct {
	StorageType StorageType
	SQLitePath  string
}

// NewConnectionFactory возвращает подключение к хранилищу выбранного типа:
// *gorm.DB для sqlite либо *memory.MStorage для режима в памяти.
func NewConnectionFactory(config FactoryConfig) (any, error) {
	switch config.StorageType {
	case StorageTypeSQLite:
		if config.SQLitePath == "" {
			return nil, errors.New("sqlite db path is empty")
		}
		conn, err := NewSQLite(config.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to create sqlite connection: %w", err)
		}
		return conn, nil
	case StorageTypeInMemory:
		return memory.NewMemStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", config.StorageType)
	}
}
