package config

import (
	"flag"
	"net/url"

	"github.com/fsdevblog/tinylink/internal/services"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type DBType string

const (
	DBTypeSQLite   DBType = "sqlite"
	DBTypeInMemory DBType = "inMemory"
)

type Config struct {
	// Адрес на котором запустится сервер
	ServerAddress string `env:"SERVER_ADDRESS"`
	// Базовый адрес результирующей короткой ссылки
	BaseURL *url.URL `env:"BASE_URL"`
	// Тип хранилища
	DBType DBType `env:"DB" envDefault:"inMemory"`
	// Путь к файлу sqlite (используется при DB=sqlite)
	SQLitePath string `env:"SQLITE_DB_PATH" envDefault:"data/links.db"`
	// Серверный секрет для дайджеста токенов редактирования.
	// Пустое значение — режим без pepper.
	TokenPepper string `env:"EDIT_TOKEN_PEPPER"`
	// Срок кеширования постоянных редиректов (301/308) в секундах
	PermanentCacheTTL int `env:"PERMANENT_CACHE_TTL"`
	Logger            *logrus.Logger
}

func LoadConfig() (*Config, error) {
	var flagsConfig, envConfig Config
	logger := initLogger()

	if err := env.Parse(&envConfig); err != nil {
		return nil, errors.Wrapf(err, "parse ENV config error")
	}

	loadFlags(&flagsConfig)

	conf := mergeConfig(&envConfig, &flagsConfig)
	conf.Logger = logger
	return conf, nil
}

// MustLoadConfig вызывает панику если конфигурацию собрать не удалось.
func MustLoadConfig() *Config {
	conf, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return conf
}

// loadFlags парсит флаги командной строки.
func loadFlags(flagsConfig *Config) {
	flag.StringVar(&flagsConfig.ServerAddress, "a", "localhost:8080", "Адрес сервера")
	flag.StringVar(&flagsConfig.SQLitePath, "f", "data/links.db", "Путь к файлу sqlite")
	flag.IntVar(
		&flagsConfig.PermanentCacheTTL,
		"c",
		services.DefaultPermanentCacheSeconds,
		"Срок кеширования постоянных редиректов, сек",
	)

	bDesc := "Базовый адрес короткой ссылки (по умолчанию Scheme://Host запущенного сервера)"
	flag.Func("b", bDesc, func(rawURL string) error {
		parsedURL, err := url.ParseRequestURI(rawURL)
		if err != nil {
			return errors.Wrap(err, "failed to parse base url")
		}

		// создаем новый инстанс, отсекая тем самым Path и Query если они заданы в базовом урле.
		flagsConfig.BaseURL = &url.URL{
			Scheme: parsedURL.Scheme,
			Host:   parsedURL.Host,
		}
		return nil
	})

	flag.Parse()
}

// mergeConfig сливает структуры для env и флагов. Значения из окружения
// имеют приоритет.
func mergeConfig(envConfig, flagsConfig *Config) *Config {
	return &Config{
		ServerAddress:     defaultIfBlank[string](envConfig.ServerAddress, flagsConfig.ServerAddress),
		BaseURL:           defaultIfBlank[*url.URL](envConfig.BaseURL, flagsConfig.BaseURL),
		DBType:            defaultIfBlank[DBType](envConfig.DBType, flagsConfig.DBType),
		SQLitePath:        defaultIfBlank[string](envConfig.SQLitePath, flagsConfig.SQLitePath),
		TokenPepper:       defaultIfBlank[string](envConfig.TokenPepper, flagsConfig.TokenPepper),
		PermanentCacheTTL: defaultIfBlank[int](envConfig.PermanentCacheTTL, flagsConfig.PermanentCacheTTL),
	}
}

func defaultIfBlank[T any](value T, defaultValue T) T {
	if v, ok := any(value).(string); ok && v == "" {
		return defaultValue
	}
	if v, ok := any(value).(DBType); ok && v == "" {
		return defaultValue
	}
	if v, ok := any(value).(*url.URL); ok && v == nil {
		return defaultValue
	}
	if v, ok := any(value).(int); ok && v == 0 {
		return defaultValue
	}
	return value
}
