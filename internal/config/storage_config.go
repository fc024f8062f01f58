package config

import (
	"os"
	"path/filepath"
	"strings"
)

type StorageConfig interface {
	GetStorageDriver() string
	GetSQLitePath() string
	GetRedisURL() string
}

type Storage struct{}

var _ StorageConfig = Storage{}

const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

func (Storage) GetStorageDriver() string {
	return strings.ToLower(GetEnv("STORAGE_DRIVER", StorageMemory))
}

func (Storage) GetSQLitePath() string {
	if path := os.Getenv("SQLITE_PATH"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".safisaude", "console.db")
	}
	return filepath.Join(home, ".safisaude", "console.db")
}

func (Storage) GetRedisURL() string {
	return GetEnv("REDIS_URL", "")
}
