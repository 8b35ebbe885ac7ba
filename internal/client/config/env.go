package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/campushub/internal/flagx"
)

// Environment variables read by parseEnv.
const (
	EnvDBPath       = "CAMPUSHUB_DB_PATH"
	EnvStoreBackend = "CAMPUSHUB_STORE"
	EnvRedisAddr    = "CAMPUSHUB_REDIS_ADDR"
	EnvRedisDB      = "CAMPUSHUB_REDIS_DB"
	EnvRedisPrefix  = "CAMPUSHUB_REDIS_PREFIX"
	EnvStoreTimeout = "CAMPUSHUB_STORE_TIMEOUT"
	EnvLogLevel     = "CAMPUSHUB_LOG_LEVEL"
)

const defaultEnvFile = ".env"

// parseEnv loads a dotenv file (named by -e/-env-file, or ./.env when it
// exists) and then overlays Config with CAMPUSHUB_* variables. Variables
// already set in the process environment win over the file. Panics on an
// unreadable explicit file or malformed numbers and durations.
func parseEnv(cfg *Config) {
	loadEnvFile(flagx.EnvFileFlags())

	setString(&cfg.DBPath, os.Getenv(EnvDBPath))
	setString(&cfg.StoreBackend, os.Getenv(EnvStoreBackend))
	setString(&cfg.RedisAddr, os.Getenv(EnvRedisAddr))
	setString(&cfg.RedisKeyPrefix, os.Getenv(EnvRedisPrefix))
	setString(&cfg.LogLevel, os.Getenv(EnvLogLevel))

	if v := os.Getenv(EnvRedisDB); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.RedisDB = n
	}
	if v := os.Getenv(EnvStoreTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.StoreTimeout = d
	}
}

func loadEnvFile(path string) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
		return
	}
	if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
}
