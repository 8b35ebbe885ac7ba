package config

import "time"

// Store backends understood by storage.Open.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Config holds runtime settings for the CampusHub client.
//
// Fields:
//   - DBPath: SQLite file holding the local key-value store.
//   - StoreBackend: "sqlite" (default) or "redis".
//   - RedisAddr, RedisDB, RedisKeyPrefix: used when StoreBackend is "redis".
//   - StoreTimeout: upper bound for connecting to the store at startup.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	DBPath         string
	StoreBackend   string
	RedisAddr      string
	RedisDB        int
	RedisKeyPrefix string
	StoreTimeout   time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DBPath = "campushub.db"
	c.StoreBackend = StoreSQLite
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisDB = 0
	c.RedisKeyPrefix = "campushub:"
	c.StoreTimeout = 3 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment (including a dotenv file) and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
