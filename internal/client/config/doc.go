// Package config loads runtime configuration for the CampusHub client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment: a dotenv file (-e / -env-file, or ./.env) loaded with
//     godotenv, then CAMPUSHUB_* variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path of the SQLite database file
//	-s string   store backend: sqlite or redis
//	-r string   redis address
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "db_path": "campushub.db",
//	  "store_backend": "sqlite",
//	  "redis_addr": "127.0.0.1:6379",
//	  "redis_db": 0,
//	  "redis_key_prefix": "campushub:",
//	  "store_timeout": "3s",
//	  "log_level": "info"
//	}
package config
