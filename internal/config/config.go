package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DotEnvFile is loaded into the process environment before overrides apply.
// Variables already set in the environment win over the file.
const DotEnvFile = ".env"

type Config struct {
	Port                 string      `json:"port"`
	UploadDir            string      `json:"upload_dir"`
	DBFile               string      `json:"db_file"`
	StoreDriver          string      `json:"store_driver"` // file | redis
	JWTSecret            string      `json:"jwt_secret"`
	CORSOrigin           string      `json:"cors_origin"`
	Redis                RedisConfig `json:"redis"`
	MaxUploadSize        int64       `json:"max_upload_size"`
	StatsRefreshInterval int         `json:"stats_refresh_interval"`
	RateLimit            struct {
		Requests int `json:"requests"`
		Duration int `json:"duration"`
	} `json:"rate_limit"`
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	PoolSize int    `json:"pool_size"`
	Prefix   string `json:"prefix"`
}

const (
	DriverFile  = "file"
	DriverRedis = "redis"
)

func Default() Config {
	cfg := Config{
		Port:                 "5000",
		UploadDir:            "uploads",
		DBFile:               "db.json",
		StoreDriver:          DriverFile,
		CORSOrigin:           "*",
		MaxUploadSize:        10 << 20,
		StatsRefreshInterval: 60,
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			PoolSize: 10,
			Prefix:   "wallpapersky",
		},
	}
	cfg.RateLimit.Requests = 100
	cfg.RateLimit.Duration = 1
	return cfg
}

// Load 读取配置文件（不存在时使用默认值），再应用环境变量覆盖
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := json.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load %s: %w", DotEnvFile, err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"PORT":           &c.Port,
		"UPLOAD_DIR":     &c.UploadDir,
		"DB_FILE":        &c.DBFile,
		"STORE_DRIVER":   &c.StoreDriver,
		"JWT_SECRET":     &c.JWTSecret,
		"CORS_ORIGIN":    &c.CORSOrigin,
		"REDIS_ADDR":     &c.Redis.Addr,
		"REDIS_PASSWORD": &c.Redis.Password,
	}
	for key, dst := range str {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("MAX_UPLOAD_SIZE"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_UPLOAD_SIZE: %w", err)
		}
		c.MaxUploadSize = n
	}
	if v, ok := lookup("REDIS_DB"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REDIS_DB: %w", err)
		}
		c.Redis.DB = n
	}
	return nil
}

func (c Config) Validate() error {
	if c.StoreDriver != DriverFile && c.StoreDriver != DriverRedis {
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	if c.Port == "" {
		return errors.New("port is required")
	}
	if c.UploadDir == "" {
		return errors.New("upload_dir is required")
	}
	if c.StoreDriver == DriverFile && c.DBFile == "" {
		return errors.New("db_file is required for the file store")
	}
	return nil
}
