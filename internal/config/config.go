package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr string `yaml:"listen_addr" json:"listen_addr"`
	DataDir    string `yaml:"data_dir" json:"data_dir"`
	UploadDir  string `yaml:"upload_dir" json:"upload_dir"`
	StaticDir  string `yaml:"static_dir" json:"static_dir"`

	MaxUploadMB int64 `yaml:"max_upload_mb" json:"max_upload_mb"`

	GCTTLHours    int `yaml:"gc_ttl_hours" json:"gc_ttl_hours"`
	GCIntervalMin int `yaml:"gc_interval_min" json:"gc_interval_min"`

	LogLevel  string `yaml:"log_level" json:"log_level"`
	LogFormat string `yaml:"log_format" json:"log_format"`
}

const (
	defaultListenAddr    = ":3000"
	defaultDataDir       = "./data"
	defaultMaxUploadMB   = 20
	defaultGCTTLHours    = 24
	defaultGCIntervalMin = 30
)

// Load читает YAML-конфигурацию, применяет ENV-переопределения и возвращает
// актуальную структуру. Отсутствие файла конфигурации не ошибка: деплой на
// эфемерном диске обходится одними переменными окружения.
func Load() (*Config, error) {
	var c Config

	path := getenv("CONFIG_PATH", "./config.yaml")
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
		// работаем на дефолтах
	default:
		return nil, err
	}

	// ENV override
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.ListenAddr = ":" + v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		c.UploadDir = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		c.StaticDir = v
	}
	if n, ok := envInt64("MAX_UPLOAD_MB"); ok {
		c.MaxUploadMB = n
	}
	if n, ok := envInt64("GC_TTL_HOURS"); ok {
		c.GCTTLHours = int(n)
	}
	if n, ok := envInt64("GC_INTERVAL_MIN"); ok {
		c.GCIntervalMin = int(n)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}

	c.setDefaults()

	return &c, nil
}

// MaxUploadBytes возвращает лимит размера загрузки в байтах.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

func (c *Config) setDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = defaultListenAddr
	}
	if c.DataDir == "" {
		c.DataDir = defaultDataDir
	}
	if c.UploadDir == "" {
		c.UploadDir = c.DataDir + "/uploads"
	}
	if c.MaxUploadMB <= 0 {
		c.MaxUploadMB = defaultMaxUploadMB
	}
	if c.GCTTLHours <= 0 {
		c.GCTTLHours = defaultGCTTLHours
	}
	if c.GCIntervalMin <= 0 {
		c.GCIntervalMin = defaultGCIntervalMin
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "console"
	}
}

func envInt64(key string) (int64, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}

	return n, true
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}

	return def
}
