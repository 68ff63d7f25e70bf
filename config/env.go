package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix 环境变量前缀，例如 LEARTOOLS_GENERAL_LANGUAGE
const EnvPrefix = "LEARTOOLS"

// LoadDotEnv 加载 .env 文件，文件不存在时静默跳过
//
// 已存在的环境变量不会被覆盖。
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// ApplyEnv 用环境变量覆盖配置中对应的字段，未设置的变量保持原值
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("apply environment: %w", err)
	}
	return nil
}

// Load 依次读取配置文件、.env 与环境变量
func Load(configPath, envFile string) (*Config, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := LoadDotEnv(envFile); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}
