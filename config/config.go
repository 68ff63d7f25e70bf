package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Learting/leartools/message"
)

// DefaultPath 默认配置文件
const DefaultPath = "config.json"

// 日志输出格式
const (
	LogFormatPretty = "pretty"
	LogFormatJSON   = "json"
)

// GeneralConfig 通用设置
type GeneralConfig struct {
	Language string `json:"language" yaml:"language"`
	// Encoding 领地存档的文本编码
	Encoding string `json:"encoding" yaml:"encoding"`
}

// UIConfig 终端输出设置
type UIConfig struct {
	ColoredOutput bool `json:"colored_output" yaml:"colored_output" split_words:"true"`
	ProgressBar   bool `json:"progress_bar" yaml:"progress_bar" split_words:"true"`
}

// LogConfig 诊断日志设置
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// Config 应用配置
type Config struct {
	General GeneralConfig `json:"general" yaml:"general"`
	UI      UIConfig      `json:"ui" yaml:"ui"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// Default 默认配置
func Default() *Config {
	return &Config{
		General: GeneralConfig{
			Language: "zh_CN",
			Encoding: "gbk",
		},
		UI: UIConfig{
			ColoredOutput: true,
			ProgressBar:   true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatPretty,
		},
	}
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadConfig 从文件加载配置，文件不存在时返回默认配置
func LoadConfig(configPath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if isYAML(configPath) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", configPath, err)
	}
	return cfg, nil
}

// SaveConfig 保存配置到文件
func (c *Config) SaveConfig(configPath string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(configPath) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0o644)
}

// Validate 检查取值范围
func (c *Config) Validate() error {
	switch c.Log.Format {
	case LogFormatPretty, LogFormatJSON:
	default:
		return fmt.Errorf("invalid log format %q (want %s or %s)", c.Log.Format, LogFormatPretty, LogFormatJSON)
	}
	if !slices.Contains(message.Languages(), c.General.Language) {
		return fmt.Errorf("unsupported language %q (want one of %s)", c.General.Language, strings.Join(message.Languages(), ", "))
	}
	if c.General.Encoding == "" {
		return errors.New("registry encoding must not be empty")
	}
	return nil
}
