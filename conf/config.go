package conf

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 配置加载（数据库、JWT、Telegram、AI分析等）

type Db struct {
	DbName   string `yaml:"dbname"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	FileName   string `yaml:"file-name"`
	TimeFormat string `yaml:"time-format"`
	MaxSize    int    `yaml:"max-size"`
	MaxBackups int    `yaml:"max-backups"`
	MaxAge     int    `yaml:"max-age"`
	Compress   bool   `yaml:"compress"`
	LocalTime  bool   `yaml:"local-time"`
	Console    bool   `yaml:"console"`
}

// RedisConfig is used to configure redis
type RedisConfig struct {
	Addr         string `yaml:"address"`
	Password     string `yaml:"password"`
	Db           int    `yaml:"db"`
	PoolSize     int    `yaml:"pool-size"`
	MinIdleConns int    `yaml:"min-idle-conns"`
	IdleTimeout  int    `yaml:"idle-timeout"`
}

type JwtConfig struct {
	Secret                  string `yaml:"secret"`
	JwtTtl                  int64  `yaml:"ttl"`              // token 有效期（秒）
	JwtBlacklistGracePeriod int64  `yaml:"blacklistperiod" ` // 黑名单宽限时间（秒）
}

// TelegramConfig 交易开平仓提醒推送
type TelegramConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot-token"`
	ChatId   string `yaml:"chat-id"`
}

// VisionConfig AI图表分析服务（OpenAI兼容接口）
type VisionConfig struct {
	BaseURL    string `yaml:"base-url"`
	ApiKey     string `yaml:"api-key"`
	Model      string `yaml:"model"`
	TimeoutSec int    `yaml:"timeout"` // 单次调用超时（秒）
	MaxRetries int    `yaml:"max-retries"`
}

// BlobConfig 图表快照的本地存储
type BlobConfig struct {
	Dir     string `yaml:"dir"`
	BaseURL string `yaml:"base-url"`
}

// BackupConfig 账本导出目录
type BackupConfig struct {
	Dir string `yaml:"dir"`
}

type Config struct {
	AppName      string `yaml:"app_name"`
	Listen       string `yaml:"listen"`
	Mode         string `yaml:"mode"`
	Language     string `yaml:"language"`
	MaxPingCount int    `yaml:"max-ping-count"`
	ExternalURL  string `yaml:"external_url"`

	Db       `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Jwt      JwtConfig      `yaml:"jwt"`
	Redis    RedisConfig    `yaml:"redis"`
	Telegram TelegramConfig `yaml:"telegram"`
	Vision   VisionConfig   `yaml:"vision"`
	Blob     BlobConfig     `yaml:"blob"`
	Backup   BackupConfig   `yaml:"backup"`
}

var AppConfig Config

func LoadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("Read config file error %w", err)
	}
	if err := yaml.Unmarshal(data, &AppConfig); err != nil {
		return fmt.Errorf("Unmarshal config yaml error: %w", err)
	}
	return nil
}
