package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	File     FileConfig     `yaml:"file"`
	AI       AIConfig       `yaml:"ai"`
	Frontend FrontendConfig `yaml:"frontend"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"`
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

type JWTConfig struct {
	Secret      string `yaml:"secret"`
	ExpireHours int    `yaml:"expire_hours"`
}

type FileConfig struct {
	UploadPath        string   `yaml:"upload_path"`
	MaxPhotoSize      int64    `yaml:"max_photo_size"`
	MaxUserStorage    int64    `yaml:"max_user_storage"`
	AllowedPhotoTypes []string `yaml:"allowed_photo_types"`
}

// AIConfig 外部 AI 服务配置：Groq 负责润色与语音转写，网关负责回顾生成
type AIConfig struct {
	GroqAPIKey       string `yaml:"groq_api_key"`
	GroqBaseURL      string `yaml:"groq_base_url"`
	BeautifyModel    string `yaml:"beautify_model"`
	TranscribeModel  string `yaml:"transcribe_model"`
	GatewayAPIKey    string `yaml:"gateway_api_key"`
	GatewayBaseURL   string `yaml:"gateway_base_url"`
	ReflectionModel  string `yaml:"reflection_model"`
	RequestTimeoutMs int    `yaml:"request_timeout_ms"`
}

type FrontendConfig struct {
	BaseURL string `yaml:"base_url"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxAge     int    `yaml:"max_age"`
	MaxBackups int    `yaml:"max_backups"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	// 首先尝试从 YAML 文件加载
	if data, err := os.ReadFile("configs/config.yaml"); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	// 然后从环境变量覆盖
	cfg.overrideFromEnv()

	// 设置默认值
	cfg.setDefaults()

	return cfg, nil
}

func (c *Config) overrideFromEnv() {
	// Database
	if val := os.Getenv("DATABASE_URL"); val != "" {
		c.Database.URL = val
	}
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.Database.Port = port
		}
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.DBName = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.Server.Port = port
		}
	}
	if val := os.Getenv("GIN_MODE"); val != "" {
		c.Server.Mode = val
	}

	// File
	if val := os.Getenv("UPLOAD_PATH"); val != "" {
		c.File.UploadPath = val
	}
	if val := os.Getenv("MAX_PHOTO_SIZE"); val != "" {
		if size, err := strconv.ParseInt(val, 10, 64); err == nil {
			c.File.MaxPhotoSize = size
		}
	}
	if val := os.Getenv("MAX_USER_STORAGE"); val != "" {
		if size, err := strconv.ParseInt(val, 10, 64); err == nil {
			c.File.MaxUserStorage = size
		}
	}

	// AI
	if val := os.Getenv("GROQ_API_KEY"); val != "" {
		c.AI.GroqAPIKey = val
	}
	if val := os.Getenv("GROQ_BASE_URL"); val != "" {
		c.AI.GroqBaseURL = val
	}
	if val := os.Getenv("AI_GATEWAY_API_KEY"); val != "" {
		c.AI.GatewayAPIKey = val
	}
	if val := os.Getenv("AI_GATEWAY_BASE_URL"); val != "" {
		c.AI.GatewayBaseURL = val
	}

	// Frontend
	if val := os.Getenv("FRONTEND_BASE_URL"); val != "" {
		c.Frontend.BaseURL = val
	}
}

func (c *Config) setDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "debug"
	}

	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.JWT.ExpireHours == 0 {
		c.JWT.ExpireHours = 24
	}

	if c.File.UploadPath == "" {
		c.File.UploadPath = "./uploads"
	}
	if c.File.MaxPhotoSize == 0 {
		c.File.MaxPhotoSize = 10485760 // 10MB
	}
	if c.File.MaxUserStorage == 0 {
		c.File.MaxUserStorage = 524288000 // 500MB
	}
	if len(c.File.AllowedPhotoTypes) == 0 {
		c.File.AllowedPhotoTypes = []string{"jpg", "jpeg", "png", "gif", "webp"}
	}

	if c.AI.GroqBaseURL == "" {
		c.AI.GroqBaseURL = "https://api.groq.com/openai/v1"
	}
	if c.AI.BeautifyModel == "" {
		c.AI.BeautifyModel = "mixtral-8x7b-32768"
	}
	if c.AI.TranscribeModel == "" {
		c.AI.TranscribeModel = "whisper-large-v3"
	}
	if c.AI.GatewayBaseURL == "" {
		c.AI.GatewayBaseURL = "https://ai.gateway.lovable.dev/v1"
	}
	if c.AI.ReflectionModel == "" {
		c.AI.ReflectionModel = "google/gemini-2.5-flash"
	}
	if c.AI.RequestTimeoutMs == 0 {
		c.AI.RequestTimeoutMs = 30000
	}

	if c.Frontend.BaseURL == "" {
		c.Frontend.BaseURL = "http://localhost:3000"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = "./logs/app.log"
	}
}

func (c *Config) GetDSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User,
		c.Database.Password, c.Database.DBName, c.Database.SSLMode)
}

func (c *Config) IsPhotoType(fileType string) bool {
	fileType = strings.ToLower(fileType)
	for _, allowedType := range c.File.AllowedPhotoTypes {
		if fileType == allowedType {
			return true
		}
	}
	return false
}
