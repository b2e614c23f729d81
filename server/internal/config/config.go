package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 全局配置
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Groq    GroqConfig    `yaml:"groq"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// GroqConfig 生成能力配置。Mock 为 true 时无条件走本地兜底回复，
// 适合离线开发或没有 API Key 的环境。
type GroqConfig struct {
	APIKey string `yaml:"api_key"`
	APIURL string `yaml:"api_url"`
	Model  string `yaml:"model"`
	Mock   bool   `yaml:"mock"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load 从文件加载配置
func Load(path string) (*Config, error) {
	fmt.Printf("📋 Loading config from: %s\n", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// 从环境变量覆盖敏感信息
	if apiKey := os.Getenv("GROQ_API_KEY"); apiKey != "" {
		fmt.Printf("🔑 Using GROQ_API_KEY from environment variable\n")
		cfg.Groq.APIKey = apiKey
	}
	if apiURL := os.Getenv("GROQ_API_URL"); apiURL != "" {
		cfg.Groq.APIURL = apiURL
	}
	if model := os.Getenv("GROQ_MODEL"); model != "" {
		fmt.Printf("🤖 Using GROQ_MODEL from environment: %s\n", model)
		cfg.Groq.Model = model
	}
	if mock := os.Getenv("GROQ_MOCK"); mock == "true" || mock == "1" {
		fmt.Printf("🎭 GROQ_MOCK enabled, all responses will use the local responder\n")
		cfg.Groq.Mock = true
	}

	// 缺省值：和线上 Groq 服务保持一致
	if cfg.Groq.APIURL == "" {
		cfg.Groq.APIURL = "https://api.groq.com/openai/v1/chat/completions"
	}
	if cfg.Groq.Model == "" {
		cfg.Groq.Model = "llama-3.1-8b-instant"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	// 一轮对话要串行走生成 + 翻译两次外部调用，写超时要给足余量。
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 120 * time.Second
	}

	fmt.Printf("\n📊 Configuration Summary:\n")
	fmt.Printf("   Server: %s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("   Groq Model: %s\n", cfg.Groq.Model)
	fmt.Printf("   Mock Mode: %v\n", cfg.Groq.Mock)
	fmt.Printf("\n")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Validate 验证配置
func (c *Config) Validate() error {
	if !c.Groq.Mock && c.Groq.APIKey == "" {
		return fmt.Errorf("Groq API key is required (set GROQ_API_KEY env var or enable mock mode)")
	}
	return nil
}
