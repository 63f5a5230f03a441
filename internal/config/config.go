package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Service ServiceConfig `mapstructure:"service"`
	Widget  WidgetConfig  `mapstructure:"widget"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	Stub    StubConfig    `mapstructure:"stub"`
}

type ServiceConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type WidgetConfig struct {
	MaxChars      int           `mapstructure:"max_chars"`
	ErrorDisplay  time.Duration `mapstructure:"error_display"`
	ErrorFade     time.Duration `mapstructure:"error_fade"`
	Greeting      string        `mapstructure:"greeting"`
	GreetingDelay time.Duration `mapstructure:"greeting_delay"`
}

type StorageConfig struct {
	Type      string `mapstructure:"type"`
	DataDir   string `mapstructure:"data_dir"`
	File      string `mapstructure:"file"`
	RedisAddr string `mapstructure:"redis_addr"`
	RedisDB   int    `mapstructure:"redis_db"`
	RedisHash string `mapstructure:"redis_hash"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type StubConfig struct {
	Port               int               `mapstructure:"port"`
	RateLimitPerMinute int               `mapstructure:"rate_limit_per_minute"`
	CacheTTL           time.Duration     `mapstructure:"cache_ttl"`
	CacheSize          int               `mapstructure:"cache_size"`
	DefaultReply       string            `mapstructure:"default_reply"`
	Replies            map[string]string `mapstructure:"replies"`
	Development        bool              `mapstructure:"development"`
	CORS               CORSConfig        `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
	MaxAge         int      `mapstructure:"max_age"`
}

const DefaultGreeting = "Hello! I'm your shopping assistant. Ask me about products, prices, or shopping advice!"

var cfg *Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.base_url", "http://localhost:5000")
	v.SetDefault("service.timeout", 60*time.Second)

	v.SetDefault("widget.max_chars", 500)
	v.SetDefault("widget.error_display", 5*time.Second)
	v.SetDefault("widget.error_fade", 300*time.Millisecond)
	v.SetDefault("widget.greeting", DefaultGreeting)
	v.SetDefault("widget.greeting_delay", 500*time.Millisecond)

	v.SetDefault("storage.type", "disk")
	v.SetDefault("storage.data_dir", defaultDataDir())
	v.SetDefault("storage.file", "preferences.json")
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.redis_hash", "chatwidget:preferences")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "app.log")

	v.SetDefault("stub.port", 5000)
	v.SetDefault("stub.rate_limit_per_minute", 10)
	v.SetDefault("stub.cache_ttl", time.Hour)
	v.SetDefault("stub.cache_size", 1000)
	v.SetDefault("stub.default_reply", "1. Product Category: General\n2. Top 3 Recommendations:\n- Ask about a specific product to get tailored picks")
	v.SetDefault("stub.cors.allowed_origins", []string{"*"})
	v.SetDefault("stub.cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("stub.cors.allowed_headers", []string{"Content-Type"})
	v.SetDefault("stub.cors.max_age", 600)
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + string(os.PathSeparator) + "chatwidget"
	}
	return ".chatwidget"
}

// Load reads an optional .env file, then the YAML file at configPath, then
// CHAT_* environment variables. An empty or missing configPath falls back to
// defaults.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				var notFound viper.ConfigFileNotFoundError
				if !errors.As(err, &notFound) {
					return nil, err
				}
			}
		}
	}

	loaded := &Config{}
	if err := v.Unmarshal(loaded); err != nil {
		return nil, err
	}

	if loaded.Widget.MaxChars <= 0 {
		loaded.Widget.MaxChars = 500
	}

	cfg = loaded
	return cfg, nil
}

func Get() *Config {
	return cfg
}
