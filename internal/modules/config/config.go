package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	apiKeyENV         = "BITHUMB_API_KEY"
	apiSecretENV      = "BITHUMB_API_SECRET"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	chatIDTelegramENV = "TELEGRAM_CHAT_ID"
)

// Config ...
type Config struct {
	Bithumb struct {
		APIKey    string `yaml:"api_key"`
		APISecret string `yaml:"api_secret"`
	} `yaml:"bithumb"`
	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	Health struct {
		Addr string `yaml:"addr"`
	} `yaml:"health"`
	Jaeger struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"jaeger"`

	// Strategy parameters
	Slots        int     `yaml:"slots"`         // equal-sized capital allocations per day
	K            float64 `yaml:"k"`             // breakout range fraction
	MaxNoise     float64 `yaml:"max_noise"`     // smoothed-noise ceiling for selection
	NoiseWindow  int     `yaml:"noise_window"`  // trailing days for noise smoothing
	TrendWindow  int     `yaml:"trend_window"`  // trailing days for the close average
	PortfolioMax int     `yaml:"portfolio_max"` // lowest-noise cut before the ceiling

	// Execution parameters
	MinNotional float64       `yaml:"min_notional"` // KRW floor per order
	SellRetries int           `yaml:"sell_retries"`
	TickEvery   time.Duration `yaml:"tick_every"`
	OrderPace   time.Duration `yaml:"order_pace"` // delay between per-ticker order attempts

	IgnoreTickers []string `yaml:"ignore_tickers"`
}

func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	file, err := os.Open("configs/" + configFileName)
	if err != nil {
		log.Fatalf("Failed to open config file: %v", err)
	}

	defer func() {
		_ = file.Close()
	}()

	decoder := yaml.NewDecoder(file)
	config := Config{
		Slots:        intFromEnv("SLOTS", 5),
		K:            floatFromEnv("K", 0.5),
		MaxNoise:     floatFromEnv("MAX_NOISE", 0.5),
		NoiseWindow:  5,
		TrendWindow:  5,
		PortfolioMax: 20,

		MinNotional: 1000,
		SellRetries: intFromEnv("SELL_RETRIES", 10),
		TickEvery:   durationFromEnv("TICK_EVERY", "1s"),
		OrderPace:   durationFromEnv("ORDER_PACE", "1s"),
	}
	err = decoder.Decode(&config)
	if err != nil {
		log.Fatalf("Failed to decode config file: %v", err)
	}

	if key := os.Getenv(apiKeyENV); key != "" {
		config.Bithumb.APIKey = key
	}
	if secret := os.Getenv(apiSecretENV); secret != "" {
		config.Bithumb.APISecret = secret
	}
	if token := os.Getenv(tokenTelegramENV); token != "" {
		config.Telegram.Token = token
	}
	if v := os.Getenv(chatIDTelegramENV); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Telegram.ChatID = id
		}
	}
	if config.Health.Addr == "" {
		config.Health.Addr = ":8080"
	}

	return &config, nil
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func floatFromEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationFromEnv(key, def string) time.Duration {
	val := getenvDefault(key, def)
	d, err := time.ParseDuration(val)
	if err != nil {
		d, _ = time.ParseDuration(def)
	}
	return d
}
