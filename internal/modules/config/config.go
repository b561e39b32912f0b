package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"signal_copier/internal/models"

	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	metaAPITokenENV   = "METAAPI_TOKEN"
	accountIDENV      = "ACCOUNT_ID"
	databaseDSN       = "DATABASE_DSN"
	riskFactorENV     = "RISK_FACTOR"
)

// Config ...
type Config struct {
	Telegram struct {
		Token string `yaml:"token"`
		// Разрешённые chat ID; пустой список = пускаем всех.
		AllowedUsers []int64 `yaml:"allowed_users"`
	} `yaml:"telegram"`

	MetaAPI struct {
		Token     string `yaml:"token"`
		AccountID string `yaml:"account_id"`
		Region    string `yaml:"region"` // например "london"
	} `yaml:"metaapi"`

	DB string `yaml:"db_dsn"`

	Service struct {
		Host       string `yaml:"host"`
		HealthPort int    `yaml:"health_port"`
	} `yaml:"service"`

	Jaeger struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"jaeger"`

	// Дефолты риска: политика и доли баланса.
	// risk_factor — fixed fraction, risk_per_trade — reward weighted.
	Risk models.RiskConfig `yaml:"risk"`

	Quotes struct {
		// Стрим котировок; при выключенном стриме NOW резолвится по REST.
		Enabled bool   `yaml:"enabled"`
		URL     string `yaml:"url"`
	} `yaml:"quotes"`

	ConfirmTimeout time.Duration `yaml:"confirm_timeout"`
}

func NewConfig() (*Config, error) {

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
		Risk: models.RiskConfig{
			Policy:       models.PolicyFixedFraction,
			RiskFactor:   0.01,
			RiskPerTrade: 0.01,
		},
		ConfirmTimeout: durationFromEnv("CONFIRM_TIMEOUT", "60s"),
	}
	config.Service.HealthPort = intFromEnv("HEALTH_PORT", 8080)

	err = decoder.Decode(&config)
	if err != nil {
		log.Fatalf("Failed to decode config file: %v", err)
	}

	if token := os.Getenv(tokenTelegramENV); token != "" {
		config.Telegram.Token = token
	}
	if token := os.Getenv(metaAPITokenENV); token != "" {
		config.MetaAPI.Token = token
	}
	if id := os.Getenv(accountIDENV); id != "" {
		config.MetaAPI.AccountID = id
	}
	if dsn := os.Getenv(databaseDSN); dsn != "" {
		config.DB = dsn
	}
	if rf := floatFromEnv(riskFactorENV, 0); rf > 0 {
		config.Risk.RiskFactor = rf
	}

	if err := validateRisk(config.Risk); err != nil {
		return nil, err
	}

	return &config, nil
}

func validateRisk(r models.RiskConfig) error {
	switch r.Policy {
	case models.PolicyFixedFraction, models.PolicyRewardWeighted:
	default:
		return fmt.Errorf("config: unknown risk policy %q", r.Policy)
	}
	if r.RiskFactor <= 0 || r.RiskFactor >= 1 {
		return fmt.Errorf("config: risk_factor must be in (0,1), got %v", r.RiskFactor)
	}
	if r.RiskPerTrade <= 0 || r.RiskPerTrade >= 1 {
		return fmt.Errorf("config: risk_per_trade must be in (0,1), got %v", r.RiskPerTrade)
	}
	return nil
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
