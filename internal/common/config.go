package common

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Ledger LedgerConfig
	OCR    OCRConfig
	LLM    LLMConfig
}

// LedgerConfig holds ledger storage configuration
type LedgerConfig struct {
	Path string
}

// OCRConfig holds text-recognition configuration
type OCRConfig struct {
	Tesseract   string
	Lang        string
	PSM         int
	TessdataDir string
}

// LLMConfig holds inference-service configuration
type LLMConfig struct {
	Enabled     bool
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	apiKey := getEnv("OPENAI_API_KEY", "")
	return &Config{
		Ledger: LedgerConfig{
			Path: getEnv("LEDGER_PATH", "data/expenses.csv"),
		},
		OCR: OCRConfig{
			Tesseract:   getEnv("TESSERACT_BIN", "tesseract"),
			Lang:        getEnv("TESSERACT_LANG", "eng"),
			PSM:         getEnvAsInt("TESSERACT_PSM", 6),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
		},
		LLM: LLMConfig{
			Enabled:     getEnvAsBool("SPENDLENS_AI", apiKey != ""),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o"),
			APIKey:      apiKey,
			BaseURL:     getEnv("OPENAI_BASE_URL", ""),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
		},
	}
}

// fileConfig is the optional YAML overlay. Only set fields override the
// environment-derived values.
type fileConfig struct {
	LedgerPath  *string  `yaml:"ledger_path"`
	Tesseract   *string  `yaml:"tesseract"`
	Lang        *string  `yaml:"tesseract_lang"`
	PSM         *int     `yaml:"tesseract_psm"`
	TessdataDir *string  `yaml:"tessdata_dir"`
	AIEnabled   *bool    `yaml:"ai_enabled"`
	Model       *string  `yaml:"openai_model"`
	APIKey      *string  `yaml:"openai_api_key"`
	BaseURL     *string  `yaml:"openai_base_url"`
	Temperature *float32 `yaml:"openai_temperature"`
	Timeout     *string  `yaml:"openai_timeout"`
}

// ApplyFile overlays settings from a YAML config file onto c.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return WrapError(err, "read config file")
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return WrapError(err, "parse config file")
	}
	if fc.LedgerPath != nil {
		c.Ledger.Path = *fc.LedgerPath
	}
	if fc.Tesseract != nil {
		c.OCR.Tesseract = *fc.Tesseract
	}
	if fc.Lang != nil {
		c.OCR.Lang = *fc.Lang
	}
	if fc.PSM != nil {
		c.OCR.PSM = *fc.PSM
	}
	if fc.TessdataDir != nil {
		c.OCR.TessdataDir = *fc.TessdataDir
	}
	if fc.AIEnabled != nil {
		c.LLM.Enabled = *fc.AIEnabled
	}
	if fc.Model != nil {
		c.LLM.Model = *fc.Model
	}
	if fc.APIKey != nil {
		c.LLM.APIKey = *fc.APIKey
	}
	if fc.BaseURL != nil {
		c.LLM.BaseURL = *fc.BaseURL
	}
	if fc.Temperature != nil {
		c.LLM.Temperature = *fc.Temperature
	}
	if fc.Timeout != nil {
		if d, err := time.ParseDuration(*fc.Timeout); err == nil {
			c.LLM.Timeout = d
		}
	}
	return nil
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Ledger.Path == "" {
		return NewAppError("CONFIG_ERROR", "LEDGER_PATH is required", ErrInvalidInput)
	}
	if c.LLM.Enabled && c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required when AI enhancement is enabled", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
