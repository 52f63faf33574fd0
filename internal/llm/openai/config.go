package openai

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	oai "github.com/sashabaranov/go-openai"
)

// Config for the OpenAI-backed inference adapter.
type Config struct {
	APIKey      string        // if empty, falls back to env OPENAI_API_KEY
	BaseURL     string        // default https://api.openai.com/v1
	Model       string        // e.g., "gpt-4o"
	Temperature float32       // 0..2
	Timeout     time.Duration // http client timeout
}

// Client wraps the external inference service. It is a constructed instance
// holding its own configuration; there is no process-wide singleton.
type Client struct {
	cfg    Config
	api    *oai.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Model == "" {
		cfg.Model = oai.GPT4o
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	apiCfg := oai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	apiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		cfg:    cfg,
		api:    oai.NewClientWithConfig(apiCfg),
		logger: logger,
	}
}
