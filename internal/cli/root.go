package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/spendlens/spendlens/internal/common"
	"github.com/spendlens/spendlens/internal/ledger"
	"github.com/spendlens/spendlens/internal/llm"
	"github.com/spendlens/spendlens/internal/llm/openai"
	"github.com/spendlens/spendlens/internal/ocr"
	"github.com/spendlens/spendlens/internal/pipeline"
)

var (
	flagConfig  string
	flagLedger  string
	flagVerbose bool

	cfg    *common.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "spendlens",
	Short:         "Track expenses extracted from receipt photos",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		c := common.LoadConfig()
		if flagConfig != "" {
			if err := c.ApplyFile(flagConfig); err != nil {
				return err
			}
		}
		if flagLedger != "" {
			c.Ledger.Path = flagLedger
		}
		if err := c.Validate(); err != nil {
			return err
		}
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagLedger, "ledger", "", "path to the expenses CSV (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func openStore() (*ledger.Store, error) {
	return ledger.NewStore(cfg.Ledger.Path, logger)
}

// newInferencer returns nil when no API key is configured; callers treat a
// nil inferencer as pattern-extraction only.
func newInferencer() llm.Inferencer {
	if cfg.LLM.APIKey == "" {
		return nil
	}
	return openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
}

func newProcessor() *pipeline.Processor {
	extractor := ocr.NewExtractor(ocr.Config{
		Tesseract:   cfg.OCR.Tesseract,
		Lang:        cfg.OCR.Lang,
		PSM:         cfg.OCR.PSM,
		TessdataDir: cfg.OCR.TessdataDir,
	}, logger)
	return pipeline.NewProcessor(extractor, newInferencer(), cfg.LLM.Enabled, logger)
}
