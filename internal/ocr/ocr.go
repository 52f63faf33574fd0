package ocr

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

type Config struct {
	Tesseract string // binary name or absolute path; if empty -> "tesseract"
	Lang      string // default "eng"
	PSM       int    // page segmentation mode; 6 works well for receipts
	OEM       int    // 1 = LSTM; leave 0 to use default

	TessdataDir string
	TempDir     string // scratch dir for preprocessed frames; default os.TempDir()
}

type Result struct {
	Text       string
	Confidence float32
	Duration   time.Duration
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Lang == "" {
		cfg.Lang = "eng"
	}
	if cfg.PSM <= 0 {
		cfg.PSM = 6
	}
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	return &Extractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// Recognize binarizes the frame, writes it as a scratch PNG, and runs
// tesseract over it. The decoded text comes back normalized, with a
// heuristic confidence attached as a diagnostic.
func (e *Extractor) Recognize(ctx context.Context, img image.Image) (Result, error) {
	start := time.Now()

	frame := Binarize(img)
	path := filepath.Join(e.cfg.TempDir, "spendlens-"+uuid.New().String()+".png")
	f, err := os.Create(path)
	if err != nil {
		return Result{}, fmt.Errorf("scratch frame: %w", err)
	}
	if err := png.Encode(f, frame); err != nil {
		f.Close()
		os.Remove(path)
		return Result{}, fmt.Errorf("encode frame: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return Result{}, fmt.Errorf("close frame: %w", err)
	}
	defer os.Remove(path)

	args := []string{path, "stdout", "-l", e.cfg.Lang}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", fmt.Sprintf("%d", e.cfg.PSM))
	}
	if e.cfg.OEM > 0 {
		args = append(args, "--oem", fmt.Sprintf("%d", e.cfg.OEM))
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		e.logger.Error("ocr.recognize.failed", "error", err, "stderr", truncate(string(errb), 8<<10))
		return Result{}, fmt.Errorf("tesseract: %w", err)
	}

	txt := Normalize(reBoxNoise.ReplaceAllString(string(out), ""))
	res := Result{
		Text:       txt,
		Confidence: heuristicConfidence(txt),
		Duration:   time.Since(start),
	}
	e.logger.Debug("ocr.recognize.ok",
		"text_len", len(res.Text),
		"confidence", res.Confidence,
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
