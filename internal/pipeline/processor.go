package pipeline

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spendlens/spendlens/internal/extract"
	"github.com/spendlens/spendlens/internal/llm"
	"github.com/spendlens/spendlens/internal/ocr"
	"github.com/spendlens/spendlens/internal/utils"
)

// RawTextDecodeError marks a record whose image bytes could not be decoded.
const RawTextDecodeError = "Error processing image"

// Recognizer turns a decoded frame into text. Satisfied by *ocr.Extractor.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image) (ocr.Result, error)
}

// Record is the outcome of processing one receipt image. Zero values mean
// the field was not found; Confidence is diagnostic only.
type Record struct {
	RawText    string
	Date       time.Time
	Merchant   string
	Amount     string
	Category   string
	Confidence float32
}

// Processor runs the receipt pipeline: decode, recognize, then field
// extraction with inference first and pattern matching as the fallback.
type Processor struct {
	logger     *slog.Logger
	recognizer Recognizer
	inferencer llm.Inferencer
	aiEnabled  bool
}

func NewProcessor(recognizer Recognizer, inferencer llm.Inferencer, aiEnabled bool, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger:     logger,
		recognizer: recognizer,
		inferencer: inferencer,
		aiEnabled:  aiEnabled,
	}
}

// Process never fails: every failure mode degrades to a record with fewer
// fields, down to the decode-error sentinel when the bytes are not an image.
func (p *Processor) Process(ctx context.Context, data []byte) Record {
	rid := uuid.New().String()
	start := time.Now()

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		p.logger.Error("pipeline.decode.failed", "req_id", rid, "error", err)
		return Record{RawText: RawTextDecodeError}
	}

	var rawText string
	var conf float32
	if p.recognizer != nil {
		res, err := p.recognizer.Recognize(ctx, img)
		if err != nil {
			p.logger.Warn("pipeline.ocr.degraded", "req_id", rid, "error", err)
		} else {
			rawText = res.Text
			conf = res.Confidence
		}
	}

	var rec Record
	if p.aiEnabled && p.inferencer != nil {
		rec = p.inferFields(ctx, rid, data, rawText, conf)
	} else {
		rec = p.patternFields(ctx, rawText, conf)
	}

	p.logger.Info("pipeline.process.done",
		"req_id", rid,
		"merchant", rec.Merchant,
		"amount", rec.Amount,
		"category", rec.Category,
		"has_date", !rec.Date.IsZero(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec
}

// inferFields tries the image path first. A response carrying both merchant
// and amount is trusted as-is and ends the pass; anything less is discarded
// and the text path takes over, with pattern extraction filling whatever the
// model could not. When every inference call fails, the record degrades to
// the pattern path.
func (p *Processor) inferFields(ctx context.Context, rid string, data []byte, rawText string, conf float32) Record {
	imgFields, imgErr := p.inferencer.InferFromImage(ctx, data)
	if imgErr != nil {
		p.logger.Warn("pipeline.infer_image.failed", "req_id", rid, "error", imgErr)
	} else if imgFields.Merchant != "" && imgFields.Amount != "" {
		return p.shortCircuitRecord(rawText, conf, imgFields)
	}

	txtFields, txtErr := p.inferencer.InferFromText(ctx, rawText)
	if txtErr != nil {
		p.logger.Warn("pipeline.infer_text.failed", "req_id", rid, "error", txtErr)
		txtFields = llm.FieldSet{}
	}

	// Only when every inference call actually failed does the record take the
	// pattern-only path with its category suggestion. A successful but empty
	// response keeps the inference-path semantics: gaps are filled from the
	// extractors and category stays as the model left it.
	if imgErr != nil && txtErr != nil {
		return p.patternFields(ctx, rawText, conf)
	}
	return p.fieldsToRecord(rawText, conf, txtFields)
}

// patternFields runs the regex extractors, asking for a category suggestion
// only when both merchant and amount were found.
func (p *Processor) patternFields(ctx context.Context, rawText string, conf float32) Record {
	rec := Record{RawText: rawText, Confidence: conf}
	if t, ok := extract.Date(rawText); ok {
		rec.Date = t
	}
	if m, ok := extract.Merchant(rawText); ok {
		rec.Merchant = m
	}
	if a, ok := extract.Amount(rawText); ok {
		rec.Amount = a
	}
	if p.inferencer != nil && rec.Merchant != "" && rec.Amount != "" {
		rec.Category = string(p.inferencer.SuggestCategory(ctx, rec.Merchant, rec.Amount))
	}
	return rec
}

// shortCircuitRecord accepts a complete image-inference result wholesale.
// A date that does not parse as ISO stays absent; no extractor runs.
func (p *Processor) shortCircuitRecord(rawText string, conf float32, fields llm.FieldSet) Record {
	rec := Record{
		RawText:    rawText,
		Confidence: conf,
		Merchant:   fields.Merchant,
		Amount:     fields.Amount,
		Category:   fields.Category,
	}
	if fields.Date != "" {
		if t, err := utils.ParseYMD(fields.Date); err == nil {
			rec.Date = t
		}
	}
	return rec
}

// fieldsToRecord fills whatever text inference left blank from the pattern
// extractors. The inferred category is kept verbatim; validation against the
// closed set happens when the record is saved.
func (p *Processor) fieldsToRecord(rawText string, conf float32, fields llm.FieldSet) Record {
	rec := Record{RawText: rawText, Confidence: conf, Category: fields.Category}
	if fields.Date != "" {
		if t, err := utils.ParseYMD(fields.Date); err == nil {
			rec.Date = t
		}
	}
	if rec.Date.IsZero() {
		if t, ok := extract.Date(rawText); ok {
			rec.Date = t
		}
	}
	rec.Merchant = fields.Merchant
	if rec.Merchant == "" {
		if m, ok := extract.Merchant(rawText); ok {
			rec.Merchant = m
		}
	}
	rec.Amount = fields.Amount
	if rec.Amount == "" {
		if a, ok := extract.Amount(rawText); ok {
			rec.Amount = a
		}
	}
	return rec
}
