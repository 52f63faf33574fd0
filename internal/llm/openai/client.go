package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	oai "github.com/sashabaranov/go-openai"

	"github.com/spendlens/spendlens/constants"
	"github.com/spendlens/spendlens/internal/llm"
)

// InferFromText implements llm.Inferencer using a text-only chat completion.
// Empty input returns the all-empty FieldSet without an external call. One
// request, no retry; any call or parse failure is logged and surfaced as an
// error so the caller can fall back to pattern extraction.
func (c *Client) InferFromText(ctx context.Context, text string) (llm.FieldSet, error) {
	if strings.TrimSpace(text) == "" {
		return llm.FieldSet{}, nil
	}

	rid := uuid.New().String()
	start := time.Now()
	c.logger.Info("llm.infer_text.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"text_len", len(text),
	)

	req := oai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
		ResponseFormat: &oai.ChatCompletionResponseFormat{
			Type: oai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []oai.ChatCompletionMessage{
			{Role: oai.ChatMessageRoleUser, Content: buildTextPrompt(text)},
		},
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.Error("llm.infer_text.call_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.FieldSet{}, fmt.Errorf("infer from text: %w", err)
	}
	if len(resp.Choices) == 0 {
		c.logger.Error("llm.infer_text.no_choices", "req_id", rid)
		return llm.FieldSet{}, fmt.Errorf("infer from text: no choices in response")
	}

	fields, err := llm.ParseFieldSet([]byte(resp.Choices[0].Message.Content))
	if err != nil {
		c.logger.Error("llm.infer_text.parse_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.FieldSet{}, fmt.Errorf("infer from text: %w", err)
	}

	c.logger.Info("llm.infer_text.ok",
		"req_id", rid,
		"merchant", fields.Merchant,
		"date", fields.Date,
		"amount", fields.Amount,
		"category", fields.Category,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return fields, nil
}

// InferFromImage implements llm.Inferencer using the vision path on the
// original, unprocessed image bytes. Same contract as InferFromText.
func (c *Client) InferFromImage(ctx context.Context, image []byte) (llm.FieldSet, error) {
	if len(image) == 0 {
		return llm.FieldSet{}, nil
	}

	rid := uuid.New().String()
	start := time.Now()
	c.logger.Info("llm.infer_image.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"image_bytes", len(image),
	)

	req := oai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
		ResponseFormat: &oai.ChatCompletionResponseFormat{
			Type: oai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []oai.ChatCompletionMessage{
			{
				Role: oai.ChatMessageRoleUser,
				MultiContent: []oai.ChatMessagePart{
					{Type: oai.ChatMessagePartTypeText, Text: buildImagePrompt()},
					{
						Type:     oai.ChatMessagePartTypeImageURL,
						ImageURL: &oai.ChatMessageImageURL{URL: asDataURL(image)},
					},
				},
			},
		},
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.Error("llm.infer_image.call_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.FieldSet{}, fmt.Errorf("infer from image: %w", err)
	}
	if len(resp.Choices) == 0 {
		c.logger.Error("llm.infer_image.no_choices", "req_id", rid)
		return llm.FieldSet{}, fmt.Errorf("infer from image: no choices in response")
	}

	fields, err := llm.ParseFieldSet([]byte(resp.Choices[0].Message.Content))
	if err != nil {
		c.logger.Error("llm.infer_image.parse_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.FieldSet{}, fmt.Errorf("infer from image: %w", err)
	}

	c.logger.Info("llm.infer_image.ok",
		"req_id", rid,
		"merchant", fields.Merchant,
		"date", fields.Date,
		"amount", fields.Amount,
		"category", fields.Category,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return fields, nil
}

// SuggestCategory asks the service to pick one label from the closed category
// set. Empty merchant returns Other without an external call; any failure, or
// a label outside the set, is coerced to Other.
func (c *Client) SuggestCategory(ctx context.Context, merchant, amount string) constants.Category {
	if strings.TrimSpace(merchant) == "" {
		return constants.Other
	}

	rid := uuid.New().String()
	req := oai.ChatCompletionRequest{
		Model:     c.cfg.Model,
		MaxTokens: 20,
		Messages: []oai.ChatCompletionMessage{
			{Role: oai.ChatMessageRoleUser, Content: buildCategoryPrompt(merchant, amount)},
		},
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.Error("llm.suggest_category.call_error", "req_id", rid, "merchant", merchant, "error", err)
		return constants.Other
	}
	if len(resp.Choices) == 0 {
		c.logger.Error("llm.suggest_category.no_choices", "req_id", rid, "merchant", merchant)
		return constants.Other
	}

	label := strings.TrimSpace(resp.Choices[0].Message.Content)
	cat, ok := constants.Canonicalize(label)
	if !ok {
		c.logger.Warn("llm.suggest_category.unknown_label", "req_id", rid, "label", label)
	}
	return cat
}

// GenerateInsights summarizes a spending snapshot in natural language. It
// never fails the caller: an empty snapshot or any service error produces a
// fixed fallback sentence.
func (c *Client) GenerateInsights(ctx context.Context, snapshot map[string]any) string {
	if len(snapshot) == 0 {
		return "No expense data available to generate insights."
	}

	rid := uuid.New().String()
	data, err := json.Marshal(snapshot)
	if err != nil {
		c.logger.Error("llm.insights.marshal_error", "req_id", rid, "error", err)
		return "Unable to generate spending insights at this time."
	}

	req := oai.ChatCompletionRequest{
		Model:     c.cfg.Model,
		MaxTokens: 300,
		Messages: []oai.ChatCompletionMessage{
			{Role: oai.ChatMessageRoleUser, Content: buildInsightsPrompt(string(data))},
		},
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.Error("llm.insights.call_error", "req_id", rid, "error", err)
		return "Unable to generate spending insights at this time."
	}
	if len(resp.Choices) == 0 {
		c.logger.Error("llm.insights.no_choices", "req_id", rid)
		return "Unable to generate spending insights at this time."
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content)
}

func buildTextPrompt(text string) string {
	var b strings.Builder
	b.WriteString("Analyze the following receipt text and extract these fields:\n")
	b.WriteString("1. date - in YYYY-MM-DD format\n")
	b.WriteString("2. merchant - the store name\n")
	b.WriteString("3. amount - the total, only the number\n")
	b.WriteString("4. category - choose from: ")
	b.WriteString(strings.Join(constants.AsStringSlice(), ", "))
	b.WriteString("\n\nReceipt text:\n")
	b.WriteString(text)
	b.WriteString("\n\nRespond with JSON shaped {\"date\": \"YYYY-MM-DD\", \"merchant\": \"store name\", \"amount\": \"123.45\", \"category\": \"category\"}. ")
	b.WriteString("If you cannot find a field, use null for that field.")
	return b.String()
}

func buildImagePrompt() string {
	var b strings.Builder
	b.WriteString("This is an image of a receipt. Extract the following fields:\n")
	b.WriteString("1. date - in YYYY-MM-DD format\n")
	b.WriteString("2. merchant - the store name\n")
	b.WriteString("3. amount - the total, only the number\n")
	b.WriteString("4. category - choose from: ")
	b.WriteString(strings.Join(constants.AsStringSlice(), ", "))
	b.WriteString("\n\nRespond with JSON shaped {\"date\": \"YYYY-MM-DD\", \"merchant\": \"store name\", \"amount\": \"123.45\", \"category\": \"category\"}. ")
	b.WriteString("If you cannot find a field, use null for that field.")
	return b.String()
}

func buildCategoryPrompt(merchant, amount string) string {
	var b strings.Builder
	b.WriteString("Based on the merchant name \"")
	b.WriteString(merchant)
	b.WriteString("\" and transaction amount $")
	b.WriteString(amount)
	b.WriteString(", suggest the most appropriate expense category from the following options:\n")
	for _, cat := range constants.AsStringSlice() {
		b.WriteString("- ")
		b.WriteString(cat)
		b.WriteString("\n")
	}
	b.WriteString("\nRespond with only the category name.")
	return b.String()
}

func buildInsightsPrompt(snapshot string) string {
	var b strings.Builder
	b.WriteString("Here is a summary of my recent spending as JSON:\n")
	b.WriteString(snapshot)
	b.WriteString("\n\nGive three or four short bullet points: the most notable spending ")
	b.WriteString("patterns and one practical suggestion to reduce spending. Plain text only.")
	return b.String()
}

func asDataURL(image []byte) string {
	mt := http.DetectContentType(image)
	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(image)
}
