package llm

import (
	"context"

	"github.com/spendlens/spendlens/constants"
)

// FieldSet is the normalized shape we want from the inference service.
// Every field is optional; the empty string means "not found".
type FieldSet struct {
	Date     string `json:"date,omitempty"`     // YYYY-MM-DD
	Merchant string `json:"merchant,omitempty"` // trimmed store name
	Amount   string `json:"amount,omitempty"`   // decimal text, e.g. "12.50"
	Category string `json:"category,omitempty"` // one of constants.AllCategories, ideally
}

// IsZero reports whether no field was extracted.
func (f FieldSet) IsZero() bool {
	return f == FieldSet{}
}

// Inferencer is the interface the pipeline depends on. Implementations must
// never panic on bad service output; a failed call surfaces as an error and
// the caller substitutes the all-empty FieldSet.
type Inferencer interface {
	InferFromText(ctx context.Context, text string) (FieldSet, error)
	InferFromImage(ctx context.Context, image []byte) (FieldSet, error)
	// SuggestCategory absorbs its own failures: any error or out-of-set
	// label is coerced to constants.Other.
	SuggestCategory(ctx context.Context, merchant, amount string) constants.Category
}

// InsightsGenerator turns aggregate spending numbers into short prose.
type InsightsGenerator interface {
	GenerateInsights(ctx context.Context, snapshot map[string]any) string
}
