package ocr

import (
	"regexp"
	"strings"
)

var (
	reConfDate   = regexp.MustCompile(`\b\d{1,4}[/-]\d{1,2}[/-]\d{1,4}\b`)
	reConfCurr   = regexp.MustCompile(`\b(usd|eur|gbp|cad|aud)\b|[$£€]`)
	reConfAmount = regexp.MustCompile(`\b\d{1,3}(,\d{3})*\.\d{2}\b|\b\d+\.\d{2}\b`)
)

// heuristicConfidence scores decoded text by common receipt artifacts.
// It is a diagnostic signal only; nothing downstream branches on it.
func heuristicConfidence(txt string) float32 {
	txtL := strings.ToLower(txt)
	score := float32(0.2) // base
	if reConfDate.MatchString(txtL) {
		score += 0.2
	}
	if reConfCurr.MatchString(txtL) {
		score += 0.15
	}
	if reConfAmount.MatchString(txtL) {
		score += 0.15
	}
	if len(txt) > 120 {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
