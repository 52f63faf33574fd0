package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	reDateToken   = regexp.MustCompile(`\b\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4}\b`)
	reHeaderWord  = regexp.MustCompile(`(?i)\b(receipt|invoice|order)\b`)
	reTransNumber = regexp.MustCompile(`(?i)\b(transaction|trans|tr)\s*#?\s*\d+\b`)
	rePriceToken  = regexp.MustCompile(`\$\s*\d+\.\d+`)
)

// Merchant guesses the merchant name from recognized text. The name is
// usually near the top of a receipt, so only the first few lines are
// considered; lines that look like dates, headers, or transaction numbers
// are skipped. When no line qualifies, the very first line is returned
// verbatim.
func Merchant(text string) (string, bool) {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return "", false
	}

	limit := len(lines)
	if limit > 3 {
		limit = 3
	}
	for i := 0; i < limit; i++ {
		line := lines[i]
		if reDateToken.MatchString(line) {
			continue
		}
		if reHeaderWord.MatchString(line) {
			continue
		}
		if reTransNumber.MatchString(line) {
			continue
		}
		// length is measured in characters, not bytes
		if n := utf8.RuneCountInString(line); n > 2 && n < 50 && !rePriceToken.MatchString(line) {
			return line, true
		}
	}

	return lines[0], true
}
