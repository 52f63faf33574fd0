package extract

import (
	"regexp"
	"strconv"
)

// Ordered strongest-to-weakest. Like the date patterns, the first pattern
// with at least one match wins; weaker patterns are not consulted after that.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)total\s*[:$]?\s*(\d+\.\d{2})`),
	regexp.MustCompile(`(?i)amount\s*[:$]?\s*(\d+\.\d{2})`),
	regexp.MustCompile(`(?i)subtotal\s*[:$]?\s*(\d+\.\d{2})`),
	regexp.MustCompile(`\$(\d+\.\d{2})`),
	regexp.MustCompile(`(\d+\.\d{2})`),
}

// Amount scans recognized text for the transaction total. When the winning
// pattern matches several times, the largest value is returned; the value is
// kept as the matched decimal string to avoid float formatting surprises.
func Amount(text string) (string, bool) {
	for _, re := range amountPatterns {
		matches := re.FindAllStringSubmatch(text, -1)
		if matches == nil {
			continue
		}
		best := ""
		bestVal := 0.0
		for _, m := range matches {
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			if best == "" || v > bestVal {
				best = m[1]
				bestVal = v
			}
		}
		if best == "" {
			continue
		}
		return best, true
	}
	return "", false
}
