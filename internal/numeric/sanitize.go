package numeric

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	maxSymbolLength      = 10
	maxCompanyNameLength = 100
	defaultDisplayLength = 500
)

var (
	markupChars     = regexp.MustCompile(`[<>"'&]`)
	nonSymbolChars  = regexp.MustCompile(`[^\w.-]`)
	symbolPattern   = regexp.MustCompile(`^[A-Z0-9.-]{1,10}$`)
	nonNumericChars = regexp.MustCompile(`[^0-9.-]`)
	leadingNumber   = regexp.MustCompile(`^-?(\d+(\.\d*)?|\.\d+)`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
)

// SanitizeStockSymbol normalizes raw user input into an uppercase ticker.
// It returns false when nothing valid remains or the result is longer than
// ten characters.
func SanitizeStockSymbol(input string) (string, bool) {
	cleaned := strings.TrimSpace(input)
	cleaned = markupChars.ReplaceAllString(cleaned, "")
	cleaned = nonSymbolChars.ReplaceAllString(cleaned, "")
	cleaned = strings.ToUpper(cleaned)

	if cleaned == "" || len(cleaned) > maxSymbolLength {
		return "", false
	}
	if !symbolPattern.MatchString(cleaned) {
		return "", false
	}
	return cleaned, true
}

// SanitizeNumericInput strips everything but digits, dots, and minus signs
// and parses the longest leading number, the way a browser parseFloat would.
func SanitizeNumericInput(input string) (float64, bool) {
	cleaned := nonNumericChars.ReplaceAllString(strings.TrimSpace(input), "")
	match := leadingNumber.FindString(cleaned)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil || !IsFinite(v) {
		return 0, false
	}
	return v, true
}

// SanitizeCompanyName cleans a company name for search or display.
func SanitizeCompanyName(input string) (string, bool) {
	cleaned := cleanText(input, maxCompanyNameLength)
	return cleaned, cleaned != ""
}

// SanitizeDisplayText cleans free text for display. maxLength <= 0 uses 500.
func SanitizeDisplayText(input string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = defaultDisplayLength
	}
	return cleanText(input, maxLength)
}

func cleanText(input string, maxLength int) string {
	cleaned := strings.TrimSpace(input)
	cleaned = markupChars.ReplaceAllString(cleaned, "")
	cleaned = whitespaceRuns.ReplaceAllString(cleaned, " ")
	if r := []rune(cleaned); len(r) > maxLength {
		cleaned = string(r[:maxLength])
	}
	return cleaned
}
