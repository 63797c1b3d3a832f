package util

import (
	"strings"
	"unicode"
)

// Slugify lowercases a name and collapses runs of non-alphanumeric
// characters into single hyphens: "Green Tee (v2)" -> "green-tee-v2".
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// SKUToken uppercases a lookup name into a SKU fragment, keeping only
// letters and digits: "Dark Red" -> "DARKRED".
func SKUToken(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
