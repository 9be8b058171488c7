package postprocess

import (
	"regexp"
	"strings"
	"unicode"
)

// OCR confusion fixes. RE2 has no lookarounds, so the adjacency rules use
// capture groups instead.
var ocrCorrections = []struct {
	pattern *regexp.Regexp
	replace string
}{
	{regexp.MustCompile(`\bl\b`), "I"},
	{regexp.MustCompile(`(\d)O\b`), "${1}0"},
	{regexp.MustCompile(`\bO(\d)`), "0${1}"},
	{regexp.MustCompile(`([A-Z])0([A-Z])`), "${1}O${2}"},
	{regexp.MustCompile(`\b5([A-Za-z]{2})`), "S${1}"},
	{regexp.MustCompile(`\b8([A-Za-z]{2})`), "B${1}"},
	{regexp.MustCompile(`\bwa5\b`), "was"},
	{regexp.MustCompile(`\bh4s\b`), "has"},
	{regexp.MustCompile(`\b4nd\b`), "and"},
	{regexp.MustCompile(`\bth3\b`), "the"},
	{regexp.MustCompile(`\bc4n\b`), "can"},
}

var (
	hyphenBreak     = regexp.MustCompile(`(\w+)-\s+(\w+)`)
	spaceRuns       = regexp.MustCompile(`[ \t]{2,}`)
	newlineRuns     = regexp.MustCompile(`\n{3,}`)
	punctuationRuns = regexp.MustCompile(`([.,;:!?])[.,;:!?]+`)
)

// CleanText removes OCR artifacts from a text field: control characters,
// confusion-pair errors, broken hyphenation, punctuation and whitespace
// runs, then sentence capitalization. All-caps text is left untouched.
func CleanText(text string) string {
	return strings.TrimSpace(fixCapitalization(cleanRaw(text)))
}

// CleanField cleans candidate-info fields without sentence capitalization,
// which would corrupt emails and profile URLs.
func CleanField(text string) string {
	return strings.TrimSpace(cleanRaw(text))
}

func cleanRaw(text string) string {
	if text == "" {
		return text
	}
	cleaned := stripControlChars(text)
	for _, c := range ocrCorrections {
		cleaned = c.pattern.ReplaceAllString(cleaned, c.replace)
	}
	cleaned = hyphenBreak.ReplaceAllString(cleaned, "${1}${2}")
	cleaned = punctuationRuns.ReplaceAllString(cleaned, "${1}")
	cleaned = spaceRuns.ReplaceAllString(cleaned, " ")
	return newlineRuns.ReplaceAllString(cleaned, "\n\n")
}

func stripControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// fixCapitalization uppercases sentence starts. Intentional all-caps text
// (section headings, acronym lists) is preserved.
func fixCapitalization(text string) string {
	if text == strings.ToUpper(text) {
		return text
	}
	sentences := strings.Split(text, ". ")
	for i, s := range sentences {
		r := []rune(s)
		if len(r) > 0 {
			r[0] = unicode.ToUpper(r[0])
			sentences[i] = string(r)
		}
	}
	return strings.Join(sentences, ". ")
}
