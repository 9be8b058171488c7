// Package header implements candidate name and contact extraction from the
// resume header zone. Name detection runs a ladder of techniques in falling
// confidence; contact fields come from pattern matching with normalization.
package header

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/jonathan/resume-formatter/internal/types"
)

// Name technique confidences, from the strongest signal (largest text in the
// header zone) down to the last-resort first line.
const (
	confVisualName    = 0.9
	confPersonShape   = 0.85
	confPlausibleLine = 0.7
	confEmailLocal    = 0.5
	confFirstLine     = 0.3

	// Contact confidence by how many of email/phone/linkedin were found.
	confContactTwo  = 0.95
	confContactOne  = 0.7
	confContactNone = 0.3
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+?1?\s*\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`),
		regexp.MustCompile(`\d{3}[\s.-]\d{3}[\s.-]\d{4}`),
		regexp.MustCompile(`\(\d{3}\)\s*\d{3}[\s.-]\d{4}`),
	}

	linkedinPattern = regexp.MustCompile(`(?i)(linkedin\.com/in/[a-zA-Z0-9-]+|\bin/[a-zA-Z0-9-]+)`)
	githubPattern   = regexp.MustCompile(`(?i)github\.com/[a-zA-Z0-9-]+`)

	locationPattern = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s[A-Z][a-z]+)*),\s*([A-Z]{2}|[A-Z][a-z]+)\b`)

	digitPattern    = regexp.MustCompile(`\d`)
	nonDigitPattern = regexp.MustCompile(`\D`)
)

var titleKeywords = []string{
	"engineer", "developer", "manager", "analyst", "specialist",
	"consultant", "architect", "designer", "scientist", "lead",
	"senior", "junior", "principal", "staff", "director",
}

// nameSuffixes are stripped from extracted names unless the name would
// collapse below two words.
var nameSuffixes = map[string]bool{"jr": true, "sr": true, "ii": true, "iii": true, "iv": true}

// Extractor pulls candidate info out of the header pass result.
type Extractor struct{}

// NewExtractor returns a header extractor.
func NewExtractor() *Extractor { return &Extractor{} }

// Extract builds CandidateInfo from the header OCR pass. A nil or failed
// header pass yields empty fields with floor confidences.
func (e *Extractor) Extract(headerPass *types.PassResult) *types.CandidateInfo {
	info := &types.CandidateInfo{FieldConfidence: map[string]float64{}}

	var text string
	var tokens []types.Token
	if headerPass != nil && !headerPass.Failed {
		text = headerPass.Text
		tokens = headerPass.Tokens
	}

	name, nameConf := e.extractName(text, tokens)
	info.Name = name
	info.FieldConfidence["name"] = nameConf

	info.Email = extractEmail(text)
	info.Phone = extractPhone(text)
	info.LinkedIn = extractLinkedIn(text)
	info.GitHub = extractGitHub(text)
	info.Location = extractLocation(text)
	info.Title = extractTitle(text, name)

	info.FieldConfidence["contact"] = contactConfidence(info.ContactCount())
	return info
}

// extractName runs the technique ladder: largest header text, then a line
// shaped like a person's name, then any plausible short line, then the email
// local part, then the raw first line.
func (e *Extractor) extractName(text string, tokens []types.Token) (string, float64) {
	lines := nonEmptyLines(text)

	if name := largestTextName(tokens); name != "" {
		return cleanName(name), confVisualName
	}

	limit := len(lines)
	if limit > 5 {
		limit = 5
	}
	for _, line := range lines[:limit] {
		if !isContactInfo(line) && looksLikeName(line) {
			return cleanName(line), confPersonShape
		}
	}
	for _, line := range lines[:limit] {
		if isContactInfo(line) || len(strings.Fields(line)) > 5 {
			continue
		}
		if startsUpper(line) {
			return cleanName(line), confPlausibleLine
		}
	}

	if email := emailPattern.FindString(text); email != "" {
		local := strings.SplitN(email, "@", 2)[0]
		local = strings.NewReplacer(".", " ", "_", " ").Replace(local)
		return titleCase(local), confEmailLocal
	}

	if len(lines) > 0 {
		return cleanName(lines[0]), confFirstLine
	}
	return "", 0
}

// largestTextName reconstructs text lines from header tokens and returns the
// tallest line that is not contact info and short enough to be a name.
func largestTextName(tokens []types.Token) string {
	lines := groupTokenLines(tokens)
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].height > lines[j].height })

	limit := len(lines)
	if limit > 3 {
		limit = 3
	}
	for _, line := range lines[:limit] {
		text := strings.TrimSpace(line.text)
		if text == "" || isContactInfo(text) {
			continue
		}
		if len(strings.Fields(text)) > 5 {
			continue
		}
		return text
	}
	return ""
}

type tokenLine struct {
	text   string
	height int
}

// groupTokenLines buckets tokens by vertical overlap into visual lines.
func groupTokenLines(tokens []types.Token) []tokenLine {
	ordered := append([]types.Token(nil), tokens...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Bounds.Y != ordered[j].Bounds.Y {
			return ordered[i].Bounds.Y < ordered[j].Bounds.Y
		}
		return ordered[i].Bounds.X < ordered[j].Bounds.X
	})

	var lines []tokenLine
	var words []string
	var top, bottom int
	flush := func() {
		if len(words) > 0 {
			lines = append(lines, tokenLine{text: strings.Join(words, " "), height: bottom - top})
			words = nil
		}
	}
	for _, tok := range ordered {
		y0, y1 := tok.Bounds.Y, tok.Bounds.Y+tok.Bounds.Height
		if len(words) > 0 && y0 >= bottom {
			flush()
		}
		if len(words) == 0 {
			top, bottom = y0, y1
		} else if y1 > bottom {
			bottom = y1
		}
		words = append(words, tok.Text)
	}
	flush()
	return lines
}

func extractEmail(text string) string {
	return emailPattern.FindString(text)
}

func extractPhone(text string) string {
	for _, p := range phonePatterns {
		if m := p.FindString(text); m != "" {
			return normalizePhone(m)
		}
	}
	return ""
}

// normalizePhone formats US numbers as (XXX) XXX-XXXX; anything else is
// returned as matched.
func normalizePhone(phone string) string {
	digits := nonDigitPattern.ReplaceAllString(phone, "")
	switch {
	case len(digits) == 10:
		return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
	case len(digits) == 11 && digits[0] == '1':
		return "+1 (" + digits[1:4] + ") " + digits[4:7] + "-" + digits[7:]
	default:
		return phone
	}
}

func extractLinkedIn(text string) string {
	m := linkedinPattern.FindString(text)
	if m == "" {
		return ""
	}
	lower := strings.ToLower(m)
	if strings.HasPrefix(lower, "in/") {
		return "linkedin.com/" + m
	}
	return m
}

func extractGitHub(text string) string {
	return githubPattern.FindString(text)
}

func extractLocation(text string) string {
	return locationPattern.FindString(text)
}

// extractTitle looks for a job title on the line following the name.
func extractTitle(text, name string) string {
	if name == "" {
		return ""
	}
	lines := nonEmptyLines(text)
	nameIdx := -1
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), strings.ToLower(name)) {
			nameIdx = i
			break
		}
	}
	if nameIdx < 0 || nameIdx >= len(lines)-1 {
		return ""
	}
	candidate := lines[nameIdx+1]
	if isContactInfo(candidate) {
		return ""
	}
	words := len(strings.Fields(candidate))
	if words < 2 || words > 8 {
		return ""
	}
	lower := strings.ToLower(candidate)
	for _, kw := range titleKeywords {
		if strings.Contains(lower, kw) {
			return candidate
		}
	}
	return ""
}

func contactConfidence(count int) float64 {
	switch {
	case count >= 2:
		return confContactTwo
	case count == 1:
		return confContactOne
	default:
		return confContactNone
	}
}

func isContactInfo(text string) bool {
	lower := strings.ToLower(text)
	for _, indicator := range []string{"@", "phone", "tel", "mobile", "cell", "linkedin", "github", "http://", "https://"} {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return strings.Contains(text, "(") && strings.Contains(text, ")")
}

// looksLikeName accepts 2-4 capitalized words with no digits.
func looksLikeName(text string) bool {
	words := strings.Fields(text)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		r := []rune(w)
		if len(r) == 0 || !unicode.IsUpper(r[0]) {
			return false
		}
	}
	return !digitPattern.MatchString(text)
}

func cleanName(name string) string {
	words := strings.Fields(name)
	if len(words) > 2 {
		var kept []string
		for _, w := range words {
			if !nameSuffixes[strings.ToLower(strings.Trim(w, ".,"))] {
				kept = append(kept, w)
			}
		}
		words = kept
	}
	return titleCase(strings.Join(words, " "))
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
