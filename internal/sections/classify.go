package sections

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-formatter/internal/types"
)

// Classifier weights. Education outranks employment because degree lines
// often mention organizations and dates that would otherwise read as jobs.
const (
	educationPatternWeight  = 5
	educationKeywordWeight  = 2
	employmentPatternWeight = 4
	employmentVerbWeight    = 3
	skillsListBonus         = 5
	skillsTechWeight        = 2
	summaryKeywordWeight    = 3
	summaryNarrativeBonus   = 2
	projectKeywordWeight    = 3

	educationShortCircuit  = 5
	employmentShortCircuit = 8

	// Items in a list-formatted block averaging fewer words than this read
	// as skills, not prose.
	skillsMaxWordsPerItem = 4
)

var educationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(bachelor|master|phd|doctorate|b\.s\.|m\.s\.|b\.a\.|m\.a\.|b\.tech|m\.tech)\b`),
	regexp.MustCompile(`\b(university|college)\b`),
	regexp.MustCompile(`\bgpa\s*[:\-]?\s*\d`),
	regexp.MustCompile(`\b(cum laude|magna cum laude|summa cum laude)\b`),
	regexp.MustCompile(`\b(thesis|dissertation)\b`),
	regexp.MustCompile(`\b(major|minor)\s*[:\-]`),
	regexp.MustCompile(`\b(academic)\b`),
}

var educationKeywords = []string{
	"graduated", "graduation", "degree", "diploma", "school", "institute",
	"coursework", "honors", "academic", "student", "education",
}

var employmentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(company|corporation|inc\.|ltd\.|llc)\b`),
	regexp.MustCompile(`\b(position|title|role)\s*[:\-]`),
	regexp.MustCompile(`\b(responsibilities|duties)\s*[:\-]`),
	regexp.MustCompile(`\d+\s*(years?|months?)\s+(of\s+)?(work\s+)?experience`),
	regexp.MustCompile(`\b(achieved|increased|improved|reduced)\s+\d+%`),
	regexp.MustCompile(`\b(promoted|hired|recruited)\b`),
	regexp.MustCompile(`\b(employee|employer|worked at)\b`),
}

var employmentVerbs = []string{
	"managed team", "led team", "supervised", "coordinated team",
	"responsibilities included", "duties included", "reported to",
	"collaborated with", "partnered with",
}

var techKeywords = []string{
	"python", "java", "javascript", "sql", "aws", "azure", "docker",
	"react", "angular", "node", "api", "database", "cloud", "agile",
	"c++", "c#", "ruby", "php", "swift", "kotlin", "typescript",
}

var summaryKeywords = []string{
	"years of experience", "professional", "expertise in", "specialized in",
	"seeking", "passionate about", "dedicated", "experienced", "background in",
}

var projectKeywords = []string{
	"project", "built application", "developed application",
	"created tool", "implemented system",
}

// classifyOrder fixes which label wins a tied score.
var classifyOrder = []types.SectionLabel{
	types.SectionEducation,
	types.SectionEmployment,
	types.SectionSkills,
	types.SectionSummary,
	types.SectionProjects,
}

// ClassifyContent assigns a label to a headerless content block by scoring
// pattern and keyword evidence. Returns false when nothing scores.
func ClassifyContent(content string) (types.SectionLabel, bool) {
	lower := strings.ToLower(content)
	scores := map[types.SectionLabel]int{}

	eduMatches := countPatternMatches(educationPatterns, lower)
	scores[types.SectionEducation] = eduMatches*educationPatternWeight +
		countSubstrings(educationKeywords, lower)*educationKeywordWeight

	// Degree lines mention organizations too; employment evidence only
	// counts when education evidence is weak.
	if scores[types.SectionEducation] < educationShortCircuit {
		scores[types.SectionEmployment] = countPatternMatches(employmentPatterns, lower)*employmentPatternWeight +
			countSubstrings(employmentVerbs, lower)*employmentVerbWeight
	}

	if scores[types.SectionEducation] >= educationShortCircuit {
		return types.SectionEducation, true
	}
	if scores[types.SectionEmployment] >= employmentShortCircuit {
		return types.SectionEmployment, true
	}

	if looksLikeList(content) {
		scores[types.SectionSkills] += skillsListBonus
		scores[types.SectionSkills] += countSubstrings(techKeywords, lower) * skillsTechWeight
	}

	scores[types.SectionSummary] += countSubstrings(summaryKeywords, lower) * summaryKeywordWeight
	if isNarrative(content) {
		scores[types.SectionSummary] += summaryNarrativeBonus
	}

	scores[types.SectionProjects] += countSubstrings(projectKeywords, lower) * projectKeywordWeight

	best, bestScore := types.SectionLabel(""), 0
	for _, label := range classifyOrder {
		if scores[label] > bestScore {
			best, bestScore = label, scores[label]
		}
	}
	if bestScore == 0 {
		return "", false
	}
	return best, true
}

func countPatternMatches(patterns []*regexp.Regexp, s string) int {
	n := 0
	for _, p := range patterns {
		if p.MatchString(s) {
			n++
		}
	}
	return n
}

func countSubstrings(needles []string, s string) int {
	n := 0
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			n++
		}
	}
	return n
}

// looksLikeList reports whether the block is list-formatted with short items.
func looksLikeList(content string) bool {
	if !strings.ContainsAny(content, ",•|") {
		return false
	}
	items := strings.FieldsFunc(content, func(r rune) bool {
		return r == ',' || r == '•' || r == '|' || r == '\n'
	})
	total, count := 0, 0
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		total += len(strings.Fields(item))
		count++
	}
	if count == 0 {
		return false
	}
	return float64(total)/float64(count) < skillsMaxWordsPerItem
}

// isNarrative reports multi-sentence prose that is not bulleted.
func isNarrative(content string) bool {
	if strings.HasPrefix(content, "•") || strings.HasPrefix(content, "-") {
		return false
	}
	return len(strings.Split(content, ".")) > 2
}
