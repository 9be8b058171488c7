package validation

import (
	"regexp"

	"github.com/jonathan/resume-formatter/internal/types"
)

// blockFormat constrains how a section's content is usually laid out.
type blockFormat string

const (
	formatAny       blockFormat = ""
	formatList      blockFormat = "list"
	formatParagraph blockFormat = "paragraph"
)

// signature describes what content in a section should and should not look
// like. Labels without a signature (achievements, languages) always validate.
type signature struct {
	requiredPatterns []*regexp.Regexp
	positiveKeywords []string
	negativeKeywords []string
	// negativeWeight scales the penalty for negative keywords. Education
	// carries a heavy weight so job bullets cannot survive there.
	negativeWeight float64
	format         blockFormat
}

var signatures = map[types.SectionLabel]signature{
	types.SectionEmployment: {
		requiredPatterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(managed|developed|led|created|implemented|designed|built|responsible)\b`),
			regexp.MustCompile(`\b(company|corporation|team|project|product)\b`),
		},
		positiveKeywords: []string{
			"managed", "developed", "led", "created", "implemented", "designed",
			"built", "responsible", "achieved", "increased", "improved", "reduced",
			"collaborated", "coordinated", "delivered", "established", "maintained",
		},
		negativeKeywords: []string{
			"bachelor", "master", "phd", "degree", "university", "college",
			"gpa", "graduated", "coursework",
		},
		negativeWeight: 1.0,
	},
	types.SectionEducation: {
		requiredPatterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(bachelor|master|phd|b\.s\.|m\.s\.|b\.a\.|m\.a\.|b\.tech|m\.tech|degree)\b`),
			regexp.MustCompile(`\b(university|college|institute|school)\b`),
		},
		positiveKeywords: []string{
			"bachelor", "master", "phd", "doctorate", "degree", "university", "college",
			"graduated", "gpa", "honors", "cum laude", "summa", "magna", "diploma", "certificate",
			"coursework", "thesis", "dissertation", "academic", "student", "scholar",
			"major", "minor", "concentration", "education", "school", "institute",
		},
		negativeKeywords: []string{
			"managed team", "developed product", "implemented solution", "led project",
			"company", "corporation", "responsibilities", "duties", "position", "role",
			"achieved", "increased revenue", "improved performance", "reduced cost",
			"collaborated with", "reported to", "supervised",
		},
		negativeWeight: 5.0,
	},
	types.SectionSkills: {
		positiveKeywords: []string{
			"python", "java", "javascript", "c++", "sql", "html", "css",
			"react", "angular", "node", "aws", "azure", "docker", "kubernetes",
			"git", "linux", "windows", "api", "rest", "graphql", "mongodb",
			"postgresql", "mysql", "agile", "scrum", "ci/cd",
		},
		negativeKeywords: []string{
			"bachelor", "master", "university", "graduated", "gpa",
			"managed", "developed", "led", "responsibilities",
		},
		negativeWeight: 1.0,
		format:         formatList,
	},
	types.SectionSummary: {
		positiveKeywords: []string{
			"years of experience", "professional", "expertise", "specialized",
			"passionate", "dedicated", "seeking", "objective", "goal",
		},
		format: formatParagraph,
	},
	types.SectionProjects: {
		requiredPatterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(project|developed|built|created|implemented)\b`),
		},
		positiveKeywords: []string{
			"project", "developed", "built", "created", "implemented",
			"application", "website", "system", "tool", "platform",
		},
		negativeKeywords: []string{
			"bachelor", "master", "university", "gpa",
		},
		negativeWeight: 1.0,
	},
	types.SectionCertifications: {
		requiredPatterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(certified|certification|license|credential)\b`),
		},
		positiveKeywords: []string{
			"certified", "certification", "license", "credential",
			"aws", "microsoft", "cisco", "google", "oracle",
		},
	},
}

// signatureLabels fixes the evaluation order for relocation candidates.
var signatureLabels = []types.SectionLabel{
	types.SectionEmployment,
	types.SectionEducation,
	types.SectionSkills,
	types.SectionSummary,
	types.SectionProjects,
	types.SectionCertifications,
}
