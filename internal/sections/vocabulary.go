package sections

import "github.com/jonathan/resume-formatter/internal/types"

// sectionAliases maps each canonical label to the header spellings seen in
// real resumes. Matching lowercases and strips punctuation first.
var sectionAliases = map[types.SectionLabel][]string{
	types.SectionEmployment: {
		"employment", "employment history", "work experience", "professional experience",
		"work history", "career history", "experience", "professional background",
		"relevant employment", "career experience", "work", "jobs", "positions",
		"professional summary", "work record",
	},
	types.SectionEducation: {
		"education", "educational background", "academic background",
		"academic qualifications", "qualifications", "academics",
		"education background", "schooling", "degrees", "academic history",
	},
	types.SectionSkills: {
		"skills", "technical skills", "core competencies", "key skills",
		"professional skills", "areas of expertise", "competencies",
		"skill set", "expertise", "technical competencies", "technologies",
		"technical proficiencies", "core skills",
	},
	types.SectionSummary: {
		"summary", "professional summary", "career summary", "profile",
		"professional profile", "career objective", "objective",
		"executive summary", "career overview", "about me", "about", "overview",
	},
	types.SectionProjects: {
		"projects", "key projects", "project experience", "notable projects",
		"portfolio", "selected projects", "project work",
	},
	types.SectionCertifications: {
		"certifications", "certificates", "professional certifications",
		"licenses", "credentials", "certified", "licensing", "professional licenses",
	},
	types.SectionAchievements: {
		"achievements", "awards", "honors", "recognition", "accomplishments",
		"awards and honors", "distinctions",
	},
	types.SectionLanguages: {
		"languages", "language skills", "language proficiency", "linguistic skills",
	},
}

// keywordStems is the last-resort header matcher: a stem appearing anywhere
// in a cleaned header claims the label. Ordered so the more specific labels
// win over EMPLOYMENT's broad stems.
var keywordStems = []struct {
	label types.SectionLabel
	stems []string
}{
	{types.SectionEducation, []string{"educat", "school", "university", "college", "degree", "academic"}},
	{types.SectionSkills, []string{"skill", "technolog", "competenc", "proficien", "expertise"}},
	{types.SectionSummary, []string{"summar", "profile", "objective", "overview", "about"}},
	{types.SectionProjects, []string{"project", "portfolio"}},
	{types.SectionCertifications, []string{"certif", "license", "credential"}},
	{types.SectionAchievements, []string{"achieve", "award", "honor", "recognition"}},
	{types.SectionLanguages, []string{"language", "linguistic"}},
	{types.SectionEmployment, []string{"work", "employ", "job", "career", "position", "company"}},
}
