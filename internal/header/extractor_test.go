package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-formatter/internal/types"
)

const sampleHeader = "JOHN DOE\nSenior Software Engineer\njohn.doe@email.com | (555) 123-4567 | linkedin.com/in/johndoe\nSan Francisco, CA"

func TestExtractFullHeader(t *testing.T) {
	e := NewExtractor()
	info := e.Extract(&types.PassResult{Pass: types.PassHeader, Text: sampleHeader})

	assert.Equal(t, "John Doe", info.Name)
	assert.Equal(t, "john.doe@email.com", info.Email)
	assert.Equal(t, "(555) 123-4567", info.Phone)
	assert.Equal(t, "linkedin.com/in/johndoe", info.LinkedIn)
	assert.Equal(t, "San Francisco, CA", info.Location)
	assert.Equal(t, "Senior Software Engineer", info.Title)

	assert.InDelta(t, 0.85, info.NameConfidence(), 1e-9)
	assert.InDelta(t, 0.95, info.FieldConfidence["contact"], 1e-9)
}

func TestExtractNamePrefersLargestHeaderText(t *testing.T) {
	pass := &types.PassResult{
		Pass: types.PassHeader,
		Text: sampleHeader,
		Tokens: []types.Token{
			{Text: "JOHN", Bounds: types.Rect{X: 0, Y: 0, Width: 60, Height: 24}},
			{Text: "DOE", Bounds: types.Rect{X: 70, Y: 0, Width: 50, Height: 24}},
			{Text: "Senior", Bounds: types.Rect{X: 0, Y: 30, Width: 50, Height: 12}},
			{Text: "Software", Bounds: types.Rect{X: 60, Y: 30, Width: 60, Height: 12}},
			{Text: "Engineer", Bounds: types.Rect{X: 130, Y: 30, Width: 60, Height: 12}},
		},
	}

	info := NewExtractor().Extract(pass)
	assert.Equal(t, "John Doe", info.Name)
	assert.InDelta(t, 0.9, info.NameConfidence(), 1e-9)
}

func TestExtractNameFallsBackToEmailLocalPart(t *testing.T) {
	text := "john_smith@corp.com | (555) 123-4567"
	info := NewExtractor().Extract(&types.PassResult{Pass: types.PassHeader, Text: text})

	assert.Equal(t, "John Smith", info.Name)
	assert.InDelta(t, 0.5, info.NameConfidence(), 1e-9)
}

func TestExtractNameFirstLineLastResort(t *testing.T) {
	info := NewExtractor().Extract(&types.PassResult{Pass: types.PassHeader, Text: "lowercase header line"})

	assert.Equal(t, "Lowercase Header Line", info.Name)
	assert.InDelta(t, 0.3, info.NameConfidence(), 1e-9)
}

func TestExtractFailedHeaderPass(t *testing.T) {
	info := NewExtractor().Extract(&types.PassResult{Pass: types.PassHeader, Failed: true, Error: "timeout"})

	assert.Empty(t, info.Name)
	assert.Empty(t, info.Email)
	assert.Equal(t, 0.0, info.NameConfidence())
	assert.InDelta(t, 0.3, info.FieldConfidence["contact"], 1e-9)
}

func TestCleanNameStripsSuffixes(t *testing.T) {
	assert.Equal(t, "John Smith", cleanName("John Smith Jr"))
	// A two-word name keeps its second word even when it looks like a suffix.
	assert.Equal(t, "John Jr", cleanName("John Jr"))
}

func TestNormalizePhoneVariants(t *testing.T) {
	tests := []struct{ in, want string }{
		{"555.123.4567", "(555) 123-4567"},
		{"555-123-4567", "(555) 123-4567"},
		{"(555) 123-4567", "(555) 123-4567"},
		{"+1 555 123 4567", "+1 (555) 123-4567"},
	}
	for _, tt := range tests {
		info := NewExtractor().Extract(&types.PassResult{Pass: types.PassHeader, Text: "Jane Doe\n" + tt.in})
		assert.Equal(t, tt.want, info.Phone, "input %q", tt.in)
	}
}

func TestExtractLinkedInShortForm(t *testing.T) {
	info := NewExtractor().Extract(&types.PassResult{
		Pass: types.PassHeader,
		Text: "Jane Doe\njane@doe.com | in/janedoe",
	})
	assert.Equal(t, "linkedin.com/in/janedoe", info.LinkedIn)
}

func TestExtractGitHub(t *testing.T) {
	info := NewExtractor().Extract(&types.PassResult{
		Pass: types.PassHeader,
		Text: "Jane Doe\ngithub.com/janedoe",
	})
	assert.Equal(t, "github.com/janedoe", info.GitHub)
}

func TestContactConfidenceLadder(t *testing.T) {
	assert.InDelta(t, 0.95, contactConfidence(3), 1e-9)
	assert.InDelta(t, 0.95, contactConfidence(2), 1e-9)
	assert.InDelta(t, 0.7, contactConfidence(1), 1e-9)
	assert.InDelta(t, 0.3, contactConfidence(0), 1e-9)
}

func TestTitleRequiresKeyword(t *testing.T) {
	info := NewExtractor().Extract(&types.PassResult{
		Pass: types.PassHeader,
		Text: "Jane Doe\nAvid Mountain Climber\njane@doe.com",
	})
	require.Equal(t, "Jane Doe", info.Name)
	assert.Empty(t, info.Title)
}
