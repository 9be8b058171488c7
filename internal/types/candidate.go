package types

// CandidateInfo holds the fields extracted from the resume header. Every
// field carries an independent confidence; a field with no signal above
// threshold stays empty rather than guessed.
type CandidateInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Location string `json:"location"`
	Title    string `json:"title"`

	// FieldConfidence maps field name (name, contact) to a [0,1] confidence.
	FieldConfidence map[string]float64 `json:"field_confidence,omitempty"`
}

// NameConfidence returns the recorded confidence for the name field.
func (c *CandidateInfo) NameConfidence() float64 {
	if c.FieldConfidence == nil {
		return 0
	}
	return c.FieldConfidence["name"]
}

// ContactCount returns how many of email/phone/linkedin were found.
func (c *CandidateInfo) ContactCount() int {
	n := 0
	for _, v := range []string{c.Email, c.Phone, c.LinkedIn} {
		if v != "" {
			n++
		}
	}
	return n
}
