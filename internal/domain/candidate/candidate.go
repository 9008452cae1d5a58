package candidate

import (
	"jobpulse/internal/common"
)

type Candidate struct {
	ID       common.UUID `json:"id"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Skills   []string    `json:"skills"`
	Years    int         `json:"years_experience"`
	Degree   string      `json:"degree"`
	Location string      `json:"location"`
}

// ExperienceBucket maps total years of experience to a coarse seniority label
// used by the demographics rollup.
func ExperienceBucket(years int) string {
	switch {
	case years < 2:
		return "Entry"
	case years < 5:
		return "Mid"
	case years < 10:
		return "Senior"
	default:
		return "Expert"
	}
}
