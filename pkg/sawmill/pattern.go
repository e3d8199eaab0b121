package sawmill

import "github.com/crimson-sun/sawmill/internal/model"

// Pattern is one entry of the pattern library.
// This is the stable public type — the internal representation may evolve
// independently without breaking consumers.
type Pattern struct {
	ID          int64  `json:"id"`
	Regex       string `json:"regex"`        // matched against the start of a line
	Utility     string `json:"utility_name"` // tool the pattern attributes the line to
	IsError     bool   `json:"is_error"`     // counts toward the embedding when true
	NeedsReview bool   `json:"need_reviewing,omitempty"`
}

// Proposal is a candidate pattern submitted through AddPattern.
type Proposal struct {
	Regex   string
	Utility string
	IsError bool

	// TriggerLine, when set, is a line the regex must match. Set
	// AllowNonMatching to store the pattern anyway.
	TriggerLine      string
	AllowNonMatching bool
}

// Match identifies the pattern that claimed a line.
type Match struct {
	PatternID int64  `json:"pattern_id"`
	Utility   string `json:"utility_name"`
	IsError   bool   `json:"is_error"`
}

func toModel(patterns []Pattern) []model.Pattern {
	out := make([]model.Pattern, len(patterns))
	for i, p := range patterns {
		out[i] = model.Pattern{
			ID:            p.ID,
			Regex:         p.Regex,
			UtilityName:   p.Utility,
			IsError:       p.IsError,
			NeedReviewing: p.NeedsReview,
		}
	}
	return out
}
