package model

// Suggestion is a candidate pattern proposed by the oracle (or a human) for
// a line no stored pattern matched. It carries no id or review state; those
// are assigned when the suggestion passes ingestion validation.
type Suggestion struct {
	UtilityName string `json:"utility_name"`
	Regex       string `json:"regex"`
}
