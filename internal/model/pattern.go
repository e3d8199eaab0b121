package model

// Pattern is a stored classification rule: a regular expression tagged with
// the utility that produces matching lines and whether a match counts as an
// error occurrence.
type Pattern struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	Regex       string `gorm:"not null" json:"regex"`
	UtilityName string `gorm:"not null;index" json:"utility_name"`
	IsError     bool   `gorm:"not null" json:"is_error"`
	// NeedReviewing marks a pattern as not yet human-vetted. Advisory only;
	// has no effect on matching. Defaults to true for new patterns.
	NeedReviewing bool `gorm:"not null;default:true" json:"need_reviewing"`
}

// TableName keeps the table name the pattern tooling expects.
func (Pattern) TableName() string { return "patterns" }
