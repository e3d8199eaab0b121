package model

// LogRecord is a stored build log: raw multi-line text plus acquisition
// metadata and a processed flag. The engine treats Log as an opaque,
// line-splittable string; the processed transition is driven by the
// surrounding workflow.
type LogRecord struct {
	ID           int64  `gorm:"primaryKey" json:"id"`
	PacketName   string `gorm:"not null;index" json:"packet_name"`
	Architecture string `gorm:"not null" json:"architecture"`
	Date         string `gorm:"not null" json:"date"`
	Error        bool   `gorm:"not null" json:"error"`
	Log          string `gorm:"not null" json:"-"`
	Processed    bool   `gorm:"not null;default:false" json:"processed"`
}

// TableName keeps the table name the log tooling expects.
func (LogRecord) TableName() string { return "logs" }
