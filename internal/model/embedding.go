package model

// EmbeddingRecord is the per-log output type: a fixed-dimension vector where
// coordinate i counts error-classified lines attributed to utility i of the
// snapshot's utility index. Never mutated after construction.
type EmbeddingRecord struct {
	LogID        int64     `json:"log_id"`
	PacketName   string    `json:"packet_name"`
	Architecture string    `json:"architecture,omitempty"`
	Dimension    int       `json:"dimension"`
	Vector       []float64 `json:"vector"`
	// Utilities is the index legend: Utilities[i] names the utility behind
	// Vector[i]. Omitted at minimal verbosity.
	Utilities []string `json:"utilities,omitempty"`
}
