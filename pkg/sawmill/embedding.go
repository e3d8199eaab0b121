package sawmill

// Embedding is a log's per-utility error-count vector. Vector[i] is the
// number of lines classified as an error of Utilities[i]; Utilities is
// sorted alphabetically and shared by every embedding from the same
// library snapshot.
type Embedding struct {
	Vector    []float64 `json:"vector"`
	Utilities []string  `json:"utilities"`
}
