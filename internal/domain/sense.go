package domain

// SenseAssignment is the sense chosen for one token.
type SenseAssignment struct {
	Word       string   `json:"word"`
	Sense      string   `json:"sense"`
	Confidence float64  `json:"confidence"`
	Context    []string `json:"context"`
}

// SenseMap maps token positions to their sense assignments.
type SenseMap map[int]SenseAssignment

// MeanConfidence returns the average assignment confidence, or def when empty.
func (m SenseMap) MeanConfidence(def float64) float64 {
	if len(m) == 0 {
		return def
	}
	var sum float64
	for _, a := range m {
		sum += a.Confidence
	}
	return sum / float64(len(m))
}
