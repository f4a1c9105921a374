package jersey

// NumberResult is one distinct jersey number after fusion. Accuracy is the
// fused confidence expressed as a percentage.
type NumberResult struct {
	Number   string `json:"number"`
	Accuracy int    `json:"accuracy"`
}

type PredictResponse struct {
	Results          []NumberResult `json:"results"`
	Count            int            `json:"count"`
	ProcessingTimeMS float64        `json:"processing_time_ms"`
}
