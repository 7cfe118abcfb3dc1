package eval

import "time"

// NoResponseSentinel marks the raw output of a record whose provider call
// failed or returned empty text.
const NoResponseSentinel = "ERROR_NO_RESPONSE"

// FailureCase captures everything needed to diagnose one wrong or
// unobtainable prediction offline.
type FailureCase struct {
	ID                   string `json:"id"`
	Question             string `json:"question"`
	ReferenceSolution    string `json:"reference_solution,omitempty"`
	ReferenceFinalAnswer string `json:"reference_final_answer,omitempty"`
	GeneratedPrompt      string `json:"generated_prompt"`
	RawOutput            string `json:"raw_output"`
	ExtractedPrediction  string `json:"extracted_prediction,omitempty"`
}

// Result aggregates one evaluation run.
type Result struct {
	Model       string
	Provider    string
	Total       int
	Correct     int
	NoResponse  int
	Unscorable  int
	Accuracy    float64
	Failures    []FailureCase
	TotalTokens int
	TotalTime   time.Duration
}
