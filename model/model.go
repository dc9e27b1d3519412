package model

// GenerationResult is the outcome of a single user request
type GenerationResult struct {
	Mode         string
	Question     string
	RawText      string // answer shown to the user, fallback text included
	Validated    bool
	UsedFallback bool
	Attempts     int
}

// LogRecord is one line of the append-only request log
type LogRecord struct {
	Mode         string `json:"mode"`
	Question     string `json:"question"`
	Validated    bool   `json:"validated"`
	UsedFallback bool   `json:"used_fallback"`
}

// Record summarizes the result for the request log
func (r GenerationResult) Record() LogRecord {
	return LogRecord{
		Mode:         r.Mode,
		Question:     r.Question,
		Validated:    r.Validated,
		UsedFallback: r.UsedFallback,
	}
}
