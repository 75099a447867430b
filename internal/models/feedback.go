package models

import "time"

// Feedback is the analysis payload produced after a recording stops
type Feedback struct {
	Transcript      string    `json:"transcript"`
	WordCount       int       `json:"word_count"`
	SpeakingSpeed   int       `json:"speaking_speed"`   // Words per minute
	ConfidenceLevel int       `json:"confidence_level"` // Percentage
	Sentiment       string    `json:"sentiment"`
	Suggestions     []string  `json:"suggestions"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// Clone returns a copy with its own suggestion slice
func (f *Feedback) Clone() *Feedback {
	if f == nil {
		return nil
	}
	c := *f
	c.Suggestions = append([]string(nil), f.Suggestions...)
	return &c
}
