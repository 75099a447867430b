// Package feedback produces the analysis shown after a practice recording.
//
// Mock is a placeholder for a real speech analysis engine. Anything that
// satisfies Generator can replace it: the input is the finalized recording
// and its session, the output is transcript text, numeric metrics and a
// list of suggestions.
package feedback

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/gungunaswani/GroomifyAI/internal/models"
)

// SuggestionCount is how many suggestions each payload carries
const SuggestionCount = 3

// Metric ranges, max exclusive
const (
	MinSpeakingSpeed   = 120
	MaxSpeakingSpeed   = 180
	MinConfidenceLevel = 75
	MaxConfidenceLevel = 95
)

// Request is a finalized recording waiting for analysis
type Request struct {
	Session  models.Session
	Duration time.Duration // Length of the captured audio
	Audio    []byte
}

// Generator turns a finished recording into a feedback payload
type Generator interface {
	Generate(ctx context.Context, req Request) (*models.Feedback, error)
}

var transcripts = []string{
	"Thank you for this opportunity. I'm excited about this position because it aligns perfectly with my background in JavaScript development. I have three years of experience building web applications, and I'm particularly skilled in React and Node.js. In my previous role, I led a team project that improved our application's performance by 40%. I approach problem-solving by first understanding the requirements, then breaking down complex problems into manageable pieces.",
	"I believe effective communication is key to successful teamwork. In my experience, I've learned that active listening and clear articulation of ideas helps prevent misunderstandings. When facing challenges, I prefer to collaborate with team members and leverage diverse perspectives to find innovative solutions.",
	"My greatest strength is my ability to adapt quickly to new technologies and environments. For example, when our team needed to migrate from a legacy system, I took the initiative to learn the new framework and helped train other team members. This experience taught me the importance of continuous learning in the tech industry.",
}

var sentiments = []string{"Positive", "Confident", "Professional", "Enthusiastic"}

var suggestionPool = []string{
	"Great job maintaining eye contact! Consider adding more specific examples to strengthen your responses.",
	"Your speaking pace is excellent. Try to reduce filler words like 'um' and 'uh' for more polished delivery.",
	"Strong content structure. Work on varying your vocal tone to maintain listener engagement.",
	"Excellent use of concrete examples. Consider practicing smoother transitions between main points.",
	"Your confidence level is impressive. Focus on more precise hand gestures to enhance your message.",
}

// Transcripts returns the fixed transcript corpus
func Transcripts() []string { return append([]string(nil), transcripts...) }

// Sentiments returns the sentiment labels the mock can produce
func Sentiments() []string { return append([]string(nil), sentiments...) }

// SuggestionPool returns the suggestions the mock draws from
func SuggestionPool() []string { return append([]string(nil), suggestionPool...) }

// Mock picks canned feedback at random
type Mock struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewMock creates a mock generator. A nil rng gets a randomly seeded one.
func NewMock(rng *rand.Rand) *Mock {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Mock{rng: rng, now: time.Now}
}

// Generate builds a feedback payload. It never mutates session state.
func (m *Mock) Generate(ctx context.Context, _ Request) (*models.Feedback, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	transcript := transcripts[m.rng.IntN(len(transcripts))]

	return &models.Feedback{
		Transcript:      transcript,
		WordCount:       WordCount(transcript),
		SpeakingSpeed:   MinSpeakingSpeed + m.rng.IntN(MaxSpeakingSpeed-MinSpeakingSpeed),
		ConfidenceLevel: MinConfidenceLevel + m.rng.IntN(MaxConfidenceLevel-MinConfidenceLevel),
		Sentiment:       sentiments[m.rng.IntN(len(sentiments))],
		Suggestions:     m.pickSuggestions(SuggestionCount),
		GeneratedAt:     m.now().UTC(),
	}, nil
}

// pickSuggestions draws n distinct suggestions without replacement
func (m *Mock) pickSuggestions(n int) []string {
	order := m.rng.Perm(len(suggestionPool))
	if n > len(order) {
		n = len(order)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = suggestionPool[order[i]]
	}
	return out
}

// WordCount counts space-separated words
func WordCount(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return len(strings.Split(text, " "))
}
