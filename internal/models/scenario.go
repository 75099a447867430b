package models

// ScenarioKind identifies a practice prompt category
type ScenarioKind string

const (
	ScenarioTechnicalInterview  ScenarioKind = "technical-interview"
	ScenarioBehavioralInterview ScenarioKind = "behavioral-interview"
	ScenarioGroupDiscussion     ScenarioKind = "group-discussion"
	ScenarioProjectPresentation ScenarioKind = "project-presentation"
	ScenarioSalesPitch          ScenarioKind = "sales-pitch"
)

// DefaultScenario is selected when a practice page first loads
const DefaultScenario = ScenarioTechnicalInterview

// Difficulty levels shown on scenario cards
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Scenario describes a practice prompt
type Scenario struct {
	Kind        ScenarioKind `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Difficulty  string       `json:"difficulty"`
	Duration    string       `json:"duration"` // Suggested speaking time
}

var scenarioCatalog = []Scenario{
	{
		Kind:        ScenarioTechnicalInterview,
		Title:       "Technical Interview",
		Description: "You're in a technical interview for a software developer position. The interviewer is asking about your experience with JavaScript and problem-solving approach. Stay confident, provide specific examples, and explain your thought process clearly.",
		Difficulty:  DifficultyMedium,
		Duration:    "5-10 min",
	},
	{
		Kind:        ScenarioBehavioralInterview,
		Title:       "Behavioral Interview",
		Description: "This is a behavioral interview focusing on your past experiences and how you handle workplace situations. Use the STAR method (Situation, Task, Action, Result) to structure your responses.",
		Difficulty:  DifficultyEasy,
		Duration:    "10-15 min",
	},
	{
		Kind:        ScenarioGroupDiscussion,
		Title:       "Group Discussion",
		Description: "You're participating in a group discussion about current technology trends. Practice active listening, contributing meaningful points, and respectfully engaging with different viewpoints.",
		Difficulty:  DifficultyHard,
		Duration:    "15-20 min",
	},
	{
		Kind:        ScenarioProjectPresentation,
		Title:       "Project Presentation",
		Description: "Present your latest project to stakeholders. Focus on clear communication, engaging storytelling, and handling questions confidently. Structure your presentation with a clear beginning, middle, and end.",
		Difficulty:  DifficultyMedium,
		Duration:    "8-12 min",
	},
	{
		Kind:        ScenarioSalesPitch,
		Title:       "Sales Pitch",
		Description: "You're pitching a product or service to potential clients. Focus on identifying customer needs, presenting benefits clearly, and handling objections professionally.",
		Difficulty:  DifficultyHard,
		Duration:    "5-8 min",
	},
}

// AllScenarios returns the scenario catalog in display order
func AllScenarios() []Scenario {
	out := make([]Scenario, len(scenarioCatalog))
	copy(out, scenarioCatalog)
	return out
}

// LookupScenario returns the catalog entry for kind
func LookupScenario(kind ScenarioKind) (Scenario, bool) {
	for _, s := range scenarioCatalog {
		if s.Kind == kind {
			return s, true
		}
	}
	return Scenario{}, false
}

// IsValid reports whether the kind is in the catalog
func (k ScenarioKind) IsValid() bool {
	_, ok := LookupScenario(k)
	return ok
}

// Title returns the display title, falling back to a generic label
func (k ScenarioKind) Title() string {
	if s, ok := LookupScenario(k); ok {
		return s.Title
	}
	return "Practice Session"
}
