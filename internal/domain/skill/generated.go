package skill

import "fmt"

// GeneratedQuestion is an assessment question produced by the text generator.
type GeneratedQuestion struct {
	Question      string   `json:"question" validate:"required"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
}

func MockQuestions(skillName, difficulty string) []GeneratedQuestion {
	return []GeneratedQuestion{{
		Question:      fmt.Sprintf("What is the primary use of %s?", skillName),
		Type:          "multiple_choice",
		Options:       []string{"Option A", "Option B", "Option C", "Option D"},
		CorrectAnswer: "Option A",
		Explanation:   "This is the correct answer because...",
		Difficulty:    difficulty,
	}}
}
