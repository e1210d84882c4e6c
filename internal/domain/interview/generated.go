package interview

import (
	"fmt"
	"strings"
)

// GeneratedQuestion is a practice question produced by the text generator.
type GeneratedQuestion struct {
	Question       string `json:"question" validate:"required"`
	Type           string `json:"type"`
	Category       string `json:"category"`
	Difficulty     string `json:"difficulty"`
	ExpectedAnswer string `json:"expected_answer"`
	Tips           string `json:"tips"`
}

// MockGeneratedQuestions serves the catalog questions of a known career path. Other paths
// get a single experience question.
func MockGeneratedQuestions(careerPath, level string) []GeneratedQuestion {
	if iv, ok := Find(careerPath); ok {
		out := make([]GeneratedQuestion, len(iv.Questions))
		for i, q := range iv.Questions {
			out[i] = GeneratedQuestion{
				Question:       q.Question,
				Type:           q.Type,
				Category:       iv.CareerPath,
				Difficulty:     level,
				ExpectedAnswer: q.SampleAnswer,
				Tips:           strings.Join(q.Hints, "; "),
			}
		}
		return out
	}

	return []GeneratedQuestion{{
		Question:       fmt.Sprintf("Tell me about your experience with %s", careerPath),
		Type:           "behavioral",
		Category:       "experience",
		Difficulty:     level,
		ExpectedAnswer: "Looking for relevant experience",
		Tips:           "Be specific and provide examples",
	}}
}
