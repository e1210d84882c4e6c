package profile

import "github.com/khoahotran/educursus/internal/domain/career"

type QuestionType string

const (
	TypeText     QuestionType = "text"
	TypeNumber   QuestionType = "number"
	TypeRadio    QuestionType = "radio"
	TypeCheckbox QuestionType = "checkbox"
)

type Question struct {
	Key     string       `json:"key"`
	Type    QuestionType `json:"type"`
	Prompt  string       `json:"q"`
	Options []string     `json:"options,omitempty"`

	// Optional checkbox questions accept an empty selection.
	Optional bool `json:"optional,omitempty"`
}

var questions = []Question{
	{Key: "name", Type: TypeText, Prompt: "First, what should we call you?"},
	{Key: "age", Type: TypeNumber, Prompt: "How old are you?"},
	{Key: "stream", Type: TypeRadio, Prompt: "What's your current academic stream?", Options: []string{"Science", "Commerce", "Arts", "Engineering", "Other"}},
	{Key: "interests", Type: TypeCheckbox, Prompt: "Which subjects spark your interest? (Pick a few)", Options: []string{"Mathematics", "Physics", "Computer Science", "Design", "Business", "Biology"}},
	{Key: "projectExperience", Type: TypeRadio, Prompt: "Have you worked on any personal or academic projects?", Options: []string{"Yes, a few", "Just getting started", "No, not yet"}},
	{Key: "teamPreference", Type: TypeRadio, Prompt: "Do you prefer working in a team or independently?", Options: []string{"In a Team", "Independently", "A bit of both"}},
	{Key: "problemSolvingStyle", Type: TypeRadio, Prompt: "How do you approach solving a difficult problem?", Options: []string{"Logically & Step-by-step", "Creatively & Brainstorming", "By Researching Solutions"}},
	{Key: "learningStyle", Type: TypeRadio, Prompt: "How do you learn best?", Options: []string{"By Doing (Practical)", "By Reading (Theoretical)", "By Watching (Visual)", "By Collaborating"}},
	{Key: "workEnv", Type: TypeRadio, Prompt: "What kind of work environment excites you?", Options: []string{"Fast-paced Startup", "Large Tech Company", "Freelance / Own Business", "Research & Academia"}},
	{Key: "careerInterests", Type: TypeCheckbox, Prompt: "Any early career thoughts? (It's okay to guess!)", Options: career.MockTitles(), Optional: true},
	{Key: "longTermGoal", Type: TypeText, Prompt: "What's your ultimate 5-year career goal?"},
}

// Questions returns the onboarding questionnaire in order.
func Questions() []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	return out
}

func (q Question) hasOption(v string) bool {
	for _, o := range q.Options {
		if o == v {
			return true
		}
	}
	return false
}
