// Package prompt renders the text sent to the generative model.
package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

const (
	Chat               = "chat.tmpl"
	DashboardAnalysis  = "dashboard_analysis.tmpl"
	CareerSuggestions  = "career_suggestions.tmpl"
	Roadmap            = "roadmap.tmpl"
	MiniProject        = "mini_project.tmpl"
	ResumeProfile      = "resume_profile.tmpl"
	MarketInsights     = "market_insights.tmpl"
	InterviewQuestions = "interview_questions.tmpl"

	AssessmentQuestions = "assessment_questions.tmpl"
	LearningPath        = "learning_path.tmpl"
)

//go:embed templates/*.tmpl
var files embed.FS

var templates = template.Must(
	template.New("prompts").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(files, "templates/*.tmpl"),
)

// Render executes the named template and trims surrounding whitespace.
func Render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
