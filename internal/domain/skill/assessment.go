package skill

import (
	"fmt"
	"math"
	"strings"
)

const (
	// PassScore is the score from which an attempt raises levels and earns a badge.
	PassScore       = 70
	maxAnswerPoints = 10
	pointsPerHit    = 2
	weakAnswer      = 5
)

type Question struct {
	Question         string   `json:"question"`
	Type             string   `json:"type"`
	Code             string   `json:"code,omitempty"`
	ExpectedKeywords []string `json:"expected_keywords,omitempty"`
	Hints            []string `json:"hints"`
}

// Assessment is a timed challenge graded by keyword coverage.
type Assessment struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Duration    int        `json:"duration"`
	Difficulty  string     `json:"difficulty"`
	Skills      []string   `json:"skills"`
	Questions   []Question `json:"questions"`
}

var assessments = []Assessment{
	{
		ID:          "python_basics",
		Title:       "Python Basics Challenge",
		Description: "Test your Python fundamentals with real-world problems",
		Duration:    300,
		Difficulty:  "Beginner",
		Skills:      []string{"python"},
		Questions: []Question{
			{
				Question: "Here's a real-world dataset, try to answer 3 questions in 5 minutes.",
				Type:     "coding",
				Code: `# Sample sales data
sales_data = [
    {"product": "Laptop", "price": 1200, "quantity": 5, "date": "2024-01-15"},
    {"product": "Mouse", "price": 25, "quantity": 20, "date": "2024-01-15"},
    {"product": "Keyboard", "price": 80, "quantity": 8, "date": "2024-01-16"},
    {"product": "Monitor", "price": 300, "quantity": 3, "date": "2024-01-16"},
    {"product": "Laptop", "price": 1200, "quantity": 2, "date": "2024-01-17"}
]

# Questions:
# 1. Calculate total revenue for each product
# 2. Find the product with highest total sales value
# 3. Calculate average order value per day`,
				ExpectedKeywords: []string{"revenue", "total", "product", "sales", "average", "day"},
				Hints: []string{
					"Use a dictionary to group by product",
					"Calculate revenue = price * quantity",
					"Group by date and calculate daily totals",
				},
			},
			{
				Question: "Solve this small puzzle like a penetration tester.",
				Type:     "security",
				Code: `# You find this encoded message:
encoded = "U2FsdGVkX1+Qh8K8s8Cl0A=="

# And this Python code:
def decrypt_message(encoded_msg, password):
    # Implementation here
    pass

# What would you do to decode this message?`,
				ExpectedKeywords: []string{"base64", "decode", "password", "crack", "hash", "encryption"},
				Hints: []string{
					"This looks like base64 encoding",
					"Try common password cracking techniques",
					"Look for patterns in the encoded string",
				},
			},
		},
	},
	{
		ID:          "data_analysis",
		Title:       "Data Analysis Challenge",
		Description: "Analyze real datasets and extract insights",
		Duration:    600,
		Difficulty:  "Intermediate",
		Skills:      []string{"python", "pandas", "data_visualization"},
		Questions: []Question{
			{
				Question: "Analyze this customer dataset and identify key insights.",
				Type:     "analysis",
				Code: `import pandas as pd

# Customer dataset
customers = pd.DataFrame({
    'customer_id': range(1, 101),
    'age': np.random.randint(18, 70, 100),
    'income': np.random.randint(20000, 150000, 100),
    'purchase_amount': np.random.randint(50, 5000, 100),
    'loyalty_score': np.random.randint(1, 10, 100)
})

# Tasks:
# 1. Identify customer segments
# 2. Find correlation between variables
# 3. Suggest marketing strategies`,
				ExpectedKeywords: []string{"segmentation", "correlation", "clustering", "analysis", "insights", "strategy"},
				Hints: []string{
					"Use clustering algorithms for segmentation",
					"Check correlation matrix",
					"Group by loyalty scores",
				},
			},
		},
	},
}

// Assessments returns the catalog with answer keys removed.
func Assessments() []Assessment {
	out := make([]Assessment, len(assessments))
	for i, a := range assessments {
		out[i] = a.public()
	}
	return out
}

// FindAssessment returns a full copy, answer keys included.
func FindAssessment(id string) (Assessment, bool) {
	for _, a := range assessments {
		if a.ID == id {
			return a.clone(), true
		}
	}
	return Assessment{}, false
}

func (a Assessment) clone() Assessment {
	c := a
	c.Skills = append([]string(nil), a.Skills...)
	c.Questions = make([]Question, len(a.Questions))
	for i, q := range a.Questions {
		q.ExpectedKeywords = append([]string(nil), q.ExpectedKeywords...)
		q.Hints = append([]string(nil), q.Hints...)
		c.Questions[i] = q
	}
	return c
}

func (a Assessment) public() Assessment {
	c := a.clone()
	for i := range c.Questions {
		c.Questions[i].ExpectedKeywords = nil
	}
	return c
}

// Badge is awarded for passing the assessment.
func (a Assessment) Badge() string {
	return a.Title + " Master"
}

// Grade scores answers against the expected keywords, one answer per question. Missing
// answers score zero. Each keyword found is worth 2 points, at most 10 per question, and
// the total is scaled to 0..100.
func Grade(a Assessment, answers []string) (score int, feedback []string) {
	feedback = []string{}
	if len(a.Questions) == 0 {
		return 0, feedback
	}

	total := 0
	for i, q := range a.Questions {
		answer := ""
		if i < len(answers) {
			answer = strings.ToLower(answers[i])
		}
		hits := 0
		for _, k := range q.ExpectedKeywords {
			if strings.Contains(answer, strings.ToLower(k)) {
				hits++
			}
		}
		points := min(maxAnswerPoints, hits*pointsPerHit)
		total += points
		if points < weakAnswer {
			feedback = append(feedback, fmt.Sprintf("Question %d: Consider including more details about %s", i+1, strings.Join(q.ExpectedKeywords, ", ")))
		}
	}
	score = int(math.Round(float64(total) / float64(len(a.Questions)*maxAnswerPoints) * 100))
	return score, feedback
}

// Reward returns the XP for a score: the score itself when passed, half of it otherwise.
func Reward(score int) (xp int, passed bool) {
	if score >= PassScore {
		return score, true
	}
	return score / 2, false
}
