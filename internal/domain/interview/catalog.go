package interview

// Question is one prompt of a mock interview.
type Question struct {
	Question         string   `json:"question" validate:"required"`
	Type             string   `json:"type"`
	ExpectedKeywords []string `json:"expected_keywords"`
	Hints            []string `json:"hints"`
	SampleAnswer     string   `json:"sample_answer"`
}

// Interview is a catalog entry, keyed by career path id.
type Interview struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CareerPath  string     `json:"career_path"`
	Difficulty  string     `json:"difficulty"`
	Duration    int        `json:"duration"`
	Questions   []Question `json:"questions"`
}

var catalog = []Interview{
	{
		ID:          "data_analyst",
		Title:       "Data Analyst Interview",
		Description: "Practice common data analyst interview questions",
		CareerPath:  "Data Analyst",
		Difficulty:  "Intermediate",
		Duration:    15,
		Questions: []Question{
			{
				Question:         "How would you approach analyzing a large dataset with missing values?",
				Type:             "technical",
				ExpectedKeywords: []string{"data cleaning", "imputation", "analysis", "validation", "missing data"},
				Hints:            []string{"Start with data exploration", "Identify patterns in missing data", "Choose appropriate imputation strategy", "Validate your approach"},
				SampleAnswer:     "I would start by exploring the dataset to understand the extent and patterns of missing values. Then I'd use appropriate imputation techniques like mean, median, or forward-fill depending on the data type and context. Finally, I'd validate the results to ensure data quality.",
			},
			{
				Question:         "Describe a time when your analysis led to a significant business decision.",
				Type:             "behavioral",
				ExpectedKeywords: []string{"impact", "decision", "results", "communication", "stakeholder", "business value"},
				Hints:            []string{"Use STAR method (Situation, Task, Action, Result)", "Quantify the impact", "Explain your role clearly", "Show business understanding"},
				SampleAnswer:     "I analyzed customer churn data and identified that customers who didn't engage with our product within the first week had a 70% higher churn rate. I presented this to stakeholders, and we implemented an onboarding improvement that reduced churn by 25%.",
			},
			{
				Question:         "What's the difference between correlation and causation?",
				Type:             "technical",
				ExpectedKeywords: []string{"correlation", "causation", "relationship", "variables", "confounding", "experiment"},
				Hints:            []string{"Correlation measures association", "Causation implies direct influence", "Confounding variables can create false correlations", "Experiments help establish causation"},
				SampleAnswer:     "Correlation measures the strength and direction of a relationship between variables, while causation implies that one variable directly influences another. Correlation doesn't imply causation because confounding variables or reverse causality might be at play.",
			},
		},
	},
	{
		ID:          "fullstack_developer",
		Title:       "Full Stack Developer Interview",
		Description: "Test your full-stack development knowledge",
		CareerPath:  "Full Stack Developer",
		Difficulty:  "Advanced",
		Duration:    20,
		Questions: []Question{
			{
				Question:         "Explain the difference between REST and GraphQL APIs.",
				Type:             "technical",
				ExpectedKeywords: []string{"rest", "graphql", "api", "endpoints", "over-fetching", "under-fetching"},
				Hints:            []string{"REST uses multiple endpoints", "GraphQL uses a single endpoint", "Consider data fetching efficiency", "Think about flexibility vs. simplicity"},
				SampleAnswer:     "REST APIs use multiple endpoints for different resources, which can lead to over-fetching or under-fetching data. GraphQL uses a single endpoint with a query language, allowing clients to request exactly the data they need, improving efficiency and flexibility.",
			},
			{
				Question:         "How do you handle state management in a React application?",
				Type:             "technical",
				ExpectedKeywords: []string{"state", "context", "redux", "hooks", "local state", "global state"},
				Hints:            []string{"Consider local vs. global state", "Use appropriate state management tools", "Think about scalability", "Consider team collaboration"},
				SampleAnswer:     "I start with local state using useState for component-specific data. For shared state across components, I use Context API for simple cases and Redux for complex applications. I also leverage custom hooks to encapsulate state logic and make it reusable.",
			},
		},
	},
	{
		ID:          "ml_engineer",
		Title:       "Machine Learning Engineer Interview",
		Description: "Advanced ML and engineering questions",
		CareerPath:  "ML Engineer",
		Difficulty:  "Expert",
		Duration:    25,
		Questions: []Question{
			{
				Question:         "What's the difference between overfitting and underfitting?",
				Type:             "technical",
				ExpectedKeywords: []string{"overfitting", "underfitting", "validation", "generalization", "bias", "variance"},
				Hints:            []string{"Overfitting: model learns noise", "Underfitting: model is too simple", "Use validation data", "Balance complexity"},
				SampleAnswer:     "Overfitting occurs when a model learns the training data too well, including noise, leading to poor generalization on unseen data. Underfitting happens when a model is too simple to capture the underlying patterns, resulting in poor performance on both training and test data.",
			},
			{
				Question:         "How would you deploy a machine learning model in production?",
				Type:             "technical",
				ExpectedKeywords: []string{"deployment", "mlops", "monitoring", "scaling", "versioning", "testing"},
				Hints:            []string{"Consider model versioning", "Implement monitoring and logging", "Plan for scalability", "Include testing and validation"},
				SampleAnswer:     "I would containerize the model using Docker, implement CI/CD pipelines for automated testing and deployment, add monitoring for model performance and data drift, use model versioning for rollbacks, and ensure the system can scale horizontally based on demand.",
			},
		},
	},
}

func Catalog() []Interview {
	out := make([]Interview, len(catalog))
	copy(out, catalog)
	return out
}

func Find(id string) (Interview, bool) {
	for _, iv := range catalog {
		if iv.ID == id {
			return iv, true
		}
	}
	return Interview{}, false
}
