package model

import "time"

// Question is a single authored question inside a set. Options are optional
// (free-text questions have none); Answer is the author's reference answer.
type Question struct {
	Text    string   `json:"text" validate:"required"`
	Options []string `json:"options,omitempty"`
	Answer  string   `json:"answer,omitempty"`
}

// QuestionSet is an authored questionnaire. The slug is the stable public
// handle shared with respondents; only public sets resolve through it.
type QuestionSet struct {
	ID        int        `json:"id"`
	UserID    int        `json:"user_id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
	IsPublic  bool       `json:"is_public"`
	Slug      string     `json:"slug"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
