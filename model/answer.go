package model

import (
	"encoding/json"
	"time"
)

// Answer is one submission against a question set. UserID is nil for
// anonymous respondents; the answer payload keeps whatever shape the
// respondent submitted.
type Answer struct {
	ID        int             `json:"id"`
	SetID     int             `json:"set_id"`
	UserID    *int            `json:"user_id,omitempty"`
	UserName  string          `json:"user_name"`
	Answer    json.RawMessage `json:"answer"`
	CreatedAt time.Time       `json:"created_at"`
}
