// file: model/request.go

package model

import "encoding/json"

// RegisterRequest defines the payload for creating a new user.
// It includes validation tags to ensure data integrity at the entry point.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
}

// LoginRequest defines the payload for user authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUsernameRequest carries the new display name. The blank check is done
// in the handler so the response message matches the documented contract.
type UpdateUsernameRequest struct {
	Username string `json:"username"`
}

// CreateSetRequest defines the payload for authoring a question set.
type CreateSetRequest struct {
	Title     string     `json:"title" validate:"required"`
	Questions []Question `json:"questions" validate:"required,min=1,dive"`
	IsPublic  bool       `json:"isPublic"`
}

// UpdateSetRequest carries a partial update; nil fields are left unchanged.
type UpdateSetRequest struct {
	Title     *string    `json:"title"`
	Questions []Question `json:"questions"`
	IsPublic  *bool      `json:"isPublic"`
}

// SubmitAnswersRequest is the public submission payload for a set.
type SubmitAnswersRequest struct {
	Answers  json.RawMessage `json:"answers" validate:"required"`
	UserName string          `json:"userName"`
}
