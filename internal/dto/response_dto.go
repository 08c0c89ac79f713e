package dto

import (
	"time"

	"github.com/google/uuid"
)

type SubjectResponse struct {
	ID   uint   `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type TopicResponse struct {
	ID            uint   `json:"id"`
	SubjectID     uint   `json:"subject_id"`
	Name          string `json:"name"`
	ParentTopicID *uint  `json:"parent_topic_id,omitempty"`
}

// OptionResponse deliberately omits the correctness flag; grading happens
// server-side when the answer is recorded.
type OptionResponse struct {
	ID             uint    `json:"id"`
	OptionText     string  `json:"option_text"`
	OptionImageURL *string `json:"option_image_url,omitempty"`
}

type QuestionResponse struct {
	ID               uint             `json:"id"`
	SubjectID        uint             `json:"subject_id"`
	TopicID          *uint            `json:"topic_id,omitempty"`
	QuestionType     string           `json:"question_type"`
	QuestionText     string           `json:"question_text"`
	QuestionImageURL *string          `json:"question_image_url,omitempty"`
	Points           int              `json:"points"`
	TimeLimitSeconds *int             `json:"time_limit_seconds,omitempty"`
	Options          []OptionResponse `json:"options"`
}

type SessionResponse struct {
	ID          uint       `json:"id"`
	SubjectID   uint       `json:"subject_id"`
	SetName     *string    `json:"set_name,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	QuestionIDs []uint     `json:"question_ids"`
}

type AttemptResponse struct {
	ID               uint      `json:"id"`
	QuestionID       uint      `json:"question_id"`
	ChosenOptionID   *uint     `json:"chosen_option_id,omitempty"`
	FreeTextAnswer   *string   `json:"free_text_answer,omitempty"`
	IsCorrect        bool      `json:"is_correct"`
	TimeTakenSeconds *int      `json:"time_taken_seconds,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// SessionSummaryResponse is one row of the user's practice history.
type SessionSummaryResponse struct {
	ID          uint              `json:"id"`
	Subject     SubjectResponse   `json:"subject"`
	SetName     *string           `json:"set_name,omitempty"`
	StartedAt   time.Time         `json:"started_at"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	Score       int               `json:"score"`
	Total       int               `json:"total"`
	Attempts    []AttemptResponse `json:"attempts"`
}

type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	YearGroup   *int      `json:"year_group,omitempty"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
