package model

import (
	"time"

	"github.com/google/uuid"
)

// QuestionAttempt is one recorded answer to one question within one session.
// At most one attempt exists per (session, question) pair; attempts are never
// updated after creation.
type QuestionAttempt struct {
	ID               uint                 `gorm:"primarykey" json:"id"`
	UserID           uuid.UUID            `json:"user_id" gorm:"type:uuid;not null;index"`
	SessionID        uint                 `json:"session_id" gorm:"not null;index;uniqueIndex:idx_attempt_session_question"`
	QuestionID       uint                 `json:"question_id" gorm:"not null;uniqueIndex:idx_attempt_session_question"`
	Question         Question             `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	ChosenOptionID   *uint                `json:"chosen_option_id,omitempty"` // nil for free-text questions
	FreeTextAnswer   *string              `json:"free_text_answer,omitempty" gorm:"type:text"`
	IsCorrect        bool                 `json:"is_correct"` // fixed at submission time
	TimeTakenSeconds *int                 `json:"time_taken_seconds,omitempty"`
	OptionOrder      []AttemptOptionOrder `json:"option_order,omitempty" gorm:"foreignKey:AttemptID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time            `json:"created_at"`
}

// AttemptOptionOrder records the position each option occupied when it was
// shown to the user, independent of the option's canonical display order.
// Written once per attempt, for later position-bias analysis.
type AttemptOptionOrder struct {
	ID        uint `gorm:"primarykey" json:"id"`
	AttemptID uint `json:"attempt_id" gorm:"not null;index"`
	OptionID  uint `json:"option_id" gorm:"not null"`
	Position  int  `json:"position" gorm:"not null"` // 1-based shown position
}
